// Package export writes atlas generation results to their output
// formats: the JSON descriptor, the PNG texture, a PDF proof sheet of
// the packed layout, and a DXF drawing of the layout geometry.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/atlasforge/atlasforge/internal/atlas"
)

// Bounds is an axis-aligned box, y up for plane coordinates and y down
// for atlas texel coordinates.
type Bounds struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
}

// GlyphInfo describes one glyph in the descriptor. PlaneBounds places
// the quad relative to the baseline origin in units of the glyph
// height; AtlasBounds addresses the cell in texels. Advance-only
// glyphs (space, tab) carry no bounds.
type GlyphInfo struct {
	Unicode     rune    `json:"unicode"`
	Advance     float64 `json:"advance"`
	PlaneBounds *Bounds `json:"planeBounds,omitempty"`
	AtlasBounds *Bounds `json:"atlasBounds,omitempty"`
}

// AtlasInfo describes the texture itself.
type AtlasInfo struct {
	Width         int `json:"width"`
	Height        int `json:"height"`
	Size          int `json:"size"`          // glyph height in texels
	DistanceRange int `json:"distanceRange"` // full SDF spread in texels
}

// MetricsInfo carries the font's vertical metrics in units of the
// glyph height.
type MetricsInfo struct {
	Ascender   float64 `json:"ascender"`
	Descender  float64 `json:"descender"`
	LineHeight float64 `json:"lineHeight"`
}

// Descriptor is the on-disk companion of the atlas texture.
type Descriptor struct {
	Atlas   AtlasInfo   `json:"atlas"`
	Metrics MetricsInfo `json:"metrics"`
	Glyphs  []GlyphInfo `json:"glyphs"`
}

// BuildDescriptor derives the descriptor from a generated atlas.
// margin is the distance-field padding baked into every cell.
func BuildDescriptor(res *atlas.Result, margin int) Descriptor {
	scale := 1.0 / float64(res.CharHeight)

	d := Descriptor{
		Atlas: AtlasInfo{
			Width:         res.Layout.Width,
			Height:        res.Layout.Height,
			Size:          res.CharHeight,
			DistanceRange: 2 * margin,
		},
		Metrics: MetricsInfo{
			Ascender:   res.Metrics.Ascent * scale,
			Descender:  -res.Metrics.Descent * scale,
			LineHeight: res.Metrics.LineHeight * scale,
		},
	}

	for _, g := range res.Glyphs {
		info := GlyphInfo{
			Unicode: g.Rune,
			Advance: g.Advance * scale,
		}
		if g.Renderable() {
			// The cell includes the margin, so the plane quad grows by
			// the same amount to keep texels square on screen.
			m := float64(margin)
			info.PlaneBounds = &Bounds{
				Left:   (float64(g.Bounds.Min.X) - m) * scale,
				Bottom: (-float64(g.Bounds.Max.Y) - m) * scale,
				Right:  (float64(g.Bounds.Max.X) + m) * scale,
				Top:    (-float64(g.Bounds.Min.Y) + m) * scale,
			}
			info.AtlasBounds = &Bounds{
				Left:   float64(g.X),
				Top:    float64(g.Y),
				Right:  float64(g.X + g.CellW),
				Bottom: float64(g.Y + g.CellH),
			}
		}
		d.Glyphs = append(d.Glyphs, info)
	}
	return d
}

// WriteDescriptor writes the descriptor as indented JSON.
func WriteDescriptor(path string, d Descriptor) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode descriptor: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
