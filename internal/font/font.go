// Package font loads TTF/OTF fonts and extracts per-glyph alpha masks
// and metrics at a requested pixel height.
package font

import (
	"fmt"
	"image"
	"os"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/atlasforge/atlasforge/internal/model"
)

// Face wraps a parsed font ready for glyph extraction.
type Face struct {
	font *sfnt.Font
}

// Load reads and parses a font file.
func Load(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Parse(data)
}

// Parse parses TTF/OTF font data.
func Parse(data []byte) (*Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Face{font: f}, nil
}

// Metrics holds vertical font metrics in texels at the extracted height.
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// Glyph is one extracted glyph. Whitespace and other mark-free glyphs
// carry only an advance: their Mask is nil and the cell is empty.
type Glyph struct {
	Rune rune

	// Mask is the rasterized alpha mask, nil for advance-only glyphs.
	Mask *image.Alpha

	// Bounds of the mask relative to the baseline origin, y down.
	Bounds image.Rectangle

	// Advance in texels.
	Advance float64

	// CellW, CellH is the packing footprint: the mask plus the
	// distance-field margin on every side. Zero for advance-only
	// glyphs, which never enter the packer.
	CellW, CellH int

	// X, Y is the atlas placement of the cell, set after packing.
	X, Y int
}

// Renderable reports whether the glyph occupies atlas space.
func (g Glyph) Renderable() bool {
	return g.CellW > 0 && g.CellH > 0
}

func (f *Face) newFace(height int) (xfont.Face, error) {
	if height < 1 {
		return nil, fmt.Errorf("glyph height %d out of range", height)
	}
	return opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(height),
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
}

// cellSize returns the packing footprint of r at the given face, or
// zero dimensions for glyphs without ink. The skip conditions must stay
// identical between Measure and Extract so batches built at different
// heights keep positional identity.
func cellSize(face xfont.Face, r rune, margin int) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, w, h int, ok bool) {
	bounds, advance, ok = face.GlyphBounds(r)
	if !ok {
		return bounds, 0, 0, 0, false
	}
	w = bounds.Max.X.Ceil() - bounds.Min.X.Floor()
	h = bounds.Max.Y.Ceil() - bounds.Min.Y.Floor()
	if w <= 0 || h <= 0 {
		return bounds, advance, 0, 0, true
	}
	return bounds, advance, w + 2*margin, h + 2*margin, true
}

// Measure returns the packing footprints of the renderable glyphs in
// charset at the given height. It skips rasterization entirely, which
// makes it cheap enough to call once per capacity search probe.
func (f *Face) Measure(charset []rune, height, margin int) ([]model.Rect, error) {
	face, err := f.newFace(height)
	if err != nil {
		return nil, err
	}
	defer func() { _ = face.Close() }()

	var buf sfnt.Buffer
	var rects []model.Rect
	for _, r := range charset {
		if !f.hasGlyph(&buf, r) {
			continue
		}
		_, _, w, h, ok := cellSize(face, r, margin)
		if !ok || w == 0 {
			continue
		}
		rects = append(rects, model.Rect{W: w, H: h})
	}
	return rects, nil
}

// hasGlyph reports whether the font maps r to a real glyph. The face
// API silently substitutes .notdef for unmapped runes, so the check
// has to go through the glyph index.
func (f *Face) hasGlyph(buf *sfnt.Buffer, r rune) bool {
	idx, err := f.font.GlyphIndex(buf, r)
	return err == nil && idx != 0
}

// Extract rasterizes every glyph of charset available in the font at
// the given pixel height. Runes without a glyph are dropped; glyphs
// without ink (space, tab) are kept as advance-only entries.
func (f *Face) Extract(charset []rune, height, margin int) ([]Glyph, Metrics, error) {
	face, err := f.newFace(height)
	if err != nil {
		return nil, Metrics{}, err
	}
	defer func() { _ = face.Close() }()

	fm := face.Metrics()
	metrics := Metrics{
		Ascent:     fixedToFloat(fm.Ascent),
		Descent:    fixedToFloat(fm.Descent),
		LineHeight: fixedToFloat(fm.Height),
	}

	var buf sfnt.Buffer
	var glyphs []Glyph
	for _, r := range charset {
		if !f.hasGlyph(&buf, r) {
			continue
		}
		bounds, advance, w, h, ok := cellSize(face, r, margin)
		if !ok {
			continue
		}

		g := Glyph{
			Rune:    r,
			Advance: fixedToFloat(advance),
			CellW:   w,
			CellH:   h,
		}
		if w > 0 {
			g.Bounds = image.Rect(
				bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
				bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
			)
			g.Mask = rasterize(face, r, g.Bounds)
		}
		glyphs = append(glyphs, g)
	}
	return glyphs, metrics, nil
}

// rasterize draws one glyph into a tight alpha mask.
func rasterize(face xfont.Face, r rune, bounds image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	drawer := &xfont.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		// Shift the baseline origin so the glyph lands at (0, 0).
		Dot: fixed.Point26_6{
			X: fixed.I(-bounds.Min.X),
			Y: fixed.I(-bounds.Min.Y),
		},
	}
	drawer.DrawString(string(r))
	return mask
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
