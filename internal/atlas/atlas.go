// Package atlas drives atlas generation: glyph extraction, packing,
// optional height search, and composition of the final texture.
package atlas

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/atlasforge/atlasforge/internal/engine"
	"github.com/atlasforge/atlasforge/internal/font"
	"github.com/atlasforge/atlasforge/internal/model"
	"github.com/atlasforge/atlasforge/internal/sdf"
)

// Generator builds SDF atlases for one font and one settings set.
type Generator struct {
	face     *font.Face
	settings model.Settings
	packer   *engine.Packer
}

func NewGenerator(face *font.Face, settings model.Settings) (*Generator, error) {
	h, err := engine.ParseHeuristic(settings.Heuristic)
	if err != nil {
		return nil, err
	}
	packer := engine.New(h)
	if settings.OptimizeOrder {
		packer.Order = engine.OrderGenetic(packer, settings.Surface(), engine.DefaultGeneticConfig())
	}
	return &Generator{face: face, settings: settings, packer: packer}, nil
}

// Result is a fully generated atlas.
type Result struct {
	Image      *image.Gray
	Glyphs     []font.Glyph
	Metrics    font.Metrics
	CharHeight int
	Layout     model.AtlasResult
}

// Generate produces the atlas for charset. With AutoHeight enabled it
// first searches for the largest glyph height the surface can hold,
// probing with measure-only batches; rendering happens once, at the
// final accepted height. On packing failure no partial result is
// returned.
func (g *Generator) Generate(charset []rune) (*Result, error) {
	surface := g.settings.Surface()
	margin := g.settings.SmoothPixels

	height := g.settings.CharHeight
	if g.settings.AutoHeight {
		found, err := g.packer.FindMaxHeight(g.batchBuilder(charset), surface, height)
		if err != nil {
			return nil, fmt.Errorf("auto height: %w", err)
		}
		height = found
	}

	glyphs, metrics, err := g.face.Extract(charset, height, margin)
	if err != nil {
		return nil, err
	}
	if len(glyphs) == 0 {
		return nil, fmt.Errorf("font provides no glyphs for the charset")
	}

	// Pack only the renderable cells; indices map placements back.
	idx := make([]int, 0, len(glyphs))
	rects := make([]model.Rect, 0, len(glyphs))
	for i, gl := range glyphs {
		if gl.Renderable() {
			idx = append(idx, i)
			rects = append(rects, model.Rect{W: gl.CellW, H: gl.CellH})
		}
	}
	if err := g.packer.Pack(rects, surface); err != nil {
		return nil, fmt.Errorf("pack atlas at height %d: %w", height, err)
	}
	for k, i := range idx {
		glyphs[i].X, glyphs[i].Y = rects[k].X, rects[k].Y
	}

	return &Result{
		Image:      compose(glyphs, surface, margin),
		Glyphs:     glyphs,
		Metrics:    metrics,
		CharHeight: height,
		Layout:     layout(glyphs, surface, height),
	}, nil
}

// CompareHeuristics reports the maximal glyph height each selection
// heuristic sustains for charset on the configured surface.
func (g *Generator) CompareHeuristics(charset []rune) []engine.ComparisonResult {
	return engine.CompareHeuristics(g.batchBuilder(charset), g.settings.Surface(), g.settings.CharHeight)
}

func (g *Generator) batchBuilder(charset []rune) engine.BatchBuilder {
	surface := g.settings.Surface()
	margin := g.settings.SmoothPixels
	return func(height int) []model.Rect {
		rects, err := g.face.Measure(charset, height, margin)
		if err != nil {
			// A batch that cannot be built can never pack.
			return []model.Rect{{W: surface.W + 1, H: surface.H + 1}}
		}
		return rects
	}
}

func compose(glyphs []font.Glyph, surface model.Surface, margin int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, surface.W, surface.H))
	for _, gl := range glyphs {
		if !gl.Renderable() {
			continue
		}
		cell := sdf.Render(gl.Mask, margin)
		dst := image.Rect(gl.X, gl.Y, gl.X+gl.CellW, gl.Y+gl.CellH)
		draw.Draw(img, dst, cell, cell.Rect.Min, draw.Src)
	}
	return img
}

func layout(glyphs []font.Glyph, surface model.Surface, height int) model.AtlasResult {
	res := model.AtlasResult{
		Width:      surface.W,
		Height:     surface.H,
		CharHeight: height,
	}
	for _, gl := range glyphs {
		if !gl.Renderable() {
			continue
		}
		res.Placements = append(res.Placements, model.GlyphPlacement{
			Rune: gl.Rune,
			X:    gl.X,
			Y:    gl.Y,
			W:    gl.CellW,
			H:    gl.CellH,
		})
	}
	return res
}
