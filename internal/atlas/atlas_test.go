package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/atlasforge/atlasforge/internal/engine"
	"github.com/atlasforge/atlasforge/internal/font"
	"github.com/atlasforge/atlasforge/internal/model"
)

func testSettings() model.Settings {
	s := model.DefaultSettings()
	s.TextureWidth = 256
	s.TextureHeight = 256
	s.CharHeight = 24
	return s
}

func testGenerator(t *testing.T, settings model.Settings) *Generator {
	t.Helper()
	face, err := font.Parse(goregular.TTF)
	require.NoError(t, err)
	gen, err := NewGenerator(face, settings)
	require.NoError(t, err)
	return gen
}

func TestNewGenerator_UnknownHeuristic(t *testing.T) {
	s := testSettings()
	s.Heuristic = "bogus"

	face, err := font.Parse(goregular.TTF)
	require.NoError(t, err)
	_, err = NewGenerator(face, s)
	assert.Error(t, err)
}

func TestGenerate_FixedHeight(t *testing.T) {
	gen := testGenerator(t, testSettings())

	res, err := gen.Generate([]rune("ABCDEFG "))
	require.NoError(t, err)

	assert.Equal(t, 24, res.CharHeight)
	assert.Equal(t, 256, res.Image.Rect.Dx())
	assert.Equal(t, 256, res.Image.Rect.Dy())
	assert.Equal(t, 7, len(res.Layout.Placements), "space stays out of the layout")
	assert.Len(t, res.Glyphs, 8)

	for _, p := range res.Layout.Placements {
		assert.GreaterOrEqual(t, p.X, 0)
		assert.GreaterOrEqual(t, p.Y, 0)
		assert.LessOrEqual(t, p.X+p.W, 256)
		assert.LessOrEqual(t, p.Y+p.H, 256)
	}

	ink := 0
	for _, v := range res.Image.Pix {
		if v > 128 {
			ink++
		}
	}
	assert.Greater(t, ink, 0, "the composed atlas must contain glyph interiors")
}

func TestGenerate_PlacementsKeepSpacing(t *testing.T) {
	s := testSettings()
	s.Spacing = 3
	gen := testGenerator(t, s)

	res, err := gen.Generate([]rune("0123456789"))
	require.NoError(t, err)

	pl := res.Layout.Placements
	for i := range pl {
		for j := i + 1; j < len(pl); j++ {
			sepX := pl[i].X+pl[i].W+s.Spacing <= pl[j].X || pl[j].X+pl[j].W+s.Spacing <= pl[i].X
			sepY := pl[i].Y+pl[i].H+s.Spacing <= pl[j].Y || pl[j].Y+pl[j].H+s.Spacing <= pl[i].Y
			assert.True(t, sepX || sepY, "glyphs %q and %q closer than spacing", pl[i].Rune, pl[j].Rune)
		}
	}
}

func TestGenerate_FailsOnTinySurface(t *testing.T) {
	s := testSettings()
	s.TextureWidth = 16
	s.TextureHeight = 16
	gen := testGenerator(t, s)

	_, err := gen.Generate([]rune("ABCDEFGHIJKLM"))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInsufficientSpace)
}

func TestGenerate_AutoHeightConverges(t *testing.T) {
	s := testSettings()
	s.TextureWidth = 128
	s.TextureHeight = 128
	s.AutoHeight = true
	s.CharHeight = 8 // search seed
	gen := testGenerator(t, s)

	charset := []rune("AB")
	res, err := gen.Generate(charset)
	require.NoError(t, err)
	require.Greater(t, res.CharHeight, 0)

	// Re-verify the boundary with an independent packer.
	p := engine.New(engine.BestAreaFit)
	build := gen.batchBuilder(charset)
	surface := s.Surface()

	assert.NoError(t, p.Pack(build(res.CharHeight), surface))
	if res.CharHeight < surface.H {
		assert.Error(t, p.Pack(build(res.CharHeight+1), surface))
	}
}

func TestGenerate_OptimizedOrder(t *testing.T) {
	s := testSettings()
	s.OptimizeOrder = true
	gen := testGenerator(t, s)

	res, err := gen.Generate([]rune("ABCDEFG"))
	require.NoError(t, err)
	assert.Len(t, res.Layout.Placements, 7)
}

func TestCompareHeuristics_Generator(t *testing.T) {
	gen := testGenerator(t, testSettings())

	results := gen.CompareHeuristics([]rune("abcdef"))
	require.Len(t, results, len(engine.Heuristics()))
	for _, r := range results {
		assert.Greater(t, r.MaxHeight, 0)
	}
}
