package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T) *Face {
	t.Helper()
	face, err := Parse(goregular.TTF)
	require.NoError(t, err)
	return face
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("definitely not a font"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.ttf")
	assert.Error(t, err)
}

func TestExtract_BasicLatin(t *testing.T) {
	face := testFace(t)

	glyphs, metrics, err := face.Extract([]rune("AWgj. "), 32, 2)
	require.NoError(t, err)
	require.Len(t, glyphs, 6)

	assert.Greater(t, metrics.Ascent, 0.0)
	assert.Greater(t, metrics.Descent, 0.0)
	assert.Greater(t, metrics.LineHeight, metrics.Ascent)

	for _, g := range glyphs {
		assert.Greater(t, g.Advance, 0.0, "glyph %q has no advance", g.Rune)
		if g.Rune == ' ' {
			assert.False(t, g.Renderable(), "space must be advance-only")
			assert.Nil(t, g.Mask)
			continue
		}
		require.True(t, g.Renderable(), "glyph %q should have ink", g.Rune)
		require.NotNil(t, g.Mask)
		assert.Equal(t, g.Bounds.Dx()+4, g.CellW, "cell adds the margin on both sides")
		assert.Equal(t, g.Bounds.Dy()+4, g.CellH)
		assert.Equal(t, g.Bounds.Dx(), g.Mask.Rect.Dx())
		assert.Equal(t, g.Bounds.Dy(), g.Mask.Rect.Dy())
	}
}

func TestExtract_MaskHasInk(t *testing.T) {
	face := testFace(t)

	glyphs, _, err := face.Extract([]rune{'M'}, 48, 0)
	require.NoError(t, err)
	require.Len(t, glyphs, 1)

	ink := 0
	for _, a := range glyphs[0].Mask.Pix {
		if a >= 0x80 {
			ink++
		}
	}
	assert.Greater(t, ink, 0, "rasterized glyph must cover some texels")
}

func TestExtract_SkipsMissingGlyphs(t *testing.T) {
	face := testFace(t)

	// Go fonts have no CJK coverage.
	glyphs, _, err := face.Extract([]rune{'A', '中', 'B'}, 32, 2)
	require.NoError(t, err)

	runes := make([]rune, len(glyphs))
	for i, g := range glyphs {
		runes[i] = g.Rune
	}
	assert.NotContains(t, runes, '中')
	assert.Contains(t, runes, 'A')
	assert.Contains(t, runes, 'B')
}

func TestMeasure_MatchesExtractFootprints(t *testing.T) {
	face := testFace(t)
	charset := []rune("Hamburgefonstiv 123")

	rects, err := face.Measure(charset, 24, 2)
	require.NoError(t, err)

	glyphs, _, err := face.Extract(charset, 24, 2)
	require.NoError(t, err)

	i := 0
	for _, g := range glyphs {
		if !g.Renderable() {
			continue
		}
		require.Less(t, i, len(rects))
		assert.Equal(t, g.CellW, rects[i].W, "measure/extract width mismatch for %q", g.Rune)
		assert.Equal(t, g.CellH, rects[i].H, "measure/extract height mismatch for %q", g.Rune)
		i++
	}
	assert.Equal(t, len(rects), i, "measure must cover exactly the renderable glyphs")
}

func TestMeasure_ScalesWithHeight(t *testing.T) {
	face := testFace(t)

	small, err := face.Measure([]rune{'O'}, 16, 0)
	require.NoError(t, err)
	large, err := face.Measure([]rune{'O'}, 64, 0)
	require.NoError(t, err)
	require.Len(t, small, 1)
	require.Len(t, large, 1)

	assert.Greater(t, large[0].W, small[0].W)
	assert.Greater(t, large[0].H, small[0].H)
}

func TestExtract_InvalidHeight(t *testing.T) {
	face := testFace(t)

	_, _, err := face.Extract([]rune{'A'}, 0, 2)
	assert.Error(t, err)
}
