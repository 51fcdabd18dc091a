package export

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasforge/atlasforge/internal/atlas"
	"github.com/atlasforge/atlasforge/internal/font"
	"github.com/atlasforge/atlasforge/internal/model"
)

func descriptorTestResult() *atlas.Result {
	return &atlas.Result{
		CharHeight: 32,
		Metrics:    font.Metrics{Ascent: 28.8, Descent: 7.2, LineHeight: 38.4},
		Glyphs: []font.Glyph{
			{
				Rune:    'A',
				Bounds:  image.Rect(1, -24, 19, 0),
				Advance: 20,
				CellW:   22, CellH: 28,
				X: 5, Y: 7,
			},
			{
				Rune:    ' ',
				Advance: 10,
			},
		},
		Layout: model.AtlasResult{
			Width:      256,
			Height:     128,
			CharHeight: 32,
			Placements: []model.GlyphPlacement{{Rune: 'A', X: 5, Y: 7, W: 22, H: 28}},
		},
	}
}

func TestBuildDescriptor_AtlasAndMetrics(t *testing.T) {
	d := BuildDescriptor(descriptorTestResult(), 2)

	assert.Equal(t, 256, d.Atlas.Width)
	assert.Equal(t, 128, d.Atlas.Height)
	assert.Equal(t, 32, d.Atlas.Size)
	assert.Equal(t, 4, d.Atlas.DistanceRange)

	assert.InDelta(t, 0.9, d.Metrics.Ascender, 1e-9)
	assert.InDelta(t, -0.225, d.Metrics.Descender, 1e-9)
	assert.InDelta(t, 1.2, d.Metrics.LineHeight, 1e-9)
}

func TestBuildDescriptor_GlyphBounds(t *testing.T) {
	d := BuildDescriptor(descriptorTestResult(), 2)
	require.Len(t, d.Glyphs, 2)

	a := d.Glyphs[0]
	assert.Equal(t, 'A', a.Unicode)
	assert.InDelta(t, 0.625, a.Advance, 1e-9)

	require.NotNil(t, a.PlaneBounds)
	assert.InDelta(t, -1.0/32, a.PlaneBounds.Left, 1e-9)
	assert.InDelta(t, -2.0/32, a.PlaneBounds.Bottom, 1e-9)
	assert.InDelta(t, 21.0/32, a.PlaneBounds.Right, 1e-9)
	assert.InDelta(t, 26.0/32, a.PlaneBounds.Top, 1e-9)

	require.NotNil(t, a.AtlasBounds)
	assert.Equal(t, 5.0, a.AtlasBounds.Left)
	assert.Equal(t, 7.0, a.AtlasBounds.Top)
	assert.Equal(t, 27.0, a.AtlasBounds.Right)
	assert.Equal(t, 35.0, a.AtlasBounds.Bottom)
}

func TestBuildDescriptor_AdvanceOnlyGlyph(t *testing.T) {
	d := BuildDescriptor(descriptorTestResult(), 2)
	require.Len(t, d.Glyphs, 2)

	space := d.Glyphs[1]
	assert.Equal(t, ' ', space.Unicode)
	assert.InDelta(t, 0.3125, space.Advance, 1e-9)
	assert.Nil(t, space.PlaneBounds)
	assert.Nil(t, space.AtlasBounds)
}

func TestWriteDescriptor_RoundTrip(t *testing.T) {
	d := BuildDescriptor(descriptorTestResult(), 2)
	path := filepath.Join(t.TempDir(), "atlas.json")

	require.NoError(t, WriteDescriptor(path, d))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back Descriptor
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d.Atlas, back.Atlas)
	assert.Len(t, back.Glyphs, 2)
	require.NotNil(t, back.Glyphs[0].AtlasBounds)
	assert.Equal(t, *d.Glyphs[0].AtlasBounds, *back.Glyphs[0].AtlasBounds)
}
