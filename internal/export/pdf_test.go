package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasforge/atlasforge/internal/model"
)

// layoutTestResult returns a small packed layout for exporter tests.
func layoutTestResult() model.AtlasResult {
	return model.AtlasResult{
		Width:      256,
		Height:     128,
		CharHeight: 32,
		Placements: []model.GlyphPlacement{
			{Rune: 'A', X: 0, Y: 0, W: 24, H: 30},
			{Rune: 'B', X: 26, Y: 0, W: 20, H: 30},
			{Rune: 'g', X: 48, Y: 0, W: 22, H: 36},
			{Rune: '.', X: 0, Y: 40, W: 8, H: 10},
		},
	}
}

func TestExportPDF_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.pdf")

	err := ExportPDF(path, layoutTestResult(), "test.ttf")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000), "PDF file should have substantial content")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.pdf")

	err := ExportPDF(path, model.AtlasResult{Width: 256, Height: 128}, "test.ttf")
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestExportPDF_ManyGlyphs(t *testing.T) {
	// Enough placements to force the summary table past one column.
	result := model.AtlasResult{Width: 2048, Height: 2048, CharHeight: 16}
	x, y := 0, 0
	for r := rune(0x20); r <= 0x7E; r++ {
		result.Placements = append(result.Placements, model.GlyphPlacement{
			Rune: r, X: x, Y: y, W: 14, H: 18,
		})
		x += 16
		if x > 2000 {
			x = 0
			y += 20
		}
	}

	path := filepath.Join(t.TempDir(), "atlas.pdf")
	require.NoError(t, ExportPDF(path, result, "test.ttf"))
	assert.FileExists(t, path)
}
