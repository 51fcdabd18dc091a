package engine

import (
	"testing"

	"github.com/atlasforge/atlasforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareHeuristics_CoversAll(t *testing.T) {
	surface := model.Surface{W: 128, H: 128, Spacing: 2}
	results := CompareHeuristics(squareBatch(6), surface, 8)

	require.Len(t, results, len(Heuristics()))
	for i, r := range results {
		assert.Equal(t, Heuristics()[i], r.Heuristic, "results keep heuristic order")
		assert.Greater(t, r.MaxHeight, 0)
		assert.Greater(t, r.Efficiency, 0.0)
	}
}

func TestCompareHeuristics_ImpossibleBatch(t *testing.T) {
	surface := model.Surface{W: 8, H: 8, Spacing: 0}
	build := func(height int) []model.Rect {
		return []model.Rect{{W: height + 50, H: height + 50}}
	}

	results := CompareHeuristics(build, surface, 4)
	for _, r := range results {
		assert.Zero(t, r.MaxHeight)
		assert.Zero(t, r.Efficiency)
	}
}

func TestBest_PrefersTallestThenDensest(t *testing.T) {
	results := []ComparisonResult{
		{Heuristic: BestAreaFit, MaxHeight: 30, Efficiency: 70},
		{Heuristic: BestShortSideFit, MaxHeight: 32, Efficiency: 60},
		{Heuristic: BottomLeft, MaxHeight: 32, Efficiency: 65},
	}

	best := Best(results)
	assert.Equal(t, BottomLeft, best.Heuristic)
	assert.Equal(t, 32, best.MaxHeight)
}
