package engine

import "github.com/atlasforge/atlasforge/internal/model"

// ComparisonResult holds the capacity-search outcome for one selection
// heuristic.
type ComparisonResult struct {
	Heuristic Heuristic
	MaxHeight int
	// Efficiency is the fraction of surface area covered by the batch
	// at MaxHeight, as a percentage. Zero when nothing fits.
	Efficiency float64
}

// CompareHeuristics runs the capacity search once per heuristic and
// returns the results in Heuristics() order. This enables side-by-side
// comparison so a caller can pick the heuristic that sustains the
// largest glyph height on a given surface.
func CompareHeuristics(build BatchBuilder, surface model.Surface, initial int) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(Heuristics()))

	for _, h := range Heuristics() {
		packer := New(h)
		res := ComparisonResult{Heuristic: h}

		if height, err := packer.FindMaxHeight(build, surface, initial); err == nil {
			res.MaxHeight = height
			res.Efficiency = batchEfficiency(build(height), surface)
		}
		results = append(results, res)
	}
	return results
}

// Best returns the comparison result with the largest height, breaking
// ties by efficiency and then by heuristic order.
func Best(results []ComparisonResult) ComparisonResult {
	best := ComparisonResult{}
	for _, r := range results {
		if r.MaxHeight > best.MaxHeight ||
			(r.MaxHeight == best.MaxHeight && r.Efficiency > best.Efficiency) {
			best = r
		}
	}
	return best
}

func batchEfficiency(rects []model.Rect, surface model.Surface) float64 {
	if surface.Area() == 0 {
		return 0
	}
	used := 0
	for _, r := range rects {
		used += r.Area()
	}
	return float64(used) / float64(surface.Area()) * 100.0
}
