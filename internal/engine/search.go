package engine

import (
	"fmt"

	"github.com/atlasforge/atlasforge/internal/model"
)

// BatchBuilder produces the placement footprints for a candidate glyph
// height. Rectangle identity is positional: index i refers to the same
// glyph at every height. Builders only need dimensions, so probes can
// skip rendering entirely.
type BatchBuilder func(height int) []model.Rect

// FindMaxHeight searches for the largest glyph height whose batch still
// packs into the surface. It doubles the candidate from initial while
// packing succeeds, capped at surface.H+1 (a sentinel no batch with a
// full-height glyph can satisfy), then bisects the bracket. Requires
// packing success to be monotone in height, which holds as long as
// spacing and the smoothing margin are constant in texels.
//
// Returns 0 with ErrInsufficientSpace when not even height 1 fits.
func (p *Packer) FindMaxHeight(build BatchBuilder, surface model.Surface, initial int) (int, error) {
	if initial < 1 {
		initial = 1
	}

	probe := func(h int) bool {
		return p.Pack(build(h), surface) == nil
	}

	lo := 0
	hi := surface.H + 1
	for h := initial; h < hi; h *= 2 {
		if !probe(h) {
			hi = h
			break
		}
		lo = h
	}

	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if probe(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}

	if lo == 0 {
		return 0, fmt.Errorf("height search: %w", ErrInsufficientSpace)
	}
	return lo, nil
}
