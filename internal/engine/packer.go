// Package engine implements the rectangle packing core: a free-region
// pool using maximal-rectangles splitting, a batch packer with
// pluggable selection heuristics, and a capacity search that finds the
// largest glyph height a surface can hold.
package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/atlasforge/atlasforge/internal/model"
)

var (
	// ErrInsufficientSpace reports that a batch does not fit the
	// surface at the given spacing. Placements are left unset.
	ErrInsufficientSpace = errors.New("insufficient space")

	// ErrInvalidRect reports a rectangle with non-positive dimensions.
	ErrInvalidRect = errors.New("invalid rectangle")
)

// Heuristic selects among the free regions a rectangle fits into.
type Heuristic int

const (
	// BestAreaFit picks the region leaving the least unused area.
	BestAreaFit Heuristic = iota
	// BestShortSideFit picks the region with the tightest short side.
	BestShortSideFit
	// BottomLeft picks the topmost, then leftmost region origin.
	BottomLeft
)

func (h Heuristic) String() string {
	switch h {
	case BestShortSideFit:
		return "short-side"
	case BottomLeft:
		return "bottom-left"
	default:
		return "best-area"
	}
}

// Heuristics lists every supported heuristic in comparison order.
func Heuristics() []Heuristic {
	return []Heuristic{BestAreaFit, BestShortSideFit, BottomLeft}
}

// ParseHeuristic maps a settings name to a Heuristic.
func ParseHeuristic(name string) (Heuristic, error) {
	for _, h := range Heuristics() {
		if h.String() == name {
			return h, nil
		}
	}
	return BestAreaFit, fmt.Errorf("unknown heuristic %q", name)
}

// OrderPolicy returns the indices of rects in packing order. It must
// return a permutation of [0, len(rects)).
type OrderPolicy func(rects []model.Rect) []int

// OrderLargestFirst packs rectangles by descending area, breaking ties
// by the longer side and then by input position. Larger rectangles
// first generally yields denser packings.
func OrderLargestFirst(rects []model.Rect) []int {
	order := identityOrder(rects)
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := rects[order[a]], rects[order[b]]
		if ra.Area() != rb.Area() {
			return ra.Area() > rb.Area()
		}
		return maxSide(ra) > maxSide(rb)
	})
	return order
}

// OrderGiven packs rectangles exactly in input order.
func OrderGiven(rects []model.Rect) []int {
	return identityOrder(rects)
}

func identityOrder(rects []model.Rect) []int {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	return order
}

func maxSide(r model.Rect) int {
	if r.W > r.H {
		return r.W
	}
	return r.H
}

// Packer places batches of rectangles into a surface. The zero value
// packs with BestAreaFit and largest-first ordering.
type Packer struct {
	Heuristic Heuristic
	Order     OrderPolicy
}

func New(h Heuristic) *Packer {
	return &Packer{Heuristic: h, Order: OrderLargestFirst}
}

// Pack assigns a placement to every rectangle in rects, mutating them
// in place, or fails atomically: on error no rectangle is left marked
// placed. Identical inputs always produce identical placements.
func (p *Packer) Pack(rects []model.Rect, surface model.Surface) error {
	for i := range rects {
		if rects[i].W <= 0 || rects[i].H <= 0 {
			return fmt.Errorf("%w: rect %d is %dx%d", ErrInvalidRect, i, rects[i].W, rects[i].H)
		}
		rects[i].X, rects[i].Y, rects[i].Placed = 0, 0, false
	}

	orderPolicy := p.Order
	if orderPolicy == nil {
		orderPolicy = OrderLargestFirst
	}
	order := orderPolicy(rects)

	pl := newPool(surface)
	for _, idx := range order {
		w, h := rects[idx].W, rects[idx].H
		best := p.selectRegion(pl.regions, w, h)
		if best < 0 {
			clearPlacements(rects)
			return fmt.Errorf("%w: rect %d (%dx%d) does not fit", ErrInsufficientSpace, idx, w, h)
		}
		chosen := pl.regions[best]
		rects[idx].X, rects[idx].Y, rects[idx].Placed = chosen.x, chosen.y, true
		pl.place(region{chosen.x, chosen.y, w, h})
	}
	return nil
}

// selectRegion returns the index of the best fitting region for a w x h
// rectangle, or -1 when none fits. Ties resolve to the lowest score
// tuple so the choice is deterministic regardless of pool order churn.
func (p *Packer) selectRegion(regions []region, w, h int) int {
	best := -1
	var bestScore [4]int
	for i, r := range regions {
		if !fits(r, w, h) {
			continue
		}
		score := p.score(r, w, h)
		if best < 0 || lessScore(score, bestScore) {
			best = i
			bestScore = score
		}
	}
	return best
}

func (p *Packer) score(r region, w, h int) [4]int {
	switch p.Heuristic {
	case BestShortSideFit:
		short, long := r.w-w, r.h-h
		if short > long {
			short, long = long, short
		}
		return [4]int{short, long, r.y, r.x}
	case BottomLeft:
		return [4]int{r.y + h, r.x, 0, 0}
	default: // BestAreaFit
		return [4]int{r.area() - w*h, r.y, r.x, 0}
	}
}

func lessScore(a, b [4]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func clearPlacements(rects []model.Rect) {
	for i := range rects {
		rects[i].X, rects[i].Y, rects[i].Placed = 0, 0, false
	}
}
