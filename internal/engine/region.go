package engine

import "github.com/atlasforge/atlasforge/internal/model"

// region is an axis-aligned area of currently unallocated surface, in
// texels. The pool keeps an over-approximating cover: regions may
// overlap each other, but never a placed rectangle.
type region struct {
	x, y, w, h int
}

func (r region) right() int  { return r.x + r.w }
func (r region) bottom() int { return r.y + r.h }
func (r region) area() int   { return r.w * r.h }

// overlaps reports whether a and b come closer than spacing along both
// axes. Two regions are clear of each other only when one is entirely
// left of, right of, above, or below the other by at least spacing.
func overlaps(a, b region, spacing int) bool {
	return !(a.right()+spacing <= b.x || b.right()+spacing <= a.x ||
		a.bottom()+spacing <= b.y || b.bottom()+spacing <= a.y)
}

// fits reports whether a w x h rectangle fits inside r. Capacity only;
// spacing is accounted for during splitting, not admission.
func fits(r region, w, h int) bool {
	return r.w >= w && r.h >= h
}

// contains reports whether inner lies fully inside outer.
func contains(outer, inner region) bool {
	return inner.x >= outer.x && inner.y >= outer.y &&
		inner.right() <= outer.right() && inner.bottom() <= outer.bottom()
}

// splitAround appends to out the residuals of r around a placed
// footprint expanded by spacing: the strips left of, right of, above
// and below the placement, each spanning the full extent of r along the
// other axis. Only positive-size residuals are produced. Residuals may
// overlap each other; together they cover everything of r that is at
// least spacing away from the placement.
func splitAround(r, placed region, spacing int, out []region) []region {
	if r.x+spacing < placed.x {
		out = append(out, region{r.x, r.y, placed.x - r.x - spacing, r.h})
	}
	if r.right() > placed.right()+spacing {
		out = append(out, region{placed.right() + spacing, r.y, r.right() - placed.right() - spacing, r.h})
	}
	if r.y+spacing < placed.y {
		out = append(out, region{r.x, r.y, r.w, placed.y - r.y - spacing})
	}
	if r.bottom() > placed.bottom()+spacing {
		out = append(out, region{r.x, placed.bottom() + spacing, r.w, r.bottom() - placed.bottom() - spacing})
	}
	return out
}

// pool owns the free regions of one packing attempt. It is seeded with
// the whole surface and discarded when the attempt ends.
type pool struct {
	regions []region
	spacing int
}

func newPool(surface model.Surface) *pool {
	return &pool{
		regions: []region{{0, 0, surface.W, surface.H}},
		spacing: surface.Spacing,
	}
}

// place splits every region that comes within spacing of the placed
// footprint and prunes the result.
func (p *pool) place(placed region) {
	next := make([]region, 0, len(p.regions)+3)
	for _, r := range p.regions {
		if !overlaps(r, placed, p.spacing) {
			next = append(next, r)
			continue
		}
		next = splitAround(r, placed, p.spacing, next)
	}
	p.regions = pruneContained(next)
}

// pruneContained removes every region fully contained in another, so no
// region in the pool is a strict subset of another.
func pruneContained(regions []region) []region {
	if len(regions) <= 1 {
		return regions
	}
	kept := make([]region, 0, len(regions))
	for i, a := range regions {
		redundant := false
		for j, b := range regions {
			if i == j {
				continue
			}
			if !contains(b, a) {
				continue
			}
			// Among identical regions keep only the first.
			if a == b && i < j {
				continue
			}
			redundant = true
			break
		}
		if !redundant {
			kept = append(kept, a)
		}
	}
	return kept
}
