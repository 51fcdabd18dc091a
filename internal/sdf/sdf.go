// Package sdf converts glyph alpha masks into single-channel signed
// distance fields suitable for atlas storage.
package sdf

import (
	"image"
	"math"
)

// Render computes a signed distance field for an alpha mask. The
// output is padded by pad texels on every side, so its dimensions are
// the mask's plus 2*pad per axis. Values encode distance to the glyph
// edge: 128 sits on the edge, 255 is pad texels inside, 0 is pad
// texels or more outside.
func Render(mask *image.Alpha, pad int) *image.Gray {
	w := mask.Rect.Dx() + 2*pad
	h := mask.Rect.Dy() + 2*pad

	inside := make([]bool, w*h)
	for y := 0; y < mask.Rect.Dy(); y++ {
		for x := 0; x < mask.Rect.Dx(); x++ {
			a := mask.AlphaAt(mask.Rect.Min.X+x, mask.Rect.Min.Y+y).A
			inside[(y+pad)*w+x+pad] = a >= 0x80
		}
	}

	distOut := distanceTo(inside, w, h)
	distIn := distanceTo(invert(inside), w, h)

	spread := float64(pad)
	if spread < 1 {
		spread = 1
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for i := range inside {
		// Positive outside the glyph, negative inside.
		signed := distOut[i] - distIn[i]
		v := 0.5 - signed/(2*spread)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		out.Pix[i] = uint8(math.Round(v * 255))
	}
	return out
}

func invert(set []bool) []bool {
	inv := make([]bool, len(set))
	for i, v := range set {
		inv[i] = !v
	}
	return inv
}

// distanceTo returns, per texel, the approximate Euclidean distance to
// the nearest set texel, using a two-pass chamfer sweep. Set texels
// have distance zero.
func distanceTo(set []bool, w, h int) []float64 {
	const inf = math.MaxFloat64 / 4
	diag := math.Sqrt2

	dist := make([]float64, w*h)
	for i, v := range set {
		if v {
			dist[i] = 0
		} else {
			dist[i] = inf
		}
	}

	relax := func(i int, candidate float64) {
		if candidate < dist[i] {
			dist[i] = candidate
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x > 0 {
				relax(i, dist[i-1]+1)
			}
			if y > 0 {
				relax(i, dist[i-w]+1)
				if x > 0 {
					relax(i, dist[i-w-1]+diag)
				}
				if x < w-1 {
					relax(i, dist[i-w+1]+diag)
				}
			}
		}
	}
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			i := y*w + x
			if x < w-1 {
				relax(i, dist[i+1]+1)
			}
			if y < h-1 {
				relax(i, dist[i+w]+1)
				if x < w-1 {
					relax(i, dist[i+w+1]+diag)
				}
				if x > 0 {
					relax(i, dist[i+w-1]+diag)
				}
			}
		}
	}
	return dist
}
