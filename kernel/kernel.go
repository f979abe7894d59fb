// Package kernel runs 3x3 neighborhood operators over surfaces.
//
// A [Kernel3x3] maps the nine pixels around a center (row-major, center at
// index 4) to one output pixel. [Run] applies a kernel to every interior
// pixel of a source surface and writes the result to a destination of the
// same size; the one-pixel border of the destination is left untouched.
//
// Generic kernels accumulate in a normalized [0, 65535] domain so the same
// operator works for every channel width. [RunLuma8] is a fast path for
// 8-bit luma surfaces that works on raw bytes.
package kernel

import (
	"math"

	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/pixel"
)

// Normalized domain used by the generic kernels.
const (
	normLo = 0
	normHi = 65535
)

// Kernel3x3 computes one output pixel from a 3x3 neighborhood.
// Implementations must not retain n.
type Kernel3x3[C channel.Channel, P pixel.Pixel[C, P]] interface {
	Execute(n *[9]P) P
}

// Average3x3 is the per-channel mean of the neighborhood, truncated.
type Average3x3[C channel.Channel, P pixel.Pixel[C, P]] struct{}

func (Average3x3[C, P]) Execute(n *[9]P) P {
	out := n[4]
	for c := range out.Arity() {
		var sum int64
		for i := range n {
			sum += int64(channel.ToNormalized(n[i].At(c), normLo, normHi))
		}
		out = out.With(c, channel.FromNormalized[C](int32(sum/9), normLo, normHi))
	}
	return out
}

// Sobel3x3 is the per-channel gradient magnitude
// round(sqrt(gx*gx + gy*gy)), clamped to the channel range.
//
//	gx: -1 0 1    gy: -1 -2 -1
//	    -2 0 2         0  0  0
//	    -1 0 1         1  2  1
type Sobel3x3[C channel.Channel, P pixel.Pixel[C, P]] struct{}

func (Sobel3x3[C, P]) Execute(n *[9]P) P {
	out := n[4]
	for c := range out.Arity() {
		var v [9]int64
		for i := range n {
			v[i] = int64(channel.ToNormalized(n[i].At(c), normLo, normHi))
		}
		out = out.With(c, channel.FromNormalized[C](sobel(&v, normHi), normLo, normHi))
	}
	return out
}

// sobel returns the rounded gradient magnitude of v clamped to [0, hi].
func sobel(v *[9]int64, hi int64) int32 {
	gx := (v[2] + 2*v[5] + v[8]) - (v[0] + 2*v[3] + v[6])
	gy := (v[6] + 2*v[7] + v[8]) - (v[0] + 2*v[1] + v[2])
	m := int64(math.Round(math.Sqrt(float64(gx*gx + gy*gy))))
	return int32(min(m, hi))
}
