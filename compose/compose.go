// Package compose blends two luma surfaces sample by sample.
//
// Integer channels are combined in their native range with truncating
// division. Float channels use plain float64 arithmetic.
package compose

import (
	"fmt"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/pixel"
	"github.com/gogpu/pixbuf/surface"
)

// Mode selects how a left and a right sample are combined.
type Mode int

const (
	// AbsoluteDiff is |l - r|.
	AbsoluteDiff Mode = iota
	// Average is (l + r) / 2.
	Average
	// AverageLeftWeight is (2l + r) / 3.
	AverageLeftWeight
)

func (m Mode) String() string {
	switch m {
	case AbsoluteDiff:
		return "AbsoluteDiff"
	case Average:
		return "Average"
	case AverageLeftWeight:
		return "AverageLeftWeight"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Compose combines left and right into a newly allocated luma surface.
// It panics if the inputs differ in size or mode is unknown.
func Compose[C channel.Channel](left, right *surface.LumaView[C], mode Mode) *surface.LumaSurface[C] {
	dst := surface.NewBlack[C, pixel.Luma[C], format.Luma[C]](left.Width(), left.Height())
	ComposeInto(dst, left, right, mode)
	return dst
}

// ComposeInto is Compose writing into an existing surface. dst may alias
// left or right.
func ComposeInto[C channel.Channel](dst *surface.LumaSurface[C], left, right *surface.LumaView[C], mode Mode) {
	if left.Width() != right.Width() || left.Height() != right.Height() ||
		left.Width() != dst.Width() || left.Height() != dst.Height() {
		panic(fmt.Sprintf("compose: size mismatch: left %dx%d, right %dx%d, destination %dx%d",
			left.Width(), left.Height(), right.Width(), right.Height(), dst.Width(), dst.Height()))
	}
	op := samples[C](mode)
	pixbuf.Logger().Debug("compose: pass", "mode", mode.String(), "width", left.Width(), "height", left.Height())

	for y := range dst.Height() {
		for x := range dst.Width() {
			l, r := left.GetPixel(x, y).Y, right.GetPixel(x, y).Y
			dst.PutPixel(x, y, pixel.Luma[C]{Y: op(l, r)})
		}
	}
}

func absDiff[C channel.Channel](l, r C) C {
	if l > r {
		return l - r
	}
	return r - l
}

// samples returns the per-sample operator for mode.
func samples[C channel.Channel](mode Mode) func(l, r C) C {
	if mode == AbsoluteDiff {
		return absDiff[C]
	}
	if channel.IsFloat[C]() {
		switch mode {
		case Average:
			return func(l, r C) C { return C((float64(l) + float64(r)) / 2) }
		case AverageLeftWeight:
			return func(l, r C) C { return C((2*float64(l) + float64(r)) / 3) }
		}
	} else {
		switch mode {
		case Average:
			return func(l, r C) C { return C((uint64(l) + uint64(r)) / 2) }
		case AverageLeftWeight:
			return func(l, r C) C { return C((2*uint64(l) + uint64(r)) / 3) }
		}
	}
	panic(fmt.Sprintf("compose: unknown mode %v", mode))
}
