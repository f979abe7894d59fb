// Package pixel defines the color models stored in a surface.
//
// Every pixel is a small value type holding a fixed number of channels of a
// single channel type C:
//
//	Luma       1 channel   Y
//	LumaAlpha  2 channels  Y, A
//	RGB        3 channels  R, G, B
//	RGBA       4 channels  R, G, B, A (straight alpha)
//	YUV        3 channels  Y, U, V
//
// Generic code (kernels, compositing, conversion drivers) works through the
// [Pixel] constraint, which exposes channels by index.
package pixel

import (
	"fmt"

	"github.com/gogpu/pixbuf/channel"
)

// Pixel is the constraint satisfied by every pixel type in this package.
//
// P is the pixel type itself, so With and the sentinels return concrete
// values rather than interfaces.
type Pixel[C channel.Channel, P any] interface {
	comparable

	// Arity returns the number of channels.
	Arity() int

	// At returns channel i. It panics if i is outside [0, Arity).
	At(i int) C

	// With returns a copy of the pixel with channel i replaced by v.
	With(i int, v C) P

	// Black returns the black sentinel of the color model.
	Black() P

	// White returns the white sentinel of the color model.
	White() P
}

// LumaSource is implemented by pixels with a luma projection.
type LumaSource[C channel.Channel] interface {
	Luma() Luma[C]
}

// Map applies fn to every channel of p.
func Map[C channel.Channel, P Pixel[C, P]](p P, fn func(C) C) P {
	for i := range p.Arity() {
		p = p.With(i, fn(p.At(i)))
	}
	return p
}

// Zip combines two pixels channel by channel.
func Zip[C channel.Channel, P Pixel[C, P]](a, b P, fn func(x, y C) C) P {
	for i := range a.Arity() {
		a = a.With(i, fn(a.At(i), b.At(i)))
	}
	return a
}

func badIndex(i, arity int) string {
	return fmt.Sprintf("pixel: channel index %d out of range [0, %d)", i, arity)
}

// lumaOf projects an RGB triple onto BT.601 luma in fixed point.
// The channels are rescaled into [0, 255] first and the result back.
func lumaOf[C channel.Channel](r, g, b C) C {
	rn := int64(channel.ToNormalized(r, 0, 255))
	gn := int64(channel.ToNormalized(g, 0, 255))
	bn := int64(channel.ToNormalized(b, 0, 255))
	y := (19595*rn + 38470*gn + 7471*bn + 1<<15) >> 16
	return channel.FromNormalized[C](int32(y), 0, 255)
}
