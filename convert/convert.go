// Package convert implements colorspace transforms between YUV and RGB.
//
// The transforms are BT.601 full range. Channels are rescaled into an 8-bit
// [0, 255] working domain, transformed, rounded by adding 0.5 and
// truncating, clamped, and rescaled back to the channel's native range:
//
//	R = Y + 1.370705·(V-128)
//	G = Y - 0.698001·(V-128) - 0.337633·(U-128)
//	B = Y + 1.732446·(U-128)
//
// Surface conversion is only defined between full-chroma layouts. A
// subsampled source must be upsampled to 4:4:4 first.
package convert

import (
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/pixel"
)

// Inverse transform coefficients.
const (
	kVR = 1.370705
	kVG = 0.698001
	kUG = 0.337633
	kUB = 1.732446
)

// Forward luma weights.
const (
	kR = 0.299
	kG = 0.587
	kB = 0.114
)

func to8[C channel.Channel](v C) float64 {
	return float64(channel.ToNormalized(v, 0, 255))
}

// from8 rounds half up, clamps to [0, 255] and rescales into C.
func from8[C channel.Channel](v float64) C {
	v += 0.5
	switch {
	case v < 0:
		v = 0
	case v > 255:
		v = 255
	}
	return channel.FromNormalized[C](int32(v), 0, 255)
}

// YUVToRGB converts one pixel.
func YUVToRGB[C channel.Channel](p pixel.YUV[C]) pixel.RGB[C] {
	y := to8(p.Y)
	u := to8(p.U) - 128
	v := to8(p.V) - 128
	return pixel.RGB[C]{
		R: from8[C](y + kVR*v),
		G: from8[C](y - kVG*v - kUG*u),
		B: from8[C](y + kUB*u),
	}
}

// RGBToYUV converts one pixel. It inverts YUVToRGB to within a couple of
// steps of the 8-bit working domain. The chroma of strongly saturated reds
// and blues falls outside [0, 255] and is clamped.
func RGBToYUV[C channel.Channel](p pixel.RGB[C]) pixel.YUV[C] {
	r, g, b := to8(p.R), to8(p.G), to8(p.B)
	y := kR*r + kG*g + kB*b
	return pixel.YUV[C]{
		Y: from8[C](y),
		U: from8[C]((b-y)/kUB + 128),
		V: from8[C]((r-y)/kVR + 128),
	}
}
