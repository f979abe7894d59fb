package pixel

import "github.com/gogpu/pixbuf/channel"

// RGB is a red, green, blue triple.
type RGB[C channel.Channel] struct {
	R, G, B C
}

// NewRGB returns an RGB pixel.
func NewRGB[C channel.Channel](r, g, b C) RGB[C] { return RGB[C]{R: r, G: g, B: b} }

func (p RGB[C]) Arity() int { return 3 }

func (p RGB[C]) At(i int) C {
	switch i {
	case 0:
		return p.R
	case 1:
		return p.G
	case 2:
		return p.B
	}
	panic(badIndex(i, 3))
}

func (p RGB[C]) With(i int, v C) RGB[C] {
	switch i {
	case 0:
		p.R = v
	case 1:
		p.G = v
	case 2:
		p.B = v
	default:
		panic(badIndex(i, 3))
	}
	return p
}

func (RGB[C]) Black() RGB[C] {
	lo := channel.Min[C]()
	return RGB[C]{lo, lo, lo}
}

func (RGB[C]) White() RGB[C] {
	hi := channel.Max[C]()
	return RGB[C]{hi, hi, hi}
}

// Luma returns the BT.601 weighted intensity of p.
func (p RGB[C]) Luma() Luma[C] { return Luma[C]{Y: lumaOf(p.R, p.G, p.B)} }

// Opaque returns p as an RGBA pixel with full alpha.
func (p RGB[C]) Opaque() RGBA[C] {
	return RGBA[C]{R: p.R, G: p.G, B: p.B, A: channel.Max[C]()}
}

// RGBA is a red, green, blue, alpha quadruple. Alpha is straight, not
// premultiplied.
type RGBA[C channel.Channel] struct {
	R, G, B, A C
}

// NewRGBA returns an RGBA pixel.
func NewRGBA[C channel.Channel](r, g, b, a C) RGBA[C] {
	return RGBA[C]{R: r, G: g, B: b, A: a}
}

// RGBAFromPacked unpacks a 0xRRGGBBAA word into an 8-bit pixel.
func RGBAFromPacked(v uint32) RGBA[uint8] {
	return RGBA[uint8]{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
}

// Packed returns the 0xRRGGBBAA word of an 8-bit pixel.
func Packed(p RGBA[uint8]) uint32 {
	return uint32(p.R)<<24 | uint32(p.G)<<16 | uint32(p.B)<<8 | uint32(p.A)
}

func (p RGBA[C]) Arity() int { return 4 }

func (p RGBA[C]) At(i int) C {
	switch i {
	case 0:
		return p.R
	case 1:
		return p.G
	case 2:
		return p.B
	case 3:
		return p.A
	}
	panic(badIndex(i, 4))
}

func (p RGBA[C]) With(i int, v C) RGBA[C] {
	switch i {
	case 0:
		p.R = v
	case 1:
		p.G = v
	case 2:
		p.B = v
	case 3:
		p.A = v
	default:
		panic(badIndex(i, 4))
	}
	return p
}

// Black returns opaque black.
func (RGBA[C]) Black() RGBA[C] {
	lo, hi := channel.Min[C](), channel.Max[C]()
	return RGBA[C]{lo, lo, lo, hi}
}

func (RGBA[C]) White() RGBA[C] {
	hi := channel.Max[C]()
	return RGBA[C]{hi, hi, hi, hi}
}

// Luma returns the BT.601 weighted intensity of the color channels.
func (p RGBA[C]) Luma() Luma[C] { return Luma[C]{Y: lumaOf(p.R, p.G, p.B)} }

// RGB drops the alpha channel.
func (p RGBA[C]) RGB() RGB[C] { return RGB[C]{R: p.R, G: p.G, B: p.B} }

// Add returns the per-channel sum. Integer channels saturate.
func (p RGBA[C]) Add(q RGBA[C]) RGBA[C] { return Zip[C, RGBA[C]](p, q, channel.Add[C]) }

// Sub returns the per-channel difference. Integer channels saturate at zero.
func (p RGBA[C]) Sub(q RGBA[C]) RGBA[C] { return Zip[C, RGBA[C]](p, q, channel.Sub[C]) }

// Mul returns the per-channel product. Integer channels multiply as
// fractions of their maximum, so white is the identity.
func (p RGBA[C]) Mul(q RGBA[C]) RGBA[C] { return Zip[C, RGBA[C]](p, q, channel.Mul[C]) }

// Scale multiplies every channel, alpha included, by k.
func (p RGBA[C]) Scale(k float64) RGBA[C] {
	return Map[C, RGBA[C]](p, func(v C) C { return channel.Scale(v, k) })
}
