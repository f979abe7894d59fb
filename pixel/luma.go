package pixel

import "github.com/gogpu/pixbuf/channel"

// Luma is a single intensity sample.
type Luma[C channel.Channel] struct {
	Y C
}

// NewLuma returns a Luma pixel.
func NewLuma[C channel.Channel](y C) Luma[C] { return Luma[C]{Y: y} }

func (p Luma[C]) Arity() int { return 1 }

func (p Luma[C]) At(i int) C {
	if i != 0 {
		panic(badIndex(i, 1))
	}
	return p.Y
}

func (p Luma[C]) With(i int, v C) Luma[C] {
	if i != 0 {
		panic(badIndex(i, 1))
	}
	p.Y = v
	return p
}

func (Luma[C]) Black() Luma[C] { return Luma[C]{Y: channel.Min[C]()} }
func (Luma[C]) White() Luma[C] { return Luma[C]{Y: channel.Max[C]()} }

// Luma returns p unchanged.
func (p Luma[C]) Luma() Luma[C] { return p }

// LumaAlpha is an intensity sample with straight alpha.
type LumaAlpha[C channel.Channel] struct {
	Y, A C
}

// NewLumaAlpha returns a LumaAlpha pixel.
func NewLumaAlpha[C channel.Channel](y, a C) LumaAlpha[C] {
	return LumaAlpha[C]{Y: y, A: a}
}

func (p LumaAlpha[C]) Arity() int { return 2 }

func (p LumaAlpha[C]) At(i int) C {
	switch i {
	case 0:
		return p.Y
	case 1:
		return p.A
	}
	panic(badIndex(i, 2))
}

func (p LumaAlpha[C]) With(i int, v C) LumaAlpha[C] {
	switch i {
	case 0:
		p.Y = v
	case 1:
		p.A = v
	default:
		panic(badIndex(i, 2))
	}
	return p
}

// Black returns opaque black.
func (LumaAlpha[C]) Black() LumaAlpha[C] {
	return LumaAlpha[C]{Y: channel.Min[C](), A: channel.Max[C]()}
}

// White returns opaque white.
func (LumaAlpha[C]) White() LumaAlpha[C] {
	return LumaAlpha[C]{Y: channel.Max[C](), A: channel.Max[C]()}
}

// Luma drops the alpha channel.
func (p LumaAlpha[C]) Luma() Luma[C] { return Luma[C]{Y: p.Y} }
