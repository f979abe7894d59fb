package pixel

import "github.com/gogpu/pixbuf/channel"

// YUV is a luma sample with two color difference samples. Neutral chroma
// sits at the middle of the channel range.
type YUV[C channel.Channel] struct {
	Y, U, V C
}

// NewYUV returns a YUV pixel.
func NewYUV[C channel.Channel](y, u, v C) YUV[C] { return YUV[C]{Y: y, U: u, V: v} }

func (p YUV[C]) Arity() int { return 3 }

func (p YUV[C]) At(i int) C {
	switch i {
	case 0:
		return p.Y
	case 1:
		return p.U
	case 2:
		return p.V
	}
	panic(badIndex(i, 3))
}

func (p YUV[C]) With(i int, v C) YUV[C] {
	switch i {
	case 0:
		p.Y = v
	case 1:
		p.U = v
	case 2:
		p.V = v
	default:
		panic(badIndex(i, 3))
	}
	return p
}

// Black returns zero luma with neutral chroma.
func (YUV[C]) Black() YUV[C] {
	return YUV[C]{Y: channel.FromNormalized[C](0, 0, 2), U: NeutralChroma[C](), V: NeutralChroma[C]()}
}

// White returns full luma with neutral chroma.
func (YUV[C]) White() YUV[C] {
	return YUV[C]{Y: channel.FromNormalized[C](2, 0, 2), U: NeutralChroma[C](), V: NeutralChroma[C]()}
}

// Luma returns the Y component.
func (p YUV[C]) Luma() Luma[C] { return Luma[C]{Y: p.Y} }

// NeutralChroma returns the achromatic U/V value, the middle of the
// channel range (128 for 8-bit channels).
func NeutralChroma[C channel.Channel]() C {
	return channel.FromNormalized[C](1, 0, 2)
}
