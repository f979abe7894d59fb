package pixel

import (
	"image/color"

	"github.com/gogpu/pixbuf/channel"
)

// Interop with image/color. RGBA() follows the color.Color contract:
// 16-bit channels, alpha premultiplied.

func wide[C channel.Channel](v C) uint32 {
	return uint32(channel.ToNormalized(v, 0, 0xffff))
}

func narrow[C channel.Channel](v uint32) C {
	return channel.FromNormalized[C](int32(v), 0, 0xffff)
}

// RGBA implements color.Color.
func (p Luma[C]) RGBA() (r, g, b, a uint32) {
	y := wide(p.Y)
	return y, y, y, 0xffff
}

// RGBA implements color.Color.
func (p LumaAlpha[C]) RGBA() (r, g, b, a uint32) {
	a = wide(p.A)
	y := wide(p.Y) * a / 0xffff
	return y, y, y, a
}

// RGBA implements color.Color.
func (p RGB[C]) RGBA() (r, g, b, a uint32) {
	return wide(p.R), wide(p.G), wide(p.B), 0xffff
}

// RGBA implements color.Color.
func (p RGBA[C]) RGBA() (r, g, b, a uint32) {
	a = wide(p.A)
	r = wide(p.R) * a / 0xffff
	g = wide(p.G) * a / 0xffff
	b = wide(p.B) * a / 0xffff
	return r, g, b, a
}

// LumaFromColor converts any color to a Luma pixel with BT.601 weights.
func LumaFromColor[C channel.Channel](c color.Color) Luma[C] {
	g := color.Gray16Model.Convert(c).(color.Gray16)
	return Luma[C]{Y: narrow[C](uint32(g.Y))}
}

// LumaAlphaFromColor converts any color to a LumaAlpha pixel with straight
// alpha.
func LumaAlphaFromColor[C channel.Channel](c color.Color) LumaAlpha[C] {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	y := (19595*uint32(n.R) + 38470*uint32(n.G) + 7471*uint32(n.B) + 1<<15) >> 16
	return LumaAlpha[C]{Y: narrow[C](y), A: narrow[C](uint32(n.A))}
}

// RGBFromColor converts any color to an RGB pixel, dropping alpha.
func RGBFromColor[C channel.Channel](c color.Color) RGB[C] {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGB[C]{R: narrow[C](uint32(n.R)), G: narrow[C](uint32(n.G)), B: narrow[C](uint32(n.B))}
}

// RGBAFromColor converts any color to a straight-alpha RGBA pixel.
func RGBAFromColor[C channel.Channel](c color.Color) RGBA[C] {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA[C]{
		R: narrow[C](uint32(n.R)),
		G: narrow[C](uint32(n.G)),
		B: narrow[C](uint32(n.B)),
		A: narrow[C](uint32(n.A)),
	}
}

// LumaModel returns a color.Model producing Luma[C] values.
func LumaModel[C channel.Channel]() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color { return LumaFromColor[C](c) })
}

// LumaAlphaModel returns a color.Model producing LumaAlpha[C] values.
func LumaAlphaModel[C channel.Channel]() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color { return LumaAlphaFromColor[C](c) })
}

// RGBModel returns a color.Model producing RGB[C] values.
func RGBModel[C channel.Channel]() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color { return RGBFromColor[C](c) })
}

// RGBAModel returns a color.Model producing RGBA[C] values.
func RGBAModel[C channel.Channel]() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color { return RGBAFromColor[C](c) })
}
