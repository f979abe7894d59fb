package imageio

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/convert"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/pixel"
	"github.com/gogpu/pixbuf/surface"
)

// Image adapts a surface view to image.Image. YUV pixels are presented as
// RGB through the BT.601 transform.
type Image[C channel.Channel, P pixel.Pixel[C, P], F format.Format[C, P]] struct {
	view  *surface.View[C, P, F]
	model color.Model
}

// DrawImage adapts a surface to draw.Image.
type DrawImage[C channel.Channel, P pixel.Pixel[C, P], F format.Format[C, P]] struct {
	Image[C, P, F]
	dst  *surface.Surface[C, P, F]
	from func(color.Color) P
}

// NewImage wraps v. It panics if P has no color conversion.
func NewImage[C channel.Channel, P pixel.Pixel[C, P], F format.Format[C, P]](v *surface.View[C, P, F]) *Image[C, P, F] {
	model, _ := colorModel[C, P]()
	return &Image[C, P, F]{view: v, model: model}
}

// NewDrawImage wraps s. Writes through Set go straight to s.
func NewDrawImage[C channel.Channel, P pixel.Pixel[C, P], F format.Format[C, P]](s *surface.Surface[C, P, F]) *DrawImage[C, P, F] {
	model, from := colorModel[C, P]()
	return &DrawImage[C, P, F]{
		Image: Image[C, P, F]{view: s.ReadOnly(), model: model},
		dst:   s,
		from:  from,
	}
}

// ColorModel implements image.Image.
func (m *Image[C, P, F]) ColorModel() color.Model { return m.model }

// Bounds implements image.Image.
func (m *Image[C, P, F]) Bounds() image.Rectangle { return m.view.Bounds() }

// At implements image.Image. Points outside the bounds are transparent.
func (m *Image[C, P, F]) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.view.Bounds()) {
		return color.RGBA64{}
	}
	return toColor[C](m.view.GetPixel(x, y))
}

// Set implements draw.Image. Points outside the bounds are ignored.
func (m *DrawImage[C, P, F]) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(m.view.Bounds()) {
		return
	}
	m.dst.PutPixel(x, y, m.from(c))
}

func toColor[C channel.Channel, P any](p P) color.Color {
	switch q := any(p).(type) {
	case pixel.YUV[C]:
		return convert.YUVToRGB(q)
	case color.Color:
		return q
	}
	panic(fmt.Sprintf("imageio: no color conversion for %T", p))
}

// colorModel returns the model for P and the conversion into P.
func colorModel[C channel.Channel, P any]() (color.Model, func(color.Color) P) {
	var zero P
	switch any(zero).(type) {
	case pixel.Luma[C]:
		return pixel.LumaModel[C](), func(c color.Color) P { return any(pixel.LumaFromColor[C](c)).(P) }
	case pixel.LumaAlpha[C]:
		return pixel.LumaAlphaModel[C](), func(c color.Color) P { return any(pixel.LumaAlphaFromColor[C](c)).(P) }
	case pixel.RGB[C]:
		return pixel.RGBModel[C](), func(c color.Color) P { return any(pixel.RGBFromColor[C](c)).(P) }
	case pixel.RGBA[C]:
		return pixel.RGBAModel[C](), func(c color.Color) P { return any(pixel.RGBAFromColor[C](c)).(P) }
	case pixel.YUV[C]:
		return pixel.RGBModel[C](), func(c color.Color) P {
			return any(convert.RGBToYUV(pixel.RGBFromColor[C](c))).(P)
		}
	}
	panic(fmt.Sprintf("imageio: no color conversion for %T", zero))
}

// rgbOf drops alpha and converts YUV and luma pixels to RGB.
func rgbOf[C channel.Channel, P any](p P) pixel.RGB[C] {
	switch q := any(p).(type) {
	case pixel.RGB[C]:
		return q
	case pixel.RGBA[C]:
		return q.RGB()
	case pixel.YUV[C]:
		return convert.YUVToRGB(q)
	case pixel.Luma[C]:
		return pixel.RGB[C]{R: q.Y, G: q.Y, B: q.Y}
	case pixel.LumaAlpha[C]:
		return pixel.RGB[C]{R: q.Y, G: q.Y, B: q.Y}
	}
	panic(fmt.Sprintf("imageio: no RGB conversion for %T", p))
}
