package format

import (
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/pixel"
)

// Luma is a single intensity plane.
type Luma[C channel.Channel] struct{}

func (Luma[C]) String() string { return "Luma" }

func (Luma[C]) DataSize(w, h int) int { return w * h }

func (f Luma[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.Luma[C]](f, data, w, h)
	fill(data, channel.Min[C]())
}

func (Luma[C]) GetPixel(data []C, w, h, x, y int) pixel.Luma[C] {
	checkBounds(w, h, x, y)
	return pixel.Luma[C]{Y: data[y*w+x]}
}

func (Luma[C]) PutPixel(data []C, w, h, x, y int, p pixel.Luma[C]) {
	checkBounds(w, h, x, y)
	data[y*w+x] = p.Y
}

func (Luma[C]) Planes(data []C, w, h int) [][]C { return planes(data, w*h) }

// LumaPlane returns data itself.
func (Luma[C]) LumaPlane(data []C, w, h int) []C { return data[: w*h : w*h] }

// LumaAlpha is packed, interleaved Y, A.
type LumaAlpha[C channel.Channel] struct{}

func (LumaAlpha[C]) String() string { return "LumaAlpha" }

func (LumaAlpha[C]) DataSize(w, h int) int { return 2 * w * h }

func (f LumaAlpha[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.LumaAlpha[C]](f, data, w, h)
	b := pixel.LumaAlpha[C]{}.Black()
	fillPattern(data, b.Y, b.A)
}

func (LumaAlpha[C]) GetPixel(data []C, w, h, x, y int) pixel.LumaAlpha[C] {
	checkBounds(w, h, x, y)
	o := 2 * (y*w + x)
	return pixel.LumaAlpha[C]{Y: data[o], A: data[o+1]}
}

func (LumaAlpha[C]) PutPixel(data []C, w, h, x, y int, p pixel.LumaAlpha[C]) {
	checkBounds(w, h, x, y)
	o := 2 * (y*w + x)
	data[o], data[o+1] = p.Y, p.A
}
