package format

import (
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/pixel"
)

// RGB is packed, interleaved R, G, B.
type RGB[C channel.Channel] struct{}

func (RGB[C]) String() string { return "RGB" }

func (RGB[C]) DataSize(w, h int) int { return 3 * w * h }

func (f RGB[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.RGB[C]](f, data, w, h)
	fill(data, channel.Min[C]())
}

func (RGB[C]) GetPixel(data []C, w, h, x, y int) pixel.RGB[C] {
	checkBounds(w, h, x, y)
	o := 3 * (y*w + x)
	d := data[o : o+3 : o+3]
	return pixel.RGB[C]{R: d[0], G: d[1], B: d[2]}
}

func (RGB[C]) PutPixel(data []C, w, h, x, y int, p pixel.RGB[C]) {
	checkBounds(w, h, x, y)
	o := 3 * (y*w + x)
	d := data[o : o+3 : o+3]
	d[0], d[1], d[2] = p.R, p.G, p.B
}

// RGBA is packed, interleaved R, G, B, A.
type RGBA[C channel.Channel] struct{}

func (RGBA[C]) String() string { return "RGBA" }

func (RGBA[C]) DataSize(w, h int) int { return 4 * w * h }

func (f RGBA[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.RGBA[C]](f, data, w, h)
	b := pixel.RGBA[C]{}.Black()
	fillPattern(data, b.R, b.G, b.B, b.A)
}

func (RGBA[C]) GetPixel(data []C, w, h, x, y int) pixel.RGBA[C] {
	checkBounds(w, h, x, y)
	o := 4 * (y*w + x)
	d := data[o : o+4 : o+4]
	return pixel.RGBA[C]{R: d[0], G: d[1], B: d[2], A: d[3]}
}

func (RGBA[C]) PutPixel(data []C, w, h, x, y int, p pixel.RGBA[C]) {
	checkBounds(w, h, x, y)
	o := 4 * (y*w + x)
	d := data[o : o+4 : o+4]
	d[0], d[1], d[2], d[3] = p.R, p.G, p.B, p.A
}

// RGBPlanar stores R, G and B as three full planes.
type RGBPlanar[C channel.Channel] struct{}

func (RGBPlanar[C]) String() string { return "RGBPlanar" }

func (RGBPlanar[C]) DataSize(w, h int) int { return 3 * w * h }

func (f RGBPlanar[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.RGB[C]](f, data, w, h)
	fill(data, channel.Min[C]())
}

func (RGBPlanar[C]) GetPixel(data []C, w, h, x, y int) pixel.RGB[C] {
	checkBounds(w, h, x, y)
	n, i := w*h, y*w+x
	return pixel.RGB[C]{R: data[i], G: data[n+i], B: data[2*n+i]}
}

func (RGBPlanar[C]) PutPixel(data []C, w, h, x, y int, p pixel.RGB[C]) {
	checkBounds(w, h, x, y)
	n, i := w*h, y*w+x
	data[i], data[n+i], data[2*n+i] = p.R, p.G, p.B
}

func (RGBPlanar[C]) Planes(data []C, w, h int) [][]C {
	n := w * h
	return planes(data, n, n, n)
}

// RGBAPlanar stores R, G, B and A as four full planes.
type RGBAPlanar[C channel.Channel] struct{}

func (RGBAPlanar[C]) String() string { return "RGBAPlanar" }

func (RGBAPlanar[C]) DataSize(w, h int) int { return 4 * w * h }

func (f RGBAPlanar[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.RGBA[C]](f, data, w, h)
	n := w * h
	fill(data[:3*n], channel.Min[C]())
	fill(data[3*n:], channel.Max[C]())
}

func (RGBAPlanar[C]) GetPixel(data []C, w, h, x, y int) pixel.RGBA[C] {
	checkBounds(w, h, x, y)
	n, i := w*h, y*w+x
	return pixel.RGBA[C]{R: data[i], G: data[n+i], B: data[2*n+i], A: data[3*n+i]}
}

func (RGBAPlanar[C]) PutPixel(data []C, w, h, x, y int, p pixel.RGBA[C]) {
	checkBounds(w, h, x, y)
	n, i := w*h, y*w+x
	data[i], data[n+i], data[2*n+i], data[3*n+i] = p.R, p.G, p.B, p.A
}

func (RGBAPlanar[C]) Planes(data []C, w, h int) [][]C {
	n := w * h
	return planes(data, n, n, n, n)
}
