package format

import (
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/pixel"
)

func yuvBlack[C channel.Channel]() (luma, chroma C) {
	return channel.FromNormalized[C](0, 0, 2), pixel.NeutralChroma[C]()
}

// YUV444Packed is interleaved Y, U, V with one chroma sample per pixel.
type YUV444Packed[C channel.Channel] struct{}

func (YUV444Packed[C]) String() string { return "YUV444Packed" }

func (YUV444Packed[C]) fullChroma() {}

func (YUV444Packed[C]) DataSize(w, h int) int { return 3 * w * h }

func (f YUV444Packed[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.YUV[C]](f, data, w, h)
	l, c := yuvBlack[C]()
	fillPattern(data, l, c, c)
}

func (YUV444Packed[C]) GetPixel(data []C, w, h, x, y int) pixel.YUV[C] {
	checkBounds(w, h, x, y)
	o := 3 * (y*w + x)
	d := data[o : o+3 : o+3]
	return pixel.YUV[C]{Y: d[0], U: d[1], V: d[2]}
}

func (YUV444Packed[C]) PutPixel(data []C, w, h, x, y int, p pixel.YUV[C]) {
	checkBounds(w, h, x, y)
	o := 3 * (y*w + x)
	d := data[o : o+3 : o+3]
	d[0], d[1], d[2] = p.Y, p.U, p.V
}

// YUV444Planar stores Y, U and V as three full planes.
type YUV444Planar[C channel.Channel] struct{}

func (YUV444Planar[C]) String() string { return "YUV444Planar" }

func (YUV444Planar[C]) fullChroma() {}

func (YUV444Planar[C]) DataSize(w, h int) int { return 3 * w * h }

func (f YUV444Planar[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.YUV[C]](f, data, w, h)
	l, c := yuvBlack[C]()
	n := w * h
	fill(data[:n], l)
	fill(data[n:], c)
}

func (YUV444Planar[C]) GetPixel(data []C, w, h, x, y int) pixel.YUV[C] {
	checkBounds(w, h, x, y)
	n, i := w*h, y*w+x
	return pixel.YUV[C]{Y: data[i], U: data[n+i], V: data[2*n+i]}
}

func (YUV444Planar[C]) PutPixel(data []C, w, h, x, y int, p pixel.YUV[C]) {
	checkBounds(w, h, x, y)
	n, i := w*h, y*w+x
	data[i], data[n+i], data[2*n+i] = p.Y, p.U, p.V
}

func (YUV444Planar[C]) Planes(data []C, w, h int) [][]C {
	n := w * h
	return planes(data, n, n, n)
}

func (YUV444Planar[C]) LumaPlane(data []C, w, h int) []C { return data[: w*h : w*h] }

// YUV422Packed stores horizontal pixel pairs as Y0 U Y1 V macropixels.
// Both pixels of a pair share U and V. Width must be even.
type YUV422Packed[C channel.Channel] struct{}

func (YUV422Packed[C]) String() string { return "YUV422Packed" }

func (YUV422Packed[C]) DataSize(w, h int) int {
	checkEven("YUV422Packed", w, h, true, false)
	return 2 * w * h
}

func (f YUV422Packed[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.YUV[C]](f, data, w, h)
	l, c := yuvBlack[C]()
	fillPattern(data, l, c, l, c)
}

// yuv422Offsets returns the element offsets of Y, U and V for pixel i in
// row-major order.
func yuv422Offsets(i int) (yo, uo, vo int) {
	pair := 2 * (i &^ 1)
	return 2 * i, pair + 1, pair + 3
}

func (YUV422Packed[C]) GetPixel(data []C, w, h, x, y int) pixel.YUV[C] {
	checkBounds(w, h, x, y)
	yo, uo, vo := yuv422Offsets(y*w + x)
	return pixel.YUV[C]{Y: data[yo], U: data[uo], V: data[vo]}
}

func (YUV422Packed[C]) PutPixel(data []C, w, h, x, y int, p pixel.YUV[C]) {
	checkBounds(w, h, x, y)
	yo, uo, vo := yuv422Offsets(y*w + x)
	data[yo], data[uo], data[vo] = p.Y, p.U, p.V
}

// YUV422Planar stores a full Y plane followed by half-width U and V planes.
// Width must be even.
type YUV422Planar[C channel.Channel] struct{}

func (YUV422Planar[C]) String() string { return "YUV422Planar" }

func (YUV422Planar[C]) DataSize(w, h int) int {
	checkEven("YUV422Planar", w, h, true, false)
	return w*h + 2*(w/2)*h
}

func (f YUV422Planar[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.YUV[C]](f, data, w, h)
	l, c := yuvBlack[C]()
	n := w * h
	fill(data[:n], l)
	fill(data[n:], c)
}

func (YUV422Planar[C]) offsets(w, h, x, y int) (yo, uo, vo int) {
	n, cn := w*h, (w/2)*h
	co := y*(w/2) + x/2
	return y*w + x, n + co, n + cn + co
}

func (f YUV422Planar[C]) GetPixel(data []C, w, h, x, y int) pixel.YUV[C] {
	checkBounds(w, h, x, y)
	yo, uo, vo := f.offsets(w, h, x, y)
	return pixel.YUV[C]{Y: data[yo], U: data[uo], V: data[vo]}
}

func (f YUV422Planar[C]) PutPixel(data []C, w, h, x, y int, p pixel.YUV[C]) {
	checkBounds(w, h, x, y)
	yo, uo, vo := f.offsets(w, h, x, y)
	data[yo], data[uo], data[vo] = p.Y, p.U, p.V
}

func (YUV422Planar[C]) Planes(data []C, w, h int) [][]C {
	cn := (w / 2) * h
	return planes(data, w*h, cn, cn)
}

func (YUV422Planar[C]) LumaPlane(data []C, w, h int) []C { return data[: w*h : w*h] }

// YUV420Planar stores a full Y plane followed by U and V planes subsampled
// by two in both directions. Width and height must be even.
type YUV420Planar[C channel.Channel] struct{}

func (YUV420Planar[C]) String() string { return "YUV420Planar" }

func (YUV420Planar[C]) DataSize(w, h int) int {
	checkEven("YUV420Planar", w, h, true, true)
	return w*h + 2*(w/2)*(h/2)
}

func (f YUV420Planar[C]) InitBlack(data []C, w, h int) {
	CheckSize[C, pixel.YUV[C]](f, data, w, h)
	l, c := yuvBlack[C]()
	n := w * h
	fill(data[:n], l)
	fill(data[n:], c)
}

func (YUV420Planar[C]) offsets(w, h, x, y int) (yo, uo, vo int) {
	n, cn := w*h, (w/2)*(h/2)
	co := (y/2)*(w/2) + x/2
	return y*w + x, n + co, n + cn + co
}

func (f YUV420Planar[C]) GetPixel(data []C, w, h, x, y int) pixel.YUV[C] {
	checkBounds(w, h, x, y)
	yo, uo, vo := f.offsets(w, h, x, y)
	return pixel.YUV[C]{Y: data[yo], U: data[uo], V: data[vo]}
}

func (f YUV420Planar[C]) PutPixel(data []C, w, h, x, y int, p pixel.YUV[C]) {
	checkBounds(w, h, x, y)
	yo, uo, vo := f.offsets(w, h, x, y)
	data[yo], data[uo], data[vo] = p.Y, p.U, p.V
}

func (YUV420Planar[C]) Planes(data []C, w, h int) [][]C {
	cn := (w / 2) * (h / 2)
	return planes(data, w*h, cn, cn)
}

// LumaPlane returns the Y plane, which is a prefix of data.
func (YUV420Planar[C]) LumaPlane(data []C, w, h int) []C { return data[: w*h : w*h] }
