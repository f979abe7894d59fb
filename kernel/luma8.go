package kernel

import (
	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/surface"
)

// Luma8Kernel is a 3x3 operator over raw 8-bit luma samples.
type Luma8Kernel interface {
	Execute(n *[9]uint8) uint8
}

// Luma8Sobel is Sobel3x3 on 8-bit samples, clamped to [0, 255].
type Luma8Sobel struct{}

func (Luma8Sobel) Execute(n *[9]uint8) uint8 {
	var v [9]int64
	for i, s := range n {
		v[i] = int64(s)
	}
	return uint8(sobel(&v, 255))
}

// Luma8Average is the truncated mean of the nine samples.
type Luma8Average struct{}

func (Luma8Average) Execute(n *[9]uint8) uint8 {
	var sum int
	for _, s := range n {
		sum += int(s)
	}
	return uint8(sum / 9)
}

// RunLuma8 is Run for 8-bit luma surfaces, reading the planes directly.
func RunLuma8(k Luma8Kernel, src *surface.LumaView[uint8], dst *surface.LumaSurface[uint8]) {
	w, h := src.Width(), src.Height()
	checkSameSize(w, h, dst.Width(), dst.Height())
	if w < 3 || h < 3 {
		return
	}
	pixbuf.Logger().Debug("kernel: luma8 pass", "width", w, "height", h)

	in := surface.Bytes(src)
	out := surface.BytesMut(dst)
	var n [9]uint8
	for y := 1; y < h-1; y++ {
		above, row, below := in[(y-1)*w:y*w], in[y*w:(y+1)*w], in[(y+1)*w:(y+2)*w]
		for x := 1; x < w-1; x++ {
			copy(n[0:3], above[x-1:x+2])
			copy(n[3:6], row[x-1:x+2])
			copy(n[6:9], below[x-1:x+2])
			out[y*w+x] = k.Execute(&n)
		}
	}
}
