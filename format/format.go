// Package format provides the physical memory layouts a surface can use.
//
// A Format is a stateless tag type. It owns no data; it maps a logical
// (x, y) inside a width x height image onto element offsets of a flat
// channel slice, knows how many elements such an image needs, and knows
// how to fill a slice with black. All offsets are counted in channel
// elements, not bytes.
//
// # Layouts
//
//	Format         Elements          Order
//	RGB            3·w·h             R G B, R G B, ...
//	RGBA           4·w·h             R G B A, ...
//	RGBPlanar      3 planes of w·h   R plane, G plane, B plane
//	RGBAPlanar     4 planes of w·h   R, G, B, A planes
//	YUV444Packed   3·w·h             Y U V, ...
//	YUV444Planar   3 planes of w·h   Y, U, V planes
//	YUV422Packed   2·w·h             Y0 U Y1 V macropixels
//	YUV422Planar   w·h + 2·(w/2)·h   Y plane, half-width U and V planes
//	YUV420Planar   w·h + 2·(w/2)·(h/2)  Y plane, quarter U and V planes
//	Luma           w·h               Y
//	LumaAlpha      2·w·h             Y A, ...
//
// Subsampled formats require even dimensions along each subsampled axis.
// Pixels sharing a chroma sample are written last-writer-wins: the chroma
// of the most recent PutPixel among the sharing pixels is what every one of
// them reads back.
//
// # Contract violations
//
// Storage length mismatches, odd dimensions for subsampled formats, and
// out-of-range coordinates are programming errors and panic.
package format

import (
	"fmt"

	"github.com/gogpu/pixbuf/channel"
)

// Format describes how pixels of type P are laid out in a []C.
type Format[C channel.Channel, P any] interface {
	fmt.Stringer

	// DataSize returns the number of elements a w x h image occupies.
	DataSize(w, h int) int

	// InitBlack fills data with an all-black image.
	InitBlack(data []C, w, h int)

	// GetPixel reads the pixel at (x, y).
	GetPixel(data []C, w, h, x, y int) P

	// PutPixel writes the pixel at (x, y).
	PutPixel(data []C, w, h, x, y int, p P)
}

// Planar is implemented by formats that store channels in separate planes.
type Planar[C channel.Channel] interface {
	// Planes returns the planes of data in storage order. The returned
	// slices alias data.
	Planes(data []C, w, h int) [][]C
}

// LumaPlanar is implemented by formats whose storage starts with a full
// resolution luma plane. The plane can be viewed without copying.
type LumaPlanar[C channel.Channel] interface {
	LumaPlane(data []C, w, h int) []C
}

// FullChroma marks YUV formats with one chroma sample per pixel.
type FullChroma interface {
	fullChroma()
}

// CheckSize panics unless len(data) matches f.DataSize(w, h).
func CheckSize[C channel.Channel, P any](f Format[C, P], data []C, w, h int) {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("format: negative dimensions %dx%d", w, h))
	}
	if want := f.DataSize(w, h); len(data) != want {
		panic(fmt.Sprintf("format: %s %dx%d needs %d elements, got %d", f, w, h, want, len(data)))
	}
}

func checkBounds(w, h, x, y int) {
	if x < 0 || y < 0 || x >= w || y >= h {
		panic(fmt.Sprintf("format: pixel (%d, %d) out of bounds %dx%d", x, y, w, h))
	}
}

func checkEven(name string, w, h int, horizontal, vertical bool) {
	if horizontal && w%2 != 0 {
		panic(fmt.Sprintf("format: %s requires even width, got %d", name, w))
	}
	if vertical && h%2 != 0 {
		panic(fmt.Sprintf("format: %s requires even height, got %d", name, h))
	}
}

// fillPattern repeats pattern across data. len(data) must be a multiple of
// len(pattern).
func fillPattern[C channel.Channel](data []C, pattern ...C) {
	n := len(pattern)
	if len(data)%n != 0 {
		panic(fmt.Sprintf("format: %d elements is not a whole number of %d-element pixels", len(data), n))
	}
	for i := 0; i < len(data); i += n {
		copy(data[i:i+n], pattern)
	}
}

func fill[C channel.Channel](data []C, v C) {
	for i := range data {
		data[i] = v
	}
}

// planes cuts data into consecutive planes of the given sizes.
func planes[C channel.Channel](data []C, sizes ...int) [][]C {
	out := make([][]C, len(sizes))
	off := 0
	for i, n := range sizes {
		out[i] = data[off : off+n : off+n]
		off += n
	}
	return out
}
