// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"iter"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
)

// View is a read-only surface of pixels P stored as channels C in layout F.
//
// Views are not safe for concurrent use with writers of the same storage.
type View[C channel.Channel, P any, F format.Format[C, P]] struct {
	width  int
	height int
	data   []C
}

// Surface is a mutable surface. It embeds the read-only [View] and adds
// the write operations.
type Surface[C channel.Channel, P any, F format.Format[C, P]] struct {
	View[C, P, F]
}

// NewView wraps data as a read-only surface without copying it.
// It panics if len(data) does not match the format's size for w x h.
func NewView[C channel.Channel, P any, F format.Format[C, P]](w, h int, data []C) *View[C, P, F] {
	var f F
	format.CheckSize[C, P](f, data, w, h)
	return &View[C, P, F]{width: w, height: h, data: data}
}

// New wraps data as a mutable surface without copying it.
// It panics if len(data) does not match the format's size for w x h.
func New[C channel.Channel, P any, F format.Format[C, P]](w, h int, data []C) *Surface[C, P, F] {
	return &Surface[C, P, F]{View: *NewView[C, P, F](w, h, data)}
}

// NewBlack allocates a w x h surface and fills it with black.
func NewBlack[C channel.Channel, P any, F format.Format[C, P]](w, h int) *Surface[C, P, F] {
	var f F
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("surface: negative dimensions %dx%d", w, h))
	}
	data := make([]C, f.DataSize(w, h))
	f.InitBlack(data, w, h)
	pixbuf.Logger().Debug("surface: allocated",
		"format", f.String(), "width", w, "height", h, "elements", len(data))
	return &Surface[C, P, F]{View: View[C, P, F]{width: w, height: h, data: data}}
}

// Width returns the width in pixels.
func (v *View[C, P, F]) Width() int { return v.width }

// Height returns the height in pixels.
func (v *View[C, P, F]) Height() int { return v.height }

// Bounds returns the rectangle (0, 0)-(Width, Height).
func (v *View[C, P, F]) Bounds() image.Rectangle { return image.Rect(0, 0, v.width, v.height) }

// Len returns the number of storage elements.
func (v *View[C, P, F]) Len() int { return len(v.data) }

// Format returns the layout tag.
func (v *View[C, P, F]) Format() F {
	var f F
	return f
}

func (v *View[C, P, F]) String() string {
	var f F
	return fmt.Sprintf("%s %dx%d", f, v.width, v.height)
}

// GetPixel returns the pixel at (x, y). It panics if (x, y) is outside the
// surface.
func (v *View[C, P, F]) GetPixel(x, y int) P {
	var f F
	return f.GetPixel(v.data, v.width, v.height, x, y)
}

// Pixels returns the pixels in row-major order, x varying fastest. The
// sequence can be ranged over any number of times.
func (v *View[C, P, F]) Pixels() iter.Seq[P] {
	return func(yield func(P) bool) {
		var f F
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				if !yield(f.GetPixel(v.data, v.width, v.height, x, y)) {
					return
				}
			}
		}
	}
}

// All returns the pixels with their coordinates in row-major order.
func (v *View[C, P, F]) All() iter.Seq2[image.Point, P] {
	return func(yield func(image.Point, P) bool) {
		var f F
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				if !yield(image.Pt(x, y), f.GetPixel(v.data, v.width, v.height, x, y)) {
					return
				}
			}
		}
	}
}

// Clone returns a deep copy with owned storage.
func (v *View[C, P, F]) Clone() *Surface[C, P, F] {
	data := make([]C, len(v.data))
	copy(data, v.data)
	return &Surface[C, P, F]{View: View[C, P, F]{width: v.width, height: v.height, data: data}}
}

// ReadOnly returns the read-only view of s. The view shares storage with s.
func (s *Surface[C, P, F]) ReadOnly() *View[C, P, F] { return &s.View }

// PutPixel writes p at (x, y). It panics if (x, y) is outside the surface.
func (s *Surface[C, P, F]) PutPixel(x, y int, p P) {
	var f F
	f.PutPixel(s.data, s.width, s.height, x, y, p)
}

// Fill writes p to every pixel.
func (s *Surface[C, P, F]) Fill(p P) {
	var f F
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			f.PutPixel(s.data, s.width, s.height, x, y, p)
		}
	}
}

// Clear resets the surface to black.
func (s *Surface[C, P, F]) Clear() {
	var f F
	f.InitBlack(s.data, s.width, s.height)
}

// Data returns the backing storage. Writes go straight to the surface.
func (s *Surface[C, P, F]) Data() []C { return s.data }

// Elements returns the backing storage of v in its format's layout. The
// slice aliases the surface and must not be modified.
func Elements[C channel.Channel, P any, F format.Format[C, P]](v *View[C, P, F]) []C {
	return v.data
}

// Bytes returns the backing storage of an 8-bit surface. The slice aliases
// the surface and must not be modified; use [BytesMut] to write.
func Bytes[P any, F format.Format[uint8, P]](v *View[uint8, P, F]) []byte {
	return v.data
}

// BytesMut returns the writable backing storage of an 8-bit surface.
func BytesMut[P any, F format.Format[uint8, P]](s *Surface[uint8, P, F]) []byte {
	return s.data
}

// Planes returns the planes of a planar surface. The slices alias the
// surface storage.
func Planes[C channel.Channel, P any, F interface {
	format.Format[C, P]
	format.Planar[C]
}](s *Surface[C, P, F]) [][]C {
	var f F
	return f.Planes(s.data, s.width, s.height)
}

// CopyPixels copies every pixel of src into dst, translating between the two
// layouts. The surfaces must have equal dimensions.
func CopyPixels[C channel.Channel, P any, FS format.Format[C, P], FD format.Format[C, P]](
	dst *Surface[C, P, FD], src *View[C, P, FS],
) {
	if dst.width != src.width || dst.height != src.height {
		panic(fmt.Sprintf("surface: copy between %dx%d and %dx%d", src.width, src.height, dst.width, dst.height))
	}
	var fs FS
	var fd FD
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			fd.PutPixel(dst.data, dst.width, dst.height, x, y, fs.GetPixel(src.data, src.width, src.height, x, y))
		}
	}
}
