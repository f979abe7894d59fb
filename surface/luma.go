// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/pixel"
)

// LumaSurface is a single-plane intensity surface.
type LumaSurface[C channel.Channel] = Surface[C, pixel.Luma[C], format.Luma[C]]

// LumaView is a read-only single-plane intensity surface.
type LumaView[C channel.Channel] = View[C, pixel.Luma[C], format.Luma[C]]

// lumaPlanarYUV is the set of YUV layouts whose storage begins with a full
// resolution Y plane.
type lumaPlanarYUV[C channel.Channel] interface {
	format.Format[C, pixel.YUV[C]]
	format.LumaPlanar[C]
}

// ExtractLuma returns the Y plane of a planar YUV surface as a luma view
// without copying. The view aliases v's storage.
func ExtractLuma[C channel.Channel, F lumaPlanarYUV[C]](v *View[C, pixel.YUV[C], F]) *LumaView[C] {
	var f F
	plane := f.LumaPlane(v.data, v.width, v.height)
	pixbuf.Logger().Debug("surface: luma view", "format", f.String(), "width", v.width, "height", v.height)
	return &LumaView[C]{width: v.width, height: v.height, data: plane}
}

// ExtractLumaMut is the writable form of [ExtractLuma]. Writes to the
// returned surface change the luma of s.
func ExtractLumaMut[C channel.Channel, F lumaPlanarYUV[C]](s *Surface[C, pixel.YUV[C], F]) *LumaSurface[C] {
	return &LumaSurface[C]{View: *ExtractLuma(&s.View)}
}

// ToLuma projects every pixel of v onto luma and returns the result as a
// newly allocated surface. For planar YUV sources prefer [ExtractLuma],
// which does not copy.
func ToLuma[C channel.Channel, P pixel.LumaSource[C], F format.Format[C, P]](v *View[C, P, F]) *LumaSurface[C] {
	out := &LumaSurface[C]{View: LumaView[C]{
		width:  v.width,
		height: v.height,
		data:   make([]C, v.width*v.height),
	}}
	var f F
	i := 0
	for y := 0; y < v.height; y++ {
		for x := 0; x < v.width; x++ {
			out.data[i] = f.GetPixel(v.data, v.width, v.height, x, y).Luma().Y
			i++
		}
	}
	return out
}
