// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
)

// ResizeNearest fills dst by nearest-neighbor sampling of src. Source
// coordinates are rounded and clamped to the last row and column. The two
// surfaces may use different layouts of the same pixel type.
func ResizeNearest[C channel.Channel, P any, FS format.Format[C, P], FD format.Format[C, P]](
	dst *Surface[C, P, FD], src *View[C, P, FS],
) {
	if src.width == 0 || src.height == 0 {
		return
	}
	var fs FS
	var fd FD
	for y := 0; y < dst.height; y++ {
		sy := nearest(y, src.height, dst.height)
		for x := 0; x < dst.width; x++ {
			sx := nearest(x, src.width, dst.width)
			fd.PutPixel(dst.data, dst.width, dst.height, x, y, fs.GetPixel(src.data, src.width, src.height, sx, sy))
		}
	}
}

// nearest maps destination coordinate d onto a source axis of length sn,
// rounding half up.
func nearest(d, sn, dn int) int {
	s := (2*d*sn + dn) / (2 * dn)
	return min(s, sn-1)
}
