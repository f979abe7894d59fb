package convert

import (
	"fmt"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/pixel"
	"github.com/gogpu/pixbuf/surface"
)

// FullChromaYUV is the set of YUV layouts with one chroma sample per pixel.
type FullChromaYUV[C channel.Channel] interface {
	format.Format[C, pixel.YUV[C]]
	format.FullChroma
}

func checkSameSize(sw, sh, dw, dh int) {
	if sw != dw || sh != dh {
		panic(fmt.Sprintf("convert: source %dx%d and destination %dx%d differ", sw, sh, dw, dh))
	}
}

// YUV444ToRGB converts a full-chroma YUV surface into a newly allocated
// packed RGB surface of the same size.
func YUV444ToRGB[C channel.Channel, F FullChromaYUV[C]](src *surface.View[C, pixel.YUV[C], F]) *surface.Surface[C, pixel.RGB[C], format.RGB[C]] {
	dst := surface.NewBlack[C, pixel.RGB[C], format.RGB[C]](src.Width(), src.Height())
	YUVToRGBInto(dst, src)
	return dst
}

// YUVToRGBInto converts src into an existing RGB surface of any layout.
func YUVToRGBInto[C channel.Channel, FS FullChromaYUV[C], FD format.Format[C, pixel.RGB[C]]](
	dst *surface.Surface[C, pixel.RGB[C], FD], src *surface.View[C, pixel.YUV[C], FS],
) {
	checkSameSize(src.Width(), src.Height(), dst.Width(), dst.Height())
	pixbuf.Logger().Debug("convert: yuv to rgb", "source", src.String(), "destination", dst.String())
	for pt, p := range src.All() {
		dst.PutPixel(pt.X, pt.Y, YUVToRGB(p))
	}
}

// RGBToYUV444 converts an RGB surface into a newly allocated planar
// full-chroma YUV surface of the same size.
func RGBToYUV444[C channel.Channel, F format.Format[C, pixel.RGB[C]]](src *surface.View[C, pixel.RGB[C], F]) *surface.Surface[C, pixel.YUV[C], format.YUV444Planar[C]] {
	dst := surface.NewBlack[C, pixel.YUV[C], format.YUV444Planar[C]](src.Width(), src.Height())
	RGBToYUVInto(dst, src)
	return dst
}

// RGBToYUVInto converts src into an existing full-chroma YUV surface.
func RGBToYUVInto[C channel.Channel, FS format.Format[C, pixel.RGB[C]], FD FullChromaYUV[C]](
	dst *surface.Surface[C, pixel.YUV[C], FD], src *surface.View[C, pixel.RGB[C], FS],
) {
	checkSameSize(src.Width(), src.Height(), dst.Width(), dst.Height())
	pixbuf.Logger().Debug("convert: rgb to yuv", "source", src.String(), "destination", dst.String())
	for pt, p := range src.All() {
		dst.PutPixel(pt.X, pt.Y, RGBToYUV(p))
	}
}
