package imageio

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/pixel"
	"github.com/gogpu/pixbuf/surface"
)

// PixelSource is a row-major stream of RGB sample triples.
type PixelSource interface {
	// Size returns the image dimensions.
	Size() (width, height int)

	// MaxVal returns the largest sample value the source may produce.
	MaxVal() uint32

	// Next returns the next pixel. After the last pixel it returns io.EOF.
	Next() (r, g, b uint32, err error)
}

// Load reads every pixel of src into a new RGB surface.
//
// Samples are rescaled from [0, MaxVal] to the channel's range. If MaxVal
// exceeds the largest value C can hold, Load fails with ErrOverflow before
// reading any pixel. A source that ends early fails with ErrTruncated.
func Load[C channel.Channel, F format.Format[C, pixel.RGB[C]]](src PixelSource) (*surface.Surface[C, pixel.RGB[C], F], error) {
	return load[C, pixel.RGB[C], F](src, func(p pixel.RGB[C]) pixel.RGB[C] { return p })
}

// LoadRGBA is Load into an RGBA surface with opaque alpha.
func LoadRGBA[C channel.Channel, F format.Format[C, pixel.RGBA[C]]](src PixelSource) (*surface.Surface[C, pixel.RGBA[C], F], error) {
	return load[C, pixel.RGBA[C], F](src, pixel.RGB[C].Opaque)
}

func load[C channel.Channel, P any, F format.Format[C, P]](src PixelSource, conv func(pixel.RGB[C]) P) (*surface.Surface[C, P, F], error) {
	w, h := src.Size()
	maxval := src.MaxVal()
	if w < 0 || h < 0 || maxval == 0 || maxval > 1<<31-1 {
		return nil, fmt.Errorf("%w: %dx%d, maxval %d", ErrInvalidHeader, w, h, maxval)
	}
	if limit, ok := channel.MaxDepth[C](); ok && maxval > limit {
		pixbuf.Logger().Warn("imageio: depth overflow", "maxval", maxval, "limit", limit)
		return nil, fmt.Errorf("%w: maxval %d, channel holds %d", ErrOverflow, maxval, limit)
	}

	var f F
	pixbuf.Logger().Debug("imageio: load", "format", f.String(), "width", w, "height", h, "maxval", maxval)

	// Pixels are staged as they arrive and the surface is allocated only
	// once the stream has delivered all of them, so memory follows the
	// input actually read rather than the declared size.
	staged := make([]P, 0, min(w*h, stageChunk))
	hi := int32(maxval)
	for y := range h {
		for x := range w {
			r, g, b, err := src.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = ErrTruncated
				}
				pixbuf.Logger().Warn("imageio: short pixel stream", "x", x, "y", y, "err", err)
				return nil, fmt.Errorf("imageio: pixel (%d, %d): %w", x, y, err)
			}
			if r > maxval || g > maxval || b > maxval {
				return nil, fmt.Errorf("%w: pixel (%d, %d) = (%d, %d, %d), maxval %d",
					ErrSampleRange, x, y, r, g, b, maxval)
			}
			staged = append(staged, conv(pixel.RGB[C]{
				R: channel.FromNormalized[C](int32(r), 0, hi),
				G: channel.FromNormalized[C](int32(g), 0, hi),
				B: channel.FromNormalized[C](int32(b), 0, hi),
			}))
		}
	}

	s := surface.NewBlack[C, P, F](w, h)
	i := 0
	for y := range h {
		for x := range w {
			s.PutPixel(x, y, staged[i])
			i++
		}
	}
	return s, nil
}

// stageChunk caps the initial staging capacity of load, in pixels.
const stageChunk = 1 << 16
