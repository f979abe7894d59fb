package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"

	// Standard library codecs.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	// Extended codecs.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/pixel"
	"github.com/gogpu/pixbuf/surface"
)

func init() {
	image.RegisterFormat("ppm", "P6", decodePPM, decodePPMConfig)
	image.RegisterFormat("ppm", "P3", decodePPM, decodePPMConfig)
}

// decodePPM loads at 16 bits, which holds every legal maxval.
func decodePPM(r io.Reader) (image.Image, error) {
	s, err := ReadPPM[uint16, format.RGB[uint16]](r)
	if err != nil {
		return nil, err
	}
	return NewImage(s.ReadOnly()), nil
}

func decodePPMConfig(r io.Reader) (image.Config, error) {
	p, err := NewPPMReader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: pixel.RGBModel[uint16](), Width: p.width, Height: p.height}, nil
}

// Decode decodes any registered image format: PNG, JPEG, GIF, BMP, TIFF,
// WebP and PPM. An unrecognised input fails with ErrUnsupportedFormat.
func Decode(r io.Reader) (image.Image, string, error) {
	img, name, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, name, err
	}
	pixbuf.Logger().Debug("imageio: decoded", "format", name, "bounds", img.Bounds().String())
	return img, name, nil
}

// FromImage copies img into a new surface with the same size. The surface
// origin corresponds to img.Bounds().Min. Formats with subsampled chroma
// require even dimensions.
func FromImage[C channel.Channel, P pixel.Pixel[C, P], F format.Format[C, P]](img image.Image) *surface.Surface[C, P, F] {
	b := img.Bounds()
	s := surface.NewBlack[C, P, F](b.Dx(), b.Dy())
	draw.Draw(NewDrawImage(s), s.Bounds(), img, b.Min, draw.Src)
	return s
}

// DecodeSurface decodes r and copies the result into a new surface.
// It returns the registered format name alongside.
func DecodeSurface[C channel.Channel, P pixel.Pixel[C, P], F format.Format[C, P]](r io.Reader) (*surface.Surface[C, P, F], string, error) {
	img, name, err := Decode(r)
	if err != nil {
		return nil, name, err
	}
	return FromImage[C, P, F](img), name, nil
}

// Scale resamples src into dst with the given interpolator, stretching to
// dst's bounds. A nil interpolator selects draw.BiLinear.
func Scale[C channel.Channel, P pixel.Pixel[C, P], FS format.Format[C, P], FD format.Format[C, P]](
	dst *surface.Surface[C, P, FD], src *surface.View[C, P, FS], q draw.Interpolator,
) {
	if q == nil {
		q = draw.BiLinear
	}
	pixbuf.Logger().Debug("imageio: scale", "source", src.String(), "destination", dst.String())
	q.Scale(NewDrawImage(dst), dst.Bounds(), NewImage(src), src.Bounds(), draw.Src, nil)
}
