package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/pixel"
	"github.com/gogpu/pixbuf/surface"
)

// MaxPixels is the largest width*height accepted from a PPM header unless
// WithMaxPixels lowers it.
const MaxPixels = 1 << 28

// PPMOption configures a PPMReader.
type PPMOption func(*ppmOptions)

type ppmOptions struct {
	maxPixels uint64
}

// WithMaxPixels rejects headers declaring more than n pixels with
// ErrInvalidHeader. Values outside [1, MaxPixels] keep the default.
func WithMaxPixels(n int) PPMOption {
	return func(o *ppmOptions) {
		if n > 0 && n <= MaxPixels {
			o.maxPixels = uint64(n)
		}
	}
}

// PPMReader decodes a PPM image as a PixelSource. It accepts binary (P6)
// and plain (P3) files with a maxval up to 65535.
type PPMReader struct {
	r      *bufio.Reader
	src    io.Reader
	opts   ppmOptions
	plain  bool
	width  int
	height int
	maxval uint32
	left   int
	buf    [6]byte
}

// NewPPMReader reads the PPM header from r. The pixel data is consumed by
// subsequent calls to Next.
//
// When r reports its remaining length (bytes.Reader, strings.Reader,
// bytes.Buffer), a header declaring more pixels than the input can hold
// fails with ErrTruncated before any pixel is read.
func NewPPMReader(r io.Reader, opts ...PPMOption) (*PPMReader, error) {
	p := &PPMReader{r: bufio.NewReader(r), src: r, opts: ppmOptions{maxPixels: MaxPixels}}
	for _, opt := range opts {
		opt(&p.opts)
	}
	if err := p.readHeader(); err != nil {
		return nil, err
	}
	pixbuf.Logger().Debug("imageio: ppm header",
		"width", p.width, "height", p.height, "maxval", p.maxval, "plain", p.plain)
	return p, nil
}

func (p *PPMReader) readHeader() error {
	var magic [2]byte
	if _, err := io.ReadFull(p.r, magic[:]); err != nil {
		return fmt.Errorf("%w: missing magic number", ErrInvalidHeader)
	}
	switch {
	case magic == [2]byte{'P', '6'}:
	case magic == [2]byte{'P', '3'}:
		p.plain = true
	case magic[0] == 'P' && magic[1] >= '1' && magic[1] <= '7':
		return fmt.Errorf("%w: netpbm type %q", ErrUnsupportedFormat, magic[:])
	default:
		return fmt.Errorf("%w: magic %q", ErrUnsupportedFormat, magic[:])
	}

	fields := [3]uint32{}
	for i, name := range []string{"width", "height", "maxval"} {
		v, err := p.readUint()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: missing %s", ErrInvalidHeader, name)
			}
			return fmt.Errorf("%w: %s: %w", ErrInvalidHeader, name, err)
		}
		fields[i] = v
	}
	w, h, maxval := fields[0], fields[1], fields[2]
	if w == 0 || h == 0 || uint64(w)*uint64(h) > p.opts.maxPixels {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, w, h)
	}
	if maxval == 0 || maxval > 65535 {
		return fmt.Errorf("%w: maxval %d", ErrInvalidHeader, maxval)
	}
	p.width, p.height, p.maxval = int(w), int(h), maxval
	p.left = p.width * p.height

	if n, ok := p.remaining(); ok && n < p.minRaster() {
		return fmt.Errorf("%w: %dx%d raster needs %d bytes, %d left",
			ErrTruncated, w, h, p.minRaster(), n)
	}
	return nil
}

// remaining returns the number of unread input bytes, if the source
// reports its length.
func (p *PPMReader) remaining() (int64, bool) {
	l, ok := p.src.(interface{ Len() int })
	if !ok {
		return 0, false
	}
	return int64(p.r.Buffered()) + int64(l.Len()), true
}

// minRaster returns the smallest raster the header allows: one byte per
// binary sample (two above maxval 255), one digit and one separator per
// plain sample.
func (p *PPMReader) minRaster() int64 {
	samples := 3 * int64(p.width) * int64(p.height)
	switch {
	case p.plain:
		return 2*samples - 1
	case p.maxval > 255:
		return 2 * samples
	}
	return samples
}

// readUint reads one decimal token, skipping whitespace and comments. The
// byte that ends the token is consumed, so in a P6 header the single
// whitespace character after maxval is not left in front of the raster.
// A comment may directly follow a token; it ends the token and runs to the
// end of the line.
func (p *PPMReader) readUint() (uint32, error) {
	c, err := p.skipSpace()
	if err != nil {
		return 0, err
	}
	var digits []byte
	for ; err == nil; c, err = p.r.ReadByte() {
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
			continue
		}
		if c == '#' {
			if _, cerr := p.r.ReadBytes('\n'); cerr != nil && !errors.Is(cerr, io.EOF) {
				return 0, cerr
			}
		} else if !isSpace(c) {
			return 0, fmt.Errorf("unexpected byte %q", c)
		}
		break
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	v, perr := strconv.ParseUint(string(digits), 10, 32)
	if perr != nil {
		return 0, perr
	}
	return uint32(v), nil
}

// skipSpace returns the first byte that is neither whitespace nor part of a
// comment.
func (p *PPMReader) skipSpace() (byte, error) {
	for {
		c, err := p.r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch {
		case c == '#':
			if _, err := p.r.ReadBytes('\n'); err != nil {
				return 0, err
			}
		case isSpace(c):
		default:
			return c, nil
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// Size implements PixelSource.
func (p *PPMReader) Size() (width, height int) { return p.width, p.height }

// MaxVal implements PixelSource.
func (p *PPMReader) MaxVal() uint32 { return p.maxval }

// Next implements PixelSource.
func (p *PPMReader) Next() (r, g, b uint32, err error) {
	if p.left == 0 {
		return 0, 0, 0, io.EOF
	}
	if p.plain {
		var s [3]uint32
		for i := range s {
			if s[i], err = p.readUint(); err != nil {
				return 0, 0, 0, p.wrap(err)
			}
		}
		r, g, b = s[0], s[1], s[2]
	} else {
		n := 3
		if p.maxval > 255 {
			n = 6
		}
		if _, err = io.ReadFull(p.r, p.buf[:n]); err != nil {
			return 0, 0, 0, p.wrap(err)
		}
		if n == 3 {
			r, g, b = uint32(p.buf[0]), uint32(p.buf[1]), uint32(p.buf[2])
		} else {
			r = uint32(p.buf[0])<<8 | uint32(p.buf[1])
			g = uint32(p.buf[2])<<8 | uint32(p.buf[3])
			b = uint32(p.buf[4])<<8 | uint32(p.buf[5])
		}
	}
	p.left--
	return r, g, b, nil
}

func (p *PPMReader) wrap(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %d pixels missing", ErrTruncated, p.left)
	}
	return err
}

// ReadPPM decodes a PPM image from r into a new RGB surface.
func ReadPPM[C channel.Channel, F format.Format[C, pixel.RGB[C]]](r io.Reader, opts ...PPMOption) (*surface.Surface[C, pixel.RGB[C], F], error) {
	src, err := NewPPMReader(r, opts...)
	if err != nil {
		return nil, err
	}
	return Load[C, F](src)
}

// WritePPM encodes v as a binary PPM. Samples are rescaled to [0, maxval];
// maxval must be in [1, 65535].
func WritePPM[C channel.Channel, P pixel.Pixel[C, P], F format.Format[C, P]](w io.Writer, v *surface.View[C, P, F], maxval uint32) error {
	if maxval == 0 || maxval > 65535 {
		return fmt.Errorf("%w: maxval %d", ErrInvalidHeader, maxval)
	}
	if v.Width() == 0 || v.Height() == 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, v.Width(), v.Height())
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n%d\n", v.Width(), v.Height(), maxval); err != nil {
		return err
	}
	wide := maxval > 255
	for p := range v.Pixels() {
		c := rgbOf[C](p)
		for _, s := range [3]C{c.R, c.G, c.B} {
			n := channel.ToNormalized(s, 0, int32(maxval))
			if wide {
				if err := bw.WriteByte(byte(n >> 8)); err != nil {
					return err
				}
			}
			if err := bw.WriteByte(byte(n)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
