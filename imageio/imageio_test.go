package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"golang.org/x/image/draw"

	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/pixel"
	"github.com/gogpu/pixbuf/surface"
)

type rgb8 = surface.Surface[uint8, pixel.RGB[uint8], format.RGB[uint8]]

func newRGB8(w, h int) *rgb8 {
	return surface.NewBlack[uint8, pixel.RGB[uint8], format.RGB[uint8]](w, h)
}

// fakeSource yields the same pixel n times.
type fakeSource struct {
	w, h   int
	maxval uint32
	n      int
	calls  int
}

func (f *fakeSource) Size() (int, int) { return f.w, f.h }
func (f *fakeSource) MaxVal() uint32   { return f.maxval }
func (f *fakeSource) Next() (r, g, b uint32, err error) {
	f.calls++
	if f.calls > f.n {
		return 0, 0, 0, io.EOF
	}
	return 1, 2, 3, nil
}

// =============================================================================
// PPM decoding
// =============================================================================

func TestReadPPM_Binary(t *testing.T) {
	data := append([]byte("P6\n# comment\n2 1\n255\n"), 10, 20, 30, 200, 210, 220)
	s, err := ReadPPM[uint8, format.RGB[uint8]](bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadPPM: %v", err)
	}
	if s.Width() != 2 || s.Height() != 1 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if got := s.GetPixel(0, 0); got != pixel.NewRGB[uint8](10, 20, 30) {
		t.Errorf("(0, 0) = %v", got)
	}
	if got := s.GetPixel(1, 0); got != pixel.NewRGB[uint8](200, 210, 220) {
		t.Errorf("(1, 0) = %v", got)
	}
}

func TestReadPPM_PlainRescales(t *testing.T) {
	src := "P3\n2 2 # size\n15\n0 0 0  15 15 15\n7 0 15\n1 2 3\n"
	s, err := ReadPPM[uint8, format.RGBPlanar[uint8]](strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadPPM: %v", err)
	}
	tests := []struct {
		x, y int
		want pixel.RGB[uint8]
	}{
		{0, 0, pixel.NewRGB[uint8](0, 0, 0)},
		{1, 0, pixel.NewRGB[uint8](255, 255, 255)},
		{0, 1, pixel.NewRGB[uint8](119, 0, 255)},
		{1, 1, pixel.NewRGB[uint8](17, 34, 51)},
	}
	for _, tt := range tests {
		if got := s.GetPixel(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestReadPPM_Wide(t *testing.T) {
	data := append([]byte("P6 1 1 65535 "), 0x03, 0xe8, 0xff, 0xff, 0x00, 0x01)

	t.Run("uint16", func(t *testing.T) {
		s, err := ReadPPM[uint16, format.RGB[uint16]](bytes.NewReader(data))
		if err != nil {
			t.Fatalf("ReadPPM: %v", err)
		}
		if got := s.GetPixel(0, 0); got != pixel.NewRGB[uint16](1000, 65535, 1) {
			t.Errorf("pixel = %v", got)
		}
	})

	t.Run("float32 has no depth limit", func(t *testing.T) {
		s, err := ReadPPM[float32, format.RGB[float32]](bytes.NewReader(data))
		if err != nil {
			t.Fatalf("ReadPPM: %v", err)
		}
		if got := s.GetPixel(0, 0).G; got != 1 {
			t.Errorf("G = %v, want 1", got)
		}
	})

	t.Run("uint8 overflows", func(t *testing.T) {
		_, err := ReadPPM[uint8, format.RGB[uint8]](bytes.NewReader(data))
		if !errors.Is(err, ErrOverflow) {
			t.Errorf("err = %v, want ErrOverflow", err)
		}
	})
}

func TestReadPPM_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", ErrInvalidHeader},
		{"graymap", "P5\n1 1\n255\n\x00", ErrUnsupportedFormat},
		{"not netpbm", "GIF89a", ErrUnsupportedFormat},
		{"missing height", "P6\n4", ErrInvalidHeader},
		{"zero width", "P6\n0 1\n255\n", ErrInvalidHeader},
		{"maxval too large", "P6\n1 1\n65536\n", ErrInvalidHeader},
		{"junk in header", "P6\n1x 1\n255\n", ErrInvalidHeader},
		{"truncated binary", "P6\n2 1\n255\n\x01\x02\x03\x04", ErrTruncated},
		{"truncated plain", "P3\n1 2\n255\n1 2 3\n4", ErrTruncated},
		{"sample above maxval", "P3\n1 1\n10\n1 11 3\n", ErrSampleRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPPM[uint8, format.RGB[uint8]](strings.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadPPM_CommentAfterToken(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"after height", "P3\n1 1#c\n255\n1 2 3\n"},
		{"after width", "P3\n1# width\n1\n255\n1 2 3\n"},
		{"after maxval", "P3\n1 1\n255# max\n1 2 3\n"},
		{"binary after maxval", "P6\n1 1\n255#x\n\x01\x02\x03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ReadPPM[uint8, format.RGB[uint8]](strings.NewReader(tt.data))
			if err != nil {
				t.Fatalf("ReadPPM: %v", err)
			}
			if got := s.GetPixel(0, 0); got != pixel.NewRGB[uint8](1, 2, 3) {
				t.Errorf("pixel = %v, want (1, 2, 3)", got)
			}
		})
	}
}

// lenless hides the Len method of the wrapped reader.
type lenless struct{ io.Reader }

func TestReadPPM_HeaderOnly(t *testing.T) {
	const hdr = "P6\n8192 8192\n65535\n"
	tests := []struct {
		name string
		r    func() io.Reader
	}{
		{"known length", func() io.Reader { return strings.NewReader(hdr) }},
		{"unknown length", func() io.Reader { return lenless{strings.NewReader(hdr)} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.r()
			var err error
			n := allocatedBy(func() {
				_, err = ReadPPM[uint16, format.RGB[uint16]](r)
			})
			if !errors.Is(err, ErrTruncated) {
				t.Errorf("err = %v, want ErrTruncated", err)
			}
			if n > 16<<20 {
				t.Errorf("header-only PPM allocated %d MiB", n>>20)
			}
		})
	}
}

func TestReadPPM_WithMaxPixels(t *testing.T) {
	data := "P3\n3 2\n255\n" + strings.Repeat("1 2 3\n", 6)
	if _, err := ReadPPM[uint8, format.RGB[uint8]](strings.NewReader(data), WithMaxPixels(6)); err != nil {
		t.Fatalf("at limit: %v", err)
	}
	_, err := ReadPPM[uint8, format.RGB[uint8]](strings.NewReader(data), WithMaxPixels(5))
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("over limit: err = %v, want ErrInvalidHeader", err)
	}
	// Out-of-range limits keep the default.
	if _, err := ReadPPM[uint8, format.RGB[uint8]](strings.NewReader(data), WithMaxPixels(0)); err != nil {
		t.Errorf("zero limit: %v", err)
	}
}

// =============================================================================
// Load
// =============================================================================

func TestLoad_OverflowBeforeReading(t *testing.T) {
	src := &fakeSource{w: 1, h: 1, maxval: 256, n: 1}
	_, err := Load[uint8, format.RGB[uint8]](src)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("err = %v, want ErrOverflow", err)
	}
	if src.calls != 0 {
		t.Errorf("Next called %d times before the depth check", src.calls)
	}
}

func TestLoad_ShortStream(t *testing.T) {
	_, err := Load[uint8, format.RGB[uint8]](&fakeSource{w: 3, h: 2, maxval: 255, n: 5})
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}

func TestLoad_HugeDeclaredSizeShortStream(t *testing.T) {
	src := &fakeSource{w: 1 << 14, h: 1 << 14, maxval: 255, n: 10}
	var err error
	n := allocatedBy(func() {
		_, err = Load[uint8, format.RGB[uint8]](src)
	})
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
	if n > 16<<20 {
		t.Errorf("short stream allocated %d MiB", n>>20)
	}
}

func TestLoadRGBA_Opaque(t *testing.T) {
	s, err := LoadRGBA[uint8, format.RGBA[uint8]](&fakeSource{w: 2, h: 2, maxval: 255, n: 4})
	if err != nil {
		t.Fatalf("LoadRGBA: %v", err)
	}
	for p := range s.Pixels() {
		if p != pixel.NewRGBA[uint8](1, 2, 3, 255) {
			t.Fatalf("pixel = %v", p)
		}
	}
}

// =============================================================================
// PPM encoding
// =============================================================================

func TestWritePPM_RoundTrip(t *testing.T) {
	src := newRGB8(3, 2)
	for pt := range src.All() {
		src.PutPixel(pt.X, pt.Y, pixel.NewRGB(uint8(pt.X*80), uint8(pt.Y*90), 5))
	}
	var buf bytes.Buffer
	if err := WritePPM(&buf, src.ReadOnly(), 255); err != nil {
		t.Fatalf("WritePPM: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("P6\n3 2\n255\n")) {
		t.Errorf("header = %q", buf.Bytes()[:12])
	}
	back, err := ReadPPM[uint8, format.RGB[uint8]](&buf)
	if err != nil {
		t.Fatalf("ReadPPM: %v", err)
	}
	if !bytes.Equal(back.Data(), src.Data()) {
		t.Errorf("round trip = %v, want %v", back.Data(), src.Data())
	}
}

func TestWritePPM_Wide(t *testing.T) {
	src := surface.NewBlack[uint16, pixel.Luma[uint16], format.Luma[uint16]](1, 1)
	src.PutPixel(0, 0, pixel.NewLuma[uint16](1000))
	var buf bytes.Buffer
	if err := WritePPM(&buf, src.ReadOnly(), 65535); err != nil {
		t.Fatalf("WritePPM: %v", err)
	}
	raster := buf.Bytes()[len("P6\n1 1\n65535\n"):]
	if !bytes.Equal(raster, []byte{0x03, 0xe8, 0x03, 0xe8, 0x03, 0xe8}) {
		t.Errorf("raster = % x", raster)
	}
}

func TestWritePPM_BadMaxval(t *testing.T) {
	if err := WritePPM(io.Discard, newRGB8(1, 1).ReadOnly(), 0); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("err = %v, want ErrInvalidHeader", err)
	}
}

// =============================================================================
// Image adapter and registry decoding
// =============================================================================

func TestImage_Adapter(t *testing.T) {
	s := newRGB8(2, 2)
	s.PutPixel(1, 0, pixel.NewRGB[uint8](255, 0, 0))
	img := NewImage(s.ReadOnly())

	if got := img.Bounds(); got != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds = %v", got)
	}
	if r, g, b, a := img.At(1, 0).RGBA(); r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("At(1, 0) = %d %d %d %d", r, g, b, a)
	}
	if _, _, _, a := img.At(5, 5).RGBA(); a != 0 {
		t.Errorf("At outside bounds has alpha %d", a)
	}

	d := NewDrawImage(s)
	d.Set(0, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	d.Set(-1, 0, color.White)
	if got := s.GetPixel(0, 1); got != pixel.NewRGB[uint8](1, 2, 3) {
		t.Errorf("after Set = %v", got)
	}
}

func TestImage_YUV(t *testing.T) {
	s := surface.NewBlack[uint8, pixel.YUV[uint8], format.YUV420Planar[uint8]](2, 2)
	s.Fill(pixel.NewYUV[uint8](235, 128, 128))
	c := NewImage(s.ReadOnly()).At(0, 0)
	if got, ok := c.(pixel.RGB[uint8]); !ok || got != pixel.NewRGB[uint8](235, 235, 235) {
		t.Errorf("At = %#v", c)
	}

	NewDrawImage(s).Set(1, 1, color.Gray{Y: 255})
	if got := s.GetPixel(1, 1); got != pixel.NewYUV[uint8](255, 128, 128) {
		t.Errorf("after Set = %v", got)
	}
}

func TestDecode_PNG(t *testing.T) {
	src := newRGB8(3, 3)
	for pt := range src.All() {
		src.PutPixel(pt.X, pt.Y, pixel.NewRGB(uint8(pt.X*100), uint8(pt.Y*50), 9))
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, NewImage(src.ReadOnly())); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	got, name, err := DecodeSurface[uint8, pixel.RGB[uint8], format.RGBPlanar[uint8]](&buf)
	if err != nil {
		t.Fatalf("DecodeSurface: %v", err)
	}
	if name != "png" {
		t.Errorf("format = %q", name)
	}
	for pt, want := range src.All() {
		if p := got.GetPixel(pt.X, pt.Y); p != want {
			t.Errorf("%v = %v, want %v", pt, p, want)
		}
	}
}

func TestDecode_PPM(t *testing.T) {
	img, name, err := Decode(strings.NewReader("P3 1 1 255 4 5 6"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if name != "ppm" {
		t.Errorf("format = %q", name)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 4*257 || g != 5*257 || b != 6*257 {
		t.Errorf("At = %d %d %d", r, g, b)
	}

	cfg, _, err := image.DecodeConfig(strings.NewReader("P6\n640 480\n255\n"))
	if err != nil || cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("DecodeConfig = %+v, %v", cfg, err)
	}
}

func TestDecode_Unsupported(t *testing.T) {
	_, _, err := Decode(strings.NewReader("definitely not an image"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
	if !errors.Is(err, image.ErrFormat) {
		t.Errorf("err = %v, want image.ErrFormat in chain", err)
	}
}

// =============================================================================
// Scaling
// =============================================================================

func TestScale(t *testing.T) {
	t.Run("nearest", func(t *testing.T) {
		src := newRGB8(2, 1)
		src.PutPixel(0, 0, pixel.NewRGB[uint8](10, 10, 10))
		src.PutPixel(1, 0, pixel.NewRGB[uint8](200, 200, 200))
		dst := newRGB8(4, 2)
		Scale(dst, src.ReadOnly(), draw.NearestNeighbor)
		for pt, p := range dst.All() {
			want := src.GetPixel(pt.X/2, 0)
			if p != want {
				t.Errorf("%v = %v, want %v", pt, p, want)
			}
		}
	})

	t.Run("constant field", func(t *testing.T) {
		c := pixel.NewRGBA[uint8](10, 80, 255, 255)
		src := surface.NewBlack[uint8, pixel.RGBA[uint8], format.RGBAPlanar[uint8]](5, 3)
		src.Fill(c)
		for _, q := range []draw.Interpolator{nil, draw.ApproxBiLinear, draw.CatmullRom} {
			dst := surface.NewBlack[uint8, pixel.RGBA[uint8], format.RGBA[uint8]](9, 7)
			Scale(dst, src.ReadOnly(), q)
			for p := range dst.Pixels() {
				if p != c {
					t.Fatalf("%T: pixel = %v, want %v", q, p, c)
				}
			}
		}
	})
}

func BenchmarkReadPPM(b *testing.B) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, newRGB8(256, 256).ReadOnly(), 255); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ReadPPM[uint8, format.RGB[uint8]](bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
