// Command pixbuf runs pixbuf operators over an image file.
//
// Usage:
//
//	pixbuf -in photo.ppm -op sobel -out edges.png
//
// Inputs may be PPM, PNG, JPEG, GIF, BMP, TIFF or WebP. The output format
// follows the -out extension: .ppm writes binary PPM, anything else PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/compose"
	"github.com/gogpu/pixbuf/convert"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/imageio"
	"github.com/gogpu/pixbuf/kernel"
	"github.com/gogpu/pixbuf/pixel"
	"github.com/gogpu/pixbuf/surface"
	"github.com/gogpu/pixbuf/tile"
)

type rgbSurface = surface.Surface[uint8, pixel.RGB[uint8], format.RGB[uint8]]

func main() {
	var (
		in      = flag.String("in", "", "input image")
		out     = flag.String("out", "out.png", "output file (.png or .ppm)")
		op      = flag.String("op", "sobel", "operator: sobel, average, edges, invert, yuv, scale")
		workers = flag.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		width   = flag.Int("width", 0, "scale: output width")
		height  = flag.Int("height", 0, "scale: output height")
		nearest = flag.Bool("nearest", false, "scale: nearest-neighbor sampling")
		verbose = flag.Bool("v", false, "debug logging")
		version = flag.Bool("version", false, "print the version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println("pixbuf", pixbuf.Version)
		return
	}

	if *verbose {
		pixbuf.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	src, err := load(*in)
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}

	var kopts []kernel.Option
	var topts []tile.Option
	if *workers > 0 {
		kopts = append(kopts, kernel.WithWorkers(*workers))
		topts = append(topts, tile.WithWorkers(*workers))
	}

	var result writable
	switch *op {
	case "sobel":
		luma := surface.ToLuma(src.ReadOnly())
		dst := surface.NewBlack[uint8, pixel.Luma[uint8], format.Luma[uint8]](luma.Width(), luma.Height())
		kernel.RunLuma8(kernel.Luma8Sobel{}, luma.ReadOnly(), dst)
		result = lumaResult{dst}
	case "average":
		dst := src.Clone()
		kernel.RunParallel(kernel.Average3x3[uint8, pixel.RGB[uint8]]{}, src.ReadOnly(), dst, kopts...)
		result = rgbResult{dst}
	case "edges":
		// Gradient lost to a 3x3 blur: |sobel(Y) - sobel(blur(Y))|.
		yuv := convert.RGBToYUV444(src.ReadOnly())
		luma := surface.ExtractLuma(yuv.ReadOnly())
		blurred := luma.Clone()
		kernel.RunParallel(kernel.Average3x3[uint8, pixel.Luma[uint8]]{}, luma, blurred, kopts...)
		pool := surface.NewPool[uint8, pixel.Luma[uint8], format.Luma[uint8]](2)
		raw := pool.Get(luma.Width(), luma.Height())
		smooth := pool.Get(luma.Width(), luma.Height())
		kernel.RunLuma8(kernel.Luma8Sobel{}, luma, raw)
		kernel.RunLuma8(kernel.Luma8Sobel{}, blurred.ReadOnly(), smooth)
		result = lumaResult{compose.Compose(raw.ReadOnly(), smooth.ReadOnly(), compose.AbsoluteDiff)}
		pool.Put(raw)
		pool.Put(smooth)
	case "invert":
		grid := tile.FromSurface(src.ReadOnly(), topts...)
		grid.ProcessParallel(func(t *tile.Tile[pixel.RGB[uint8]]) {
			for pt, p := range t.Pixels() {
				t.Set(pt.X, pt.Y, pixel.RGB[uint8]{R: 255 - p.R, G: 255 - p.G, B: 255 - p.B})
			}
		})
		dst := src.Clone()
		tile.ToSurface(grid, dst)
		result = rgbResult{dst}
	case "yuv":
		yuv := convert.RGBToYUV444(src.ReadOnly())
		result = rgbResult{convert.YUV444ToRGB(yuv.ReadOnly())}
	case "scale":
		if *width <= 0 || *height <= 0 {
			log.Fatalf("scale needs -width and -height")
		}
		dst := surface.NewBlack[uint8, pixel.RGB[uint8], format.RGB[uint8]](*width, *height)
		if *nearest {
			surface.ResizeNearest(dst, src.ReadOnly())
		} else {
			imageio.Scale(dst, src.ReadOnly(), draw.CatmullRom)
		}
		result = rgbResult{dst}
	default:
		log.Fatalf("unknown operator %q", *op)
	}

	if err := save(*out, result); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("%s saved to %s\n", *op, *out)
}

func load(path string) (*rgbSurface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, _, err := imageio.DecodeSurface[uint8, pixel.RGB[uint8], format.RGB[uint8]](f)
	return s, err
}

// writable is an operator result that can be encoded.
type writable interface {
	encodePNG(f *os.File) error
	encodePPM(f *os.File) error
}

type rgbResult struct{ s *rgbSurface }

func (r rgbResult) encodePNG(f *os.File) error { return png.Encode(f, imageio.NewImage(r.s.ReadOnly())) }
func (r rgbResult) encodePPM(f *os.File) error { return imageio.WritePPM(f, r.s.ReadOnly(), 255) }

type lumaResult struct{ s *surface.LumaSurface[uint8] }

func (r lumaResult) encodePNG(f *os.File) error { return png.Encode(f, imageio.NewImage(r.s.ReadOnly())) }
func (r lumaResult) encodePPM(f *os.File) error { return imageio.WritePPM(f, r.s.ReadOnly(), 255) }

func save(path string, r writable) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		err = r.encodePPM(f)
	default:
		err = r.encodePNG(f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
