package kernel

import (
	"fmt"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/internal/parallel"
	"github.com/gogpu/pixbuf/pixel"
	"github.com/gogpu/pixbuf/surface"
)

// Option configures RunParallel.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers runs the pass on a dedicated pool of n goroutines instead of
// the shared pool.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func checkSameSize(sw, sh, dw, dh int) {
	if sw != dw || sh != dh {
		panic(fmt.Sprintf("kernel: source %dx%d and destination %dx%d differ", sw, sh, dw, dh))
	}
}

// Run applies k to every interior pixel of src and writes the results to
// dst. Border pixels of dst are not written. src and dst must have equal
// dimensions and must not share storage.
func Run[C channel.Channel, P pixel.Pixel[C, P], FI format.Format[C, P], FO format.Format[C, P]](
	k Kernel3x3[C, P], src *surface.View[C, P, FI], dst *surface.Surface[C, P, FO],
) {
	checkSameSize(src.Width(), src.Height(), dst.Width(), dst.Height())
	if src.Width() < 3 || src.Height() < 3 {
		return
	}
	pixbuf.Logger().Debug("kernel: pass", "source", src.String(), "destination", dst.String())
	runRows(k, src, dst, 1, src.Height()-1)
}

// runRows processes interior rows [y0, y1). The neighborhood slides one
// column per step, so each source pixel is read three times per row.
func runRows[C channel.Channel, P pixel.Pixel[C, P], FI format.Format[C, P], FO format.Format[C, P]](
	k Kernel3x3[C, P], src *surface.View[C, P, FI], dst *surface.Surface[C, P, FO], y0, y1 int,
) {
	w := src.Width()
	var n [9]P
	for y := y0; y < y1; y++ {
		for dy := range 3 {
			n[dy*3+1] = src.GetPixel(0, y+dy-1)
			n[dy*3+2] = src.GetPixel(1, y+dy-1)
		}
		for x := 1; x < w-1; x++ {
			for dy := range 3 {
				r := dy * 3
				n[r], n[r+1] = n[r+1], n[r+2]
				n[r+2] = src.GetPixel(x+1, y+dy-1)
			}
			dst.PutPixel(x, y, k.Execute(&n))
		}
	}
}

// RunParallel is Run split into row bands processed concurrently. Band
// boundaries fall on even rows, so pixels sharing chroma in vertically
// subsampled destinations are always written by the same band.
func RunParallel[C channel.Channel, P pixel.Pixel[C, P], FI format.Format[C, P], FO format.Format[C, P]](
	k Kernel3x3[C, P], src *surface.View[C, P, FI], dst *surface.Surface[C, P, FO], opts ...Option,
) {
	checkSameSize(src.Width(), src.Height(), dst.Width(), dst.Height())
	if src.Width() < 3 || src.Height() < 3 {
		return
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	pool := parallel.Default()
	if o.workers > 0 {
		pool = parallel.NewWorkerPool(o.workers)
		defer pool.Close()
	}

	bands := parallel.Bands(1, src.Height()-1, pool.Workers(), 2)
	pixbuf.Logger().Debug("kernel: parallel pass",
		"source", src.String(), "bands", len(bands), "workers", pool.Workers())
	parallel.ForBands(pool, bands, func(b parallel.Band) {
		runRows(k, src, dst, b.Start, b.End)
	})
}
