package tile

import "fmt"

// Default box size of the zigzag topology. A 128x8 box of 8-bit RGB is 3 KiB
// and keeps a 3x3 neighborhood within two or three boxes.
const (
	DefaultWidth  = 128
	DefaultHeight = 8
)

// Option configures tiling and parallel tile processing.
//
// Example:
//
//	g := tile.NewGrid[pixel.RGB[uint8]](1920, 1080,
//	    tile.WithTileSize(64, 16),
//	    tile.WithWorkers(4))
type Option func(*options)

type options struct {
	tileW   int
	tileH   int
	workers int
}

func defaultOptions() options {
	return options{
		tileW:   DefaultWidth,
		tileH:   DefaultHeight,
		workers: 0, // shared pool
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTileSize sets the box size. Both dimensions must be positive.
func WithTileSize(w, h int) Option {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("tile: invalid tile size %dx%d", w, h))
	}
	return func(o *options) {
		o.tileW, o.tileH = w, h
	}
}

// WithWorkers sets the number of goroutines used by ProcessParallel. Without
// it a process-wide pool sized to GOMAXPROCS is shared.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
