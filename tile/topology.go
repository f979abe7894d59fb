// Package tile provides cache-tiled addressing and tile partitioning.
//
// A [Topology] converts between a logical (x, y) and a linear storage offset.
// [Lines] is plain row-major order. [Zig] groups pixels into fixed-size
// boxes stored contiguously, boxes enumerated row-major and pixels inside a
// box row-major, so box-shaped access patterns touch few cache lines:
//
//	tileX, tileY   = x / TW, y / TH
//	innerX, innerY = x % TW, y % TH
//	offset = (tileY*tilesAcross + tileX)*TW*TH + innerY*TW + innerX
//
// Storage under Zig is padded up to whole boxes in both dimensions. The
// padding is never reachable through coordinates.
//
// A [Grid] is a pixel buffer in Zig order. Its tiles are disjoint, which
// is what makes [Grid.ProcessParallel] safe without locks.
package tile

import (
	"fmt"
	"image"
	"iter"
)

// Topology maps logical coordinates to storage offsets.
type Topology interface {
	// BufferSize returns the number of storage slots a w x h image needs.
	BufferSize(w, h int) int

	// Offset returns the storage offset of (x, y).
	Offset(w, h, x, y int) int

	// Position is the inverse of Offset.
	Position(w, h, offset int) (x, y int)
}

func checkPoint(w, h, x, y int) {
	if x < 0 || y < 0 || x >= w || y >= h {
		panic(fmt.Sprintf("tile: point (%d, %d) out of bounds %dx%d", x, y, w, h))
	}
}

// Lines is row-major order.
type Lines struct{}

func (Lines) BufferSize(w, h int) int { return w * h }

func (Lines) Offset(w, h, x, y int) int {
	checkPoint(w, h, x, y)
	return y*w + x
}

func (Lines) Position(w, h, offset int) (x, y int) {
	if offset < 0 || offset >= w*h {
		panic(fmt.Sprintf("tile: offset %d out of range for %dx%d", offset, w, h))
	}
	return offset % w, offset / w
}

// Zig is tile-major order with row-major order inside each box. The zero
// value uses DefaultWidth x DefaultHeight boxes.
type Zig struct {
	TileW, TileH int
}

// NewZig returns a Zig topology configured by opts. Only WithTileSize is
// relevant.
func NewZig(opts ...Option) Zig {
	o := buildOptions(opts)
	return Zig{TileW: o.tileW, TileH: o.tileH}
}

func (z Zig) box() (tw, th int) {
	if z.TileW <= 0 || z.TileH <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return z.TileW, z.TileH
}

// PaddedSize rounds w and h up to whole boxes.
func (z Zig) PaddedSize(w, h int) (pw, ph int) {
	tw, th := z.box()
	return (w + tw - 1) / tw * tw, (h + th - 1) / th * th
}

// TileCount returns the number of boxes across and down.
func (z Zig) TileCount(w, h int) (across, down int) {
	tw, th := z.box()
	return (w + tw - 1) / tw, (h + th - 1) / th
}

func (z Zig) BufferSize(w, h int) int {
	pw, ph := z.PaddedSize(w, h)
	return pw * ph
}

func (z Zig) Offset(w, h, x, y int) int {
	checkPoint(w, h, x, y)
	tw, th := z.box()
	across, _ := z.TileCount(w, h)
	tile := (y/th)*across + x/tw
	return tile*tw*th + (y%th)*tw + x%tw
}

// Position returns the coordinates stored at offset. Offsets inside the
// padding map to coordinates outside w x h.
func (z Zig) Position(w, h, offset int) (x, y int) {
	if offset < 0 || offset >= z.BufferSize(w, h) {
		panic(fmt.Sprintf("tile: offset %d out of range for %dx%d", offset, w, h))
	}
	tw, th := z.box()
	across, _ := z.TileCount(w, h)
	tile, inner := offset/(tw*th), offset%(tw*th)
	return (tile%across)*tw + inner%tw, (tile/across)*th + inner/tw
}

// Coords yields the in-bounds coordinates of a w x h image in storage
// order, skipping padding.
func (z Zig) Coords(w, h int) iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		tw, th := z.box()
		across, down := z.TileCount(w, h)
		for ty := range down {
			for tx := range across {
				r := image.Rect(tx*tw, ty*th, (tx+1)*tw, (ty+1)*th).Intersect(image.Rect(0, 0, w, h))
				for y := r.Min.Y; y < r.Max.Y; y++ {
					for x := r.Min.X; x < r.Max.X; x++ {
						if !yield(image.Pt(x, y)) {
							return
						}
					}
				}
			}
		}
	}
}

var (
	_ Topology = Lines{}
	_ Topology = Zig{}
)
