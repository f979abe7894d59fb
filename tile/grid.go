package tile

import (
	"fmt"
	"image"
	"iter"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/internal/parallel"
	"github.com/gogpu/pixbuf/surface"
)

// Grid is a w x h pixel buffer stored in Zig order.
//
// The backing slice is padded to whole boxes. Padding slots hold the zero
// value of P and are not reachable through At, Set or tile iteration.
//
// Thread safety: Grid is not safe for concurrent use, except through the
// disjoint tiles handed out by ProcessParallel.
type Grid[P any] struct {
	width   int
	height  int
	zig     Zig
	workers int
	data    []P
}

// NewGrid allocates a zero-filled grid.
func NewGrid[P any](w, h int, opts ...Option) *Grid[P] {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("tile: negative dimensions %dx%d", w, h))
	}
	o := buildOptions(opts)
	z := Zig{TileW: o.tileW, TileH: o.tileH}
	g := &Grid[P]{
		width:   w,
		height:  h,
		zig:     z,
		workers: o.workers,
		data:    make([]P, z.BufferSize(w, h)),
	}
	across, down := z.TileCount(w, h)
	pixbuf.Logger().Debug("tile: grid allocated",
		"width", w, "height", h, "tile_w", z.TileW, "tile_h", z.TileH,
		"tiles", across*down, "padding", len(g.data)-w*h)
	return g
}

// Width returns the logical width.
func (g *Grid[P]) Width() int { return g.width }

// Height returns the logical height.
func (g *Grid[P]) Height() int { return g.height }

// Topology returns the grid's addressing scheme.
func (g *Grid[P]) Topology() Zig { return g.zig }

// Data returns the padded backing slice in storage order.
func (g *Grid[P]) Data() []P { return g.data }

// At returns the pixel at (x, y).
func (g *Grid[P]) At(x, y int) P { return g.data[g.zig.Offset(g.width, g.height, x, y)] }

// Set writes the pixel at (x, y).
func (g *Grid[P]) Set(x, y int, p P) { g.data[g.zig.Offset(g.width, g.height, x, y)] = p }

// Fill writes p to every in-bounds pixel.
func (g *Grid[P]) Fill(p P) {
	for t := range g.TilesMut() {
		for pt := range t.Points() {
			t.Set(pt.X, pt.Y, p)
		}
	}
}

// TileView is a read-only box of a grid.
type TileView[P any] struct {
	index  int
	origin image.Point
	rect   image.Rectangle
	tw     int
	data   []P
}

// Tile is a writable box of a grid. Tiles of one grid never share storage.
type Tile[P any] struct {
	TileView[P]
}

// Index returns the tile's position in storage order.
func (t *TileView[P]) Index() int { return t.index }

// Bounds returns the tile rectangle in grid coordinates, clipped to the
// grid's logical size.
func (t *TileView[P]) Bounds() image.Rectangle { return t.rect }

func (t *TileView[P]) offset(x, y int) int {
	if !(image.Point{X: x, Y: y}).In(t.rect) {
		panic(fmt.Sprintf("tile: point (%d, %d) outside tile %v", x, y, t.rect))
	}
	return (y-t.origin.Y)*t.tw + (x - t.origin.X)
}

// At returns the pixel at grid coordinates (x, y), which must lie inside
// the tile.
func (t *TileView[P]) At(x, y int) P { return t.data[t.offset(x, y)] }

// Points yields the in-bounds coordinates of the tile in row-major order.
func (t *TileView[P]) Points() iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		for y := t.rect.Min.Y; y < t.rect.Max.Y; y++ {
			for x := t.rect.Min.X; x < t.rect.Max.X; x++ {
				if !yield(image.Pt(x, y)) {
					return
				}
			}
		}
	}
}

// Pixels yields the in-bounds pixels of the tile with their grid
// coordinates.
func (t *TileView[P]) Pixels() iter.Seq2[image.Point, P] {
	return func(yield func(image.Point, P) bool) {
		for pt := range t.Points() {
			if !yield(pt, t.data[(pt.Y-t.origin.Y)*t.tw+pt.X-t.origin.X]) {
				return
			}
		}
	}
}

// Set writes the pixel at grid coordinates (x, y), which must lie inside
// the tile.
func (t *Tile[P]) Set(x, y int, p P) { t.data[t.offset(x, y)] = p }

// tileAt builds the view of storage chunk i.
func (g *Grid[P]) tileAt(i int) TileView[P] {
	tw, th := g.zig.box()
	across, _ := g.zig.TileCount(g.width, g.height)
	origin := image.Pt((i%across)*tw, (i/across)*th)
	rect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(tw, th))}.
		Intersect(image.Rect(0, 0, g.width, g.height))
	n := tw * th
	return TileView[P]{
		index:  i,
		origin: origin,
		rect:   rect,
		tw:     tw,
		data:   g.data[i*n : (i+1)*n : (i+1)*n],
	}
}

func (g *Grid[P]) tileCount() int {
	across, down := g.zig.TileCount(g.width, g.height)
	return across * down
}

// Tiles yields read-only views of every tile in storage order.
func (g *Grid[P]) Tiles() iter.Seq[*TileView[P]] {
	return func(yield func(*TileView[P]) bool) {
		for i := range g.tileCount() {
			v := g.tileAt(i)
			if !yield(&v) {
				return
			}
		}
	}
}

// TilesMut yields writable views of every tile in storage order.
func (g *Grid[P]) TilesMut() iter.Seq[*Tile[P]] {
	return func(yield func(*Tile[P]) bool) {
		for i := range g.tileCount() {
			t := &Tile[P]{TileView: g.tileAt(i)}
			if !yield(t) {
				return
			}
		}
	}
}

// ProcessParallel calls fn once per tile, concurrently. Tiles are created
// on the calling goroutine before any worker starts, and fn may only touch
// the tile it was given. ProcessParallel returns when every call has
// finished.
func (g *Grid[P]) ProcessParallel(fn func(t *Tile[P])) {
	var jobs []func()
	for t := range g.TilesMut() {
		jobs = append(jobs, func() { fn(t) })
	}

	pool := parallel.Default()
	if g.workers > 0 {
		pool = parallel.NewWorkerPool(g.workers)
		defer pool.Close()
	}
	pixbuf.Logger().Debug("tile: parallel pass", "tiles", len(jobs), "workers", pool.Workers())
	pool.ExecuteAll(jobs)
}

// FromSurface copies a surface into a new grid.
func FromSurface[C channel.Channel, P any, F format.Format[C, P]](s *surface.View[C, P, F], opts ...Option) *Grid[P] {
	g := NewGrid[P](s.Width(), s.Height(), opts...)
	for t := range g.TilesMut() {
		for pt := range t.Points() {
			t.Set(pt.X, pt.Y, s.GetPixel(pt.X, pt.Y))
		}
	}
	return g
}

// ToSurface copies every pixel of g into dst. The dimensions must match.
func ToSurface[C channel.Channel, P any, F format.Format[C, P]](g *Grid[P], dst *surface.Surface[C, P, F]) {
	if g.width != dst.Width() || g.height != dst.Height() {
		panic(fmt.Sprintf("tile: merge %dx%d grid into %dx%d surface", g.width, g.height, dst.Width(), dst.Height()))
	}
	for t := range g.Tiles() {
		for pt, p := range t.Pixels() {
			dst.PutPixel(pt.X, pt.Y, p)
		}
	}
}
