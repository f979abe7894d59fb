package kernel

import (
	"math/rand/v2"
	"runtime"
	"testing"
	"time"

	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/pixel"
	"github.com/gogpu/pixbuf/surface"
	"github.com/gogpu/pixbuf/tile"
)

type (
	rgb8Surface  = surface.Surface[uint8, pixel.RGB[uint8], format.RGB[uint8]]
	luma8Surface = surface.LumaSurface[uint8]
)

func newRGB8(w, h int) *rgb8Surface {
	return surface.NewBlack[uint8, pixel.RGB[uint8], format.RGB[uint8]](w, h)
}

func newLuma8(w, h int) *luma8Surface {
	return surface.NewBlack[uint8, pixel.Luma[uint8], format.Luma[uint8]](w, h)
}

func randomLuma8(w, h int, seed uint64) *luma8Surface {
	s := newLuma8(w, h)
	r := rand.New(rand.NewPCG(seed, 1))
	for i := range s.Data() {
		s.Data()[i] = uint8(r.IntN(256))
	}
	return s
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// =============================================================================
// Constant fields
// =============================================================================

func TestAverage3x3_ConstantField(t *testing.T) {
	red := pixel.NewRGB[uint8](255, 0, 0)
	src := newRGB8(10, 10)
	src.Fill(red)
	dst := newRGB8(10, 10)

	Run(Average3x3[uint8, pixel.RGB[uint8]]{}, src.ReadOnly(), dst)

	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			if got := dst.GetPixel(x, y); got != red {
				t.Fatalf("(%d, %d) = %v, want %v", x, y, got, red)
			}
		}
	}
}

func TestConstantField_AllWidths(t *testing.T) {
	t.Run("u16 average", func(t *testing.T) {
		c := pixel.NewRGB[uint16](12345, 65535, 1)
		src := surface.NewBlack[uint16, pixel.RGB[uint16], format.RGBPlanar[uint16]](6, 5)
		src.Fill(c)
		dst := surface.NewBlack[uint16, pixel.RGB[uint16], format.RGB[uint16]](6, 5)
		Run(Average3x3[uint16, pixel.RGB[uint16]]{}, src.ReadOnly(), dst)
		if got := dst.GetPixel(3, 2); got != c {
			t.Errorf("interior = %v, want %v", got, c)
		}
	})

	t.Run("u8 sobel", func(t *testing.T) {
		src := newRGB8(7, 7)
		src.Fill(pixel.NewRGB[uint8](90, 180, 33))
		dst := newRGB8(7, 7)
		dst.Fill(pixel.NewRGB[uint8](1, 1, 1))
		Run(Sobel3x3[uint8, pixel.RGB[uint8]]{}, src.ReadOnly(), dst)
		for y := 1; y < 6; y++ {
			for x := 1; x < 6; x++ {
				if got := dst.GetPixel(x, y); got != (pixel.RGB[uint8]{}) {
					t.Fatalf("(%d, %d) = %v, want zero gradient", x, y, got)
				}
			}
		}
	})

	t.Run("float sobel", func(t *testing.T) {
		src := surface.NewBlack[float32, pixel.Luma[float32], format.Luma[float32]](4, 4)
		src.Fill(pixel.NewLuma[float32](0.25))
		dst := surface.NewBlack[float32, pixel.Luma[float32], format.Luma[float32]](4, 4)
		Run(Sobel3x3[float32, pixel.Luma[float32]]{}, src.ReadOnly(), dst)
		if got := dst.GetPixel(1, 2).Y; got != 0 {
			t.Errorf("interior = %v, want 0", got)
		}
	})

	t.Run("yuv420 average", func(t *testing.T) {
		c := pixel.NewYUV[uint8](100, 90, 200)
		src := surface.NewBlack[uint8, pixel.YUV[uint8], format.YUV420Planar[uint8]](8, 8)
		src.Fill(c)
		dst := surface.NewBlack[uint8, pixel.YUV[uint8], format.YUV420Planar[uint8]](8, 8)
		Run(Average3x3[uint8, pixel.YUV[uint8]]{}, src.ReadOnly(), dst)
		if got := dst.GetPixel(4, 4); got != c {
			t.Errorf("interior = %v, want %v", got, c)
		}
	})
}

// =============================================================================
// Driver behavior
// =============================================================================

func TestRun_BorderUntouched(t *testing.T) {
	src := newRGB8(5, 4)
	src.Fill(pixel.NewRGB[uint8](10, 10, 10))
	marker := pixel.NewRGB[uint8](1, 2, 3)
	dst := newRGB8(5, 4)
	dst.Fill(marker)

	Run(Average3x3[uint8, pixel.RGB[uint8]]{}, src.ReadOnly(), dst)

	for pt, p := range dst.All() {
		border := pt.X == 0 || pt.Y == 0 || pt.X == 4 || pt.Y == 3
		if border && p != marker {
			t.Errorf("border %v overwritten with %v", pt, p)
		}
		if !border && p == marker {
			t.Errorf("interior %v not written", pt)
		}
	}
}

func TestRun_SizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Run(Average3x3[uint8, pixel.RGB[uint8]]{}, newRGB8(4, 4).ReadOnly(), newRGB8(4, 5))
}

func TestRun_TinySurface(t *testing.T) {
	src := newRGB8(2, 9)
	dst := newRGB8(2, 9)
	Run(Sobel3x3[uint8, pixel.RGB[uint8]]{}, src.ReadOnly(), dst)
	RunParallel(Sobel3x3[uint8, pixel.RGB[uint8]]{}, src.ReadOnly(), dst)
}

func TestAverage3x3_Truncates(t *testing.T) {
	src := newLuma8(3, 3)
	copy(src.Data(), []uint8{0, 0, 0, 0, 255, 0, 0, 0, 0})
	dst := newLuma8(3, 3)
	Run(Average3x3[uint8, pixel.Luma[uint8]]{}, src.ReadOnly(), dst)
	// 65535/9 = 7281.67 truncates to 7281, which is 28.33 at 8 bits.
	if got := dst.GetPixel(1, 1).Y; got != 28 {
		t.Errorf("average = %d, want 28", got)
	}
}

func TestSobel3x3_Edge(t *testing.T) {
	src := newLuma8(4, 3)
	copy(src.Data(), []uint8{
		0, 0, 255, 255,
		0, 0, 255, 255,
		0, 0, 255, 255,
	})
	dst := newLuma8(4, 3)
	Run(Sobel3x3[uint8, pixel.Luma[uint8]]{}, src.ReadOnly(), dst)
	if got := dst.GetPixel(1, 1).Y; got != 255 {
		t.Errorf("edge magnitude = %d, want 255 (clamped)", got)
	}
}

func TestSobel_Magnitude(t *testing.T) {
	// gx = 2, gy = 2.
	v := [9]int64{
		0, 0, 1,
		0, 0, 1,
		1, 1, 0,
	}
	if got := sobel(&v, 255); got != 3 {
		t.Errorf("sobel = %d, want round(sqrt(8)) = 3", got)
	}
}

// =============================================================================
// Parallel driver
// =============================================================================

func TestRunParallel_MatchesRun(t *testing.T) {
	src := surface.NewBlack[uint8, pixel.YUV[uint8], format.YUV420Planar[uint8]](34, 26)
	r := rand.New(rand.NewPCG(7, 7))
	for pt := range src.All() {
		src.PutPixel(pt.X, pt.Y, pixel.NewYUV(uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256))))
	}

	want := surface.NewBlack[uint8, pixel.YUV[uint8], format.YUV444Packed[uint8]](34, 26)
	Run(Sobel3x3[uint8, pixel.YUV[uint8]]{}, src.ReadOnly(), want)

	for _, opts := range [][]Option{nil, {WithWorkers(3)}, {WithWorkers(64)}} {
		got := surface.NewBlack[uint8, pixel.YUV[uint8], format.YUV444Packed[uint8]](34, 26)
		RunParallel(Sobel3x3[uint8, pixel.YUV[uint8]]{}, src.ReadOnly(), got, opts...)
		for pt, p := range got.All() {
			if w := want.GetPixel(pt.X, pt.Y); p != w {
				t.Fatalf("opts %d: %v = %v, want %v", len(opts), pt, p, w)
			}
		}
	}
}

func TestRunParallel_SubsampledDestination(t *testing.T) {
	src := surface.NewBlack[uint8, pixel.YUV[uint8], format.YUV444Planar[uint8]](16, 16)
	src.Fill(pixel.NewYUV[uint8](50, 60, 70))

	seq := surface.NewBlack[uint8, pixel.YUV[uint8], format.YUV420Planar[uint8]](16, 16)
	Run(Average3x3[uint8, pixel.YUV[uint8]]{}, src.ReadOnly(), seq)
	par := surface.NewBlack[uint8, pixel.YUV[uint8], format.YUV420Planar[uint8]](16, 16)
	RunParallel(Average3x3[uint8, pixel.YUV[uint8]]{}, src.ReadOnly(), par, WithWorkers(4))

	a, b := surface.Bytes(seq.ReadOnly()), surface.Bytes(par.ReadOnly())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("byte %d: sequential %d, parallel %d", i, a[i], b[i])
		}
	}
}

// A tile job may itself run a parallel kernel pass. Both drivers share the
// default pool.
func TestRunParallel_InsideProcessParallel(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))

	src := randomLuma8(64, 64, 11)
	want := newLuma8(64, 64)
	Run(Average3x3[uint8, pixel.Luma[uint8]]{}, src.ReadOnly(), want)

	grid := tile.NewGrid[int](512, 64)
	outs := make(map[int]*luma8Surface)
	for tl := range grid.TilesMut() {
		outs[tl.Index()] = newLuma8(64, 64)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		grid.ProcessParallel(func(tl *tile.Tile[int]) {
			RunParallel(Average3x3[uint8, pixel.Luma[uint8]]{}, src.ReadOnly(), outs[tl.Index()])
		})
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("RunParallel inside ProcessParallel did not return")
	}

	for i, out := range outs {
		for pt, p := range out.All() {
			if w := want.GetPixel(pt.X, pt.Y); p != w {
				t.Fatalf("tile %d: %v = %v, want %v", i, pt, p, w)
			}
		}
	}
}

// =============================================================================
// Luma8 fast path
// =============================================================================

func TestLuma8_Kernels(t *testing.T) {
	flat := [9]uint8{40, 40, 40, 40, 40, 40, 40, 40, 40}
	if got := (Luma8Average{}).Execute(&flat); got != 40 {
		t.Errorf("Luma8Average(flat) = %d", got)
	}
	if got := (Luma8Sobel{}).Execute(&flat); got != 0 {
		t.Errorf("Luma8Sobel(flat) = %d", got)
	}
	ramp := [9]uint8{0, 1, 2, 0, 1, 2, 0, 1, 2}
	if got := (Luma8Sobel{}).Execute(&ramp); got != 8 {
		t.Errorf("Luma8Sobel(ramp) = %d, want 8", got)
	}
	if got := (Luma8Average{}).Execute(&ramp); got != 1 {
		t.Errorf("Luma8Average(ramp) = %d, want 1", got)
	}
}

func TestRunLuma8_MatchesGeneric(t *testing.T) {
	src := randomLuma8(23, 17, 3)

	pairs := []struct {
		name    string
		fast    Luma8Kernel
		generic Kernel3x3[uint8, pixel.Luma[uint8]]
	}{
		{"sobel", Luma8Sobel{}, Sobel3x3[uint8, pixel.Luma[uint8]]{}},
		{"average", Luma8Average{}, Average3x3[uint8, pixel.Luma[uint8]]{}},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			fast := newLuma8(23, 17)
			RunLuma8(p.fast, src.ReadOnly(), fast)
			gen := newLuma8(23, 17)
			Run(p.generic, src.ReadOnly(), gen)
			// The generic path rounds through 16 bits; allow one step.
			for i, v := range fast.Data() {
				if d := absDiff(v, gen.Data()[i]); d > 1 {
					t.Fatalf("sample %d: fast %d, generic %d", i, v, gen.Data()[i])
				}
			}
		})
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkSobel3x3_RGB8(b *testing.B) {
	src := newRGB8(256, 256)
	dst := newRGB8(256, 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Run(Sobel3x3[uint8, pixel.RGB[uint8]]{}, src.ReadOnly(), dst)
	}
}

func BenchmarkRunLuma8_Sobel(b *testing.B) {
	src := randomLuma8(640, 480, 1)
	dst := newLuma8(640, 480)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunLuma8(Luma8Sobel{}, src.ReadOnly(), dst)
	}
}
