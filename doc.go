// Package pixbuf is a low-level pixel buffer engine.
//
// # Overview
//
// pixbuf separates logical pixel access (read or write the pixel at (x, y) in
// some color model) from the physical byte layout that stores it. The same
// Surface type can sit on packed, planar, chroma-subsampled, or cache-tiled
// memory, and pixel access, format conversion, and 3x3 filtering do not
// allocate in the hot path.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/pixbuf/format"
//	    "github.com/gogpu/pixbuf/kernel"
//	    "github.com/gogpu/pixbuf/pixel"
//	    "github.com/gogpu/pixbuf/surface"
//	)
//
//	src := surface.NewBlack[uint8, pixel.RGB[uint8], format.RGB[uint8]](640, 480)
//	src.PutPixel(10, 10, pixel.NewRGB[uint8](255, 0, 0))
//
//	dst := surface.NewBlack[uint8, pixel.RGB[uint8], format.RGB[uint8]](640, 480)
//	kernel.Run(kernel.Sobel3x3[uint8, pixel.RGB[uint8]]{}, src.ReadOnly(), dst)
//
// # Architecture
//
// Packages are layered leaves first:
//   - channel: numeric channel types, saturating arithmetic, depth rescaling
//   - pixel: Luma, LumaAlpha, RGB, RGBA and YUV pixel values
//   - format: stateless layout tags mapping (x, y) to element offsets
//   - surface: width x height buffers parameterized by channel, pixel and format
//   - tile: row-major and zigzag topologies, tiled grids, parallel tile work
//   - kernel, convert, compose: pixel operations built on surfaces
//   - imageio: loading external pixel streams, std image interop
//
// # Errors
//
// Contract violations (storage size mismatch, odd dimensions for subsampled
// formats, out-of-range coordinates) panic. Only data crossing the loader
// boundary produces errors, see package imageio.
package pixbuf

// Version is the pixbuf release, reported by cmd/pixbuf -version.
const Version = "0.1.0"
