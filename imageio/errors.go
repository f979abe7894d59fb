// Package imageio moves pixels between surfaces and the outside world.
//
// A [PixelSource] is a stream of RGB sample triples with a declared maximum
// sample value. [Load] drains one into a surface, rejecting sources whose
// depth exceeds what the target channel can hold. [PPMReader] is a
// PixelSource for binary (P6) and plain (P3) PPM files.
//
// For other file formats [Decode] goes through the standard image registry
// with BMP, TIFF, WebP and PPM decoders registered, and [FromImage] copies
// the result into a surface. [Image] and [DrawImage] expose surfaces to the
// image and x/image/draw APIs, which [Scale] uses for resampling.
//
// [WriteRaw] and [ReadRaw] store a surface's elements in their exact
// format layout, zstd-compressed.
package imageio

import "errors"

// Sentinel errors. Use errors.Is to test for them.
var (
	// ErrOverflow reports a source whose maximum sample value exceeds the
	// range of the target channel.
	ErrOverflow = errors.New("imageio: sample depth overflows channel")

	// ErrUnsupportedFormat reports an input in no recognised format.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrTruncated reports pixel data that ended early or could not be
	// decompressed.
	ErrTruncated = errors.New("imageio: truncated pixel data")

	// ErrInvalidHeader reports a malformed or out-of-range header field.
	ErrInvalidHeader = errors.New("imageio: invalid header")

	// ErrSampleRange reports a sample larger than the declared maximum.
	ErrSampleRange = errors.New("imageio: sample exceeds declared maximum")
)
