// Package channel provides the numeric element types that make up a pixel.
//
// A channel is one color or intensity component: the red byte of an RGB
// pixel, the luma sample of a YUV pixel. Integer channels span their full
// unsigned range and saturate on add and subtract. Floating point channels
// span [0, 1] nominally but are not clamped.
//
// Depth rescaling between arbitrary integer ranges goes through
// [ToNormalized] and [FromNormalized], which kernels and color transforms use
// to work in a common intermediate domain regardless of channel width.
package channel

import (
	"fmt"
	"math"
)

// Channel is the set of numeric types usable as pixel channels.
//
// Named types with these underlying types satisfy the constraint, but depth
// conversion is only implemented for the predeclared types themselves.
type Channel interface {
	~uint8 | ~uint16 | ~uint32 | ~float32 | ~float64
}

// Min returns the smallest representable channel value (black).
func Min[C Channel]() C {
	return 0
}

// Max returns the largest representable channel value (full intensity).
// Floating point channels return 1.
func Max[C Channel]() C {
	var zero C
	switch any(zero).(type) {
	case uint8:
		return any(uint8(math.MaxUint8)).(C)
	case uint16:
		return any(uint16(math.MaxUint16)).(C)
	case uint32:
		return any(uint32(math.MaxUint32)).(C)
	case float32, float64:
		return 1
	}
	return maxOfNamed[C]()
}

// maxOfNamed derives the maximum for named types by wrapping around zero.
// Floating point named types cannot wrap and fall back to 1.
func maxOfNamed[C Channel]() C {
	var zero C
	if zero-1 > zero {
		return zero - 1
	}
	return 1
}

// IsFloat reports whether C is a floating point channel type.
func IsFloat[C Channel]() bool {
	var half C = 1
	half /= 2
	return half != 0
}

// MaxDepth returns the largest source sample value a channel can hold
// without loss, and false for floating point channels which have no
// fixed depth.
func MaxDepth[C Channel]() (uint32, bool) {
	if IsFloat[C]() {
		return 0, false
	}
	return uint32(Max[C]()), true
}

// Add returns a+b. Integer channels saturate at Max.
func Add[C Channel](a, b C) C {
	s := a + b
	if IsFloat[C]() {
		return s
	}
	if s < a {
		return Max[C]()
	}
	return s
}

// Sub returns a-b. Integer channels saturate at zero.
func Sub[C Channel](a, b C) C {
	if IsFloat[C]() {
		return a - b
	}
	if b > a {
		return 0
	}
	return a - b
}

// Mul returns the product of two channel values.
//
// Integer channels are treated as fixed point fractions of Max, so the
// product is a*b/Max rounded to nearest and can never overflow. Floating
// point channels multiply directly.
func Mul[C Channel](a, b C) C {
	if IsFloat[C]() {
		return a * b
	}
	m := uint64(Max[C]())
	return C((uint64(a)*uint64(b) + m/2) / m)
}

// Scale multiplies a channel value by a scalar.
//
// Integer channels round to nearest and saturate to [0, Max]. Floating point
// channels are not clamped.
func Scale[C Channel](v C, k float64) C {
	if IsFloat[C]() {
		return C(float64(v) * k)
	}
	f := math.Round(float64(v) * k)
	if f <= 0 {
		return 0
	}
	if m := float64(Max[C]()); f >= m {
		return Max[C]()
	}
	return C(f)
}

// ToNormalized rescales v from the channel's native range into [lo, hi].
//
// Integer channels round to nearest using 64-bit intermediates. Floating
// point channels map [0, 1] onto [lo, hi] and are clamped to it.
//
// ToNormalized panics for channel types it has no conversion for and for an
// empty range (hi <= lo).
func ToNormalized[C Channel](v C, lo, hi int32) int32 {
	if hi <= lo {
		panic(fmt.Sprintf("channel: empty normalized range [%d, %d]", lo, hi))
	}
	span := int64(hi) - int64(lo)
	switch x := any(v).(type) {
	case uint8:
		return lo + int32(rescale(uint64(x), math.MaxUint8, span))
	case uint16:
		return lo + int32(rescale(uint64(x), math.MaxUint16, span))
	case uint32:
		return lo + int32(rescale(uint64(x), math.MaxUint32, span))
	case float32:
		return lo + int32(clampRound(float64(x)*float64(span), 0, float64(span)))
	case float64:
		return lo + int32(clampRound(x*float64(span), 0, float64(span)))
	}
	panic(fmt.Sprintf("channel: normalized conversion not implemented for %T", v))
}

// FromNormalized rescales n from [lo, hi] into the channel's native range.
// Values outside [lo, hi] are clamped first.
//
// FromNormalized is the inverse of ToNormalized:
// FromNormalized(ToNormalized(v, lo, hi), lo, hi) == v whenever the target
// range is at least as wide as the channel's.
//
// FromNormalized panics for channel types it has no conversion for.
func FromNormalized[C Channel](n, lo, hi int32) C {
	if hi <= lo {
		panic(fmt.Sprintf("channel: empty normalized range [%d, %d]", lo, hi))
	}
	span := int64(hi) - int64(lo)
	d := min(max(int64(n)-int64(lo), 0), span)

	var zero C
	switch any(zero).(type) {
	case uint8:
		return C(rescale(uint64(d), uint64(span), math.MaxUint8))
	case uint16:
		return C(rescale(uint64(d), uint64(span), math.MaxUint16))
	case uint32:
		return C(rescale(uint64(d), uint64(span), math.MaxUint32))
	case float32, float64:
		return C(float64(d) / float64(span))
	}
	panic(fmt.Sprintf("channel: normalized conversion not implemented for %T", zero))
}

// rescale maps v in [0, from] onto [0, to] with round-half-up.
// from and to are bounded by 2^32 so the product fits in 64 bits.
func rescale(v, from uint64, to int64) uint64 {
	if from == 0 {
		return 0
	}
	return (v*uint64(to) + from/2) / from
}

// clampRound rounds v half away from zero and clamps it to [lo, hi].
func clampRound(v, lo, hi float64) float64 {
	if v <= lo {
		return lo
	}
	if v >= hi {
		return hi
	}
	return math.Round(v)
}
