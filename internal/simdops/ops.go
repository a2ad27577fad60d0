// Package simdops wraps the SIMD kernels from github.com/tphakala/simd behind
// a single struct so hot loops can be written once for either precision.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []F)

	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Interleave2:      f32.Interleave2,
		Sum:              f32.Sum,
		Scale:            f32.Scale,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Interleave2:      f64.Interleave2,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
	}
)

// For returns the Ops instance for type F.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops[float64] {
	return &ops64
}

// Interleave writes planar channels into dst as frame-interleaved samples.
// dst must hold len(channels)*len(channels[0]) values. Stereo uses the SIMD
// kernel; other layouts fall back to a scalar loop.
func Interleave[F Float](dst []F, channels [][]F) {
	switch len(channels) {
	case 0:
		return
	case 1:
		copy(dst, channels[0])
	case 2:
		For[F]().Interleave2(dst, channels[0], channels[1])
	default:
		n := len(channels)
		for ch, data := range channels {
			for i, v := range data {
				dst[i*n+ch] = v
			}
		}
	}
}

// Deinterleave splits frame-interleaved samples into numChannels planar slices.
func Deinterleave[F Float](src []F, numChannels int) [][]F {
	if numChannels < 1 {
		return nil
	}

	frames := len(src) / numChannels
	out := make([][]F, numChannels)
	for ch := range out {
		out[ch] = make([]F, frames)
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			out[ch][i] = src[base+ch]
		}
	}

	return out
}
