// SPDX-License-Identifier: MIT
/*
Package dsp implements the numeric pipeline of the spectrum visualizer:
Hann windowing, a radix-2 Cooley-Tukey FFT and magnitude conversion.

Everything here is written for a steady-state frame loop: the FFT and the
magnitude helpers work entirely in caller-provided buffers and allocate
nothing after construction.
*/
package dsp

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"specviz/pkg/bitint"
)

// Errors reported at setup time. Transform never fails mid-run on
// numeric input; only mismatched buffer lengths are rejected.
var (
	ErrFFTSize   = errors.New("dsp: fft size must be a power of 2 and >= 2")
	ErrFFTLength = errors.New("dsp: buffer length does not match fft size")
)

// FFT computes the forward discrete Fourier transform of real input at a
// fixed size. The zero value is not usable; construct with New or
// NewAccelerated.
type FFT struct {
	n    int
	bits int

	// Accelerated path. gonum computes the n/2+1 coefficients of a real
	// input transform; scratch holds them before mirroring into the full
	// complex output so both paths produce identical bin ordering.
	accel   *fourier.FFT
	scratch []complex128
}

// New returns an FFT of the given power-of-two size using the built-in
// iterative radix-2 implementation.
func New(n int) (*FFT, error) {
	if !bitint.IsPowerOfTwo(n) || n < 2 {
		return nil, ErrFFTSize
	}
	return &FFT{n: n, bits: bitint.Log2(n)}, nil
}

// NewAccelerated returns an FFT backed by gonum's real-input transform.
// Output ordering and values match New within floating-point tolerance,
// so the two are interchangeable downstream.
func NewAccelerated(n int) (*FFT, error) {
	f, err := New(n)
	if err != nil {
		return nil, err
	}
	f.accel = fourier.NewFFT(n)
	f.scratch = make([]complex128, n/2+1)
	return f, nil
}

// Size returns the transform length.
func (f *FFT) Size() int { return f.n }

// Transform computes the forward FFT of src into dst. Both slices must
// have exactly Size() elements. dst is fully overwritten. The call makes
// no heap allocations.
//
// Bin i of dst corresponds to frequency i*sampleRate/n; bins above n/2
// hold the conjugate mirror of the positive frequencies.
func (f *FFT) Transform(dst []complex128, src []float64) error {
	if len(src) != f.n || len(dst) != f.n {
		return ErrFFTLength
	}
	if f.accel != nil {
		f.accel.Coefficients(f.scratch, src)
		copy(dst, f.scratch)
		for i := f.n/2 + 1; i < f.n; i++ {
			dst[i] = cmplx.Conj(f.scratch[f.n-i])
		}
		return nil
	}
	f.transform(dst, src)
	return nil
}

// transform is the pure iterative radix-2 decimation-in-time FFT.
func (f *FFT) transform(dst []complex128, src []float64) {
	// Bit-reversal permutation straight into the output buffer,
	// imaginary parts zero.
	for i, s := range src {
		dst[bitint.Reverse(i, f.bits)] = complex(s, 0)
	}

	// Butterfly passes, doubling the block size each time. Twiddle
	// factors use the forward (negative exponent) convention.
	for size := 2; size <= f.n; size <<= 1 {
		half := size >> 1
		step := -2 * math.Pi / float64(size)
		for start := 0; start < f.n; start += size {
			for k := 0; k < half; k++ {
				angle := step * float64(k)
				w := complex(math.Cos(angle), math.Sin(angle))
				a := dst[start+k]
				t := dst[start+k+half] * w
				dst[start+k] = a + t
				dst[start+k+half] = a - t
			}
		}
	}
}
