// SPDX-License-Identifier: MIT
package dsp

import (
	"errors"
	"math"
)

// ErrWindowSize is returned when a window shorter than 2 points is requested.
var ErrWindowSize = errors.New("dsp: window size must be at least 2")

// Hann returns the n-point Hann window, w[i] = 0.5*(1 - cos(2πi/(n-1))).
// The first and last coefficients are exactly zero.
func Hann(n int) ([]float64, error) {
	if n < 2 {
		return nil, ErrWindowSize
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w, nil
}

// WindowCache memoizes window coefficients by size so each distinct length
// is computed once. Cached slices are never mutated after creation; callers
// treat them as read-only. The cache is owned by whoever builds the frame
// pipeline and is not safe for concurrent use.
type WindowCache struct {
	windows map[int][]float64
}

// NewWindowCache returns an empty cache.
func NewWindowCache() *WindowCache {
	return &WindowCache{windows: make(map[int][]float64)}
}

// Get returns the cached n-point Hann window, computing it on first use.
// Repeated calls with the same n return the identical slice.
func (c *WindowCache) Get(n int) ([]float64, error) {
	if w, ok := c.windows[n]; ok {
		return w, nil
	}
	w, err := Hann(n)
	if err != nil {
		return nil, err
	}
	c.windows[n] = w
	return w, nil
}

// ApplyWindowInPlace multiplies samples element-wise by the window,
// overwriting samples. This is the real-time path: no allocation.
// Lengths must match; extra window coefficients are ignored.
func ApplyWindowInPlace(samples, window []float64) {
	n := min(len(samples), len(window))
	for i := 0; i < n; i++ {
		samples[i] *= window[i]
	}
}

// ApplyWindow returns a new windowed copy of samples, leaving the input
// untouched. Not for the frame loop; use ApplyWindowInPlace there.
func ApplyWindow(samples, window []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	ApplyWindowInPlace(out, window)
	return out
}
