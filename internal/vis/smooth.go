// SPDX-License-Identifier: MIT
package vis

// Smoother carries per-bar state across frames: an exponential moving
// average of the bar height and a peak-hold value that rises instantly
// and decays geometrically. It is the only component in the pipeline
// with frame-to-frame memory.
type Smoother struct {
	alpha float64
	decay float64
	ema   []float64
	peaks []int
}

// NewSmoother returns a smoother for the given bar count. alpha is the
// EMA factor in (0,1] (1 disables smoothing); decay is the per-frame
// peak falloff in (0,1]. Both are validated by the configuration layer.
func NewSmoother(bars int, alpha, decay float64) *Smoother {
	return &Smoother{
		alpha: alpha,
		decay: decay,
		ema:   make([]float64, bars),
		peaks: make([]int, bars),
	}
}

// Smooth folds the new heights into the running EMA and writes the
// floored result to dst. Peak-hold values update in the same pass: a
// higher bar lifts its peak immediately, otherwise the peak decays.
func (s *Smoother) Smooth(dst, heights []int) {
	n := min(len(dst), len(heights))
	for i := 0; i < n && i < len(s.ema); i++ {
		h := heights[i]
		s.ema[i] = s.alpha*float64(h) + (1-s.alpha)*s.ema[i]
		dst[i] = int(s.ema[i])

		if h > s.peaks[i] {
			s.peaks[i] = h
		} else {
			s.peaks[i] = int(float64(s.peaks[i]) * s.decay)
		}
	}
}

// Peaks returns the current peak-hold values. The slice is owned by the
// smoother and changes on every Smooth call.
func (s *Smoother) Peaks() []int { return s.peaks }

// Reset zeroes all EMA accumulators and peaks, as on an explicit restart.
func (s *Smoother) Reset() {
	for i := range s.ema {
		s.ema[i] = 0
		s.peaks[i] = 0
	}
}
