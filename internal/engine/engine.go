// SPDX-License-Identifier: MIT
/*
Package engine drives the visualizer frame loop. One iteration pulls a
block of samples, windows it in place, transforms it, reduces the
spectrum to bars and hands the smoothed pixel heights to the display.

Every buffer the loop touches is allocated once in New and reused for
the lifetime of the engine; the steady-state path does not grow the
heap. The engine is single-threaded by design: each stage consumes its
predecessor's buffer fully before the next frame overwrites it, so no
locking is needed.
*/
package engine

import (
	"context"
	"math"
	"time"

	"specviz/internal/config"
	"specviz/internal/display"
	"specviz/internal/dsp"
	"specviz/internal/log"
	"specviz/internal/source"
	"specviz/internal/transport"
	"specviz/internal/vis"
)

// fpsReportInterval is how many frames pass between throughput reports.
const fpsReportInterval = 100

// Engine owns the frame pipeline and all of its buffers.
type Engine struct {
	cfg   *config.Config
	src   source.Source
	disp  display.Display
	rend  *vis.BarRenderer
	trans transport.Transport // optional, may be nil

	fft      *dsp.FFT
	window   []float64
	mapper   *vis.Mapper
	scaler   *vis.Scaler
	smoother *vis.Smoother

	// Per-frame buffers, preallocated and reused.
	samples  []float64
	spectrum []complex128
	mags     []float64
	barVals  []float64
	heights  []int
	smoothed []int

	gate float64 // noise gate threshold, 0 disables

	frameCount int
	fpsEvery   int
	fps        float64
	lastReport time.Time
}

// New builds an engine from a validated configuration. The source and
// display are owned by the engine from here on; Run closes the source
// on exit.
func New(cfg *config.Config, src source.Source, disp display.Display, trans transport.Transport) (*Engine, error) {
	n := cfg.FFT.Size

	var fft *dsp.FFT
	var err error
	if cfg.FFT.Accelerated {
		fft, err = dsp.NewAccelerated(n)
	} else {
		fft, err = dsp.New(n)
	}
	if err != nil {
		return nil, err
	}

	windows := dsp.NewWindowCache()
	window, err := windows.Get(n)
	if err != nil {
		return nil, err
	}

	bars := cfg.Vis.Bars
	return &Engine{
		cfg:        cfg,
		src:        src,
		disp:       disp,
		rend:       vis.NewBarRenderer(disp, bars, cfg.Display.Height, cfg.Vis.BarWidth, cfg.Vis.BarGap),
		trans:      trans,
		fft:        fft,
		window:     window,
		mapper:     vis.NewMapper(bars),
		scaler:     vis.NewScaler(cfg.Display.Height, cfg.Vis.LogScale, cfg.Vis.MinDB, cfg.Vis.MaxDB),
		smoother:   vis.NewSmoother(bars, cfg.Vis.Alpha, cfg.Vis.PeakDecay),
		samples:    make([]float64, n),
		spectrum:   make([]complex128, n),
		mags:       make([]float64, n/2),
		barVals:    make([]float64, bars),
		heights:    make([]int, bars),
		smoothed:   make([]int, bars),
		gate:       cfg.Audio.GateThreshold,
		fpsEvery:   fpsReportInterval,
		lastReport: time.Now(),
	}, nil
}

// Run executes the frame loop until the stream completes or ctx is
// canceled. Cancellation is observed between frames, never mid-frame,
// and always shuts down cleanly: the source is released and a final
// message is rendered.
func (e *Engine) Run(ctx context.Context) error {
	defer e.src.Close()

	log.Infof("engine: starting, fft=%d bars=%d rate=%g Hz",
		e.cfg.FFT.Size, e.cfg.Vis.Bars, e.cfg.FFT.SampleRate)
	e.lastReport = time.Now()

	for {
		select {
		case <-ctx.Done():
			log.Infof("engine: stop requested")
			return e.rend.Message("", " Visualizer", "  Stopped")
		default:
		}

		done, err := e.Step()
		if err != nil {
			return err
		}
		if done {
			log.Infof("engine: end of stream")
			return e.rend.Message("", "  Playback", "  Complete")
		}

		if e.cfg.Vis.FrameDelay > 0 {
			time.Sleep(e.cfg.Vis.FrameDelay)
		}
	}
}

// Step executes exactly one frame. It reports done when the source hit
// end of stream and looping is disabled.
func (e *Engine) Step() (bool, error) {
	n, err := e.src.FillBlock(e.samples)
	if err != nil {
		return false, err
	}

	// Short block: the source already zero-padded the tail. End the run
	// or rewind depending on the loop setting.
	if n < len(e.samples) && e.src.EOF() {
		if !e.cfg.Audio.Loop {
			return true, nil
		}
		log.Debugf("engine: end of stream, looping")
		if err := e.src.Reset(); err != nil {
			return false, err
		}
	}

	if e.gate > 0 {
		e.applyGate()
	}

	dsp.ApplyWindowInPlace(e.samples, e.window)
	if err := e.fft.Transform(e.spectrum, e.samples); err != nil {
		return false, err
	}
	dsp.Magnitudes(e.mags, e.spectrum)
	e.mapper.MapBins(e.barVals, e.mags)
	e.scaler.ScalePixels(e.heights, e.barVals)
	e.smoother.Smooth(e.smoothed, e.heights)

	e.rend.Draw(e.smoothed, e.smoother.Peaks())
	if err := e.disp.Flush(); err != nil {
		return false, err
	}

	e.frameCount++
	if e.frameCount%e.fpsEvery == 0 {
		elapsed := time.Since(e.lastReport)
		if elapsed > 0 {
			e.fps = float64(e.fpsEvery) / elapsed.Seconds()
		}
		e.lastReport = time.Now()
		log.Infof("engine: %.1f fps", e.fps)
	}

	if e.trans != nil {
		// Send marshals before returning, so sharing the live buffers
		// is safe.
		_ = e.trans.Send(transport.Frame{
			Heights: e.smoothed,
			Peaks:   e.smoother.Peaks(),
			FPS:     e.fps,
		})
	}
	return false, nil
}

// Reset restarts the source and clears all smoothing history, as for an
// explicit user-initiated restart.
func (e *Engine) Reset() error {
	e.smoother.Reset()
	return e.src.Reset()
}

// applyGate zeroes the whole block when its peak amplitude stays below
// the gate threshold, keeping noise floors from exciting the display.
func (e *Engine) applyGate() {
	var peak float64
	for _, s := range e.samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak < e.gate {
		for i := range e.samples {
			e.samples[i] = 0
		}
	}
}
