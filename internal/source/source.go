// SPDX-License-Identifier: MIT
/*
Package source provides the sample sources feeding the frame pipeline: a
WAV file reader, synthetic sine/multi-tone generators and a live capture
stream. All of them fill caller-owned blocks with normalized [-1,1]
floats and zero-pad short reads, so the frame driver never sees a
partially stale buffer.
*/
package source

import (
	"specviz/internal/config"
	"specviz/internal/log"
)

// Source is a stream of normalized mono samples.
type Source interface {
	// FillBlock fills block completely, zero-padding past the available
	// samples, and returns how many real samples were written.
	FillBlock(block []float64) (int, error)
	// EOF reports whether the stream is exhausted. Synthetic and live
	// sources never are.
	EOF() bool
	// Reset rewinds the stream to its start.
	Reset() error
	// Close releases any underlying resources.
	Close() error
}

// New builds the configured Source. Self-test mode forces the sweep
// generator. A WAV file that cannot be opened or parsed is not fatal:
// the visualizer logs the failure and falls back to the sweep generator
// so the device still shows something.
func New(cfg *config.Config) (Source, error) {
	if cfg.Audio.SelfTest {
		log.Infof("source: self-test mode, sweeping %g-%g Hz",
			cfg.Audio.SweepStart, cfg.Audio.SweepEnd)
		return newSweep(cfg), nil
	}

	if cfg.Audio.Live {
		live, err := OpenLive(cfg.Audio.Device, cfg.FFT.SampleRate, cfg.FFT.Size)
		if err != nil {
			log.Warnf("source: live capture unavailable (%v), falling back to self-test", err)
			return newSweep(cfg), nil
		}
		log.Infof("source: live capture at %g Hz", cfg.FFT.SampleRate)
		return live, nil
	}

	wav, err := OpenWAV(cfg.Audio.WAVFile, cfg.FFT.Size)
	if err != nil {
		log.Warnf("source: no valid WAV source (%v), falling back to self-test", err)
		return newSweep(cfg), nil
	}
	log.Infof("source: %s (%d Hz, %d-bit, %d channel(s), %d samples)",
		cfg.Audio.WAVFile, wav.SampleRate(), wav.BitDepth(), wav.Channels(), wav.TotalSamples())
	return wav, nil
}

func newSweep(cfg *config.Config) *SineSource {
	gen := NewSine(cfg.FFT.SampleRate, cfg.Audio.SweepStart, 0.8)
	gen.EnableSweep(cfg.Audio.SweepStart, cfg.Audio.SweepEnd, cfg.Audio.SweepPeriod)
	return gen
}
