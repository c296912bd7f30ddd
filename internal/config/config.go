// SPDX-License-Identifier: MIT
// Package config loads and validates the visualizer configuration from
// YAML, environment variables and built-in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"specviz/pkg/bitint"
)

// Defaults sized for a 128x64 monochrome panel fed by 8 kHz audio.
const (
	DefaultFFTSize    = 128
	DefaultSampleRate = 8000
	DefaultBars       = 16
	DefaultBarWidth   = 3
	DefaultBarGap     = 1
	DefaultAlpha      = 0.3
	DefaultPeakDecay  = 0.95
	DefaultMinDB      = -60
	DefaultMaxDB      = 0
	DefaultWidth      = 128
	DefaultHeight     = 64

	// DefaultDevice selects the system default capture device.
	DefaultDevice = -1
)

// Config is the root configuration structure, loaded from YAML.
type Config struct {
	Debug     bool            `yaml:"debug"`     // Verbose diagnostics.
	LogLevel  string          `yaml:"log_level"` // "debug", "info", "warn", "error".
	FFT       FFTConfig       `yaml:"fft"`       // Transform settings.
	Display   DisplayConfig   `yaml:"display"`   // Pixel surface geometry.
	Vis       VisConfig       `yaml:"vis"`       // Bar mapping and smoothing.
	Audio     AudioConfig     `yaml:"audio"`     // Sample source selection.
	Transport TransportConfig `yaml:"transport"` // Optional frame broadcasting.
}

// FFTConfig holds the transform parameters.
type FFTConfig struct {
	Size        int     `yaml:"size"`        // Samples per frame, power of 2.
	SampleRate  float64 `yaml:"sample_rate"` // Source sample rate in Hz.
	Accelerated bool    `yaml:"accelerated"` // Use the gonum transform instead of the built-in one.
}

// DisplayConfig describes the monochrome pixel surface.
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// VisConfig holds bar layout, scaling and smoothing parameters.
type VisConfig struct {
	Bars       int           `yaml:"bars"`        // Number of spectrum bars.
	BarWidth   int           `yaml:"bar_width"`   // Bar width in pixels.
	BarGap     int           `yaml:"bar_gap"`     // Gap between bars in pixels.
	Alpha      float64       `yaml:"smoothing"`   // EMA factor in (0,1]; higher follows faster.
	PeakDecay  float64       `yaml:"peak_decay"`  // Peak-hold falloff per frame in (0,1].
	LogScale   bool          `yaml:"log_scale"`   // Logarithmic (dB) vs linear magnitude scaling.
	MinDB      float64       `yaml:"min_db"`      // dB floor for log scaling.
	MaxDB      float64       `yaml:"max_db"`      // dB ceiling for log scaling.
	FrameDelay time.Duration `yaml:"frame_delay"` // Minimum inter-frame delay (0 for max rate).
}

// AudioConfig selects and parameterizes the sample source.
type AudioConfig struct {
	WAVFile       string        `yaml:"wav_file"`       // Path to a PCM WAV file.
	Loop          bool          `yaml:"loop"`           // Restart the file at end of stream.
	SelfTest      bool          `yaml:"self_test"`      // Force the synthetic sweep source.
	SweepStart    float64       `yaml:"sweep_start"`    // Sweep lower bound in Hz.
	SweepEnd      float64       `yaml:"sweep_end"`      // Sweep upper bound in Hz.
	SweepPeriod   time.Duration `yaml:"sweep_period"`   // Time for one sweep leg.
	Live          bool          `yaml:"live"`           // Capture from an input device instead of a file.
	Device        int           `yaml:"device"`         // Capture device index, -1 for default.
	GateThreshold float64       `yaml:"gate_threshold"` // Noise gate level in [0,1], 0 disables.
}

// TransportConfig holds settings for broadcasting rendered frames.
type TransportConfig struct {
	WebSocketEnabled bool   `yaml:"websocket_enabled"` // Serve bar frames to WebSocket clients.
	WebSocketAddr    string `yaml:"websocket_addr"`    // Listen address, e.g. "127.0.0.1:8314".
}

// New returns a Config populated with defaults that mirror the reference
// hardware setup: 128-point FFT over 8 kHz audio on a 128x64 panel.
func New() *Config {
	return &Config{
		Debug:    false,
		LogLevel: "info",
		FFT: FFTConfig{
			Size:        DefaultFFTSize,
			SampleRate:  DefaultSampleRate,
			Accelerated: false,
		},
		Display: DisplayConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Vis: VisConfig{
			Bars:       DefaultBars,
			BarWidth:   DefaultBarWidth,
			BarGap:     DefaultBarGap,
			Alpha:      DefaultAlpha,
			PeakDecay:  DefaultPeakDecay,
			LogScale:   true,
			MinDB:      DefaultMinDB,
			MaxDB:      DefaultMaxDB,
			FrameDelay: 0,
		},
		Audio: AudioConfig{
			WAVFile:       "audio.wav",
			Loop:          true,
			SelfTest:      false,
			SweepStart:    200,
			SweepEnd:      3000,
			SweepPeriod:   5 * time.Second,
			Live:          false,
			Device:        DefaultDevice,
			GateThreshold: 0,
		},
		Transport: TransportConfig{
			WebSocketEnabled: false,
			WebSocketAddr:    "127.0.0.1:8314",
		},
	}
}

// Load reads configuration from the YAML file at path. An empty path
// searches the default locations; when no file is found the defaults are
// used as-is. Environment overrides apply after the file, then the result
// is validated.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		for _, candidate := range []string{"specviz.yaml", "config.yaml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides lets deployment environments tweak the most common
// knobs without editing the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SPECVIZ_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SPECVIZ_WAV_FILE"); v != "" {
		c.Audio.WAVFile = v
	}
	if v := os.Getenv("SPECVIZ_SELF_TEST"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.SelfTest = b
		}
	}
	if v := os.Getenv("SPECVIZ_FFT_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FFT.Size = n
		}
	}
}

// Validate checks every setting against the limits of the frame pipeline.
// Violations here are configuration errors and abort before the run loop.
func (c *Config) Validate() error {
	if !bitint.IsPowerOfTwo(c.FFT.Size) || c.FFT.Size < 2 {
		return fmt.Errorf("fft.size must be a power of 2 and >= 2, got %d (nearest: %d)",
			c.FFT.Size, bitint.NextPowerOfTwo(c.FFT.Size))
	}
	if c.FFT.SampleRate <= 0 {
		return fmt.Errorf("fft.sample_rate must be positive, got %g", c.FFT.SampleRate)
	}
	if c.Display.Width < 1 || c.Display.Height < 2 {
		return fmt.Errorf("display geometry %dx%d too small", c.Display.Width, c.Display.Height)
	}
	if c.Vis.Bars < 1 || c.Vis.Bars > c.FFT.Size/2 {
		return fmt.Errorf("vis.bars must be in [1, fft.size/2], got %d", c.Vis.Bars)
	}
	if c.Vis.BarWidth < 1 || c.Vis.BarGap < 0 {
		return fmt.Errorf("vis.bar_width must be >= 1 and vis.bar_gap >= 0")
	}
	if c.Vis.Bars*(c.Vis.BarWidth+c.Vis.BarGap) > c.Display.Width+c.Vis.BarGap {
		return fmt.Errorf("%d bars of width %d with gap %d exceed display width %d",
			c.Vis.Bars, c.Vis.BarWidth, c.Vis.BarGap, c.Display.Width)
	}
	if c.Vis.Alpha <= 0 || c.Vis.Alpha > 1 {
		return fmt.Errorf("vis.smoothing must be in (0,1], got %g", c.Vis.Alpha)
	}
	if c.Vis.PeakDecay <= 0 || c.Vis.PeakDecay > 1 {
		return fmt.Errorf("vis.peak_decay must be in (0,1], got %g", c.Vis.PeakDecay)
	}
	if c.Vis.LogScale && c.Vis.MinDB >= c.Vis.MaxDB {
		return fmt.Errorf("vis.min_db (%g) must be below vis.max_db (%g)", c.Vis.MinDB, c.Vis.MaxDB)
	}
	if c.Vis.FrameDelay < 0 {
		return fmt.Errorf("vis.frame_delay must not be negative")
	}
	if c.Audio.Device < DefaultDevice {
		return fmt.Errorf("audio.device must be >= -1, got %d", c.Audio.Device)
	}
	if c.Audio.GateThreshold < 0 || c.Audio.GateThreshold > 1 {
		return fmt.Errorf("audio.gate_threshold must be in [0,1], got %g", c.Audio.GateThreshold)
	}
	if c.Audio.SelfTest {
		if c.Audio.SweepStart <= 0 || c.Audio.SweepEnd < c.Audio.SweepStart {
			return fmt.Errorf("invalid sweep range %g..%g Hz", c.Audio.SweepStart, c.Audio.SweepEnd)
		}
		if c.Audio.SweepPeriod <= 0 {
			return fmt.Errorf("audio.sweep_period must be positive")
		}
	}
	if c.Transport.WebSocketEnabled && c.Transport.WebSocketAddr == "" {
		return fmt.Errorf("transport.websocket_addr must be set when the websocket is enabled")
	}
	return nil
}
