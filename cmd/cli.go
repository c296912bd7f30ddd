// SPDX-License-Identifier: MIT
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"specviz/internal/config"
	"specviz/pkg/build"
)

// Options is the result of argument parsing: the effective configuration
// plus the selected one-off command. Command is empty when the visualizer
// itself should run.
type Options struct {
	Config  *config.Config
	Command string
}

// ParseArgs builds the command tree, loads the YAML configuration and
// applies any command-line overrides on top of it. Flags only override
// settings the user actually passed, so the config file keeps authority
// over everything else.
func ParseArgs() (*Options, error) {
	buildInfo := build.GetBuildFlags()
	opts := &Options{}

	var (
		configPath string
		wavFile    string
		selfTest   bool
		live       bool
		device     int
		noLoop     bool
		fftSize    int
		sampleRate float64
		bars       int
		accel      bool
		linear     bool
		wsAddr     string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         "Render a real-time audio spectrum as bar graphs",
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("wav") {
				cfg.Audio.WAVFile = wavFile
			}
			if flags.Changed("self-test") {
				cfg.Audio.SelfTest = selfTest
			}
			if flags.Changed("live") {
				cfg.Audio.Live = live
			}
			if flags.Changed("device") {
				cfg.Audio.Device = device
			}
			if flags.Changed("no-loop") {
				cfg.Audio.Loop = !noLoop
			}
			if flags.Changed("fft-size") {
				cfg.FFT.Size = fftSize
			}
			if flags.Changed("sample-rate") {
				cfg.FFT.SampleRate = sampleRate
			}
			if flags.Changed("bars") {
				cfg.Vis.Bars = bars
			}
			if flags.Changed("accelerated") {
				cfg.FFT.Accelerated = accel
			}
			if flags.Changed("linear") {
				cfg.Vis.LogScale = !linear
			}
			if flags.Changed("websocket") {
				cfg.Transport.WebSocketEnabled = true
				cfg.Transport.WebSocketAddr = wsAddr
			}
			if verbose {
				cfg.Debug = true
				cfg.LogLevel = "debug"
			}

			// Overrides can break constraints the file satisfied.
			if err := cfg.Validate(); err != nil {
				return err
			}
			opts.Config = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "devices",
		Short: "List available audio capture devices",
		Run: func(cmd *cobra.Command, args []string) {
			opts.Command = "devices"
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "bins",
		Short: "Print the frequency range covered by each bar",
		Run: func(cmd *cobra.Command, args []string) {
			opts.Command = "bins"
		},
	})

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the YAML configuration file")

	// Source selection
	rootCmd.PersistentFlags().StringVarP(&wavFile, "wav", "w", "audio.wav",
		"Play the given PCM WAV file")
	rootCmd.PersistentFlags().BoolVarP(&selfTest, "self-test", "t", false,
		"Use the synthetic frequency sweep instead of a file")
	rootCmd.PersistentFlags().BoolVarP(&live, "live", "l", false,
		"Capture from an input device. Use 'devices' to see them.")
	rootCmd.PersistentFlags().IntVarP(&device, "device", "d", config.DefaultDevice,
		"Capture device index, -1 for the system default")
	rootCmd.PersistentFlags().BoolVar(&noLoop, "no-loop", false,
		"Stop at end of file instead of looping")

	// Analysis
	rootCmd.PersistentFlags().IntVarP(&fftSize, "fft-size", "n", config.DefaultFFTSize,
		"Samples per frame, must be a power of 2")
	rootCmd.PersistentFlags().Float64VarP(&sampleRate, "sample-rate", "s", config.DefaultSampleRate,
		"Sample rate, measured in Hertz (Hz)")
	rootCmd.PersistentFlags().IntVarP(&bars, "bars", "b", config.DefaultBars,
		"Number of spectrum bars")
	rootCmd.PersistentFlags().BoolVarP(&accel, "accelerated", "a", false,
		"Use the gonum FFT instead of the built-in radix-2 transform")
	rootCmd.PersistentFlags().BoolVar(&linear, "linear", false,
		"Scale bars linearly instead of in decibels")

	// Output
	rootCmd.PersistentFlags().StringVar(&wsAddr, "websocket", "127.0.0.1:8314",
		"Broadcast bar frames to WebSocket clients on this address")
	rootCmd.PersistentFlags().Lookup("websocket").NoOptDefVal = "127.0.0.1:8314"

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Show verbose output")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}
	return opts, nil
}
