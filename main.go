// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"specviz/cmd"
	"specviz/internal/config"
	"specviz/internal/display"
	"specviz/internal/dsp"
	"specviz/internal/engine"
	"specviz/internal/log"
	"specviz/internal/source"
	"specviz/internal/transport"
	"specviz/internal/vis"
	"specviz/pkg/build"
)

// main drives the visualizer in three phases:
//
//  1. Startup: resolve build metadata, parse arguments on top of the
//     YAML configuration, run one-off commands, open the display and
//     the sample source.
//  2. Run: the engine frame loop, interrupted by SIGINT/SIGTERM.
//  3. Shutdown: release the source, transport and terminal state.
func main() {
	build.Initialize()

	opts, err := cmd.ParseArgs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if opts.Config == nil {
		// Help or version output already handled.
		return
	}
	cfg := opts.Config
	if level, ok := log.ParseLevel(cfg.LogLevel); ok {
		log.SetLevel(level)
	}

	if opts.Command != "" {
		if err := executeCommand(opts.Command, cfg); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if cfg.Audio.Live {
		if err := source.Initialize(); err != nil {
			log.Fatalf("audio subsystem: %v", err)
		}
		defer source.Terminate()
	}

	// The display is the one dependency the visualizer cannot degrade
	// around. A source failure falls back to the synthetic sweep inside
	// source.New; a display failure aborts.
	term, err := display.NewTerm(cfg.Display.Width, cfg.Display.Height, os.Stdout)
	if err != nil {
		log.Fatalf("display init failed: %v", err)
	}
	defer term.Close()

	src, err := source.New(cfg)
	if err != nil {
		log.Fatalf("audio source: %v", err)
	}

	var trans transport.Transport
	if cfg.Transport.WebSocketEnabled {
		ws, err := transport.NewWebSocket(cfg.Transport.WebSocketAddr)
		if err != nil {
			log.Fatalf("websocket transport: %v", err)
		}
		defer ws.Close()
		log.Infof("broadcasting frames on ws://%s/ws", ws.Addr())
		trans = ws
	}

	eng, err := engine.New(cfg, src, term, trans)
	if err != nil {
		log.Fatalf("engine init: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := eng.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

// executeCommand handles one-off commands that run without the frame
// loop or the terminal display.
func executeCommand(command string, cfg *config.Config) error {
	switch command {
	case "devices":
		if err := source.Initialize(); err != nil {
			return err
		}
		defer source.Terminate()
		return source.ListDevices()
	case "bins":
		printBinTable(cfg)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// printBinTable shows which frequency range each bar covers under the
// current FFT size, sample rate and bar count.
func printBinTable(cfg *config.Config) {
	mapper := vis.NewMapper(cfg.Vis.Bars)
	numBins := cfg.FFT.Size / 2
	binsPerBar := mapper.BinsPerBar(numBins)

	fmt.Printf("fft=%d rate=%g Hz bars=%d (%d bins per bar)\n",
		cfg.FFT.Size, cfg.FFT.SampleRate, cfg.Vis.Bars, binsPerBar)
	for i := 0; i < cfg.Vis.Bars; i++ {
		start := i * binsPerBar
		end := start + binsPerBar - 1
		if start >= numBins {
			fmt.Printf("bar %2d: (empty)\n", i)
			continue
		}
		if end >= numBins {
			end = numBins - 1
		}
		fmt.Printf("bar %2d: bins %3d-%3d  %7.1f - %7.1f Hz\n",
			i, start, end,
			dsp.BinFrequency(cfg.FFT.SampleRate, cfg.FFT.Size, start),
			dsp.BinFrequency(cfg.FFT.SampleRate, cfg.FFT.Size, end))
	}
}
