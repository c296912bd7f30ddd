// SPDX-License-Identifier: MIT
package source

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// LiveSource captures mono samples from an input device via PortAudio
// using blocking reads sized to the FFT block. The stream never reaches
// end of stream; Reset is a no-op.
type LiveSource struct {
	stream *portaudio.Stream
	in     []float32
}

// Initialize sets up the PortAudio subsystem. Must be called before
// OpenLive or ListDevices and paired with a Terminate call.
func Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("source: failed to initialize PortAudio: %w", err)
	}
	return nil
}

// Terminate shuts down the PortAudio subsystem.
func Terminate() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("source: failed to terminate PortAudio: %w", err)
	}
	return nil
}

// OpenLive opens and starts a mono capture stream on the given device
// (-1 for the system default) at the given rate, reading blockSize
// frames at a time.
func OpenLive(deviceID int, sampleRate float64, blockSize int) (*LiveSource, error) {
	device, err := inputDevice(deviceID)
	if err != nil {
		return nil, err
	}

	s := &LiveSource{in: make([]float32, blockSize)}
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Channels: 1,
			Device:   device,
			Latency:  device.DefaultHighInputLatency,
		},
		FramesPerBuffer: blockSize,
		SampleRate:      sampleRate,
	}

	stream, err := portaudio.OpenStream(params, s.in)
	if err != nil {
		return nil, fmt.Errorf("source: failed to open capture stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("source: failed to start capture stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

// FillBlock blocks until a full capture buffer is available and copies
// it into block. PortAudio already delivers [-1,1] float frames.
func (s *LiveSource) FillBlock(block []float64) (int, error) {
	if err := s.stream.Read(); err != nil {
		return 0, fmt.Errorf("source: capture read failed: %w", err)
	}
	n := min(len(block), len(s.in))
	for i := 0; i < n; i++ {
		block[i] = float64(s.in[i])
	}
	for i := n; i < len(block); i++ {
		block[i] = 0
	}
	return n, nil
}

// EOF always reports false: capture is an infinite stream.
func (s *LiveSource) EOF() bool { return false }

// Reset is a no-op for live capture.
func (s *LiveSource) Reset() error { return nil }

// Close stops and closes the capture stream.
func (s *LiveSource) Close() error {
	if s.stream == nil {
		return nil
	}
	if err := s.stream.Stop(); err != nil {
		return err
	}
	err := s.stream.Close()
	s.stream = nil
	return err
}
