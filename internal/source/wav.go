// SPDX-License-Identifier: MIT
package source

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSource streams normalized mono samples from a PCM WAV file.
// Supported formats are 8-bit unsigned and 16-bit signed, mono or
// stereo; stereo frames are averaged to mono. The decode buffer is
// allocated once at open time and reused for every block.
type WAVSource struct {
	path string
	file *os.File
	dec  *wav.Decoder

	sampleRate int
	channels   int
	bitDepth   int

	buf          *audio.IntBuffer // blockSize*channels ints, reused
	totalSamples int64            // mono samples in the data chunk
	samplesRead  int64
}

// OpenWAV opens and validates a WAV file for block reads of blockSize
// mono samples.
func OpenWAV(path string, blockSize int) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("source: %s is not a valid WAV file", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("source: reading WAV PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if channels < 1 || channels > 2 {
		f.Close()
		return nil, fmt.Errorf("source: unsupported channel count %d", channels)
	}
	if bitDepth != 8 && bitDepth != 16 {
		f.Close()
		return nil, fmt.Errorf("source: unsupported bit depth %d (only 8 and 16 supported)", bitDepth)
	}

	bytesPerFrame := int64(channels) * int64(bitDepth) / 8
	s := &WAVSource{
		path:       path,
		file:       f,
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		bitDepth:   bitDepth,
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  int(dec.SampleRate),
			},
			Data: make([]int, blockSize*channels),
		},
		totalSamples: dec.PCMLen() / bytesPerFrame,
	}
	return s, nil
}

// SampleRate returns the file's sample rate in Hz.
func (s *WAVSource) SampleRate() int { return s.sampleRate }

// Channels returns the channel count of the file.
func (s *WAVSource) Channels() int { return s.channels }

// BitDepth returns the PCM bit depth of the file.
func (s *WAVSource) BitDepth() int { return s.bitDepth }

// TotalSamples returns the number of mono samples in the data chunk.
func (s *WAVSource) TotalSamples() int64 { return s.totalSamples }

// FillBlock decodes the next block, normalizes it into [-1,1], averages
// stereo to mono and zero-pads past end of stream. Returns the number of
// real samples written.
func (s *WAVSource) FillBlock(block []float64) (int, error) {
	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("source: WAV read failed: %w", err)
	}
	frames := n / s.channels
	if frames > len(block) {
		frames = len(block)
	}

	for i := 0; i < frames; i++ {
		off := i * s.channels
		var sample float64
		for ch := 0; ch < s.channels; ch++ {
			sample += s.normalize(s.buf.Data[off+ch])
		}
		block[i] = sample / float64(s.channels)
	}
	for i := frames; i < len(block); i++ {
		block[i] = 0
	}

	s.samplesRead += int64(frames)
	return frames, nil
}

// normalize converts one raw PCM value to [-1,1]. 8-bit WAV data is
// unsigned around 128; 16-bit is signed.
func (s *WAVSource) normalize(v int) float64 {
	if s.bitDepth == 8 {
		return (float64(v) - 128) / 128
	}
	return float64(v) / 32768
}

// EOF reports whether all samples in the data chunk have been read.
func (s *WAVSource) EOF() bool {
	return s.samplesRead >= s.totalSamples
}

// Reset rewinds to the start of the PCM data. The decoder keeps internal
// chunk state, so the file is re-parsed from the top; header parsing on
// an already validated file cannot fail in a way that matters mid-run.
func (s *WAVSource) Reset() error {
	if _, err := s.file.Seek(0, 0); err != nil {
		return fmt.Errorf("source: WAV rewind failed: %w", err)
	}
	s.dec = wav.NewDecoder(s.file)
	if err := s.dec.FwdToPCM(); err != nil {
		return fmt.Errorf("source: WAV re-parse failed: %w", err)
	}
	s.samplesRead = 0
	return nil
}

// Close closes the underlying file.
func (s *WAVSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
