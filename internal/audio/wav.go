// Package audio handles everything upstream of the fingerprinting core: WAV
// decoding into the core's normalized sample contract, transcoding other
// formats via ffmpeg, and pulling source audio down from YouTube.
package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ErrUnsupportedFormat is returned for WAV files whose bit depth the core's
// audio contract does not define a conversion for.
var ErrUnsupportedFormat = errors.New("audio: only 16-bit PCM WAV is supported")

// ReadWAV decodes path into mono samples normalized to [-1, 1] and reports
// the file's native sample rate. Stereo input is downmixed by averaging
// channels, matching the decoder-responsibility split spec's audio input
// contract assigns to stereo mixdown.
func ReadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("audio: opening %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("audio: %s is not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("audio: decoding %s: %w", path, err)
	}
	if dec.BitDepth != 16 {
		return nil, 0, ErrUnsupportedFormat
	}

	samples := downmixToMono(buf.Data, int(dec.NumChans))
	return samples, int(dec.SampleRate), nil
}

// downmixToMono converts interleaved 16-bit PCM integer samples (as decoded
// into ints by go-audio) to normalized mono float64, averaging channels for
// anything wider than mono.
func downmixToMono(ints []int, numChannels int) []float64 {
	const scale = 1.0 / 32768.0
	if numChannels <= 1 {
		out := make([]float64, len(ints))
		for i, s := range ints {
			out[i] = float64(s) * scale
		}
		return out
	}

	frames := len(ints) / numChannels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < numChannels; c++ {
			sum += float64(ints[i*numChannels+c]) * scale
		}
		out[i] = sum / float64(numChannels)
	}
	return out
}
