package dsp

import (
	"fmt"
	"math"
)

// Frame is one column of a magnitude spectrogram: the linear-magnitude FFT
// output for frequency bins [0, window/2) at time index Idx.
type Frame struct {
	Idx  int
	Mags []float64
}

// StreamSpectrogram windows samples with a Hamming window of the given size
// and hop, runs each frame through the FFT, and calls emit once per frame
// with the magnitude spectrum. It never holds more than one frame's worth
// of complex scratch space, so callers that only need a bounded lookahead
// (the peak picker's radius-P neighborhood) don't pay for the whole song's
// spectrogram at once.
//
// If samples is shorter than one window, emit is never called and nil is
// returned: zero frames is not an error. An error is returned only when
// window is not a positive power of two or the FFT fails.
func StreamSpectrogram(samples []float64, window, hop int, emit func(Frame)) error {
	if window <= 0 || window&(window-1) != 0 {
		return fmt.Errorf("dsp: window size %d is not a positive power of two", window)
	}

	win := Hamming(window)
	half := window / 2
	re := make([]float64, window)
	im := make([]float64, window)

	var fftErr error
	EachFrame(samples, window, hop, win, func(idx int, framed []float64) {
		if fftErr != nil {
			return
		}
		copy(re, framed)
		for i := range im {
			im[i] = 0
		}
		if err := FFT(re, im); err != nil {
			fftErr = err
			return
		}
		mags := make([]float64, half)
		for k := 0; k < half; k++ {
			mags[k] = magnitude(re[k], im[k])
		}
		emit(Frame{Idx: idx, Mags: mags})
	})
	return fftErr
}

// BuildSpectrogram materializes StreamSpectrogram's output as a frame-major
// 2-D array. Buffers shorter than one window produce a nil, zero-length
// spectrogram with no error — that is a valid boundary case, not a failure.
func BuildSpectrogram(samples []float64, window, hop int) ([][]float64, error) {
	if len(samples) < window {
		return nil, nil
	}
	out := make([][]float64, 0, FrameCount(len(samples), window, hop))
	err := StreamSpectrogram(samples, window, hop, func(f Frame) {
		out = append(out, f.Mags)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func magnitude(re, im float64) float64 {
	return math.Sqrt(re*re + im*im)
}
