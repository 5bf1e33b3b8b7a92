package dsp

import "math"

// Hamming returns a Hamming window of length n: w[i] = 0.54 - 0.46*cos(2*pi*i/(n-1)).
func Hamming(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := 0; i < n; i++ {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// FrameCount returns how many fixed-size, fixed-hop frames fit in a buffer
// of n samples: floor((n-window)/hop)+1 for n>=window, else 0. The final
// incomplete frame is discarded, never zero-padded.
func FrameCount(n, window, hop int) int {
	if n < window {
		return 0
	}
	return (n-window)/hop + 1
}

// EachFrame calls fn once per frame of samples, windowed by win (which must
// be len(window) long), without materializing the full set of frames at
// once: a single frame buffer is reused for every call, so fn must copy
// the frame if it needs it after returning.
func EachFrame(samples []float64, window, hop int, win []float64, fn func(frameIdx int, frame []float64)) {
	count := FrameCount(len(samples), window, hop)
	frame := make([]float64, window)
	for t := 0; t < count; t++ {
		start := t * hop
		for i := 0; i < window; i++ {
			frame[i] = samples[start+i] * win[i]
		}
		fn(t, frame)
	}
}
