// Package dsp implements the signal-processing front end: an in-place FFT,
// Hamming-windowed framing, and the spectrogram builder that drives them.
package dsp

import (
	"fmt"
	"math"
)

// FFT computes an in-place radix-2 decimation-in-time FFT over the paired
// real/imaginary slices re and im, which must have equal, power-of-two
// length. It is a pure function: no I/O, no allocation beyond the
// bit-reversal swap already done in place.
//
// This is a correctness reference, not a performance one — it exists so the
// spectrogram builder's numerical output is fixed and test vectors are
// reproducible across machines and Go versions, independent of whichever
// FFT library happens to be vendored. See fft_test.go for a cross-check
// against github.com/mjibson/go-dsp/fft.
func FFT(re, im []float64) error {
	n := len(re)
	if len(im) != n {
		return fmt.Errorf("dsp: FFT real/imaginary length mismatch: %d vs %d", n, len(im))
	}
	if n == 0 || n&(n-1) != 0 {
		return fmt.Errorf("dsp: FFT length %d is not a power of two", n)
	}

	bitReverse(re, im)

	for size := 2; size <= n; size <<= 1 {
		halfSize := size / 2
		angleStep := -2 * math.Pi / float64(size)
		wReal, wImag := 1.0, 0.0
		wStepReal, wStepImag := math.Cos(angleStep), math.Sin(angleStep)

		for j := 0; j < halfSize; j++ {
			for start := j; start < n; start += size {
				partner := start + halfSize

				tReal := re[partner]*wReal - im[partner]*wImag
				tImag := re[partner]*wImag + im[partner]*wReal

				re[partner] = re[start] - tReal
				im[partner] = im[start] - tImag
				re[start] += tReal
				im[start] += tImag
			}

			// Recurrence the spec calls for: w ← w · w_len, rather than a
			// fresh sin/cos per butterfly.
			wReal, wImag = wReal*wStepReal-wImag*wStepImag, wReal*wStepImag+wImag*wStepReal
		}
	}

	return nil
}

// bitReverse permutes re and im into bit-reversed index order in place.
func bitReverse(re, im []float64) {
	n := len(re)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j &^= bit
		}
		j |= bit
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}
}
