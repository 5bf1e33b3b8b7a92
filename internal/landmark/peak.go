// Package landmark implements the constellation-style peak picker and the
// anchor/target hasher that turns a spectrogram into packed hashes.
package landmark

import (
	"math"

	"github.com/oakmoss/soundtrace/internal/config"
)

// Peak is a spectral landmark: a (time, frequency) point that survived the
// local-maximum and absolute-threshold tests. It is transient — it exists
// only while one buffer (a song being ingested, or a query) is in flight.
type Peak struct {
	TimeIdx int     // frame index
	FreqIdx int     // frequency bin index, in [0, window/2)
	Mag     float64 // linear magnitude at (TimeIdx, FreqIdx)
}

// band is a half-open bin range [Start, End) derived from two adjacent
// frequency-edge constants.
type band struct {
	Start, End int
}

// bandsFromEdges converts the Hz edges in cfg.FrequencyBands into bin-index
// bands using round(f*W/R), one band per adjacent pair of edges.
func bandsFromEdges(cfg config.Constants) []band {
	edgeBins := make([]int, len(cfg.FrequencyBands))
	for i, hz := range cfg.FrequencyBands {
		edgeBins[i] = int(math.Round(hz * float64(cfg.FFTWindowSize) / float64(cfg.SampleRate)))
	}
	bands := make([]band, 0, len(edgeBins)-1)
	for i := 0; i+1 < len(edgeBins); i++ {
		bands = append(bands, band{Start: edgeBins[i], End: edgeBins[i+1]})
	}
	return bands
}

// ExtractPeaks runs the banded, local-maximum, absolute-threshold peak
// picker over a frame-major magnitude spectrogram. A point (t,f) is a peak
// iff: f falls within one of the ten bin bands derived from
// cfg.FrequencyBands; its magnitude is >= every neighbor in the square
// neighborhood of radius cfg.PeakNeighborhood (clipped to array bounds,
// center excluded — ties on the neighborhood boundary are peaks, only a
// strictly greater neighbor disqualifies a point); and its magnitude
// exceeds cfg.PeakThreshold.
//
// Peaks are emitted frame-ascending, then band-ascending, then
// bin-ascending within the band — later stages (the hasher) depend on this
// order being stable.
func ExtractPeaks(spectrogram [][]float64, cfg config.Constants) []Peak {
	if len(spectrogram) == 0 {
		return nil
	}
	nFrames := len(spectrogram)
	nBins := len(spectrogram[0])
	bands := bandsFromEdges(cfg)
	radius := cfg.PeakNeighborhood

	peaks := make([]Peak, 0, nFrames)

	for t := 0; t < nFrames; t++ {
		for _, b := range bands {
			start := clamp(b.Start, 0, nBins)
			end := clamp(b.End, 0, nBins)
			for f := start; f < end; f++ {
				mag := spectrogram[t][f]
				if mag <= cfg.PeakThreshold {
					continue
				}
				if !isLocalMax(spectrogram, t, f, radius) {
					continue
				}
				peaks = append(peaks, Peak{TimeIdx: t, FreqIdx: f, Mag: mag})
			}
		}
	}

	return peaks
}

// isLocalMax reports whether spectrogram[t][f] is >= every other point in
// the radius-r square neighborhood around it, clipped to array bounds.
func isLocalMax(spectrogram [][]float64, t, f, r int) bool {
	nFrames := len(spectrogram)
	nBins := len(spectrogram[0])
	mag := spectrogram[t][f]

	for dt := -r; dt <= r; dt++ {
		ti := t + dt
		if ti < 0 || ti >= nFrames {
			continue
		}
		row := spectrogram[ti]
		for df := -r; df <= r; df++ {
			if dt == 0 && df == 0 {
				continue
			}
			fi := f + df
			if fi < 0 || fi >= nBins {
				continue
			}
			if row[fi] > mag {
				return false
			}
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
