// Package config holds the build-time tunables shared by every pipeline
// stage. Changing any of these invalidates existing postings: a store
// built under one set of constants is not safe to query under another.
package config

// Constants is the fixed parameter set a fingerprinting pipeline is built
// against. Threading it explicitly through the pipeline (rather than
// package-level globals) lets tests override individual knobs without
// touching process state.
type Constants struct {
	SampleRate int // Hz

	FFTWindowSize int // samples, power of two
	HopSize       int // samples

	FrequencyBands []float64 // Hz edges, ascending

	PeakNeighborhood int     // bins/frames, radius
	PeakThreshold    float64 // absolute magnitude

	TargetZoneStart   int // frames
	TargetZoneWidth   int // frames
	MaxPairsPerAnchor int // count

	MinMatchingHashes      int     // count
	MinConfidenceThreshold float64 // ratio
	TimeDeltaTolerance     int     // frames
}

// Default returns the constants fixed by spec: 44.1kHz audio, a 4096-sample
// window with 1024-sample hop, the ten-band constellation layout, a
// radius-10 absolute-threshold peak picker, and the temporal-coherence
// matcher's thresholds.
func Default() Constants {
	return Constants{
		SampleRate:    44100,
		FFTWindowSize: 4096,
		HopSize:       1024,
		FrequencyBands: []float64{
			40, 80, 120, 180, 300, 500, 800, 1200, 2000, 3000, 5000,
		},
		PeakNeighborhood:       10,
		PeakThreshold:          0.5,
		TargetZoneStart:        1,
		TargetZoneWidth:        10,
		MaxPairsPerAnchor:      5,
		MinMatchingHashes:      5,
		MinConfidenceThreshold: 0.1,
		TimeDeltaTolerance:     2,
	}
}
