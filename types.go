// Package soundtrace implements a landmark-pair audio fingerprinting and
// identification engine: spectrogram, peak picker, combinatorial hasher,
// posting store, and offset-histogram matcher, composed behind one
// orchestration surface.
package soundtrace

import "time"

// Song is a registered recording's public metadata.
type Song struct {
	ID         string
	Title      string
	Artist     string
	SourcePath string
	YouTubeID  string
	DurationMs int64
	CreatedAt  time.Time
}

// MatchResult is one ranked candidate returned by Identify.
type MatchResult struct {
	Song       Song
	Confidence float64

	// OffsetFrames is the matcher's dominant δ in STFT hop-sized frames:
	// the query's position within the matched song, in song-clock frames.
	OffsetFrames int
}
