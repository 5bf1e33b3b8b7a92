// Package match implements the matcher (C7): it turns a query hash list and
// the posting-store rows that share those hashes into a ranked list of
// candidate songs by temporal-offset coherence.
package match

import (
	"context"
	"sort"

	"github.com/oakmoss/soundtrace/internal/config"
	"github.com/oakmoss/soundtrace/internal/landmark"
	"github.com/oakmoss/soundtrace/internal/store"
)

// Result is one ranked candidate.
type Result struct {
	SongID     string
	Confidence float64

	// Offset is the histogram's dominant δ (ts - tq, in frames): the
	// alignment between the song's clock and the query's clock that the
	// coherent mass was measured around.
	Offset int
}

// Identify looks up query's hashes in st, histograms the per-song time
// offsets, and returns every candidate whose confidence clears
// cfg.MinConfidenceThreshold, sorted descending by confidence.
//
// The qtime map retains only the last tq seen for a repeated hash — a
// known approximation when the query itself contains duplicate hashes.
func Identify(ctx context.Context, st store.Store, query []landmark.Pair, cfg config.Constants) ([]Result, error) {
	qtime := make(map[landmark.Hash]int, len(query))
	hashes := make([]landmark.Hash, 0, len(query))
	for _, p := range query {
		if _, seen := qtime[p.Hash]; !seen {
			hashes = append(hashes, p.Hash)
		}
		qtime[p.Hash] = p.AnchorTime
	}

	matches, err := st.Lookup(ctx, hashes)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(matches))
	for songID, postings := range matches {
		if len(postings) < cfg.MinMatchingHashes {
			continue
		}

		hist := make(map[int]int)
		for _, p := range postings {
			tq, ok := qtime[p.Hash]
			if !ok {
				continue
			}
			delta := int(p.AnchorTime) - tq
			hist[delta]++
		}
		if len(hist) == 0 {
			continue
		}

		bestDelta, bestCount := 0, -1
		for delta, count := range hist {
			switch {
			case count > bestCount:
				bestDelta, bestCount = delta, count
			case count == bestCount && delta < bestDelta:
				bestDelta = delta
			}
		}

		coherent := 0
		for delta, count := range hist {
			if abs(delta-bestDelta) <= cfg.TimeDeltaTolerance {
				coherent += count
			}
		}

		confidence := float64(coherent) / float64(len(query))
		if confidence > 1.0 {
			confidence = 1.0
		}
		if confidence < cfg.MinConfidenceThreshold {
			continue
		}

		results = append(results, Result{SongID: songID, Confidence: confidence, Offset: bestDelta})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].SongID < results[j].SongID
	})
	return results, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
