package landmark

import (
	"sort"

	"github.com/oakmoss/soundtrace/internal/config"
)

// Hash is a packed (f_anchor, f_target, Δt) triple: bits 47-32 carry the
// anchor's frequency bin, bits 31-16 the target's, and bits 15-0 the delta
// in frames. It is a pure, deterministic function of its three inputs —
// identical inputs always produce the identical Hash.
type Hash uint64

// PackHash packs an anchor/target pairing into a Hash per the bit-exact
// layout in spec §6. No masking is applied: callers must ensure fAnchor and
// fTarget fit 16 bits (true for any window <= 65536) and deltaFrames fits 16
// bits (true for any deltaFrames <= TargetZoneStart+TargetZoneWidth).
func PackHash(fAnchor, fTarget, deltaFrames int) Hash {
	return Hash(uint64(fAnchor)<<32 | uint64(fTarget)<<16 | uint64(deltaFrames))
}

// Unpack recovers the (f_anchor, f_target, Δt) triple that produced h.
func (h Hash) Unpack() (fAnchor, fTarget, deltaFrames int) {
	fAnchor = int((uint64(h) >> 32) & 0xFFFF)
	fTarget = int((uint64(h) >> 16) & 0xFFFF)
	deltaFrames = int(uint64(h) & 0xFFFF)
	return
}

// Pair is one (hash, anchor_time) emission — the unit the hasher produces
// and the posting store persists.
type Pair struct {
	Hash       Hash
	AnchorTime int
}

// Fingerprint sorts peaks by ascending time (stable, so C4's emission order
// breaks ties) and, for each anchor peak, pairs it with up to
// cfg.MaxPairsPerAnchor subsequent peaks whose Δt falls in
// [cfg.TargetZoneStart, cfg.TargetZoneStart+cfg.TargetZoneWidth]. Because
// peaks are time-sorted, the scan for one anchor can stop as soon as Δt
// exceeds the zone's far edge.
//
// Emission order is stable: primary key anchor index, secondary key target
// index — callers (and tests) may rely on it.
func Fingerprint(peaks []Peak, cfg config.Constants) []Pair {
	sorted := make([]Peak, len(peaks))
	copy(sorted, peaks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TimeIdx < sorted[j].TimeIdx })

	zoneStart := cfg.TargetZoneStart
	zoneEnd := cfg.TargetZoneStart + cfg.TargetZoneWidth

	pairs := make([]Pair, 0, len(sorted)*cfg.MaxPairsPerAnchor)
	for i, anchor := range sorted {
		emitted := 0
		for j := i + 1; j < len(sorted) && emitted < cfg.MaxPairsPerAnchor; j++ {
			target := sorted[j]
			dt := target.TimeIdx - anchor.TimeIdx
			if dt > zoneEnd {
				break
			}
			if dt < zoneStart {
				continue
			}
			pairs = append(pairs, Pair{
				Hash:       PackHash(anchor.FreqIdx, target.FreqIdx, dt),
				AnchorTime: anchor.TimeIdx,
			})
			emitted++
		}
	}
	return pairs
}
