// Package store implements the posting store (C6): an inverted index from
// hash to (song_id, anchor_time) postings, plus song metadata. It is the
// one piece of shared mutable state in the system — every other data
// structure in a pipeline run is owned by exactly one in-flight operation.
package store

import (
	"context"
	"time"

	"github.com/oakmoss/soundtrace/internal/landmark"
)

// Song is a song's immutable metadata, keyed by a stable opaque identifier
// (a UUIDv4 in string form).
type Song struct {
	ID         string
	Title      string
	Artist     string
	SourcePath string
	YouTubeID  string
	DurationMs int64
	CreatedAt  time.Time
}

// Posting is one stored occurrence of a hash in a song, with the frame
// index of the anchor peak that produced it.
type Posting struct {
	Hash       landmark.Hash
	AnchorTime int32
	SongID     string
}

// Store is the posting-store contract every backend must satisfy. It is
// defined against plain data so an in-memory test double and a real
// database-backed implementation are interchangeable.
//
// InsertPostings must be atomic at song granularity: either every posting
// for that song becomes visible, or none does. Lookup must preserve
// multiplicity — a posting stored twice for the same song must be returned
// twice.
type Store interface {
	InsertSong(ctx context.Context, song Song) error
	InsertPostings(ctx context.Context, songID string, pairs []landmark.Pair) error

	// Lookup returns every posting whose hash is in hashes, grouped by
	// song_id. Songs with no matching postings are omitted from the map.
	Lookup(ctx context.Context, hashes []landmark.Hash) (map[string][]Posting, error)

	GetSong(ctx context.Context, songID string) (Song, error)
	ListSongs(ctx context.Context) ([]Song, error)
	DeleteSong(ctx context.Context, songID string) error

	CountSongs(ctx context.Context) (int, error)
	CountPostings(ctx context.Context) (int, error)

	Clear(ctx context.Context) error
	Close() error
}
