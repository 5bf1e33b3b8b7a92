package store

import (
	"context"
	"sync"

	"github.com/oakmoss/soundtrace/internal/landmark"
)

// Memory is an in-process Store backed by plain maps under a single
// RWMutex. Spec names this as the one in-memory test double every
// implementation must be able to run against; it is also perfectly usable
// for small, ephemeral deployments that don't need postings to survive a
// restart.
type Memory struct {
	mu       sync.RWMutex
	songs    map[string]Song
	postings map[landmark.Hash][]Posting
}

// NewMemory returns an empty in-memory posting store.
func NewMemory() *Memory {
	return &Memory{
		songs:    make(map[string]Song),
		postings: make(map[landmark.Hash][]Posting),
	}
}

func (m *Memory) InsertSong(_ context.Context, song Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.songs[song.ID] = song
	return nil
}

// InsertPostings appends pairs for songID atomically: the postings slice is
// built up front and only merged into the shared map once nothing can fail.
func (m *Memory) InsertPostings(_ context.Context, songID string, pairs []landmark.Pair) error {
	additions := make(map[landmark.Hash][]Posting, len(pairs))
	for _, p := range pairs {
		additions[p.Hash] = append(additions[p.Hash], Posting{
			Hash:       p.Hash,
			AnchorTime: int32(p.AnchorTime),
			SongID:     songID,
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for hash, postings := range additions {
		m.postings[hash] = append(m.postings[hash], postings...)
	}
	return nil
}

func (m *Memory) Lookup(_ context.Context, hashes []landmark.Hash) (map[string][]Posting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]Posting)
	for _, h := range hashes {
		for _, posting := range m.postings[h] {
			out[posting.SongID] = append(out[posting.SongID], posting)
		}
	}
	return out, nil
}

func (m *Memory) GetSong(_ context.Context, songID string) (Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	song, ok := m.songs[songID]
	if !ok {
		return Song{}, ErrSongNotFound
	}
	return song, nil
}

func (m *Memory) ListSongs(_ context.Context) ([]Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Song, 0, len(m.songs))
	for _, s := range m.songs {
		out = append(out, s)
	}
	return out, nil
}

// DeleteSong removes a song and cascades to every posting referencing it.
func (m *Memory) DeleteSong(_ context.Context, songID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.songs[songID]; !ok {
		return ErrSongNotFound
	}
	delete(m.songs, songID)
	for hash, postings := range m.postings {
		filtered := postings[:0]
		for _, p := range postings {
			if p.SongID != songID {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			delete(m.postings, hash)
		} else {
			m.postings[hash] = filtered
		}
	}
	return nil
}

func (m *Memory) CountSongs(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.songs), nil
}

func (m *Memory) CountPostings(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, postings := range m.postings {
		n += len(postings)
	}
	return n, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.songs = make(map[string]Song)
	m.postings = make(map[landmark.Hash][]Posting)
	return nil
}

func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
