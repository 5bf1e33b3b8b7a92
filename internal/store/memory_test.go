package store

import (
	"context"
	"testing"

	"github.com/oakmoss/soundtrace/internal/landmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryInsertAndLookupPreservesMultiplicity(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.InsertSong(ctx, Song{ID: "song-1", Title: "One"}))

	h := landmark.PackHash(1, 2, 3)
	pairs := []landmark.Pair{
		{Hash: h, AnchorTime: 0},
		{Hash: h, AnchorTime: 5}, // same hash, different anchor: both must survive lookup
	}
	require.NoError(t, m.InsertPostings(ctx, "song-1", pairs))

	got, err := m.Lookup(ctx, []landmark.Hash{h})
	require.NoError(t, err)
	require.Len(t, got["song-1"], 2)
}

func TestMemoryLookupOmitsSongsWithNoMatch(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.InsertSong(ctx, Song{ID: "song-1"}))
	require.NoError(t, m.InsertPostings(ctx, "song-1", []landmark.Pair{
		{Hash: landmark.PackHash(1, 1, 1), AnchorTime: 0},
	}))

	got, err := m.Lookup(ctx, []landmark.Hash{landmark.PackHash(9, 9, 9)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryGetSongNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.GetSong(ctx, "missing")
	assert.ErrorIs(t, err, ErrSongNotFound)
}

func TestMemoryDeleteSongCascadesPostings(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.InsertSong(ctx, Song{ID: "song-1"}))
	h := landmark.PackHash(1, 2, 3)
	require.NoError(t, m.InsertPostings(ctx, "song-1", []landmark.Pair{{Hash: h, AnchorTime: 0}}))

	require.NoError(t, m.DeleteSong(ctx, "song-1"))

	_, err := m.GetSong(ctx, "song-1")
	assert.ErrorIs(t, err, ErrSongNotFound)

	got, err := m.Lookup(ctx, []landmark.Hash{h})
	require.NoError(t, err)
	assert.Empty(t, got)

	count, err := m.CountPostings(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryDeleteSongNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	assert.ErrorIs(t, m.DeleteSong(ctx, "missing"), ErrSongNotFound)
}

func TestMemoryDeleteSongLeavesOtherSongsPostingsIntact(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	h := landmark.PackHash(1, 2, 3)
	require.NoError(t, m.InsertSong(ctx, Song{ID: "a"}))
	require.NoError(t, m.InsertSong(ctx, Song{ID: "b"}))
	require.NoError(t, m.InsertPostings(ctx, "a", []landmark.Pair{{Hash: h, AnchorTime: 0}}))
	require.NoError(t, m.InsertPostings(ctx, "b", []landmark.Pair{{Hash: h, AnchorTime: 1}}))

	require.NoError(t, m.DeleteSong(ctx, "a"))

	got, err := m.Lookup(ctx, []landmark.Hash{h})
	require.NoError(t, err)
	require.Len(t, got["b"], 1)
	assert.NotContains(t, got, "a")
}

func TestMemoryCountsAndClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.InsertSong(ctx, Song{ID: "a"}))
	require.NoError(t, m.InsertPostings(ctx, "a", []landmark.Pair{
		{Hash: landmark.PackHash(1, 1, 1), AnchorTime: 0},
		{Hash: landmark.PackHash(2, 2, 2), AnchorTime: 1},
	}))

	songs, err := m.CountSongs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, songs)

	postings, err := m.CountPostings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, postings)

	require.NoError(t, m.Clear(ctx))
	songs, _ = m.CountSongs(ctx)
	postings, _ = m.CountPostings(ctx)
	assert.Zero(t, songs)
	assert.Zero(t, postings)
}

func TestMemoryListSongs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.InsertSong(ctx, Song{ID: "a", Title: "Alpha"}))
	require.NoError(t, m.InsertSong(ctx, Song{ID: "b", Title: "Beta"}))

	songs, err := m.ListSongs(ctx)
	require.NoError(t, err)
	assert.Len(t, songs, 2)
}
