//go:build !js && !wasm

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/oakmoss/soundtrace/internal/landmark"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDBFile is the SQLite file created when no path is supplied.
const DefaultDBFile = "soundtrace.sqlite3"

// songRow is the GORM model backing the songs table. ID is the caller-chosen
// opaque identifier (a UUIDv4 string), not an autoincrement key: callers
// mint the ID before the song's audio is even fingerprinted, so the row's
// primary key must already be known at InsertSong time.
type songRow struct {
	ID         string `gorm:"primaryKey"`
	Title      string `gorm:"index:idx_song_meta,priority:1"`
	Artist     string `gorm:"index:idx_song_meta,priority:2"`
	SourcePath string
	YouTubeID  string `gorm:"index:idx_youtube_id"`
	DurationMs int64
	CreatedAt  time.Time
}

// postingRow is one (hash, anchor_time) occurrence, indexed on Hash for fast
// lookup during identification.
type postingRow struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	Hash       uint64 `gorm:"index:idx_hash"`
	SongID     string `gorm:"index:idx_posting_song"`
	AnchorTime int32
}

// SQLite is a Store backed by GORM + a pure-Go SQLite driver. Deleting a
// song cascades to its postings inside a transaction.
type SQLite struct {
	db  *gorm.DB
	raw *sql.DB
}

// NewSQLite opens (creating if necessary) the database at path and runs
// schema migration. Passing ":memory:" is valid and gives a fresh,
// unshared database for the lifetime of the process.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = DefaultDBFile
	}
	if dir := filepath.Dir(path); dir != "." && dir != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: creating db directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: opening sqlite db: %w", err)
	}

	raw, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: unwrapping sql.DB: %w", err)
	}
	raw.SetMaxOpenConns(25)
	raw.SetMaxIdleConns(5)
	raw.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&songRow{}, &postingRow{}); err != nil {
		raw.Close()
		return nil, fmt.Errorf("store: auto migrate: %w", err)
	}

	return &SQLite{db: db, raw: raw}, nil
}

func (s *SQLite) InsertSong(ctx context.Context, song Song) error {
	row := songRow{
		ID:         song.ID,
		Title:      song.Title,
		Artist:     song.Artist,
		SourcePath: song.SourcePath,
		YouTubeID:  song.YouTubeID,
		DurationMs: song.DurationMs,
		CreatedAt:  song.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// InsertPostings writes every pair for songID inside one transaction,
// batching inserts so large fingerprints don't build one giant statement.
func (s *SQLite) InsertPostings(ctx context.Context, songID string, pairs []landmark.Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	rows := make([]postingRow, len(pairs))
	for i, p := range pairs {
		rows[i] = postingRow{
			Hash:       uint64(p.Hash),
			SongID:     songID,
			AnchorTime: int32(p.AnchorTime),
		}
	}
	return s.db.WithContext(ctx).CreateInBatches(rows, 500).Error
}

func (s *SQLite) Lookup(ctx context.Context, hashes []landmark.Hash) (map[string][]Posting, error) {
	if len(hashes) == 0 {
		return map[string][]Posting{}, nil
	}
	raw := make([]uint64, len(hashes))
	for i, h := range hashes {
		raw[i] = uint64(h)
	}

	var rows []postingRow
	if err := s.db.WithContext(ctx).Where("hash IN ?", raw).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: batch lookup: %w", err)
	}

	out := make(map[string][]Posting)
	for _, r := range rows {
		out[r.SongID] = append(out[r.SongID], Posting{
			Hash:       landmark.Hash(r.Hash),
			AnchorTime: r.AnchorTime,
			SongID:     r.SongID,
		})
	}
	return out, nil
}

func (s *SQLite) GetSong(ctx context.Context, songID string) (Song, error) {
	var row songRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", songID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Song{}, ErrSongNotFound
	}
	if err != nil {
		return Song{}, fmt.Errorf("store: get song: %w", err)
	}
	return Song{
		ID:         row.ID,
		Title:      row.Title,
		Artist:     row.Artist,
		SourcePath: row.SourcePath,
		YouTubeID:  row.YouTubeID,
		DurationMs: row.DurationMs,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (s *SQLite) ListSongs(ctx context.Context) ([]Song, error) {
	var rows []songRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: list songs: %w", err)
	}
	out := make([]Song, len(rows))
	for i, row := range rows {
		out[i] = Song{
			ID:         row.ID,
			Title:      row.Title,
			Artist:     row.Artist,
			SourcePath: row.SourcePath,
			YouTubeID:  row.YouTubeID,
			DurationMs: row.DurationMs,
			CreatedAt:  row.CreatedAt,
		}
	}
	return out, nil
}

func (s *SQLite) DeleteSong(ctx context.Context, songID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&songRow{}, "id = ?", songID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSongNotFound
		}
		return tx.Where("song_id = ?", songID).Delete(&postingRow{}).Error
	})
}

func (s *SQLite) CountSongs(ctx context.Context) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&songRow{}).Count(&n).Error
	return int(n), err
}

func (s *SQLite) CountPostings(ctx context.Context) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&postingRow{}).Count(&n).Error
	return int(n), err
}

func (s *SQLite) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&postingRow{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&songRow{}).Error
	})
}

func (s *SQLite) Close() error {
	return s.raw.Close()
}

var _ Store = (*SQLite)(nil)
