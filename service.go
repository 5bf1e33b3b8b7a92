package soundtrace

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/oakmoss/soundtrace/internal/audio"
	"github.com/oakmoss/soundtrace/internal/dsp"
	"github.com/oakmoss/soundtrace/internal/landmark"
	"github.com/oakmoss/soundtrace/internal/logging"
	"github.com/oakmoss/soundtrace/internal/match"
	"github.com/oakmoss/soundtrace/internal/store"
)

// Service composes the ingest and query pipelines (C8): add a song once —
// one spectrogram, one peak set, one hash list, one store insert — or
// identify a clip once — one spectrogram, one peak set, one hash list, one
// store lookup, one ranking. Any sub-step error aborts the operation with
// no partial state becoming visible.
type Service struct {
	store   store.Store
	log     logging.Logger
	cfg     Config
	tempDir string
}

// NewService opens (or accepts) a posting store and returns a ready
// Service. Callers must call Close when finished.
func NewService(opts ...Option) (*Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}

	st := cfg.Store
	if st == nil {
		sqliteStore, err := store.NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("soundtrace: opening store: %w", err)
		}
		st = sqliteStore
	}

	return &Service{store: st, log: cfg.Logger, cfg: cfg, tempDir: cfg.TempDir}, nil
}

// fingerprintFile decodes audioPath (converting via ffmpeg first unless
// it is already a WAV) and runs it through the spectrogram, peak picker,
// and hasher stages, returning the resulting hash list and duration.
func (s *Service) fingerprintFile(ctx context.Context, audioPath string) ([]landmark.Pair, int64, error) {
	wavPath := audioPath
	if !isWAV(audioPath) {
		converted, err := audio.ConvertToMonoWAV(ctx, audioPath, s.tempDir, audio.ConvertOptions{
			SampleRate: s.cfg.Constants.SampleRate,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("soundtrace: converting audio: %w", err)
		}
		wavPath = converted
	}

	samples, sampleRate, err := audio.ReadWAV(wavPath)
	if err != nil {
		return nil, 0, fmt.Errorf("soundtrace: reading wav: %w", err)
	}
	if len(samples) < s.cfg.Constants.FFTWindowSize {
		return nil, 0, fmt.Errorf("soundtrace: audio shorter than one analysis window")
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	spectrogram, err := dsp.BuildSpectrogram(samples, s.cfg.Constants.FFTWindowSize, s.cfg.Constants.HopSize)
	if err != nil {
		return nil, 0, fmt.Errorf("soundtrace: building spectrogram: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	peaks := landmark.ExtractPeaks(spectrogram, s.cfg.Constants)
	pairs := landmark.Fingerprint(peaks, s.cfg.Constants)

	durationMs := int64(float64(len(samples)) / float64(sampleRate) * 1000)
	return pairs, durationMs, nil
}

func isWAV(path string) bool {
	n := len(path)
	return n >= 4 && (path[n-4:] == ".wav" || path[n-4:] == ".WAV")
}

// AddSong fingerprints the audio at audioPath and registers it under a
// freshly minted song ID. No partial state is left visible if any stage
// fails.
func (s *Service) AddSong(ctx context.Context, audioPath, title, artist, youtubeID string) (Song, error) {
	s.log.Info("fingerprinting song", "title", title, "artist", artist, "path", audioPath)

	pairs, durationMs, err := s.fingerprintFile(ctx, audioPath)
	if err != nil {
		return Song{}, err
	}
	s.log.Info("generated hashes", "count", len(pairs))

	song := store.Song{
		ID:         uuid.NewString(),
		Title:      title,
		Artist:     artist,
		SourcePath: audioPath,
		YouTubeID:  youtubeID,
		DurationMs: durationMs,
	}
	if err := s.store.InsertSong(ctx, song); err != nil {
		return Song{}, fmt.Errorf("soundtrace: registering song: %w", err)
	}
	if err := s.store.InsertPostings(ctx, song.ID, pairs); err != nil {
		_ = s.store.DeleteSong(ctx, song.ID)
		return Song{}, fmt.Errorf("soundtrace: storing postings: %w", err)
	}

	s.log.Info("added song", "song_id", song.ID)
	return songFromStore(song), nil
}

// Identify fingerprints the audio at audioPath and returns every candidate
// song whose match confidence clears the configured threshold, ranked
// descending. An empty slice with a nil error means no candidate matched —
// per the matcher's design, that is not itself an error.
func (s *Service) Identify(ctx context.Context, audioPath string) ([]MatchResult, error) {
	s.log.Info("identifying audio", "path", audioPath)

	pairs, _, err := s.fingerprintFile(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	s.log.Info("generated query hashes", "count", len(pairs))

	ranked, err := match.Identify(ctx, s.store, pairs, s.cfg.Constants)
	if err != nil {
		return nil, fmt.Errorf("soundtrace: matching: %w", err)
	}

	results := make([]MatchResult, 0, len(ranked))
	for _, r := range ranked {
		song, err := s.store.GetSong(ctx, r.SongID)
		if err != nil {
			s.log.Warn("matched song vanished from store", "song_id", r.SongID, "error", err)
			continue
		}
		results = append(results, MatchResult{Song: songFromStore(song), Confidence: r.Confidence, OffsetFrames: r.Offset})
	}
	s.log.Info("identification complete", "candidates", len(results))
	return results, nil
}

// GetSong retrieves a registered song's metadata.
func (s *Service) GetSong(ctx context.Context, songID string) (Song, error) {
	song, err := s.store.GetSong(ctx, songID)
	if err != nil {
		return Song{}, err
	}
	return songFromStore(song), nil
}

// ListSongs returns every registered song.
func (s *Service) ListSongs(ctx context.Context) ([]Song, error) {
	songs, err := s.store.ListSongs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Song, len(songs))
	for i, song := range songs {
		out[i] = songFromStore(song)
	}
	return out, nil
}

// DeleteSong removes a song and every posting derived from it.
func (s *Service) DeleteSong(ctx context.Context, songID string) error {
	return s.store.DeleteSong(ctx, songID)
}

// Close releases the underlying store's resources.
func (s *Service) Close() error {
	return s.store.Close()
}

func songFromStore(s store.Song) Song {
	return Song{
		ID:         s.ID,
		Title:      s.Title,
		Artist:     s.Artist,
		SourcePath: s.SourcePath,
		YouTubeID:  s.YouTubeID,
		DurationMs: s.DurationMs,
		CreatedAt:  s.CreatedAt,
	}
}
