package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// YouTubeMetadata is the subset of yt-dlp's video metadata the ingest
// pipeline cares about.
type YouTubeMetadata struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Uploader string  `json:"uploader"`
	Channel  string  `json:"channel"`
	Duration float64 `json:"duration"`
}

func (m YouTubeMetadata) resolvedArtist() string {
	for _, candidate := range []string{m.Artist, m.Channel, m.Uploader} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "Unknown Artist"
}

const defaultYouTubeTimeout = 3 * time.Minute

// DownloadYouTubeAudio fetches metadata and the best available audio stream
// for youtubeURL into outputDir, driving yt-dlp through go-ytdlp rather than
// shelling out by hand. The returned path is the raw downloaded audio
// (whatever container yt-dlp picked); callers run it through
// ConvertToMonoWAV before fingerprinting.
func DownloadYouTubeAudio(ctx context.Context, youtubeURL, outputDir string) (audioPath string, metadata YouTubeMetadata, err error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultYouTubeTimeout)
		defer cancel()
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", YouTubeMetadata{}, fmt.Errorf("audio: creating output dir: %w", err)
	}

	ytdlp.MustInstall(ctx, nil)

	metaCmd := ytdlp.New().
		NoWarnings().
		NoPlaylist().
		DumpSingleJSON()

	metaResult, err := metaCmd.Run(ctx, youtubeURL)
	if err != nil {
		return "", YouTubeMetadata{}, fmt.Errorf("audio: yt-dlp metadata fetch: %w", err)
	}

	var meta YouTubeMetadata
	if err := json.Unmarshal([]byte(metaResult.Stdout), &meta); err != nil {
		return "", YouTubeMetadata{}, fmt.Errorf("audio: parsing yt-dlp metadata: %w", err)
	}
	if strings.TrimSpace(meta.ID) == "" || strings.TrimSpace(meta.Title) == "" {
		return "", YouTubeMetadata{}, fmt.Errorf("audio: yt-dlp metadata missing id or title")
	}
	meta.Artist = meta.resolvedArtist()

	outputTemplate := filepath.Join(outputDir, meta.ID+".%(ext)s")
	dlCmd := ytdlp.New().
		NoWarnings().
		NoPlaylist().
		Format("ba").
		Output(outputTemplate)

	if _, err := dlCmd.Run(ctx, youtubeURL); err != nil {
		return "", YouTubeMetadata{}, fmt.Errorf("audio: yt-dlp download: %w", err)
	}

	for _, ext := range []string{".m4a", ".webm", ".opus", ".mp3", ".aac", ".ogg", ".wav"} {
		candidate := filepath.Join(outputDir, meta.ID+ext)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, meta, nil
		}
	}
	return "", YouTubeMetadata{}, fmt.Errorf("audio: downloaded file for %s not found", meta.ID)
}
