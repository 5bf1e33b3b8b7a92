package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// ConvertOptions controls the ffmpeg transcode target.
type ConvertOptions struct {
	SampleRate int
}

// defaultConvertTimeout bounds a single ffmpeg invocation so a hung or
// malformed input can't wedge an ingest indefinitely.
const defaultConvertTimeout = 30 * time.Second

// ConvertToMonoWAV shells out to ffmpeg to transcode inputPath into a mono,
// 16-bit PCM WAV file at opts.SampleRate (defaulting to the core's
// SAMPLE_RATE if unset), writing the result under outputDir. It is the
// on-disk escape hatch for any container/codec ReadWAV doesn't understand
// directly — mp3, m4a, flac, whatever a decoder upstream of the core hands
// it.
func ConvertToMonoWAV(ctx context.Context, inputPath, outputDir string, opts ConvertOptions) (string, error) {
	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultConvertTimeout)
		defer cancel()
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("audio: creating output dir: %w", err)
	}

	outputPath := filepath.Join(outputDir, filepath.Base(inputPath)+".wav")
	tmpPath := outputPath + ".tmp"
	defer os.Remove(tmpPath)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-v", "quiet",
		"-i", inputPath,
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", opts.SampleRate),
		"-c:a", "pcm_s16le",
		"-f", "wav",
		tmpPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("audio: ffmpeg transcode failed: %w (%s)", err, out)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		return "", fmt.Errorf("audio: moving transcoded file into place: %w", err)
	}
	return outputPath, nil
}
