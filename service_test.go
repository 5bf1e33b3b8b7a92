package soundtrace

import (
	"context"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmoss/soundtrace/internal/config"
	"github.com/oakmoss/soundtrace/internal/store"
)

// tonesSamples renders seconds of audio at sampleRate as an equal-weighted
// mix of the given tone frequencies, scaled to int16 range.
func tonesSamples(seconds float64, sampleRate int, freqs ...float64) []int {
	n := int(seconds * float64(sampleRate))
	samples := make([]int, n)
	amp := 0.8 / float64(len(freqs))
	for i := 0; i < n; i++ {
		tt := float64(i) / float64(sampleRate)
		v := 0.0
		for _, f := range freqs {
			v += amp * math.Sin(2*math.Pi*f*tt)
		}
		samples[i] = int(v * 32000)
	}
	return samples
}

// writeWAVSamples writes samples as a mono 16-bit WAV and returns its path.
func writeWAVSamples(t *testing.T, samples []int, sampleRate int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "synth.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Data:           samples,
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	return path
}

// addWhiteNoise returns a copy of samples mixed with gaussian white noise at
// the given SNR in dB (negative means the noise is louder than the signal),
// clipped to int16 range.
func addWhiteNoise(samples []int, snrDB float64) []int {
	var sumSq float64
	for _, s := range samples {
		sumSq += float64(s) * float64(s)
	}
	signalRMS := math.Sqrt(sumSq / float64(len(samples)))
	noiseRMS := signalRMS / math.Pow(10, snrDB/20)

	rng := rand.New(rand.NewSource(1))
	out := make([]int, len(samples))
	for i, s := range samples {
		v := float64(s) + rng.NormFloat64()*noiseRMS
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		out[i] = int(v)
	}
	return out
}

// synthWAV writes a short multi-tone WAV so the fingerprinting pipeline has
// real spectral structure to latch onto, rather than silence.
func synthWAV(t *testing.T, seconds float64, sampleRate int) string {
	t.Helper()
	return writeWAVSamples(t, tonesSamples(seconds, sampleRate, 440, 1200, 2800), sampleRate)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(WithStore(store.NewMemory()), WithConstants(config.Default()))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestAddSongAndIdentifySelfMatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	wavPath := synthWAV(t, 3.0, 44100)

	song, err := svc.AddSong(ctx, wavPath, "Test Track", "Test Artist", "")
	require.NoError(t, err)
	assert.NotEmpty(t, song.ID)
	assert.Equal(t, "Test Track", song.Title)

	results, err := svc.Identify(ctx, wavPath)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, song.ID, results[0].Song.ID)
	assert.GreaterOrEqual(t, results[0].Confidence, 0.1)
	assert.LessOrEqual(t, results[0].Confidence, 1.0)
}

func TestIdentifyWithNoSongsReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	wavPath := synthWAV(t, 3.0, 44100)

	results, err := svc.Identify(ctx, wavPath)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAddSongTooShortIsError(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	wavPath := synthWAV(t, 0.01, 44100)

	_, err := svc.AddSong(ctx, wavPath, "Short", "Artist", "")
	assert.Error(t, err)
}

func TestListAndDeleteSong(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	wavPath := synthWAV(t, 3.0, 44100)

	song, err := svc.AddSong(ctx, wavPath, "Listed", "Artist", "")
	require.NoError(t, err)

	songs, err := svc.ListSongs(ctx)
	require.NoError(t, err)
	assert.Len(t, songs, 1)

	require.NoError(t, svc.DeleteSong(ctx, song.ID))

	_, err = svc.GetSong(ctx, song.ID)
	assert.Error(t, err)
}

// TestIdentifyDistinctTonesDoNotMatch covers the "false positives stay rare"
// property: a query built from an unrelated pure tone must not be confused
// for a song built from a different pure tone.
func TestIdentifyDistinctTonesDoNotMatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	songPath := writeWAVSamples(t, tonesSamples(2.0, 44100, 440), 44100)
	_, err := svc.AddSong(ctx, songPath, "440Hz", "Artist", "")
	require.NoError(t, err)

	queryPath := writeWAVSamples(t, tonesSamples(2.0, 44100, 880), 44100)
	results, err := svc.Identify(ctx, queryPath)
	require.NoError(t, err)
	for _, r := range results {
		assert.Lessf(t, r.Confidence, 0.3, "unrelated tone matched %s at confidence %f", r.Song.ID, r.Confidence)
	}
}

// TestIdentifyRecoversTemporalOffset covers the temporal-coherence property:
// a query cut from the middle of a longer song must still win the match,
// and the matcher's recovered offset must land on the true cut point.
func TestIdentifyRecoversTemporalOffset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	const sampleRate = 44100

	full := tonesSamples(10.0, sampleRate, 440, 1200, 2800)
	songPath := writeWAVSamples(t, full, sampleRate)
	song, err := svc.AddSong(ctx, songPath, "Song B", "Artist", "")
	require.NoError(t, err)

	start, end := 3*sampleRate, 6*sampleRate
	queryPath := writeWAVSamples(t, full[start:end], sampleRate)

	results, err := svc.Identify(ctx, queryPath)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, song.ID, results[0].Song.ID)

	wantOffset := int(math.Round(3.0 * float64(sampleRate) / 1024.0))
	assert.InDelta(t, wantOffset, results[0].OffsetFrames, 2)
}

// TestIdentifyMatchesThroughNoise covers the robustness property: a query
// buried in white noise at -10dB SNR must still win the match, even though
// its confidence is much lower than the clean-query case.
func TestIdentifyMatchesThroughNoise(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	const sampleRate = 44100

	full := tonesSamples(10.0, sampleRate, 440, 1200, 2800)
	songPath := writeWAVSamples(t, full, sampleRate)
	song, err := svc.AddSong(ctx, songPath, "Song B", "Artist", "")
	require.NoError(t, err)

	start, end := 3*sampleRate, 6*sampleRate
	noisy := addWhiteNoise(full[start:end], -10)
	queryPath := writeWAVSamples(t, noisy, sampleRate)

	results, err := svc.Identify(ctx, queryPath)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, song.ID, results[0].Song.ID)
	assert.GreaterOrEqual(t, results[0].Confidence, 0.1)
}
