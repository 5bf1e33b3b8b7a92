package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: WarnLevel, Output: &buf})

	l.Info("should not appear")
	l.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestLoggerWithAddsKeyvals(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: DebugLevel, Output: &buf}).With("song_id", "abc-123")

	l.Info("added song")

	out := buf.String()
	assert.True(t, strings.Contains(out, "song_id") && strings.Contains(out, "abc-123"))
}

func TestDefaultLoggerIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
