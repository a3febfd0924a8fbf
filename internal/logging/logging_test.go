package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelWarn, NoColor: true})

	logger.Info("hidden")
	logger.Warn("shown", "book_id", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "book_id=7")
}

func TestNew_DefaultLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{NoColor: true})

	logger.Debug("debug line")
	logger.Info("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestNew_SessionAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{NoColor: true, Session: "s-1"})

	logger.Info("saved")

	assert.Contains(t, buf.String(), "session=s-1")
}

func TestNew_NoColorHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{NoColor: true}).Error("boom")

	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "UUIDv7 tokens sort by creation time")
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("one", "two")
	assert.Equal(t, "one", gen.Generate())
	assert.Equal(t, "two", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}
