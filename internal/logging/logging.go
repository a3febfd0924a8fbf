// Package logging builds the slog loggers used by the shelf binary.
//
// Output goes through a tint handler so interactive sessions get compact,
// colored lines on stderr. Colors are dropped when stderr is not a terminal.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// TimeFormat is the timestamp layout of every log line.
const TimeFormat = "15:04:05.000"

// Options configures New.
type Options struct {
	Level   slog.Leveler
	NoColor bool

	// Session, when set, is attached to every record as the "session"
	// attribute.
	Session string
}

// New returns a logger writing tinted text to w.
func New(w io.Writer, opts Options) *slog.Logger {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: TimeFormat,
		NoColor:    opts.NoColor,
	}))
	if opts.Session != "" {
		logger = logger.With("session", opts.Session)
	}
	return logger
}

// Stderr returns a logger on the process stderr, colored only when stderr
// is a terminal.
func Stderr(level slog.Leveler, session string) *slog.Logger {
	return New(colorable.NewColorable(os.Stderr), Options{
		Level:   level,
		NoColor: !isTerminal(os.Stderr),
		Session: session,
	})
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
