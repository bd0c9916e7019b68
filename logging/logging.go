package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog logger writing to stderr at the given level.  Pretty
// selects the human readable console writer instead of JSON lines.  An
// unknown level falls back to info.
func New(level string, pretty bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, level, pretty)
}

// NewWithWriter returns a zerolog logger writing to w
func NewWithWriter(w io.Writer, level string, pretty bool) zerolog.Logger {

	lvl, err := zerolog.ParseLevel(level)

	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.StampMilli}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
