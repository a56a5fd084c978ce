package hdfsfile

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger writing to w at level. Every entry
// carries lib=hdfsfile.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(out).Level(level).With().Timestamp().Str("lib", "hdfsfile").Logger()
}

// DefaultLogger is used by backends built without a logger: warnings and
// errors on stderr.
func DefaultLogger() zerolog.Logger {
	return NewLogger(os.Stderr, zerolog.WarnLevel)
}

// NewTestLogger logs down to debug into w, without timestamps.
func NewTestLogger(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(out).Level(zerolog.DebugLevel).With().Str("lib", "hdfsfile").Logger()
}

// LogLevelFromString parses a level name, case-insensitively.
func LogLevelFromString(levelStr string) (zerolog.Level, error) {
	return zerolog.ParseLevel(strings.ToLower(levelStr))
}

// LevelForVerbosity maps a repeated -v count to a level: warn, info, debug,
// then trace.
func LevelForVerbosity(count int) zerolog.Level {
	switch {
	case count <= 0:
		return zerolog.WarnLevel
	case count == 1:
		return zerolog.InfoLevel
	case count == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
