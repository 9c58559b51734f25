package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init replaces the process logger. Unknown levels fall back to info.
func Init(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Get exposes the underlying logger for middleware that logs structured fields.
func Get() *zerolog.Logger {
	return &log
}

func Info(msg string, fields ...interface{}) {
	withFields(log.Info(), fields).Msg(msg)
}

func Warn(msg string, fields ...interface{}) {
	withFields(log.Warn(), fields).Msg(msg)
}

func Error(msg string, err error, fields ...interface{}) {
	withFields(log.Error().Err(err), fields).Msg(msg)
}

// withFields attaches optional detail values. A single map becomes top-level
// fields, anything else is logged under "detail".
func withFields(e *zerolog.Event, fields []interface{}) *zerolog.Event {
	for _, f := range fields {
		switch v := f.(type) {
		case nil:
		case map[string]interface{}:
			e = e.Fields(v)
		default:
			e = e.Interface("detail", v)
		}
	}
	return e
}
