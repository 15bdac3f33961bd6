package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger().
	Level(zerolog.InfoLevel)

// Init configures the process-wide logger. Unknown levels fall back to info.
func Init(level string, pretty bool) {
	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	SetOutput(out, LogLevel(level))
}

// SetOutput swaps the sink, mostly for tests.
func SetOutput(w io.Writer, level LogLevel) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(string(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	base = zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}

type Log struct {
	zl  zerolog.Logger
	err error
}

func New() *Log {
	return &Log{zl: base}
}

// Component returns a logger tagged with the component name.
func Component(name string) *Log {
	return &Log{zl: base.With().Str("component", name).Logger()}
}

func (l *Log) WithError(err error) *Log {
	return &Log{zl: l.zl, err: err}
}

// With adds a structured field to every line written by the returned logger.
func (l *Log) With(key string, value interface{}) *Log {
	return &Log{zl: l.zl.With().Interface(key, value).Logger(), err: l.err}
}

func (l *Log) event(e *zerolog.Event, msg string) {
	if l.err != nil {
		e = e.Err(l.err)
	}
	e.Msg(msg)
}

func (l *Log) Debug(msg string) { l.event(l.zl.Debug(), msg) }

func (l *Log) Info(msg string) { l.event(l.zl.Info(), msg) }

func (l *Log) Warn(msg string) { l.event(l.zl.Warn(), msg) }

func (l *Log) Error(msg string) { l.event(l.zl.Error(), msg) }
