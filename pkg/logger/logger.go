package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log is a no-op until Init is called so packages can log from tests.
var Log = zerolog.Nop()

// Init configures the global logger for env: colored console output at debug
// level in development, JSON at info level everywhere else.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

// InitWithWriter is Init with an explicit sink.
func InitWithWriter(env string, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if env == "development" {
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	Log = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "trackitnow").
		Logger()

	// Migrations log through zerolog's package logger
	log.Logger = Log
}

func Info() *zerolog.Event {
	return Log.Info()
}

func Error() *zerolog.Event {
	return Log.Error()
}

func Warn() *zerolog.Event {
	return Log.Warn()
}

func Debug() *zerolog.Event {
	return Log.Debug()
}

func Fatal() *zerolog.Event {
	return Log.Fatal()
}
