package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05.000"

var (
	once sync.Once
	log  zerolog.Logger
)

func configure() {
	zerolog.TimeFieldFormat = timeFormat
	out := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: timeFormat,
	}
	log = zerolog.New(out).With().Timestamp().Logger()
}

// Get returns the process logger, configuring it on first use.
func Get() *zerolog.Logger {
	once.Do(configure)
	return &log
}

// GetLeveled returns the process logger and sets the global level. Safe to
// call at any point; the last caller wins.
func GetLeveled(level zerolog.Level) *zerolog.Logger {
	once.Do(configure)
	zerolog.SetGlobalLevel(level)
	return &log
}
