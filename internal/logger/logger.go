package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  zerolog.Logger
)

// Config holds the logger configuration.
type Config struct {
	Level  string
	Output string // "stdout", "stderr", or a file path
	Pretty bool   // console writer for development
}

// Init configures the global logger. Subsequent calls are no-ops.
func Init(cfg Config) {
	once.Do(func() {
		level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var output io.Writer
		switch cfg.Output {
		case "", "stdout":
			output = os.Stdout
		case "stderr":
			output = os.Stderr
		default:
			file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err != nil {
				output = os.Stdout
			} else {
				output = file
			}
		}

		if cfg.Pretty {
			output = zerolog.ConsoleWriter{Out: output, TimeFormat: "2006-01-02 15:04:05"}
		}

		log = zerolog.New(output).With().Timestamp().Logger()
		zerolog.DefaultContextLogger = &log
	})
}

// Get returns the global logger instance.
func Get() *zerolog.Logger {
	return &log
}
