// Package logger writes structured logs to a rotating file. The terminal is
// owned by the UI, so nothing is ever written to stdout or stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the file logger
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

var (
	mu     sync.RWMutex
	logger = zerolog.New(io.Discard)
	closer io.Closer
)

// Init points the package logger at a rotating log file. Until Init is
// called every log call is discarded.
func Init(opts Options) error {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if opts.File == "" {
		return fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	SetOutput(writer, level)

	mu.Lock()
	closer = writer
	mu.Unlock()
	return nil
}

// SetOutput replaces the log destination. Tests use it to capture output.
func SetOutput(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Close flushes and closes the log file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(io.Discard)
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func Debugf(format string, args ...any) {
	current().Debug().Msgf(format, args...)
}

func Infof(format string, args ...any) {
	current().Info().Msgf(format, args...)
}

func Warnf(format string, args ...any) {
	current().Warn().Msgf(format, args...)
}

func Errorf(format string, args ...any) {
	current().Error().Msgf(format, args...)
}

// Err logs err at error level with a message
func Err(err error, msg string) {
	current().Error().Err(err).Msg(msg)
}
