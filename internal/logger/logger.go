// Package logger builds the slog logger used by the bigrsa tool.
//
// The library packages log through the slog default logger, so installing a
// logger with InitLogger also routes their records.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/natefinch/lumberjack"
	"github.com/taurusgroup/bigrsa/internal/config"
)

var (
	loggerInstance *slog.Logger
	loggerErr      error
	loggerOnce     sync.Once
)

// InitLogger initializes the singleton logger and installs it as the slog default.
//
// Only the first call has an effect.
func InitLogger(settings *config.LoggerSettings) error {
	loggerOnce.Do(func() {
		loggerInstance, loggerErr = New(settings, os.Stderr)
		if loggerErr == nil {
			slog.SetDefault(loggerInstance)
		}
	})
	return loggerErr
}

// GetLogger returns the initialized logger instance.
func GetLogger() (*slog.Logger, error) {
	if loggerInstance == nil {
		return nil, errors.New("logger not initialized: call InitLogger first")
	}
	return loggerInstance, nil
}

// New creates a logger from its settings. Console loggers write text records
// to console, file loggers write JSON records to a rotated file.
func New(c *config.LoggerSettings, console io.Writer) (*slog.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(c.LogLevel),
	}
	switch c.LogType {
	case config.LogTypeConsole:
		return slog.New(slog.NewTextHandler(console, opts)), nil
	case config.LogTypeFile:
		writer := &lumberjack.Logger{
			Filename:   c.FilePath,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   true,
		}
		return slog.New(slog.NewJSONHandler(writer, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", c.LogType)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
