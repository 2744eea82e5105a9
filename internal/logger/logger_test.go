package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/bigrsa/internal/config"
)

func resetLoggerSingleton() {
	loggerInstance = nil
	loggerErr = nil
	loggerOnce = sync.Once{}
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&config.LoggerSettings{LogLevel: config.LogLevelWarning, LogType: config.LogTypeConsole}, &buf)
	require.NoError(t, err)

	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message", "bits", 1024)

	output := buf.String()
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, "bits=1024")
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bigrsa.log")
	l, err := New(&config.LoggerSettings{
		LogLevel:   config.LogLevelDebug,
		LogType:    config.LogTypeFile,
		FilePath:   path,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}, nil)
	require.NoError(t, err)

	l.Debug("prime found", "attempts", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &record))
	assert.Equal(t, "prime found", record["msg"])
	assert.Equal(t, float64(3), record["attempts"])
}

func TestNewInvalid(t *testing.T) {
	_, err := New(&config.LoggerSettings{LogLevel: "invalid", LogType: config.LogTypeConsole}, nil)
	assert.Error(t, err)
	_, err = New(&config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeFile}, nil)
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	_, err := GetLogger()
	assert.ErrorContains(t, err, "not initialized")

	require.NoError(t, InitLogger(config.DefaultLoggerSettings()))
	l1, err := GetLogger()
	require.NoError(t, err)
	assert.Same(t, l1, slog.Default())

	// later calls keep the first logger
	require.NoError(t, InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelDebug, LogType: config.LogTypeConsole}))
	l2, err := GetLogger()
	require.NoError(t, err)
	assert.Same(t, l1, l2)
}

func TestInitLoggerInvalid(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	assert.Error(t, InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelInfo}))
	l, err := GetLogger()
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{config.LogLevelDebug, slog.LevelDebug},
		{config.LogLevelInfo, slog.LevelInfo},
		{config.LogLevelWarning, slog.LevelWarn},
		{config.LogLevelError, slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}
