package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filepick/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapLogger installs a package logger writing to buf for the duration of
// the test.
func swapLogger(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	mu.Lock()
	original := logger
	logger = NewLogger(WithOutput(buf))
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		logger = original
		mu.Unlock()
	})
}

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "error message")
	buf.Reset()

	// A bare message is not treated as a format string
	l.Info("100% done")
	assert.Contains(t, buf.String(), "100% done")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))
	t.Cleanup(func() { SetDebug(false) })

	SetDebug(false)
	l.Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	l.Debug("debug message")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "debug message")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	l.With(F("key1", "value1")).With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "chained fields")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.Info("json message")

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "info", logEntry["level"])
	assert.Equal(t, "json message", logEntry["message"])
	assert.Contains(t, logEntry, "timestamp")
	assert.Contains(t, logEntry, "caller")
	buf.Reset()

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured json")
	err = json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "value1", logEntry["key1"])
	assert.Equal(t, float64(123), logEntry["key2"]) // JSON numbers are float64
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	swapLogger(t, &buf)

	stdErr := fmt.Errorf("standard error")
	LogWithFields(F("error", stdErr.Error())).Error("error occurred")
	output := buf.String()
	assert.Contains(t, output, "error occurred")
	assert.Contains(t, output, "standard error")
	buf.Reset()

	appErr := errors.New("application error")
	LogWithError(appErr).Error("app error occurred")
	output = buf.String()
	assert.Contains(t, output, "app error occurred")
	assert.Contains(t, output, "application error")
	assert.Contains(t, output, "error_kind=unknown")
	buf.Reset()

	fileErr := errors.NewFileError("cannot read content", "src/app.go", errors.FileReadFailed, nil)
	LogWithError(fileErr).Warn("content unreadable")
	output = buf.String()
	assert.Contains(t, output, "content unreadable")
	assert.Contains(t, output, "cannot read content: src/app.go")
	assert.Contains(t, output, "path=src/app.go")
	assert.Contains(t, output, "error_kind=file_read_failed")
	buf.Reset()

	configErr := errors.NewConfigError("ignore file unreadable", "ignore_file", errors.ConfigUnreadable, nil)
	LogWithError(configErr).Warn("using empty rule set")
	output = buf.String()
	assert.Contains(t, output, "param=ignore_file")
	assert.Contains(t, output, "error_kind=config_unreadable")
	buf.Reset()

	LogError(fileErr, "convenient error log")
	output = buf.String()
	assert.Contains(t, output, "convenient error log")
	assert.Contains(t, output, "cannot read content: src/app.go")
}

func TestCallerInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("caller test")
	assert.Contains(t, buf.String(), "logger_test.go:")
	buf.Reset()

	swapLogger(t, &buf)
	Warn("package caller test")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "filepick.log")

	mu.Lock()
	original := logger
	mu.Unlock()
	require.NoError(t, Configure(WithFile(path)))
	t.Cleanup(func() {
		mu.Lock()
		current := logger
		logger = original
		mu.Unlock()
		current.Close()
	})

	Info("file test message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file test message")
}

func TestConfigureUnopenableFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	mu.Lock()
	original := logger
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		logger = original
		mu.Unlock()
	})

	err := Configure(WithFile(filepath.Join(blocker, "sub", "filepick.log")))
	assert.Error(t, err)
}

func TestNestedErrors(t *testing.T) {
	var buf bytes.Buffer
	swapLogger(t, &buf)

	baseErr := fmt.Errorf("base error")
	fileErr := errors.NewFileError("file error", "/path/file", errors.FileNotFound, baseErr)
	configErr := errors.NewConfigError("config error", "ignore_file", errors.ConfigUnreadable, fileErr)

	LogWithError(configErr).Error("nested error occurred")
	output := buf.String()
	assert.Contains(t, output, "nested error occurred")
	assert.Contains(t, output, "base error")
	assert.Contains(t, output, "path=/path/file")
	assert.Contains(t, output, "param=ignore_file")
	assert.Contains(t, output, "error_kind=config_unreadable")
}
