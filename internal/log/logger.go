package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"filepick/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug atomic.Bool

	mu     sync.RWMutex
	logger = NewLogger()
)

// Field is a single structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, structured entries through logrus.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

type options struct {
	out  io.Writer
	json bool
	file string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends entries to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per entry.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile appends entries to the file at path, creating parent
// directories as needed. It takes precedence over WithOutput.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// NewLogger creates a logger writing to stderr unless configured otherwise.
// A file that cannot be opened falls back to stderr.
func NewLogger(opts ...Option) *Logger {
	l, _ := newLogger(opts...)
	return l
}

func newLogger(opts ...Option) (*Logger, error) {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		file    *os.File
		openErr error
	)
	if o.file != "" {
		file, openErr = openLogFile(o.file)
		if openErr == nil {
			o.out = file
		}
	}

	base := logrus.New()
	base.SetOutput(o.out)
	base.SetLevel(logrus.DebugLevel)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return &Logger{entry: logrus.NewEntry(base), file: file}, openErr
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "unable to create log directory")
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// SetDebug toggles emission of Debug entries for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// Configure replaces the package logger. The previous logger's file, if
// any, is closed. An unopenable log file is reported and stderr is used.
func Configure(opts ...Option) error {
	l, err := newLogger(opts...)
	mu.Lock()
	prev := logger
	logger = l
	mu.Unlock()
	if prev != nil {
		prev.Close()
	}
	return err
}

// Close releases the log file, if one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithError attaches err and, for application errors, its kind and the
// path or parameter it concerns.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	fields := []Field{F("error", err.Error()), F("error_kind", errors.KindOf(err).String())}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var patternErr *errors.PatternError
	if errors.As(err, &patternErr) && patternErr.Pattern() != "" {
		fields = append(fields, F("pattern", patternErr.Pattern()))
	}
	return l.With(fields...)
}

func (l *Logger) Debug(msg string) { l.emit(logrus.DebugLevel, msg) }
func (l *Logger) Info(msg string)  { l.emit(logrus.InfoLevel, msg) }
func (l *Logger) Warn(msg string)  { l.emit(logrus.WarnLevel, msg) }
func (l *Logger) Error(msg string) { l.emit(logrus.ErrorLevel, msg) }

// emit must be called directly from the exported method so the caller
// frame sits two levels up.
func (l *Logger) emit(level logrus.Level, msg string) {
	if level == logrus.DebugLevel && !isDebug.Load() {
		return
	}
	entry := l.entry
	if _, file, line, ok := runtime.Caller(2); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// LogWithFields returns the package logger carrying fields.
func LogWithFields(fields ...Field) *Logger {
	return current().With(fields...)
}

// LogWithError returns the package logger annotated with err.
func LogWithError(err error) *Logger {
	return current().WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	current().WithError(err).emit(logrus.ErrorLevel, msg)
}

func Debug(msg string) { current().emit(logrus.DebugLevel, msg) }
func Info(msg string)  { current().emit(logrus.InfoLevel, msg) }
func Warn(msg string)  { current().emit(logrus.WarnLevel, msg) }
func Error(msg string) { current().emit(logrus.ErrorLevel, msg) }
