package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

func (l Level) charm() charmlog.Level {
	switch l {
	case LevelDebug:
		return charmlog.DebugLevel
	case LevelWarn:
		return charmlog.WarnLevel
	case LevelError:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Log files rotate at this size; the TUI owns stdout so logs only go to files.
const (
	maxFileSizeMB  = 10
	maxFileBackups = 3
	maxFileAgeDays = 14
)

// Logger is a leveled logger. Output is discarded unless a file or writer is
// configured, since the terminal belongs to the UI.
type Logger struct {
	mu     sync.Mutex
	level  Level
	logger *charmlog.Logger
	file   io.WriteCloser
}

var (
	// Default is the default logger instance
	Default *Logger
)

func init() {
	Default = New()
}

// New creates a new logger based on environment variables
func New() *Logger {
	l := &Logger{
		level: LevelInfo,
		logger: charmlog.NewWithOptions(io.Discard, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      "2006-01-02 15:04:05",
			Prefix:          "secconsole",
		}),
	}

	if levelStr := os.Getenv("SECCONSOLE_LOG_LEVEL"); levelStr != "" {
		if level, err := ParseLevel(levelStr); err == nil {
			l.level = level
		}
	}
	l.logger.SetLevel(l.level.charm())

	if logFile := os.Getenv("SECCONSOLE_LOG_FILE"); logFile != "" {
		l.setFile(logFile)
	}

	return l
}

// Configure applies level and file settings loaded from config. Empty values
// leave the current setting alone.
func (l *Logger) Configure(level, file string) error {
	if level != "" {
		parsed, err := ParseLevel(level)
		if err != nil {
			return err
		}
		l.SetLevel(parsed)
	}
	if file != "" {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.file != nil {
			_ = l.file.Close()
		}
		l.setFile(file)
	}
	return nil
}

// setFile must be called with mu held or before the logger is shared.
func (l *Logger) setFile(path string) {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxFileSizeMB,
		MaxBackups: maxFileBackups,
		MaxAge:     maxFileAgeDays,
	}
	l.file = rotator
	l.logger.SetOutput(rotator)
}

// Close closes the logger and any open file handles
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.logger.SetLevel(level.charm())
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(LevelDebug, format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.log(LevelInfo, format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(LevelWarn, format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.log(LevelError, format, v...)
}

func (l *Logger) log(level Level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	switch level {
	case LevelDebug:
		l.logger.Debugf(format, v...)
	case LevelInfo:
		l.logger.Infof(format, v...)
	case LevelWarn:
		l.logger.Warnf(format, v...)
	default:
		l.logger.Errorf(format, v...)
	}
}

// Package-level functions that use the default logger

// Debug logs a debug message using the default logger
func Debug(format string, v ...interface{}) {
	Default.Debug(format, v...)
}

// Info logs an info message using the default logger
func Info(format string, v ...interface{}) {
	Default.Info(format, v...)
}

// Warn logs a warning message using the default logger
func Warn(format string, v ...interface{}) {
	Default.Warn(format, v...)
}

// Error logs an error message using the default logger
func Error(format string, v ...interface{}) {
	Default.Error(format, v...)
}

// Configure applies config settings to the default logger
func Configure(level, file string) error {
	return Default.Configure(level, file)
}

// Close closes the default logger
func Close() error {
	return Default.Close()
}
