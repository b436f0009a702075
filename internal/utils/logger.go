package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogPath is where the default logger writes until Init is called.
const DefaultLogPath = "/tmp/tinterval.log"

// Logger provides a centralized logging mechanism for tinterval
type Logger struct {
	sugar *zap.SugaredLogger
	file  *os.File
	mu    sync.Mutex
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// GetLogger returns the default logger instance, creating it on first use
func GetLogger() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		var err error
		defaultLogger, err = NewLogger(DefaultLogPath, false)
		if err != nil {
			// Fallback to stderr if we can't create the log file
			fmt.Fprintf(os.Stderr, "Failed to create log file, falling back to stderr: %v\n", err)
			defaultLogger = NewWriterLogger(os.Stderr, false)
		}
	}
	return defaultLogger
}

// Init replaces the default logger with one writing to logPath
func Init(logPath string, debug bool) error {
	l, err := NewLogger(logPath, debug)
	if err != nil {
		return err
	}
	SetDefault(l)
	return nil
}

// SetDefault swaps the default logger, closing the previous one
func SetDefault(l *Logger) {
	defaultMu.Lock()
	old := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()

	if old != nil && old != l {
		old.Close()
	}
}

// NewLogger creates a new logger that writes to the specified file
func NewLogger(logPath string, debug bool) (*Logger, error) {
	// Ensure the directory exists
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open or create the log file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := newLogger(zapcore.AddSync(file), debug)
	l.file = file
	return l, nil
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer, debug bool) *Logger {
	return newLogger(zapcore.AddSync(w), debug)
}

func newLogger(ws zapcore.WriteSyncer, debug bool) *Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), ws, zap.NewAtomicLevelAt(level))
	return &Logger{
		sugar: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(),
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Close flushes the logger and closes the log file (if any)
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_ = l.sugar.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Convenience functions for the default logger
func Info(format string, args ...interface{}) {
	GetLogger().Info(format, args...)
}

func Warning(format string, args ...interface{}) {
	GetLogger().Warning(format, args...)
}

func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}
