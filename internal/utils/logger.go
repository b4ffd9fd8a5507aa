package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logger provides a centralized logging mechanism for sgrep diagnostics.
// Search results go to stdout; the logger never writes there.
type Logger struct {
	debugLogger *log.Logger
	errorLogger *log.Logger
	file        *os.File
	mu          sync.Mutex
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// GetLogger returns the default logger instance (singleton pattern).
// It discards everything until replaced with SetDefault.
func GetLogger() *Logger {
	once.Do(func() {
		if defaultLogger == nil {
			defaultLogger = Discard()
		}
	})
	return defaultLogger
}

// SetDefault replaces the default logger
func SetDefault(l *Logger) {
	once.Do(func() {})
	defaultLogger = l
}

// NewLogger creates a logger that writes to w
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		debugLogger: log.New(w, "[DEBUG] ", log.LstdFlags),
		errorLogger: log.New(w, "[ERROR] ", log.LstdFlags),
	}
}

// Discard creates a logger that drops every message
func Discard() *Logger {
	return NewLogger(io.Discard)
}

// NewFileLogger creates a new logger that appends to the specified file
func NewFileLogger(logPath string) (*Logger, error) {
	// Ensure the directory exists
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewLogger(file)
	l.file = file
	return l, nil
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugLogger.Printf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLogger.Printf(format, args...)
}

// Close closes the log file (if any)
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

// Debug logs a debug message to the default logger
func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}
