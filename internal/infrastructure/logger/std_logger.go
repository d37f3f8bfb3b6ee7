package logger

import (
	"log"
	"os"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
)

// StdLogger implements ports.Logger on the standard library log package.
// It is the fallback when the zap backend is not wanted, e.g. in the CLI.
type StdLogger struct {
	logger *log.Logger
}

// NewStdLogger creates a StdLogger with the given prefix.
func NewStdLogger(prefix string) ports.Logger {
	return &StdLogger{
		logger: log.New(os.Stderr, prefix, log.LstdFlags),
	}
}

// Debug logs diagnostic detail.
func (l *StdLogger) Debug(msg string, args ...interface{}) {
	l.logger.Printf("[DEBUG] "+msg, args...)
}

// Info logs normal operational messages.
func (l *StdLogger) Info(msg string, args ...interface{}) {
	l.logger.Printf("[INFO] "+msg, args...)
}

// Warn logs conditions worth attention.
func (l *StdLogger) Warn(msg string, args ...interface{}) {
	l.logger.Printf("[WARN] "+msg, args...)
}

// Error logs failures.
func (l *StdLogger) Error(msg string, args ...interface{}) {
	l.logger.Printf("[ERROR] "+msg, args...)
}

// Fatal logs a critical failure and terminates the program.
func (l *StdLogger) Fatal(msg string, args ...interface{}) {
	l.logger.Fatalf("[FATAL] "+msg, args...)
}

// Printf is formatted output kept for compatibility.
func (l *StdLogger) Printf(format string, args ...interface{}) {
	l.logger.Printf(format, args...)
}
