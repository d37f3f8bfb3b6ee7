package logger

import (
	"go.uber.org/zap"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
)

// ZapLogger implements ports.Logger on a zap sugared logger. It is the
// default backend for the daemon.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger creates a ZapLogger. With debug set it uses the
// development config (console encoder, DEBUG level), otherwise the
// production config (JSON, INFO level).
func NewZapLogger(debug bool) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = true

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: z.Sugar()}, nil
}

// Sync flushes buffered log entries. Callers should defer it on shutdown.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

// Debug logs diagnostic detail.
func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	l.sugar.Debugf(msg, args...)
}

// Info logs normal operational messages.
func (l *ZapLogger) Info(msg string, args ...interface{}) {
	l.sugar.Infof(msg, args...)
}

// Warn logs conditions worth attention.
func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	l.sugar.Warnf(msg, args...)
}

// Error logs failures.
func (l *ZapLogger) Error(msg string, args ...interface{}) {
	l.sugar.Errorf(msg, args...)
}

// Fatal logs a critical failure and terminates the program.
func (l *ZapLogger) Fatal(msg string, args ...interface{}) {
	l.sugar.Fatalf(msg, args...)
}

// Printf is formatted output kept for compatibility.
func (l *ZapLogger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

var _ ports.Logger = (*ZapLogger)(nil)
