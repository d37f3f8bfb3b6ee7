package ports

// Logger abstracts logging so any backend (standard log, zap, slog) can
// be plugged in.
type Logger interface {
	// Debug logs diagnostic detail.
	Debug(msg string, args ...interface{})

	// Info logs normal operational messages.
	Info(msg string, args ...interface{})

	// Warn logs conditions worth attention that do not stop the work.
	Warn(msg string, args ...interface{})

	// Error logs failures.
	Error(msg string, args ...interface{})

	// Fatal logs a critical failure and terminates the program.
	Fatal(msg string, args ...interface{})

	// Printf is formatted output kept for compatibility.
	Printf(format string, args ...interface{})
}
