package dispatchz

import "log/slog"

//go:generate mockgen -destination=mocks/mock_logger.go -package=mocks github.com/cemalcanakgul/dispatchz Logger

// Logger receives dispatcher diagnostics.
// *slog.Logger satisfies it; args follow the slog key/value convention.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger discards all messages.
type NopLogger struct{}

// Warn discards the message.
func (NopLogger) Warn(string, ...any) {}

// Error discards the message.
func (NopLogger) Error(string, ...any) {}

// defaultLogger returns the process default slog logger tagged with the
// component name. Each message also carries the dispatcher id.
func defaultLogger() Logger {
	return slog.Default().With(slog.String("component", "dispatchz"))
}
