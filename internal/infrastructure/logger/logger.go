package logger

import (
	"context"

	"go.uber.org/zap"
)

// Logger defines the logging interface
type Logger interface {
	LogInfo(ctx context.Context, msg string, attrs ...any)
	LogError(ctx context.Context, msg string, err error, attrs ...any)
	LogWarning(ctx context.Context, msg string, attrs ...any)
	WithRequestID(requestID string) Logger
}

// StructuredLogger implements the Logger interface on top of zap
type StructuredLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a new structured JSON logger at the given level. Unknown
// levels fall back to info.
func NewLogger(level string) Logger {
	cfg := zap.NewProductionConfig()
	if parsed, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = parsed
	}
	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		zl = zap.NewNop()
	}
	return &StructuredLogger{sugar: zl.Sugar()}
}

// NewNop creates a logger that discards everything, for tests
func NewNop() Logger {
	return &StructuredLogger{sugar: zap.NewNop().Sugar()}
}

// WithRequestID adds a request ID to the logger context
func (l *StructuredLogger) WithRequestID(requestID string) Logger {
	return &StructuredLogger{sugar: l.sugar.With("request_id", requestID)}
}

// LogError logs an error with context
func (l *StructuredLogger) LogError(_ context.Context, msg string, err error, attrs ...any) {
	if err != nil {
		attrs = append([]any{"error", err.Error()}, attrs...)
	}
	l.sugar.Errorw(msg, attrs...)
}

// LogInfo logs an info message with context
func (l *StructuredLogger) LogInfo(_ context.Context, msg string, attrs ...any) {
	l.sugar.Infow(msg, attrs...)
}

// LogWarning logs a warning message with context
func (l *StructuredLogger) LogWarning(_ context.Context, msg string, attrs ...any) {
	l.sugar.Warnw(msg, attrs...)
}
