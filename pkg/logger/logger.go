// Package logger - обёртка над zap с уровнем и режимом из конфигурации
package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

// RequestIDKey - ключ request ID в контексте
const RequestIDKey contextKey = "request_id"

type Logger struct {
	raw *zap.Logger
}

// New создаёт Logger с заданным уровнем. Перед выходом нужно вызвать Sync()
func New(level string, devMode bool) (*Logger, error) {
	var cfg zap.Config
	if devMode {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "ts"

	raw, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{raw: raw}, nil
}

// NewNop - логгер, который ничего не пишет (для тестов)
func NewNop() *Logger {
	return &Logger{raw: zap.NewNop()}
}

// FromZap оборачивает готовый *zap.Logger
func FromZap(raw *zap.Logger) *Logger {
	return &Logger{raw: raw}
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{raw: l.raw.Named(name)}
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{raw: l.raw.With(fields...)}
}

// WithContext добавляет request_id из контекста, если он есть
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if rid, ok := ctx.Value(RequestIDKey).(string); ok && rid != "" {
		return l.With(zap.String("request_id", rid))
	}
	return l
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.raw.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.raw.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.raw.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.raw.Error(msg, fields...) }

func (l *Logger) Sync() error {
	return l.raw.Sync()
}

func ContextWithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, RequestIDKey, rid)
}
