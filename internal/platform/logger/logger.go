// Package logger wraps zap for structured, service-scoped logging.
package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap sugared logger.
type Logger struct {
	*zap.SugaredLogger
}

type ctxKey struct{}

// New creates a service-scoped logger. environment selects the encoder
// (colorized console in development, JSON in production).
func New(serviceName, environment, level string) (*Logger, error) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	switch level {
	case "debug":
		cfg.Level.SetLevel(zapcore.DebugLevel)
	case "warn":
		cfg.Level.SetLevel(zapcore.WarnLevel)
	case "error":
		cfg.Level.SetLevel(zapcore.ErrorLevel)
	default:
		cfg.Level.SetLevel(zapcore.InfoLevel)
	}

	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	zl, err := cfg.Build(
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("service", serviceName), zap.String("environment", environment)),
	)
	if err != nil {
		return nil, err
	}
	return &Logger{zl.Sugar()}, nil
}

// Default returns a development logger; used by call sites that do not
// carry a configured logger (tests, helpers).
func Default() *Logger {
	l, err := New("tripplanner", "development", "debug")
	if err != nil {
		zl, _ := zap.NewDevelopment()
		return &Logger{zl.Sugar()}
	}
	return l
}

// WithContext pulls a logger out of ctx, falling back to Default.
func WithContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Default()
}

// ToContext stores l on ctx for downstream WithContext calls.
func ToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithTripID tags a logger with the trip plan it is narrating.
func (l *Logger) WithTripID(tripID string) *Logger {
	return &Logger{l.SugaredLogger.With("trip_id", tripID)}
}

// WithError tags a logger with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{l.SugaredLogger.With("error", err)}
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.SugaredLogger.Sync()
}
