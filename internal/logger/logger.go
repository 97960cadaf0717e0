// Package logger wraps zap with context-aware trace correlation, following
// the same shape as the teacher's pkg/utils/logger: a package-global logger
// initialized once at process start, plus free functions that pull
// structured fields off a context.Context.
package logger

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *Logger

// Logger wraps a zap logger.
type Logger struct {
	zap *zap.Logger
}

// Config controls logger construction.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // file path or "stdout"
	Component  string // component name, attached as a static field
}

// Init initializes the package-global logger used by Debug/Info/Warn/Error.
func Init(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	global = l
	return nil
}

// New builds a standalone Logger without touching the package global.
func New(cfg Config) (*Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     rfc3339TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = "stdout"
	}
	var sink zapcore.WriteSyncer
	if outputPath == "stdout" {
		sink = zapcore.AddSync(os.Stdout)
	} else {
		f, err := os.OpenFile(outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		sink = zapcore.AddSync(f)
	}

	core := zapcore.NewCore(encoder, sink, level)
	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Component != "" {
		opts = append(opts, zap.Fields(zap.String("component", cfg.Component)))
	}
	return &Logger{zap: zap.New(core, opts...)}, nil
}

func rfc3339TimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(time.RFC3339))
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// WithContext returns a zap.Logger enriched with fields extracted from ctx.
func (l *Logger) WithContext(ctx context.Context) *zap.Logger {
	if traceID, ok := traceIDFrom(ctx); ok {
		return l.zap.With(zap.String("trace_id", traceID))
	}
	return l.zap
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) { emit(ctx, zapcore.DebugLevel, msg, fields) }
func Info(ctx context.Context, msg string, fields ...zap.Field)  { emit(ctx, zapcore.InfoLevel, msg, fields) }
func Warn(ctx context.Context, msg string, fields ...zap.Field)  { emit(ctx, zapcore.WarnLevel, msg, fields) }
func Error(ctx context.Context, msg string, fields ...zap.Field) { emit(ctx, zapcore.ErrorLevel, msg, fields) }

// Sync flushes the package-global logger, if initialized.
func Sync() error {
	if global == nil {
		return nil
	}
	return global.Sync()
}

func emit(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) {
	if global == nil {
		return
	}
	zl := global.WithContext(ctx)
	switch level {
	case zapcore.DebugLevel:
		zl.Debug(msg, fields...)
	case zapcore.WarnLevel:
		zl.Warn(msg, fields...)
	case zapcore.ErrorLevel:
		zl.Error(msg, fields...)
	default:
		zl.Info(msg, fields...)
	}
}
