package logging

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger wraps zap and exposes a slog bridge so services can depend on the
// standard structured-logging interface while output stays on one core.
type Logger struct {
	zap    *zap.Logger
	closed atomic.Bool
}

func NewJSON(level Level) *Logger {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		level,
	)

	return FromZap(zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)))
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

func (l *Logger) Zap() *zap.Logger {
	if l == nil || l.zap == nil {
		return zap.NewNop()
	}
	return l.zap
}

// Slog returns a *slog.Logger backed by this logger's zap core. Trace and
// span IDs from the context are attached to every record.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(&zapHandler{zap: l.Zap()})
}

func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	if l.closed.CompareAndSwap(false, true) {
		return l.zap.Sync()
	}
	return nil
}

// zapHandler adapts slog records onto a zap core.
type zapHandler struct {
	zap    *zap.Logger
	fields []zap.Field
}

func (h *zapHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.zap.Core().Enabled(zapLevel(level))
}

func (h *zapHandler) Handle(ctx context.Context, record slog.Record) error {
	fields := make([]zap.Field, 0, record.NumAttrs()+len(h.fields)+2)
	fields = append(fields, h.fields...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, attrToField(attr))
		return true
	})
	fields = append(fields, traceFields(ctx)...)

	if ce := h.zap.Check(zapLevel(record.Level), record.Message); ce != nil {
		ce.Time = record.Time
		ce.Write(fields...)
	}
	return nil
}

func (h *zapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make([]zap.Field, 0, len(h.fields)+len(attrs))
	fields = append(fields, h.fields...)
	for _, attr := range attrs {
		fields = append(fields, attrToField(attr))
	}
	return &zapHandler{zap: h.zap, fields: fields}
}

func (h *zapHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &zapHandler{zap: h.zap.Named(name), fields: h.fields}
}

func attrToField(attr slog.Attr) zap.Field {
	key := attr.Key
	if key == "" {
		key = "arg"
	}
	value := attr.Value.Resolve().Any()
	if err, ok := value.(error); ok {
		return zap.NamedError(key, err)
	}
	return zap.Any(key, value)
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func traceFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	}
}
