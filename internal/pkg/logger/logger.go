// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
)

// ContextKey identifies request-scoped values copied onto log records.
type ContextKey string

const (
	ContextKeyRequestID  ContextKey = "request_id"
	ContextKeyUserID     ContextKey = "user_id"
	ContextKeyTraceID    ContextKey = "trace_id"
	ContextKeyClientIP   ContextKey = "client_ip"
	ContextKeyUserAgent  ContextKey = "user_agent"
	ContextKeyMethod     ContextKey = "method"
	ContextKeyPath       ContextKey = "path"
	ContextKeyStatusCode ContextKey = "status_code"
	ContextKeyDuration   ContextKey = "duration_ms"
)

func contextKeys() []ContextKey {
	return []ContextKey{
		ContextKeyRequestID,
		ContextKeyUserID,
		ContextKeyTraceID,
		ContextKeyClientIP,
		ContextKeyUserAgent,
		ContextKeyMethod,
		ContextKeyPath,
		ContextKeyStatusCode,
		ContextKeyDuration,
	}
}

// OutputConfig describes one shipping destination beside the primary
// stdout/stderr stream: a JSON log file or an Elasticsearch index.
type OutputConfig struct {
	Type  string // "file" or "elasticsearch"
	Level string
	File  string
	ELK   ELKConfig
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level            string
	Format           string // json, text
	Output           string // stdout, stderr, file:<path>
	AddSource        bool
	EnableStackTrace bool
	ServiceName      string
	ServiceVersion   string
	Environment      string
	Outputs          []OutputConfig
}

// Logger wraps slog.Logger with context extraction and stack traces.
type Logger struct {
	*slog.Logger
	config *LogConfig
}

var defaultLogger *Logger

// SetupLogger builds the process logger and installs it as the slog
// default. The primary stream goes to stdout in the requested format;
// outputs add shipping destinations that receive the same records.
func SetupLogger(level, format string, outputs ...OutputConfig) *Logger {
	l := NewLogger(&LogConfig{
		Level:            level,
		Format:           format,
		Output:           "stdout",
		AddSource:        true,
		EnableStackTrace: level == "debug",
		ServiceName:      os.Getenv("SERVICE_NAME"),
		ServiceVersion:   os.Getenv("SERVICE_VERSION"),
		Environment:      os.Getenv("APP_ENV"),
		Outputs:          outputs,
	})

	defaultLogger = l
	slog.SetDefault(l.Logger)

	return l
}

// NewLogger creates a logger from explicit configuration.
func NewLogger(config *LogConfig) *Logger {
	if config == nil {
		config = &LogConfig{Level: "info", Format: "json", Output: "stdout"}
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(config.Level),
		AddSource: config.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			return rewriteAttr(config, a)
		},
	}

	writer := resolveWriter(config.Output)

	var primary slog.Handler
	if config.Format == "text" {
		primary = NewPrettyTextHandler(writer, opts)
	} else {
		primary = slog.NewJSONHandler(writer, opts)
	}

	handlers := []slog.Handler{primary}
	for _, out := range config.Outputs {
		if h := out.handler(); h != nil {
			handlers = append(handlers, h)
		}
	}

	var handler slog.Handler = primary
	if len(handlers) > 1 {
		handler = NewMultiHandler(handlers...)
	}

	// Every record carries the request-scoped context values and is
	// scrubbed of credentials before leaving the process.
	handler = NewContextHandler(handler)
	handler = NewSanitizationHandler(handler)

	if attrs := serviceAttrs(config); len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return &Logger{Logger: slog.New(handler), config: config}
}

// handler builds the slog.Handler for one shipping destination. Destinations
// with missing targets are skipped rather than failing startup.
func (o OutputConfig) handler() slog.Handler {
	level := parseLevel(o.Level)

	switch o.Type {
	case "elasticsearch":
		if o.ELK.URL == "" {
			return nil
		}
		return NewELKHandler(o.ELK, level)

	case "file":
		if o.File == "" {
			return nil
		}
		file, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil
		}
		return slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	}

	return nil
}

// WithContext returns a plain slog.Logger preloaded with the request-scoped
// values found in ctx.
func (l *Logger) WithContext(ctx context.Context) *slog.Logger {
	attrs := extractContextAttrs(ctx)
	if len(attrs) == 0 {
		return l.Logger
	}

	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	return l.Logger.With(args...)
}

// LogWithContext logs with context extraction, annotating errors with the
// call site and, when stack traces are enabled, the goroutine stack.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if level >= slog.LevelError || l.config.EnableStackTrace {
		if pc, file, line, ok := runtime.Caller(1); ok {
			args = append(args,
				slog.String("caller", fmt.Sprintf("%s:%d", file, line)),
				slog.String("function", runtime.FuncForPC(pc).Name()))
		}
	}
	if level >= slog.LevelError && l.config.EnableStackTrace {
		buf := make([]byte, 8*1024)
		n := runtime.Stack(buf, false)
		args = append(args, slog.String("stack", string(buf[:n])))
	}

	l.WithContext(ctx).Log(ctx, level, msg, args...)
}

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// GetDefault returns the process logger, building a plain one if SetupLogger
// has not run yet.
func GetDefault() *Logger {
	if defaultLogger == nil {
		defaultLogger = NewLogger(nil)
	}
	return defaultLogger
}

// Helpers

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolveWriter(output string) io.Writer {
	switch {
	case output == "stderr":
		return os.Stderr
	case strings.HasPrefix(output, "file:"):
		file, err := os.OpenFile(strings.TrimPrefix(output, "file:"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			return file
		}
	}
	return os.Stdout
}

func serviceAttrs(config *LogConfig) []slog.Attr {
	var attrs []slog.Attr
	if config.ServiceName != "" {
		attrs = append(attrs, slog.String("service", config.ServiceName))
	}
	if config.ServiceVersion != "" {
		attrs = append(attrs, slog.String("version", config.ServiceVersion))
	}
	if config.Environment != "" {
		attrs = append(attrs, slog.String("env", config.Environment))
	}
	return attrs
}

func extractContextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	for _, key := range contextKeys() {
		val := ctx.Value(key)
		if val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			if v != "" {
				attrs = append(attrs, slog.String(string(key), v))
			}
		case int:
			attrs = append(attrs, slog.Int(string(key), v))
		case time.Duration:
			attrs = append(attrs, slog.Duration(string(key), v))
		default:
			attrs = append(attrs, slog.Any(string(key), v))
		}
	}

	return attrs
}

func rewriteAttr(config *LogConfig, a slog.Attr) slog.Attr {
	// RFC3339Nano timestamps for log aggregators
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
		}
	}

	if a.Key == slog.LevelKey && config.Format != "text" {
		a.Key = "severity"
	}

	// *_ms keys carry durations as milliseconds
	if strings.HasSuffix(a.Key, "_ms") {
		if d, ok := a.Value.Any().(time.Duration); ok {
			a.Value = slog.Float64Value(float64(d.Milliseconds()))
		}
	}

	return a
}
