package logger

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with screening-engine-specific functionality.
type Logger struct {
	*zap.Logger
	serviceName string
}

// ContextKey for request context values.
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	SessionIDKey ContextKey = "session_id"
	BatchIDKey   ContextKey = "batch_id"
)

// New creates a new logger instance.
func New(serviceName, environment string, debug bool) (*Logger, error) {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	config.InitialFields = map[string]interface{}{
		"service": serviceName,
		"env":     environment,
		"pid":     os.Getpid(),
	}

	zapLogger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger:      zapLogger,
		serviceName: serviceName,
	}, nil
}

// Named returns a named sub-logger.
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		Logger:      l.Logger.Named(name),
		serviceName: l.serviceName,
	}
}

// WithContext returns a logger with request/session/batch ids pulled from
// ctx, when present.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := []zap.Field{}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if sessionID, ok := ctx.Value(SessionIDKey).(string); ok && sessionID != "" {
		fields = append(fields, zap.String("session_id", sessionID))
	}
	if batchID, ok := ctx.Value(BatchIDKey).(string); ok && batchID != "" {
		fields = append(fields, zap.String("batch_id", batchID))
	}

	return &Logger{
		Logger:      l.With(fields...),
		serviceName: l.serviceName,
	}
}

// WithSearch returns a logger carrying one search session's identity.
func (l *Logger) WithSearch(sessionID, name string) *Logger {
	return &Logger{
		Logger: l.With(
			zap.String("session_id", sessionID),
			zap.String("query_name", name),
		),
		serviceName: l.serviceName,
	}
}

// WithBatch returns a logger carrying one batch's identity.
func (l *Logger) WithBatch(batchID string, itemCount int) *Logger {
	return &Logger{
		Logger: l.With(
			zap.String("batch_id", batchID),
			zap.Int("item_count", itemCount),
		),
		serviceName: l.serviceName,
	}
}

// WithTrace returns a logger carrying one scoring trace session's identity.
func (l *Logger) WithTrace(sessionID string) *Logger {
	return &Logger{
		Logger:      l.With(zap.String("session_id", sessionID)),
		serviceName: l.serviceName,
	}
}

// SearchCompleted logs the completion of a search query.
func (l *Logger) SearchCompleted(sessionID string, candidateCount, resultCount int, durationMs int64) {
	l.Info("search completed",
		zap.String("session_id", sessionID),
		zap.Int("candidate_count", candidateCount),
		zap.Int("result_count", resultCount),
		zap.Int64("duration_ms", durationMs),
	)
}

// BatchStarted logs the start of a batch screening run.
func (l *Logger) BatchStarted(batchID string, itemCount int) {
	l.Info("batch screening started",
		zap.String("batch_id", batchID),
		zap.Int("item_count", itemCount),
	)
}

// BatchCompleted logs the completion of a batch screening run.
func (l *Logger) BatchCompleted(batchID string, itemCount, matchCount int, durationMs int64) {
	l.Info("batch screening completed",
		zap.String("batch_id", batchID),
		zap.Int("item_count", itemCount),
		zap.Int("match_count", matchCount),
		zap.Int64("duration_ms", durationMs),
	)
}

// BatchItemFailed logs a single batch item's failure.
func (l *Logger) BatchItemFailed(batchID, requestID string, err error) {
	l.Warn("batch item failed",
		zap.String("batch_id", batchID),
		zap.String("request_id", requestID),
		zap.Error(err),
	)
}

// IndexRefreshed logs a successful entity index generation swap.
func (l *Logger) IndexRefreshed(generation uint64, entityCount int, durationMs int64) {
	l.Info("entity index refreshed",
		zap.Uint64("generation", generation),
		zap.Int("entity_count", entityCount),
		zap.Int64("duration_ms", durationMs),
	)
}

// LatencyWarning logs when an operation exceeds its expected latency.
func (l *Logger) LatencyWarning(operation string, durationMs, thresholdMs int64) {
	l.Warn("latency threshold exceeded",
		zap.String("operation", operation),
		zap.Int64("duration_ms", durationMs),
		zap.Int64("threshold_ms", thresholdMs),
	)
}

// Helper field functions.

// ErrorField creates an error field.
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

// DurationField creates a duration field.
func DurationField(name string, d time.Duration) zap.Field {
	return zap.Duration(name, d)
}

// StringField creates a string field.
func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

// IntField creates an int field.
func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Float64Field creates a float64 field.
func Float64Field(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}

// BoolField creates a bool field.
func BoolField(key string, value bool) zap.Field {
	return zap.Bool(key, value)
}
