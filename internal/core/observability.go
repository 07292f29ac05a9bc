package core

import (
	"context"
	"time"
)

// Logger is the structured logging surface the service writes to.
// Arguments after msg are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsRecorder receives one observation per service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer opens a span per service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// SpanDetail describes what one service transaction touched.
type SpanDetail struct {
	Driver StorageDriver
	Loaded int  // snippets read from the adapter
	Count  int  // snippets held after the operation
	Saved  bool // collection written back
}

// TraceSpan is annotated once the transaction has run and closed with the
// operation's error (nil on success). Annotate is skipped when loading fails.
type TraceSpan interface {
	Annotate(SpanDetail)
	End(err error)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) Annotate(SpanDetail) {}
func (noopSpan) End(error)           {}
