package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsRecorder aggregates operation counters and latencies on a
// private registry. The CLI is short-lived, so the registry is exported with
// WriteTextfile for the node-exporter textfile collector instead of being served.
type PrometheusMetricsRecorder struct {
	registry  *prometheus.Registry
	results   *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewPrometheusMetricsRecorder constructs a recorder with its own registry.
func NewPrometheusMetricsRecorder() *PrometheusMetricsRecorder {
	reg := prometheus.NewRegistry()
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snip",
		Name:      "operations_total",
		Help:      "Snippet store operations by outcome.",
	}, []string{"operation", "status"})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "snip",
		Name:      "operation_duration_seconds",
		Help:      "Wall time of snippet store operations including load and save.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"operation"})
	reg.MustRegister(results, durations)
	return &PrometheusMetricsRecorder{registry: reg, results: results, durations: durations}
}

// Registry exposes the underlying registry for tests and custom exporters.
func (r *PrometheusMetricsRecorder) Registry() *prometheus.Registry { return r.registry }

// Observe records a service operation outcome.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.results.WithLabelValues(operation, status).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// WriteTextfile writes the registry in text exposition format to path.
func (r *PrometheusMetricsRecorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// JSONTraceEntry is one finished service transaction as written by JSONTraceTracer.
type JSONTraceEntry struct {
	Operation  string    `json:"operation"`
	Driver     string    `json:"driver,omitempty"`
	Loaded     int       `json:"loaded"`
	Count      int       `json:"count"`
	Saved      bool      `json:"saved"`
	OK         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
	Start      time.Time `json:"start"`
	DurationMS float64   `json:"duration_ms"`
}

// JSONTraceTracer writes one JSON line per transaction and keeps the entries
// for inspection.
type JSONTraceTracer struct {
	now func() time.Time

	mu      sync.Mutex
	w       io.Writer
	entries []JSONTraceEntry
}

// NewJSONTracer returns a tracer writing to w. A nil writer only retains entries.
func NewJSONTracer(w io.Writer) *JSONTraceTracer {
	return &JSONTraceTracer{w: w, now: time.Now}
}

// Entries returns a copy of the finished spans.
func (t *JSONTraceTracer) Entries() []JSONTraceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]JSONTraceEntry(nil), t.entries...)
}

// Start implements Tracer.
func (t *JSONTraceTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	span := &jsonTraceSpan{tracer: t}
	span.entry.Operation = operation
	span.entry.Start = t.now().UTC()
	return ctx, span
}

func (t *JSONTraceTracer) finish(entry JSONTraceEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	if t.w == nil {
		return
	}
	if line, err := json.Marshal(entry); err == nil {
		_, _ = t.w.Write(append(line, '\n'))
	}
}

type jsonTraceSpan struct {
	tracer *JSONTraceTracer
	entry  JSONTraceEntry
}

func (s *jsonTraceSpan) Annotate(d SpanDetail) {
	s.entry.Driver = string(d.Driver)
	s.entry.Loaded = d.Loaded
	s.entry.Count = d.Count
	s.entry.Saved = d.Saved
}

func (s *jsonTraceSpan) End(err error) {
	s.entry.OK = err == nil
	if err != nil {
		s.entry.Error = err.Error()
	}
	s.entry.DurationMS = float64(s.tracer.now().UTC().Sub(s.entry.Start)) / float64(time.Millisecond)
	s.tracer.finish(s.entry)
}
