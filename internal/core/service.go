package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service runs one snippet operation as a load → apply → save transaction
// against an injected persistence adapter.
type Service struct {
	store   PersistentStore
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	now     func() time.Time
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger. Nil keeps the no-op logger.
func WithLogger(l Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsRecorder sets the recorder observing each operation.
func WithMetricsRecorder(m MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer sets the tracer opening one span per operation.
func WithTracer(t Tracer) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithClock overrides the time source used for operation durations.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a service backed by the supplied adapter.
func NewService(store PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying persistence adapter.
func (s *Service) Store() PersistentStore { return s.store }

// Add stores a new snippet and returns it with its assigned id.
func (s *Service) Add(ctx context.Context, req AddRequest) (Snippet, error) {
	var created Snippet
	err := s.run(ctx, "add", func(st *SnippetStore) (bool, error) {
		var err error
		created, err = st.Add(req)
		return err == nil, err
	})
	return created, err
}

// List returns snippets with a tag containing *filter, or all when filter is nil.
func (s *Service) List(ctx context.Context, filter *string) ([]Snippet, error) {
	var out []Snippet
	err := s.run(ctx, "list", func(st *SnippetStore) (bool, error) {
		out = st.List(filter)
		return false, nil
	})
	return out, err
}

// Get returns the snippet with the given id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int) (Snippet, error) {
	var found Snippet
	err := s.run(ctx, "get", func(st *SnippetStore) (bool, error) {
		var err error
		found, err = st.Get(id)
		return false, err
	})
	return found, err
}

// Remove deletes the snippet with the given id and persists the result.
func (s *Service) Remove(ctx context.Context, id int) (Snippet, error) {
	var removed Snippet
	err := s.run(ctx, "remove", func(st *SnippetStore) (bool, error) {
		var err error
		removed, err = st.Remove(id)
		return err == nil, err
	})
	return removed, err
}

// Pop deletes the newest snippet and persists the result.
func (s *Service) Pop(ctx context.Context) (Snippet, error) {
	var removed Snippet
	err := s.run(ctx, "pop", func(st *SnippetStore) (bool, error) {
		var err error
		removed, err = st.Pop()
		return err == nil, err
	})
	return removed, err
}

// run loads the collection, applies fn, and saves only when fn reports a mutation.
func (s *Service) run(ctx context.Context, op string, fn func(*SnippetStore) (bool, error)) (err error) {
	if s.store == nil {
		return errors.New("snippet service has no persistence adapter")
	}
	ctx, span := s.tracer.Start(ctx, op)
	started := s.now()
	defer func() {
		span.End(err)
		s.metrics.Observe(ctx, op, err == nil, s.now().Sub(started))
		if err != nil {
			s.logger.Debug("snippet operation failed", "operation", op, "driver", string(s.store.Driver()), "error", err)
			return
		}
		s.logger.Debug("snippet operation completed", "operation", op, "driver", string(s.store.Driver()))
	}()

	loaded, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snippets: %w", err)
	}
	st, err := LoadSnippetStore(sourceOf(s.store), loaded)
	if err != nil {
		return err
	}
	s.logger.Debug("snippets loaded", "count", st.Len())

	detail := SpanDetail{Driver: s.store.Driver(), Loaded: st.Len()}
	defer func() {
		detail.Count = st.Len()
		span.Annotate(detail)
	}()

	mutated, err := fn(st)
	if err != nil {
		return err
	}
	if !mutated {
		return nil
	}
	if err := s.store.Save(ctx, st.Snapshot()); err != nil {
		return fmt.Errorf("save snippets: %w", err)
	}
	detail.Saved = true
	s.logger.Debug("snippets saved", "count", st.Len())
	return nil
}

type locator interface {
	Location() string
}

func sourceOf(store PersistentStore) string {
	if l, ok := store.(locator); ok {
		return l.Location()
	}
	return string(store.Driver())
}
