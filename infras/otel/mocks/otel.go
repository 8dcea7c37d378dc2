package mocks

import (
	"context"
	"roomform/infras/otel"
	"sync"
)

type otelImpl struct {
}

// NewScope implements otel.Otel.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

// Shutdown implements otel.Otel.
func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}

// Recorder is an otel.Otel that keeps every scope it opens, keyed by span
// name.
type Recorder struct {
	mu     sync.Mutex
	scopes map[string][]*Scope
}

func NewRecorder() *Recorder {
	return &Recorder{scopes: map[string][]*Scope{}}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	scope := NewScope()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.scopes[name] = append(r.scopes[name], scope)

	return ctx, scope
}

// Shutdown implements otel.Otel.
func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Scopes returns the scopes opened under name, oldest first.
func (r *Recorder) Scopes(name string) []*Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*Scope(nil), r.scopes[name]...)
}
