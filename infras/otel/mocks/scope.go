package mocks

import (
	"roomform/infras/otel"
	"sync"
)

// Scope discards spans but remembers what was recorded on it so tests can
// inspect handler and service instrumentation.
type Scope struct {
	mu         sync.Mutex
	Events     []string
	Attributes map[string]any
	Errors     []error
	Ended      bool
}

func NewScope() *Scope {
	return &Scope{Attributes: map[string]any{}}
}

var _ otel.Scope = (*Scope)(nil)

// End implements otel.Scope.
func (s *Scope) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Ended = true
}

// TraceError implements otel.Scope.
func (s *Scope) TraceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Errors = append(s.Errors, err)
}

// TraceIfError implements otel.Scope.
func (s *Scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

// AddEvent implements otel.Scope.
func (s *Scope) AddEvent(name string, attributes map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Events = append(s.Events, name)
	for key, value := range attributes {
		s.Attributes[key] = value
	}
}

// SetAttribute implements otel.Scope.
func (s *Scope) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Attributes[key] = value
}

// SetAttributes implements otel.Scope.
func (s *Scope) SetAttributes(attributes map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range attributes {
		s.Attributes[key] = value
	}
}
