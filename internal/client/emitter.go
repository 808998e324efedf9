package client

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Emitter fans state changes out to registered listeners. Subscribe
// returns an opaque token for removal; callback identity is never
// compared. Listeners run synchronously in registration order, and a
// panicking listener is isolated so it cannot starve the others.
type Emitter[T any] struct {
	mu        sync.Mutex
	order     []string
	listeners map[string]func(T)
	logger    *zap.Logger
}

// NewEmitter creates an emitter
func NewEmitter[T any](logger *zap.Logger) *Emitter[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter[T]{
		listeners: make(map[string]func(T)),
		logger:    logger,
	}
}

// Subscribe registers a listener and returns its unsubscribe token
func (e *Emitter[T]) Subscribe(fn func(T)) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	token := uuid.NewString()
	e.listeners[token] = fn
	e.order = append(e.order, token)
	return token
}

// Unsubscribe removes the listener registered under token
func (e *Emitter[T]) Unsubscribe(token string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.listeners[token]; !ok {
		return false
	}
	delete(e.listeners, token)
	for i, t := range e.order {
		if t == token {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

// Len reports the number of registered listeners
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// Emit invokes every listener with v, in registration order
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	fns := make([]func(T), 0, len(e.order))
	for _, token := range e.order {
		if fn, ok := e.listeners[token]; ok {
			fns = append(fns, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		e.safeCall(fn, v)
	}
}

func (e *Emitter[T]) safeCall(fn func(T), v T) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("listener panicked", zap.Any("panic", r))
		}
	}()
	fn(v)
}
