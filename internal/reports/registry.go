package reports

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrDuplicateKey indicates a format key is already bound to a handler.
	ErrDuplicateKey = errors.New("report format already registered")
	// ErrUnknownKey indicates no handler is registered for a format key.
	ErrUnknownKey = errors.New("unknown report format")
)

// Handler renders a report into a single output format.
// Implementations must be pure: no side effects on shared state,
// and an error for reports whose shape they cannot render.
type Handler interface {
	Generate(report Report) (string, error)
}

// Registry maps format keys to handlers. Adding an output format means
// registering a new key/handler pair; Dispatch itself never branches on
// the key beyond the map lookup.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to a format key.
// Returns ErrDuplicateKey if the key is already bound; use Replace to
// override an existing binding explicitly.
func (r *Registry) Register(key string, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("nil handler for format %q", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	r.handlers[key] = handler
	return nil
}

// Replace binds a handler to a format key, overriding any existing binding.
func (r *Registry) Replace(key string, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("nil handler for format %q", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[key] = handler
	return nil
}

// Dispatch looks up the handler bound to key and delegates to it.
// The handler's output and error are returned unchanged.
func (r *Registry) Dispatch(key string, report Report) (string, error) {
	r.mu.RLock()
	handler, ok := r.handlers[key]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return handler.Generate(report)
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.handlers))
	for key := range r.handlers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
