package represent

import (
	"fmt"
	"reflect"
	"sync"

	"failmsg/pkg/errx"
)

// RenderFunc renders a value of the type it was registered for.
type RenderFunc func(v any) string

// Registry maps exact types to renderers. It is safe for concurrent use; once
// frozen it rejects further registrations.
type Registry struct {
	mu        sync.RWMutex
	renderers map[reflect.Type]RenderFunc
	frozen    bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[reflect.Type]RenderFunc)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by Standard.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register installs fn as the renderer for values whose dynamic type is exactly t.
// Registering a second renderer for the same type, or registering after Freeze,
// is a representer defect.
func (r *Registry) Register(t reflect.Type, fn RenderFunc) error {
	if t == nil || fn == nil {
		return errx.Representer("renderer registration requires a type and a function")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return errx.Representer(fmt.Sprintf("registry is frozen, cannot register renderer for %s", t)).
			WithContext("type", t.String())
	}
	if _, exists := r.renderers[t]; exists {
		return errx.Representer(fmt.Sprintf("conflicting renderer for %s", t)).
			WithContext("type", t.String())
	}
	r.renderers[t] = fn
	return nil
}

// RegisterFor is a typed convenience around Register.
func RegisterFor[T any](r *Registry, fn func(T) string) error {
	if fn == nil {
		return r.Register(reflect.TypeOf((*T)(nil)).Elem(), nil)
	}
	return r.Register(reflect.TypeOf((*T)(nil)).Elem(), func(v any) string {
		return fn(v.(T))
	})
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Len returns the number of registered renderers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.renderers)
}

func (r *Registry) lookup(t reflect.Type) (RenderFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.renderers[t]
	return fn, ok
}
