// Package catalog is the static catalog of failure conditions. Each condition
// is a data record (name, template, arity); typed constructors such as
// ShouldContain bind the values of one failure to a condition and return a
// Factory that composes the final message.
package catalog

import (
	"fmt"
	"sync"

	"failmsg/pkg/errx"
	"failmsg/pkg/message"
)

// Condition is one entry of the catalog.
type Condition struct {
	Name     string
	Template message.Template
	// Arity is the number of values the template consumes.
	Arity int
}

// Registry is an ordered set of conditions keyed by name.
type Registry struct {
	mu      sync.RWMutex
	ordered []Condition
	byName  map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a condition. Duplicate names and malformed templates are
// catalog defects.
func (r *Registry) Register(name string, t message.Template) error {
	if name == "" {
		return errx.Catalog("condition name is required")
	}
	arity, err := t.Arity()
	if err != nil {
		return errx.Wrap(errx.CodeCatalog, errx.CatCatalog, fmt.Sprintf("condition %q has a malformed template", name), err).
			WithContext("condition", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; exists {
		return errx.Catalog(fmt.Sprintf("condition %q is already registered", name)).
			WithContext("condition", name)
	}
	r.byName[name] = len(r.ordered)
	r.ordered = append(r.ordered, Condition{Name: name, Template: t, Arity: arity})
	return nil
}

// Lookup returns the condition registered under name.
func (r *Registry) Lookup(name string) (Condition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byName[name]
	if !ok {
		return Condition{}, false
	}
	return r.ordered[i], true
}

// Conditions returns the registered conditions in registration order.
func (r *Registry) Conditions() []Condition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Condition(nil), r.ordered...)
}

// Len returns the number of registered conditions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// New binds args to the condition registered under name. Unknown names and
// argument counts that do not match the condition are catalog defects.
func (r *Registry) New(name string, args ...any) (Factory, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return Factory{}, errx.Catalog(fmt.Sprintf("unknown condition %q", name)).
			WithContext("condition", name)
	}
	if len(args) != c.Arity {
		return Factory{}, errx.Catalog(fmt.Sprintf("condition %q expects %d arguments, got %d", name, c.Arity, len(args))).
			WithContext("condition", name).
			WithContext("arity", c.Arity).
			WithContext("args", len(args))
	}
	return Factory{condition: c.Name, template: c.Template, args: args}, nil
}

var builtin = func() *Registry {
	r := NewRegistry()
	for _, c := range builtinConditions {
		if err := r.Register(c.name, c.template); err != nil {
			panic(err)
		}
	}
	return r
}()

// Builtin returns the registry holding the conditions of this package.
func Builtin() *Registry {
	return builtin
}

// Conditions returns the builtin conditions in catalog order.
func Conditions() []Condition {
	return builtin.Conditions()
}

// Lookup returns the builtin condition registered under name.
func Lookup(name string) (Condition, bool) {
	return builtin.Lookup(name)
}

// New binds args to the builtin condition registered under name.
func New(name string, args ...any) (Factory, error) {
	return builtin.New(name, args...)
}
