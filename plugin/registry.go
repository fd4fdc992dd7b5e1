// Package plugin provides the extension surface described in spec §4.7: a
// registry that third-party code can use to add primitive constructors,
// mesh transforms, and scalar functions to the evaluator without touching
// the core lexer/parser/evaluator packages. The Shape DSL (package shape)
// looks plugin primitives and transforms up in the same registry.
package plugin

import (
	"fmt"
	"sync"

	"github.com/gocad/scadcore/csg"
	"github.com/gocad/scadcore/value"
)

// PrimitiveFunc builds geometry from already-evaluated call arguments, the
// way a builtin like cube() or sphere() does.
type PrimitiveFunc func(args []value.Value) *csg.Handle

// TransformFunc builds geometry from the module call's unioned children plus
// its own arguments, the way translate() or color() does.
type TransformFunc func(children *csg.Handle, args []value.Value) *csg.Handle

// FunctionFunc is a scalar/vector function callable from expression context.
type FunctionFunc func(args []value.Value) value.Value

// Lifecycle hooks a plugin may implement to manage external resources:
// Activate and Deactivate. There is no separate initialize hook.
type Lifecycle interface {
	Activate() error
	Deactivate() error
}

// Registry holds every extension registered by loaded plugins. Registration
// and lookup are safe for concurrent use; module/function lookups happen on
// the evaluator's hot path so reads take the read half of the lock. Activate
// and Shutdown do not take the lock.
type Registry struct {
	mu         sync.RWMutex
	primitives map[string]PrimitiveFunc
	transforms map[string]TransformFunc
	functions  map[string]FunctionFunc
	active     []Lifecycle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		primitives: make(map[string]PrimitiveFunc),
		transforms: make(map[string]TransformFunc),
		functions:  make(map[string]FunctionFunc),
	}
}

// RegisterPrimitive adds a module-like geometry constructor under name. It
// is an error to register over an existing entry, to keep plugin load order
// from silently shadowing one another.
func (r *Registry) RegisterPrimitive(name string, fn PrimitiveFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.primitives[name]; exists {
		return fmt.Errorf("plugin: primitive %q already registered", name)
	}
	r.primitives[name] = fn
	return nil
}

// RegisterTransform adds a children-consuming module under name.
func (r *Registry) RegisterTransform(name string, fn TransformFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.transforms[name]; exists {
		return fmt.Errorf("plugin: transform %q already registered", name)
	}
	r.transforms[name] = fn
	return nil
}

// RegisterFunction adds a scalar/vector function under name.
func (r *Registry) RegisterFunction(name string, fn FunctionFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("plugin: function %q already registered", name)
	}
	r.functions[name] = fn
	return nil
}

// LookupPrimitive returns the registered primitive constructor, if any.
func (r *Registry) LookupPrimitive(name string) (PrimitiveFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.primitives[name]
	return fn, ok
}

// LookupTransform returns the registered transform, if any.
func (r *Registry) LookupTransform(name string) (TransformFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.transforms[name]
	return fn, ok
}

// LookupFunction returns the registered function, if any.
func (r *Registry) LookupFunction(name string) (FunctionFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.functions[name]
	return fn, ok
}

// Activate runs Activate on every Lifecycle-implementing value passed in,
// recording it so Shutdown can later call Deactivate in reverse order. An
// error from any plugin aborts the remaining activations.
func (r *Registry) Activate(plugins ...Lifecycle) error {
	for _, p := range plugins {
		if err := p.Activate(); err != nil {
			return fmt.Errorf("plugin: activate failed: %w", err)
		}
		r.active = append(r.active, p)
	}
	return nil
}

// Shutdown deactivates every activated plugin in reverse activation order,
// collecting (not stopping on) individual errors.
func (r *Registry) Shutdown() error {
	var firstErr error
	for i := len(r.active) - 1; i >= 0; i-- {
		if err := r.active[i].Deactivate(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.active = nil
	return firstErr
}
