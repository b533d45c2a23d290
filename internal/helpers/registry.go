// Package helpers provides the named functions that conversion profiles may
// reference to derive a VCF column value from raw table cells.
package helpers

import (
	"fmt"
	"sort"
)

// Func computes one output value from the cell values passed as arguments.
// Implementations validate their own arity.
type Func func(args ...string) (string, error)

// Registry holds helper functions by name.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry creates a registry pre-populated with the built-in helpers.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	for name, fn := range builtins {
		r.funcs[name] = fn
	}
	return r
}

// Register adds a helper function under the given name. Registering a name
// twice is an error so profiles cannot silently shadow built-ins.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("register helper: empty name")
	}
	if fn == nil {
		return fmt.Errorf("register helper %q: nil function", name)
	}
	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("register helper %q: already registered", name)
	}
	r.funcs[name] = fn
	return nil
}

// Lookup returns the helper registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns all registered helper names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
