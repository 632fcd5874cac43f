package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the named collection of output backends. The CV record renders
// to HTML out of the box; hosts register additional formats (PDF printers,
// plain text) under their own names.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Renderer),
	}
}

// Register adds a renderer under its Name(). Registering the same name twice
// is an error; replacing a backend means building a new registry.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}

	r.byName[name] = renderer
	return nil
}

// MustRegister panics on registration failure, for init-time wiring of the
// built-in backends.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get resolves a name to its renderer.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// List returns the registered names, sorted for stable CLI help output.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[name]
	return ok
}
