package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/concord/pkg/ports"
	"github.com/aretw0/concord/pkg/schema"
)

// Handler executes one tool against the platform. The client is the
// session's authenticated handle, threaded through from the dispatcher on
// every call. Handlers receive arguments that already passed schema
// validation and return either a structured payload or a platform-layer
// error for the error mapper to classify.
type Handler func(ctx context.Context, client ports.Client, args map[string]any) (any, error)

// ToolSpec is one registered tool: a unique name, the parameter schema
// validated before dispatch, and the bound handler.
type ToolSpec struct {
	Name        string
	Description string
	Params      schema.Schema
	Handler     Handler
}

// Registry is the static tool catalog. It is populated once at startup and
// read-only thereafter; there is no dynamic registration at runtime.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]ToolSpec
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		specs: make(map[string]ToolSpec),
	}
}

// Register adds a tool to the registry. Tool names are unique: registering
// a name twice is a wiring bug and returns an error.
func (r *Registry) Register(spec ToolSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("tool spec has no name")
	}
	if spec.Handler == nil {
		return fmt.Errorf("tool %q has no handler", spec.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[spec.Name]; exists {
		return fmt.Errorf("tool %q already registered", spec.Name)
	}
	r.specs[spec.Name] = spec
	return nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (ToolSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[name]
	return spec, ok
}

// Specs returns every registered spec sorted by name, for catalog listings
// and transport-level tool declaration.
func (r *Registry) Specs() []ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ToolSpec, 0, len(r.specs))
	for _, spec := range r.specs {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.specs)
}
