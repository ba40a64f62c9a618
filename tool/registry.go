package tool

import (
	"sync"

	"github.com/mourad-ghafiri/agentflow/core"
)

// Registry is an explicit, process-scoped tool registry. It is constructed
// once per application instance and passed by reference into agents and the
// App facade; there is no package-level global. Registration happens before
// execution begins and the registry is treated as read-only during a run.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]core.Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]core.Tool)}
}

// Register adds a tool under its spec name, replacing any previous entry.
func (r *Registry) Register(t core.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Spec().Name] = t
}

// Get returns the tool registered under name or a ResolutionError.
func (r *Registry) Get(name string) (core.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	if !ok {
		return nil, core.NewResolutionError(core.RefTool, name)
	}
	return t, nil
}

// Resolve returns the registered tools for the given names in order,
// silently skipping names with no registration. Agents use this to build
// their active tool set from the definition's allowed names.
func (r *Registry) Resolve(names []string) []core.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tools := make([]core.Tool, 0, len(names))
	for _, name := range names {
		if t, ok := r.tools[name]; ok {
			tools = append(tools, t)
		}
	}
	return tools
}

// Names returns all registered tool names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Specs returns the specifications of all registered tools.
func (r *Registry) Specs() []core.ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]core.ToolSpec, 0, len(r.tools))
	for _, t := range r.tools {
		specs = append(specs, t.Spec())
	}
	return specs
}
