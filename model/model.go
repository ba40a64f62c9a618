// Package model defines the completion provider abstraction used by agents
// and a deterministic mock implementation for tests and examples. Concrete
// vendor adapters live in the openai and anthropic subpackages.
package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/mourad-ghafiri/agentflow/core"
)

// Request captures the normalized provider input produced by the decision
// loop: the full ordered conversation history, the active tool specs and the
// sampling parameters taken from the agent definition. An empty tool list
// means no tool use is requested.
type Request struct {
	Messages    []core.Message  `json:"messages"`
	Tools       []core.ToolSpec `json:"tools,omitempty"`
	Model       string          `json:"model"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int64           `json:"max_tokens"`
}

// Info contains metadata about a provider implementation.
type Info struct {
	Name          string `json:"name"`
	Vendor        string `json:"vendor"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Provider is the completion backend contract. Complete must preserve message
// order and return exactly one assistant-role message, optionally carrying
// tool call requests. Implementations must honor ctx cancellation; the engine
// enforces no wall-clock timeout of its own.
type Provider interface {
	Complete(ctx context.Context, req Request) (core.Message, error)

	// Info returns information about the provider implementation.
	Info() Info
}

// Registry is an explicit, process-scoped provider registry. Like the tool
// registry it is constructed once, populated before execution begins and
// passed by reference into agents and the App facade.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider under the given name, replacing any previous entry.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// Get returns the provider registered under name or a ResolutionError.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	if !ok {
		return nil, core.NewResolutionError(core.RefProvider, name)
	}
	return p, nil
}

// Names returns all registered provider names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// MockProvider is a lightweight in-memory Provider useful for tests and
// examples. Responses are served, in order of precedence, from a custom
// handler, a scripted queue, or a canned prompt-to-response map; when none
// applies it echoes the last message. Every request is recorded for
// assertions.
type MockProvider struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	script    []core.Message
	handler   func(req Request) (core.Message, error)
	requests  []Request
}

// NewMockProvider constructs a MockProvider with tool support enabled.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		info:      Info{Name: name, Vendor: "mock", SupportsTools: true},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockProvider) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// Enqueue appends messages to the scripted response queue. Queued messages
// are returned one per Complete call, in order, before any canned responses.
func (m *MockProvider) Enqueue(msgs ...core.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, msgs...)
}

// SetHandler installs a custom completion function that overrides the queue
// and canned responses entirely.
func (m *MockProvider) SetHandler(fn func(req Request) (core.Message, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = fn
}

// Requests returns a copy of all requests received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of Complete calls received so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Complete implements Provider.
func (m *MockProvider) Complete(ctx context.Context, req Request) (core.Message, error) {
	if err := ctx.Err(); err != nil {
		return core.Message{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	if m.handler != nil {
		return m.handler(req)
	}

	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		return next, nil
	}

	if len(req.Messages) == 0 {
		return core.Message{}, fmt.Errorf("no messages provided")
	}
	last := req.Messages[len(req.Messages)-1]
	if canned, ok := m.responses[last.Content]; ok {
		return core.NewAssistantMessage(canned), nil
	}
	return core.NewAssistantMessage(fmt.Sprintf("Mock response to: %s", last.Content)), nil
}

// Info implements Provider.
func (m *MockProvider) Info() Info { return m.info }
