package agent

import (
	"sync"

	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/logging"
	"github.com/mourad-ghafiri/agentflow/memory"
	"github.com/mourad-ghafiri/agentflow/model"
	"github.com/mourad-ghafiri/agentflow/tool"
)

// Options configures an agent instance. All variants accept the same set.
type Options struct {
	// Logger receives structured run events. Defaults to NoOpLogger.
	Logger logging.Logger

	// Dispatcher executes tool call requests. Defaults to a dispatcher
	// sharing the agent's logger.
	Dispatcher *tool.Dispatcher

	// MaxTokens is forwarded to the provider on every completion request.
	MaxTokens int64
}

// baseAgent bundles the state and helpers shared by every agent variant:
// the immutable definition, registry references, the append-only history and
// the iteration counter. Embed it and supply a Run method to satisfy
// core.Agent.
type baseAgent struct {
	cfg        core.AgentConfig
	providers  *model.Registry
	tools      *tool.Registry
	history    *memory.History
	dispatcher *tool.Dispatcher
	logger     logging.Logger
	maxTokens  int64

	mu         sync.Mutex
	iterations int
}

func newBaseAgent(cfg core.AgentConfig, providers *model.Registry, tools *tool.Registry, optFns ...func(o *Options)) baseAgent {
	opts := Options{
		Logger:    logging.NoOpLogger{},
		MaxTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = tool.NewDispatcher(func(o *tool.DispatcherOptions) {
			o.Logger = opts.Logger
		})
	}

	b := baseAgent{
		cfg:        cfg.WithDefaults(),
		providers:  providers,
		tools:      tools,
		history:    memory.NewHistory(),
		dispatcher: opts.Dispatcher,
		logger:     opts.Logger,
		maxTokens:  opts.MaxTokens,
	}
	b.seedSystemMessage()
	return b
}

// Config returns the agent's immutable definition.
func (b *baseAgent) Config() core.AgentConfig { return b.cfg }

// State returns a snapshot of the iteration counter and history.
func (b *baseAgent) State() core.State {
	b.mu.Lock()
	iterations := b.iterations
	b.mu.Unlock()
	return core.State{
		Iterations: iterations,
		Messages:   b.history.Messages(),
	}
}

// Reset clears the history and iteration counter and re-seeds the system
// message, restoring the agent to its freshly constructed state.
func (b *baseAgent) Reset() {
	b.history.Clear()
	b.mu.Lock()
	b.iterations = 0
	b.mu.Unlock()
	b.seedSystemMessage()
}

// seedSystemMessage appends the definition's system prompt unless the history
// already carries a system message. Called before any input is appended so
// the system message is always first.
func (b *baseAgent) seedSystemMessage() {
	if _, ok := b.history.SystemMessage(); !ok {
		b.history.Append(core.NewSystemMessage(b.cfg.SystemPrompt))
	}
}

// provider resolves the definition's provider reference against the registry.
func (b *baseAgent) provider() (model.Provider, error) {
	return b.providers.Get(b.cfg.Provider)
}

// activeTools resolves the tool set for one run: the override when supplied,
// otherwise the definition's allowed names. Unregistered names are skipped.
func (b *baseAgent) activeTools(override []core.Tool) []core.Tool {
	if len(override) > 0 {
		return override
	}
	if b.tools == nil {
		return nil
	}
	return b.tools.Resolve(b.cfg.Tools)
}

// request assembles the provider request for the current history snapshot.
func (b *baseAgent) request(specs []core.ToolSpec) model.Request {
	return model.Request{
		Messages:    b.history.Messages(),
		Tools:       specs,
		Model:       b.cfg.Model,
		Temperature: b.cfg.Temperature,
		MaxTokens:   b.maxTokens,
	}
}

func (b *baseAgent) resetIterations() {
	b.mu.Lock()
	b.iterations = 0
	b.mu.Unlock()
}

func (b *baseAgent) currentIteration() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.iterations
}

func (b *baseAgent) nextIteration() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.iterations++
	return b.iterations
}

// toolSpecs collects the declarative specs of the active tool set.
func toolSpecs(tools []core.Tool) []core.ToolSpec {
	if len(tools) == 0 {
		return nil
	}
	specs := make([]core.ToolSpec, len(tools))
	for i, t := range tools {
		specs[i] = t.Spec()
	}
	return specs
}
