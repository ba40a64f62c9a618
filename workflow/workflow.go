package workflow

import (
	"context"
	"sync"

	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/logging"
)

// Workflow executes a composition of agents over one input.
type Workflow interface {
	// Config returns the workflow's configuration.
	Config() core.WorkflowConfig

	// Definition returns the definition the workflow was built from.
	Definition() Definition

	// AddAgent registers an agent under its configured id.
	AddAgent(agent core.Agent)

	// RemoveAgent removes an agent by id. Unknown ids are ignored.
	RemoveAgent(id string)

	// Run executes the workflow with the given input and returns the raw
	// output of the last agent (sequential) or the final node (DAG).
	Run(ctx context.Context, input any) (any, error)
}

// Options configures workflow construction.
type Options struct {
	// Logger receives scheduling events. Defaults to a no-op logger.
	Logger logging.Logger
}

// New builds the workflow variant selected by the definition's Kind.
func New(cfg core.WorkflowConfig, def Definition, optFns ...func(o *Options)) (Workflow, error) {
	switch def.Kind {
	case KindSequential:
		return NewSequential(cfg, def, optFns...)
	case KindDAG:
		return NewDAG(cfg, def, optFns...)
	default:
		return nil, core.NewConfigurationError("unknown workflow type: %s", def.Kind)
	}
}

type baseWorkflow struct {
	cfg    core.WorkflowConfig
	def    Definition
	logger logging.Logger

	mu     sync.RWMutex
	agents map[string]core.Agent
}

func newBaseWorkflow(cfg core.WorkflowConfig, def Definition, optFns ...func(o *Options)) baseWorkflow {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return baseWorkflow{
		cfg:    cfg.WithDefaults(),
		def:    def,
		logger: opts.Logger,
		agents: make(map[string]core.Agent),
	}
}

func (b *baseWorkflow) Config() core.WorkflowConfig { return b.cfg }

func (b *baseWorkflow) Definition() Definition { return b.def }

func (b *baseWorkflow) AddAgent(agent core.Agent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.agents[agent.Config().ID] = agent
}

func (b *baseWorkflow) RemoveAgent(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.agents, id)
}

func (b *baseWorkflow) agent(id string) (core.Agent, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.agents[id]
	if !ok {
		return nil, core.NewResolutionError(core.RefAgent, id)
	}
	return a, nil
}
