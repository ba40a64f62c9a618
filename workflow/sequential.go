package workflow

import (
	"context"
	"fmt"

	"github.com/mourad-ghafiri/agentflow/core"
)

// Sequential runs agents in the order given by the definition's sequence.
// The workflow input feeds the first agent; each subsequent agent receives
// its predecessor's output, normalized to a user message. The last agent's
// raw output is returned unmodified.
type Sequential struct {
	baseWorkflow
}

var _ Workflow = (*Sequential)(nil)

// NewSequential builds a sequential workflow from a validated definition.
func NewSequential(cfg core.WorkflowConfig, def Definition, optFns ...func(o *Options)) (*Sequential, error) {
	if def.Kind != KindSequential {
		return nil, core.NewConfigurationError("sequential workflow requires a sequential definition, got %q", def.Kind)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &Sequential{baseWorkflow: newBaseWorkflow(cfg, def, optFns...)}, nil
}

// Run executes the sequence. Every id is resolved before the first agent
// runs, so a missing agent aborts the run without side effects.
func (s *Sequential) Run(ctx context.Context, input any) (any, error) {
	agents := make([]core.Agent, len(s.def.Sequence))
	for i, id := range s.def.Sequence {
		a, err := s.agent(id)
		if err != nil {
			return nil, err
		}
		agents[i] = a
	}

	s.logger.Debug("workflow.sequential.start", "workflow", s.cfg.Name, "agents", len(agents))

	current := input
	for i, a := range agents {
		out, err := a.Run(ctx, core.NormalizeInput(current))
		if err != nil {
			return nil, fmt.Errorf("agent %q failed at position %d: %w", s.def.Sequence[i], i, err)
		}
		s.logger.Debug("workflow.sequential.step", "workflow", s.cfg.Name, "agent", s.def.Sequence[i], "position", i)
		current = out
	}

	s.logger.Debug("workflow.sequential.complete", "workflow", s.cfg.Name)
	return current, nil
}
