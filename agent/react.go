package agent

import (
	"context"

	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/model"
	"github.com/mourad-ghafiri/agentflow/tool"
)

// ReActAgent interleaves reasoning and acting: each iteration requests a
// completion over the full history with the active tool specs attached, then
// resolves every tool call the response carries before continuing. The loop
// terminates on the first tool-call-free response or when the iteration
// budget runs out.
type ReActAgent struct {
	baseAgent
}

// NewReActAgent creates a ReAct agent bound to the given definition and registries.
func NewReActAgent(cfg core.AgentConfig, providers *model.Registry, tools *tool.Registry, optFns ...func(o *Options)) *ReActAgent {
	return &ReActAgent{baseAgent: newBaseAgent(cfg, providers, tools, optFns...)}
}

// Run implements core.Agent. The optional tools override the definition's
// allowed set for this run only. On budget exhaustion it returns
// (nil, ErrMaxIterations).
func (a *ReActAgent) Run(ctx context.Context, input any, tools ...core.Tool) (any, error) {
	resp, err := a.runToolLoop(ctx, input, tools)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
