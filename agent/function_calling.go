package agent

import (
	"context"

	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/model"
	"github.com/mourad-ghafiri/agentflow/tool"
)

// FunctionCallingAgent drives the same completion/tool cycle as ReActAgent
// using provider-native function calling: the active tool specs are surfaced
// as callable function declarations and the provider decides when to invoke
// them. Both variants share the dispatcher contract and loop skeleton.
type FunctionCallingAgent struct {
	baseAgent
}

// NewFunctionCallingAgent creates a function-calling agent bound to the given
// definition and registries.
func NewFunctionCallingAgent(cfg core.AgentConfig, providers *model.Registry, tools *tool.Registry, optFns ...func(o *Options)) *FunctionCallingAgent {
	return &FunctionCallingAgent{baseAgent: newBaseAgent(cfg, providers, tools, optFns...)}
}

// Run implements core.Agent. The optional tools override the definition's
// allowed set for this run only. On budget exhaustion it returns
// (nil, ErrMaxIterations).
func (a *FunctionCallingAgent) Run(ctx context.Context, input any, tools ...core.Tool) (any, error) {
	resp, err := a.runToolLoop(ctx, input, tools)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
