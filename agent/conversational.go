package agent

import (
	"context"
	"fmt"

	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/model"
)

// ConversationalAgent is a basic conversational agent without tool use.
// Run issues exactly one completion call and returns it as the final
// response, regardless of any tool-call content the provider emits.
type ConversationalAgent struct {
	baseAgent
}

// NewConversationalAgent creates a conversational agent bound to the given
// definition and provider registry.
func NewConversationalAgent(cfg core.AgentConfig, providers *model.Registry, optFns ...func(o *Options)) *ConversationalAgent {
	return &ConversationalAgent{baseAgent: newBaseAgent(cfg, providers, nil, optFns...)}
}

// Run implements core.Agent. The tools argument is accepted for interface
// compatibility and ignored: this variant never surfaces tool specs to the
// provider.
func (a *ConversationalAgent) Run(ctx context.Context, input any, _ ...core.Tool) (any, error) {
	resp, err := a.complete(ctx, input)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// complete performs the single completion round-trip shared with the planner
// variant: seed system message, append normalized input, request a completion
// over the full history with no tools, append and return the response.
func (a *baseAgent) complete(ctx context.Context, input any) (*core.Message, error) {
	a.seedSystemMessage()
	a.history.Append(core.NormalizeInput(input))

	prov, err := a.provider()
	if err != nil {
		return nil, err
	}

	resp, err := prov.Complete(ctx, a.request(nil))
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	a.history.Append(resp)

	return &resp, nil
}

// compile-time interface checks for all variants
var (
	_ core.Agent = (*ConversationalAgent)(nil)
	_ core.Agent = (*ReActAgent)(nil)
	_ core.Agent = (*FunctionCallingAgent)(nil)
	_ core.Agent = (*PlannerAgent)(nil)
)
