package core

import "context"

// Agent is the decision-loop contract implemented by every agent variant.
//
// Run accepts an arbitrary input (normalized to a user message when it is not
// already a Message), drives the variant's completion/tool cycle and returns
// the final output. The output shape depends on the variant: conversational
// and tool-using agents return *Message, the planner variant returns a plan
// value. Blocking external operations (provider completions, tool execution)
// honor ctx cancellation.
//
// Run never executes more than Config().MaxIterations completion round-trips;
// variants that exhaust the budget without producing a tool-call-free
// response return a nil result together with a sentinel error so callers can
// distinguish the incomplete outcome from success.
type Agent interface {
	// Config returns the immutable definition this agent was built from.
	Config() AgentConfig

	// State returns a snapshot of the agent's mutable run state: the
	// iteration counter and a copy of the conversation history.
	State() State

	// Run executes the decision loop on the given input. The optional tools
	// override the definition's allowed tool set for this run only.
	Run(ctx context.Context, input any, tools ...Tool) (any, error)

	// Reset clears the history and iteration counter and re-seeds the system
	// message, leaving the agent behaviorally identical to a freshly
	// constructed one with the same definition.
	Reset()
}

// State is a point-in-time snapshot of an agent's run state.
type State struct {
	// Iterations counts completion round-trips of the current or most recent
	// Run. It is monotonic within a run and bounded by MaxIterations.
	Iterations int

	// Messages is a copy of the conversation history in append order.
	Messages []Message
}

// Tool is the capability contract consumed by the decision loop. A tool
// declares its schema through Spec and executes with a keyed argument
// payload. Implementations live in the tool package.
type Tool interface {
	// Spec returns the declarative schema surfaced to model providers.
	Spec() ToolSpec

	// Execute invokes the capability. Errors are recovered by the dispatcher
	// and rendered into tool messages; they never abort a run.
	Execute(ctx context.Context, args map[string]any) (any, error)
}

// ToolSpec declaratively exposes a callable capability to a model provider.
// Parameters is a JSON-Schema-like property map; Required lists the
// parameter names that must be present in every call payload.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
	Required    []string       `json:"required_parameters"`
}
