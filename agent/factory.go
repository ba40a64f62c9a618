package agent

import (
	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/model"
	"github.com/mourad-ghafiri/agentflow/tool"
)

// Type identifies an agent variant in configuration and the App facade.
type Type string

const (
	// TypeConversational is the single round-trip variant.
	TypeConversational Type = "conversational"
	// TypeReAct is the reasoning/acting tool loop variant.
	TypeReAct Type = "react"
	// TypeFunctionCalling is the provider-native function calling variant.
	TypeFunctionCalling Type = "function_calling"
	// TypePlanner is the structured plan extraction variant.
	TypePlanner Type = "planner"
)

// New creates an agent of the specified variant. Unknown variants yield a
// ConfigurationError.
func New(agentType Type, cfg core.AgentConfig, providers *model.Registry, tools *tool.Registry, optFns ...func(o *Options)) (core.Agent, error) {
	switch agentType {
	case TypeConversational:
		return NewConversationalAgent(cfg, providers, optFns...), nil
	case TypeReAct:
		return NewReActAgent(cfg, providers, tools, optFns...), nil
	case TypeFunctionCalling:
		return NewFunctionCallingAgent(cfg, providers, tools, optFns...), nil
	case TypePlanner:
		return NewPlannerAgent(cfg, providers, optFns...), nil
	default:
		return nil, core.NewConfigurationError("unknown agent type: %s", agentType)
	}
}
