package agent

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/model"
)

// Plan is the structured output of the planner variant: a description plus
// an ordered list of steps. ParseError carries the extraction failure text
// when the provider's response could not be parsed and the plan was built
// from the documented fallback.
type Plan struct {
	Description string     `json:"description"`
	Steps       []PlanStep `json:"steps"`
	ParseError  string     `json:"parsing_error,omitempty"`
}

// PlanStep is a single ordered step of a plan.
type PlanStep struct {
	Description string `json:"description"`
}

// PlannerAgent runs the one-shot conversational path and then extracts a
// structured plan from a fenced JSON block in the final content. Extraction
// failures never abort the run: the raw content becomes a single-step
// fallback plan with the parse error recorded as metadata.
type PlannerAgent struct {
	baseAgent
}

// NewPlannerAgent creates a planner agent bound to the given definition and
// provider registry.
func NewPlannerAgent(cfg core.AgentConfig, providers *model.Registry, optFns ...func(o *Options)) *PlannerAgent {
	return &PlannerAgent{baseAgent: newBaseAgent(cfg, providers, nil, optFns...)}
}

// Run implements core.Agent and returns a Plan.
func (a *PlannerAgent) Run(ctx context.Context, input any, _ ...core.Tool) (any, error) {
	resp, err := a.complete(ctx, input)
	if err != nil {
		return nil, err
	}

	plan := ParsePlan(resp.Content)
	if plan.ParseError != "" {
		a.logger.Warn("agent.plan.parse_failed", "agent", a.cfg.Name, "error", plan.ParseError)
	}
	return plan, nil
}

// planFence matches a ```json fenced block spanning multiple lines.
var planFence = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n```")

// ParsePlan attempts the two-stage extraction: parse a fenced JSON plan from
// the content, and on any failure construct a single-step plan wrapping the
// raw content. A malformed fenced block additionally records the decode error
// in ParseError. ParsePlan never fails.
func ParsePlan(content string) Plan {
	match := planFence.FindStringSubmatch(content)
	if match == nil {
		return fallbackPlan(content, "")
	}

	var plan Plan
	if err := json.Unmarshal([]byte(match[1]), &plan); err != nil {
		return fallbackPlan(content, err.Error())
	}
	return plan
}

func fallbackPlan(content, parseErr string) Plan {
	return Plan{
		Description: "Generated plan",
		Steps:       []PlanStep{{Description: content}},
		ParseError:  parseErr,
	}
}
