package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/mourad-ghafiri/agentflow/core"
)

// ErrMaxIterations is returned when the decision loop reaches the
// definition's iteration budget without receiving a tool-call-free response.
// It signals an incomplete run, not a fault: callers must treat it distinctly
// from a successful result and can detect it with errors.Is.
var ErrMaxIterations = errors.New("maximum iterations reached without a final response")

// runToolLoop drives the iterative completion/tool cycle shared by the
// ReAct and function-calling variants:
//
//	Init -> AwaitingCompletion -> Terminated(final)
//	                           -> ExecutingTools -> AwaitingCompletion
//
// Each iteration issues one completion over the full ordered history plus the
// active tool specs. A response without tool calls terminates the loop as the
// final assistant message. A response with tool calls is appended to history
// followed by one tool message per request, in the order received; the loop
// then continues. Reaching the iteration budget without a final response
// returns ErrMaxIterations.
func (b *baseAgent) runToolLoop(ctx context.Context, input any, override []core.Tool) (*core.Message, error) {
	b.seedSystemMessage()
	b.history.Append(core.NormalizeInput(input))

	active := b.activeTools(override)
	specs := toolSpecs(active)

	prov, err := b.provider()
	if err != nil {
		return nil, err
	}

	b.resetIterations()

	b.logger.Debug("agent.run.start", "agent", b.cfg.Name, "tools", len(active))

	for b.currentIteration() < b.cfg.MaxIterations {
		iteration := b.nextIteration()

		resp, err := prov.Complete(ctx, b.request(specs))
		if err != nil {
			return nil, fmt.Errorf("completion failed at iteration %d: %w", iteration, err)
		}

		b.history.Append(resp)

		if !resp.HasToolCalls() {
			b.logger.Debug("agent.run.final", "agent", b.cfg.Name, "iterations", iteration)
			return &resp, nil
		}

		b.logger.Debug("agent.run.tool_calls", "agent", b.cfg.Name, "iteration", iteration, "count", len(resp.ToolCalls))

		for _, call := range resp.ToolCalls {
			toolMsg := b.dispatcher.Dispatch(ctx, active, call)
			b.history.Append(toolMsg)
		}
	}

	b.logger.Warn("agent.run.budget_exhausted", "agent", b.cfg.Name, "iterations", b.cfg.MaxIterations)

	return nil, ErrMaxIterations
}
