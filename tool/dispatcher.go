package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/internal/util"
	"github.com/mourad-ghafiri/agentflow/logging"
)

// Dispatcher resolves tool call requests against an active tool set and
// converts every outcome (success or failure) into a tool-role message.
// Nothing escapes as an error into the decision loop: an unresolved name,
// an argument parse failure, a validation failure, an execution error and
// even a panic inside a tool body are all rendered as message text so the
// model can react in the next iteration.
type Dispatcher struct {
	logger logging.Logger
}

// DispatcherOptions configures a Dispatcher instance.
type DispatcherOptions struct {
	Logger logging.Logger
}

// NewDispatcher creates a Dispatcher. The logger defaults to NoOpLogger.
func NewDispatcher(optFns ...func(o *DispatcherOptions)) *Dispatcher {
	opts := DispatcherOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{logger: opts.Logger}
}

// Dispatch executes a single tool call request against the active tool set
// and returns the resulting tool-role message. The active set is searched in
// order by spec name.
func (d *Dispatcher) Dispatch(ctx context.Context, active []core.Tool, call core.ToolCall) core.Message {
	name := call.Function.Name

	var target core.Tool
	for _, t := range active {
		if t.Spec().Name == name {
			target = t
			break
		}
	}
	if target == nil {
		d.logger.Warn("tool.dispatch.not_found", "tool", name, "call_id", call.ID)
		return core.NewToolMessage(call.ID, fmt.Sprintf("Error: Tool %s not found", name))
	}

	args, err := parseArguments(call.Function.Arguments)
	if err != nil {
		d.logger.Warn("tool.dispatch.bad_arguments", "tool", name, "call_id", call.ID, "error", err.Error())
		return core.NewToolMessage(call.ID, fmt.Sprintf("Error: %v", err))
	}

	start := time.Now()
	result, err := d.execute(ctx, target, args)
	if err != nil {
		d.logger.Error("tool.call.error", "tool", name, "call_id", call.ID, "error", err.Error())
		return core.NewToolMessage(call.ID, fmt.Sprintf("Error: %v", err))
	}

	d.logger.Info("tool.call.success", "tool", name, "call_id", call.ID, "duration_ms", time.Since(start).Milliseconds())

	return core.NewToolMessage(call.ID, util.Stringify(result))
}

// execute invokes the tool with panic recovery so a misbehaving capability
// body cannot take down the decision loop.
func (d *Dispatcher) execute(ctx context.Context, t core.Tool, args map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool.call.panic", "tool", t.Spec().Name, "recover", r, "stack", string(debug.Stack()))
			result = nil
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return t.Execute(ctx, args)
}

// parseArguments decodes the serialized argument payload of a tool call.
// An empty payload maps to an empty argument set.
func parseArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	args := make(map[string]any)
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	return args, nil
}
