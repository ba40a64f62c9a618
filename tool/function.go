package tool

import (
	"context"
	"fmt"

	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/internal/util"
)

// FunctionTool is a generic adapter that exposes a plain Go function as an
// AgentFlow tool.
//
// Responsibilities:
//   - Holds a lightweight JSON-Schema-like property map plus the list of
//     required parameter names
//   - Validates model supplied arguments against that schema before execution
//   - Normalizes error handling so callers receive *ToolError with consistent
//     codes: VALIDATION_ERROR for schema mismatch, EXECUTION_ERROR when the
//     wrapped function fails (custom codes are preserved when the function
//     returns *ToolError directly)
//
// A FunctionTool has no internal mutable state after construction and is safe
// for concurrent use by multiple goroutines.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	required    []string
	fn          Func
}

// Func is the implementation signature wrapped by FunctionTool. Arguments
// arrive already validated against the declared schema.
type Func func(ctx context.Context, args map[string]any) (any, error)

// NewFunctionTool constructs a FunctionTool from an explicit property map,
// required-parameter list and implementation.
//
// Example:
//
//	sumTool := tool.NewFunctionTool(
//	  "calculate_sum",
//	  "Calculate the sum of two numbers",
//	  map[string]any{
//	    "a": map[string]any{"type": "number"},
//	    "b": map[string]any{"type": "number"},
//	  },
//	  []string{"a", "b"},
//	  func(_ context.Context, args map[string]any) (any, error) {
//	    return args["a"].(float64) + args["b"].(float64), nil
//	  },
//	)
func NewFunctionTool(name, description string, parameters map[string]any, required []string, fn Func) *FunctionTool {
	if parameters == nil {
		parameters = map[string]any{}
	}
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		required:    required,
		fn:          fn,
	}
}

// NewFunctionToolFromStruct derives the property map and required names from
// a struct using reflection. It is a convenience for simple argument
// containers; pointer and omitempty fields are optional, all others required.
//
// Example:
//
//	type SumArgs struct {
//	  A float64 `json:"a" description:"First addend"`
//	  B float64 `json:"b" description:"Second addend"`
//	}
//
//	sumTool := tool.NewFunctionToolFromStruct("calculate_sum", "Calculate the sum", SumArgs{}, fn)
func NewFunctionToolFromStruct(name, description string, structType any, fn Func) *FunctionTool {
	properties, required := util.SchemaFromStruct(structType)
	return NewFunctionTool(name, description, properties, required, fn)
}

// Spec implements core.Tool.
func (t *FunctionTool) Spec() core.ToolSpec {
	return core.ToolSpec{
		Name:        t.name,
		Description: t.description,
		Parameters:  t.parameters,
		Required:    t.required,
	}
}

// Execute validates the provided args against the declared schema then
// invokes the underlying function. Validation or execution failures are
// wrapped (or passed through) as *ToolError for uniform downstream handling.
func (t *FunctionTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	if err := util.ValidateArgs(args, t.parameters, t.required); err != nil {
		return nil, &ToolError{
			Tool:    t.name,
			Message: fmt.Sprintf("parameter validation failed: %v", err),
			Code:    CodeValidation,
			Details: err,
		}
	}

	result, err := t.fn(ctx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			return nil, toolErr
		}
		return nil, &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    CodeExecution,
		}
	}

	return result, nil
}
