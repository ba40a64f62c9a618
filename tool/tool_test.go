package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mourad-ghafiri/agentflow/core"
)

func sumTool() *FunctionTool {
	return NewFunctionTool(
		"calculate_sum",
		"Calculate the sum of two numbers",
		map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		[]string{"a", "b"},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["a"].(float64) + args["b"].(float64), nil
		},
	)
}

// -------------------- FunctionTool Tests --------------------

func TestFunctionToolSuccess(t *testing.T) {
	result, err := sumTool().Execute(context.Background(), map[string]any{"a": 2.0, "b": 3.0})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, result)
}

func TestFunctionToolValidation(t *testing.T) {
	_, err := sumTool().Execute(context.Background(), map[string]any{"a": 2.0})
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeValidation, toolErr.Code)
	assert.Equal(t, "calculate_sum", toolErr.Tool)
}

func TestFunctionToolExecutionError(t *testing.T) {
	failing := NewFunctionTool("broken", "Always fails", nil, nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, errors.New("boom")
		})

	_, err := failing.Execute(context.Background(), map[string]any{})
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeExecution, toolErr.Code)
	assert.Equal(t, "boom", toolErr.Message)
}

func TestFunctionToolPreservesCustomToolError(t *testing.T) {
	custom := NewToolError("typed", "already typed", "CUSTOM_CODE")
	typed := NewFunctionTool("typed", "Returns a typed error", nil, nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, custom
		})

	_, err := typed.Execute(context.Background(), map[string]any{})
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "CUSTOM_CODE", toolErr.Code)
}

type echoArgs struct {
	Text  string `json:"text" description:"Text to echo"`
	Times *int   `json:"times" description:"Optional repeat count"`
}

func TestFunctionToolFromStruct(t *testing.T) {
	echo := NewFunctionToolFromStruct("echo", "Echo text back", echoArgs{},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["text"], nil
		})

	spec := echo.Spec()
	assert.Equal(t, "echo", spec.Name)
	assert.Contains(t, spec.Parameters, "text")
	assert.Contains(t, spec.Parameters, "times")
	assert.ElementsMatch(t, []string{"text"}, spec.Required)

	result, err := echo.Execute(context.Background(), map[string]any{"text": "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "hi", result)
}

// -------------------- Registry Tests --------------------

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(sumTool())

	got, err := r.Get("calculate_sum")
	assert.NoError(t, err)
	assert.Equal(t, "calculate_sum", got.Spec().Name)

	_, err = r.Get("missing")
	var resErr *core.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, core.RefTool, resErr.Kind)
}

func TestRegistryResolveSkipsMissing(t *testing.T) {
	r := NewRegistry()
	r.Register(sumTool())

	tools := r.Resolve([]string{"calculate_sum", "missing"})
	require.Len(t, tools, 1)
	assert.Equal(t, "calculate_sum", tools[0].Spec().Name)
}

// -------------------- Dispatcher Tests --------------------

func TestDispatcherNotFound(t *testing.T) {
	d := NewDispatcher()
	call := core.ToolCall{ID: "call_1", Type: "function", Function: core.ToolCallFunction{Name: "foo", Arguments: "{}"}}

	msg := d.Dispatch(context.Background(), nil, call)
	assert.Equal(t, core.RoleTool, msg.Role)
	assert.Equal(t, "call_1", msg.ToolCallID)
	assert.Equal(t, "Error: Tool foo not found", msg.Content)
}

func TestDispatcherSuccess(t *testing.T) {
	d := NewDispatcher()
	active := []core.Tool{sumTool()}
	call := core.ToolCall{ID: "call_1", Type: "function", Function: core.ToolCallFunction{Name: "calculate_sum", Arguments: `{"a":2,"b":3}`}}

	msg := d.Dispatch(context.Background(), active, call)
	assert.Equal(t, "5", msg.Content)
	assert.Equal(t, "call_1", msg.ToolCallID)
}

func TestDispatcherEmptyAndBadArguments(t *testing.T) {
	d := NewDispatcher()
	noArgs := NewFunctionTool("ping", "No arguments", nil, nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return "pong", nil
		})
	active := []core.Tool{noArgs}

	msg := d.Dispatch(context.Background(), active, core.ToolCall{
		ID: "call_1", Function: core.ToolCallFunction{Name: "ping", Arguments: ""},
	})
	assert.Equal(t, "pong", msg.Content)

	msg = d.Dispatch(context.Background(), active, core.ToolCall{
		ID: "call_2", Function: core.ToolCallFunction{Name: "ping", Arguments: "{not json"},
	})
	assert.Contains(t, msg.Content, "Error: failed to parse tool arguments")
}

func TestDispatcherExecutionErrorBecomesMessage(t *testing.T) {
	d := NewDispatcher()
	failing := NewFunctionTool("broken", "Always fails", nil, nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, errors.New("boom")
		})

	msg := d.Dispatch(context.Background(), []core.Tool{failing}, core.ToolCall{
		ID: "call_1", Function: core.ToolCallFunction{Name: "broken", Arguments: "{}"},
	})
	assert.Equal(t, core.RoleTool, msg.Role)
	assert.Contains(t, msg.Content, "Error: ")
	assert.Contains(t, msg.Content, "boom")
}

func TestDispatcherRecoversPanic(t *testing.T) {
	d := NewDispatcher()
	panicky := NewFunctionTool("panicky", "Panics on call", nil, nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			panic("unexpected")
		})

	msg := d.Dispatch(context.Background(), []core.Tool{panicky}, core.ToolCall{
		ID: "call_1", Function: core.ToolCallFunction{Name: "panicky", Arguments: "{}"},
	})
	assert.Contains(t, msg.Content, "tool panicked")
}
