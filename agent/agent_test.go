package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/model"
	"github.com/mourad-ghafiri/agentflow/tool"
)

func testConfig() core.AgentConfig {
	return core.AgentConfig{
		Name:          "tester",
		SystemPrompt:  "You are a test agent.",
		Model:         "test-model",
		Provider:      "mock",
		Tools:         []string{"calculate_sum"},
		MaxIterations: 5,
	}
}

func testRegistries() (*model.Registry, *tool.Registry, *model.MockProvider) {
	mock := model.NewMockProvider("test-model")
	providers := model.NewRegistry()
	providers.Register("mock", mock)

	tools := tool.NewRegistry()
	tools.Register(tool.NewFunctionTool(
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
	))
	return providers, tools, mock
}

func toolCallMessage(calls ...core.ToolCall) core.Message {
	return core.Message{Role: core.RoleAssistant, ToolCalls: calls}
}

func roles(msgs []core.Message) []core.Role {
	out := make([]core.Role, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role
	}
	return out
}

// -------------------- Conversational Tests --------------------

func TestConversationalAgentOneShot(t *testing.T) {
	providers, _, mock := testRegistries()
	// Tool calls in the response must not trigger a second round trip.
	mock.Enqueue(toolCallMessage(core.ToolCall{
		ID: "call_1", Type: "function",
		Function: core.ToolCallFunction{Name: "calculate_sum", Arguments: `{"a":1,"b":2}`},
	}))

	a := NewConversationalAgent(testConfig(), providers)
	out, err := a.Run(context.Background(), "hello")
	require.NoError(t, err)

	resp, ok := out.(*core.Message)
	require.True(t, ok)
	assert.True(t, resp.HasToolCalls())
	assert.Equal(t, 1, mock.CallCount())

	state := a.State()
	assert.Equal(t, []core.Role{core.RoleSystem, core.RoleUser, core.RoleAssistant}, roles(state.Messages))
}

func TestConversationalAgentSendsNoTools(t *testing.T) {
	providers, _, mock := testRegistries()
	a := NewConversationalAgent(testConfig(), providers)

	_, err := a.Run(context.Background(), "hello")
	require.NoError(t, err)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Tools)
}

// -------------------- Tool Loop Tests --------------------

func TestReActAgentToolLoop(t *testing.T) {
	providers, tools, mock := testRegistries()
	mock.Enqueue(
		toolCallMessage(
			core.ToolCall{ID: "call_1", Type: "function", Function: core.ToolCallFunction{Name: "calculate_sum", Arguments: `{"a":2,"b":3}`}},
			core.ToolCall{ID: "call_2", Type: "function", Function: core.ToolCallFunction{Name: "foo", Arguments: "{}"}},
		),
		core.NewAssistantMessage("done"),
	)

	a := NewReActAgent(testConfig(), providers, tools)
	out, err := a.Run(context.Background(), "add 2 and 3")
	require.NoError(t, err)

	resp := out.(*core.Message)
	assert.Equal(t, "done", resp.Content)

	state := a.State()
	assert.Equal(t, []core.Role{
		core.RoleSystem, core.RoleUser,
		core.RoleAssistant, core.RoleTool, core.RoleTool,
		core.RoleAssistant,
	}, roles(state.Messages))

	// Tool messages mirror the call order of the preceding assistant message.
	assert.Equal(t, "call_1", state.Messages[3].ToolCallID)
	assert.Equal(t, "5", state.Messages[3].Content)
	assert.Equal(t, "call_2", state.Messages[4].ToolCallID)
	assert.Equal(t, "Error: Tool foo not found", state.Messages[4].Content)

	// The unresolved tool did not terminate the loop.
	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, 2, state.Iterations)
}

func TestReActAgentSurfacesToolSpecs(t *testing.T) {
	providers, tools, mock := testRegistries()
	a := NewReActAgent(testConfig(), providers, tools)

	_, err := a.Run(context.Background(), "hello")
	require.NoError(t, err)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0].Tools, 1)
	assert.Equal(t, "calculate_sum", reqs[0].Tools[0].Name)
}

func TestFunctionCallingAgentSharesLoop(t *testing.T) {
	providers, tools, mock := testRegistries()
	mock.Enqueue(
		toolCallMessage(core.ToolCall{ID: "call_1", Type: "function", Function: core.ToolCallFunction{Name: "calculate_sum", Arguments: `{"a":4,"b":6}`}}),
		core.NewAssistantMessage("the sum is 10"),
	)

	a := NewFunctionCallingAgent(testConfig(), providers, tools)
	out, err := a.Run(context.Background(), "add 4 and 6")
	require.NoError(t, err)
	assert.Equal(t, "the sum is 10", out.(*core.Message).Content)
	assert.Equal(t, 2, mock.CallCount())
}

func TestToolLoopIterationBudget(t *testing.T) {
	providers, tools, mock := testRegistries()
	mock.SetHandler(func(req model.Request) (core.Message, error) {
		return toolCallMessage(core.ToolCall{
			ID: core.NewID(), Type: "function",
			Function: core.ToolCallFunction{Name: "calculate_sum", Arguments: `{"a":1,"b":1}`},
		}), nil
	})

	cfg := testConfig()
	cfg.MaxIterations = 3

	a := NewReActAgent(cfg, providers, tools)
	out, err := a.Run(context.Background(), "never finishes")

	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrMaxIterations)
	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, 3, a.State().Iterations)
}

func TestRunToolsOverride(t *testing.T) {
	providers, tools, mock := testRegistries()
	override := tool.NewFunctionTool("echo", "Echo back", nil, nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return "echoed", nil
		})

	a := NewReActAgent(testConfig(), providers, tools)
	_, err := a.Run(context.Background(), "hello", override)
	require.NoError(t, err)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0].Tools, 1)
	assert.Equal(t, "echo", reqs[0].Tools[0].Name)
}

// -------------------- Reset Tests --------------------

func TestResetRestoresFreshBehavior(t *testing.T) {
	providers, tools, mock := testRegistries()
	mock.SetHandler(func(req model.Request) (core.Message, error) {
		return core.NewAssistantMessage("ok"), nil
	})

	used := NewReActAgent(testConfig(), providers, tools)
	_, err := used.Run(context.Background(), "first")
	require.NoError(t, err)

	used.Reset()
	assert.Equal(t, 0, used.State().Iterations)

	_, err = used.Run(context.Background(), "second")
	require.NoError(t, err)

	fresh := NewReActAgent(testConfig(), providers, tools)
	_, err = fresh.Run(context.Background(), "second")
	require.NoError(t, err)

	assert.Equal(t, roles(fresh.State().Messages), roles(used.State().Messages))
}

func TestResetReseedsSystemMessage(t *testing.T) {
	providers, tools, _ := testRegistries()
	a := NewReActAgent(testConfig(), providers, tools)
	a.Reset()

	state := a.State()
	require.NotEmpty(t, state.Messages)
	assert.Equal(t, core.RoleSystem, state.Messages[0].Role)
	assert.Equal(t, "You are a test agent.", state.Messages[0].Content)
}

// -------------------- Factory Tests --------------------

func TestFactoryKnownTypes(t *testing.T) {
	providers, tools, _ := testRegistries()

	for _, at := range []Type{TypeConversational, TypeReAct, TypeFunctionCalling, TypePlanner} {
		a, err := New(at, testConfig(), providers, tools)
		require.NoError(t, err, string(at))
		assert.NotNil(t, a)
	}
}

func TestFactoryUnknownType(t *testing.T) {
	providers, tools, _ := testRegistries()

	_, err := New("mystery", testConfig(), providers, tools)
	require.Error(t, err)
	var cfgErr *core.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
