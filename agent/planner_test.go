package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mourad-ghafiri/agentflow/core"
)

func TestParsePlanFencedJSON(t *testing.T) {
	content := "Here is the plan:\n```json\n{\"description\": \"Ship it\", \"steps\": [{\"description\": \"write\"}, {\"description\": \"test\"}]}\n```\nDone."

	plan := ParsePlan(content)
	assert.Equal(t, "Ship it", plan.Description)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "write", plan.Steps[0].Description)
	assert.Equal(t, "test", plan.Steps[1].Description)
	assert.Empty(t, plan.ParseError)
}

func TestParsePlanNoFence(t *testing.T) {
	plan := ParsePlan("just prose, no structure")
	assert.Equal(t, "Generated plan", plan.Description)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "just prose, no structure", plan.Steps[0].Description)
	assert.Empty(t, plan.ParseError)
}

func TestParsePlanMalformedFence(t *testing.T) {
	content := "```json\n{not valid json\n```"

	plan := ParsePlan(content)
	assert.Equal(t, "Generated plan", plan.Description)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, content, plan.Steps[0].Description)
	assert.NotEmpty(t, plan.ParseError)
}

func TestPlannerAgentRun(t *testing.T) {
	providers, _, mock := testRegistries()
	mock.Enqueue(core.NewAssistantMessage("```json\n{\"description\": \"Research\", \"steps\": [{\"description\": \"search\"}]}\n```"))

	a := NewPlannerAgent(testConfig(), providers)
	out, err := a.Run(context.Background(), "plan my research")
	require.NoError(t, err)

	plan, ok := out.(Plan)
	require.True(t, ok)
	assert.Equal(t, "Research", plan.Description)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, 1, mock.CallCount())
}

func TestPlannerAgentFallsBackOnProse(t *testing.T) {
	providers, _, mock := testRegistries()
	mock.Enqueue(core.NewAssistantMessage("I would start by searching."))

	a := NewPlannerAgent(testConfig(), providers)
	out, err := a.Run(context.Background(), "plan my research")
	require.NoError(t, err)

	plan := out.(Plan)
	assert.Equal(t, "Generated plan", plan.Description)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "I would start by searching.", plan.Steps[0].Description)
}
