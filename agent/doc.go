// Package agent contains the decision-loop implementations of AgentFlow.
// The package provides four agent variants built on a shared base:
//
//  1. ConversationalAgent: a single completion round-trip, no tool use
//  2. ReActAgent: iterative completion/tool cycle (reason + act)
//  3. FunctionCallingAgent: the same cycle driven by provider-native
//     function calling
//  4. PlannerAgent: one-shot completion followed by structured plan
//     extraction with a documented fallback
//
// Design principles:
//   - No hidden global state: provider and tool registries are passed in
//     explicitly at construction time
//   - The conversation history is append-only; run order carries full causal
//     meaning and is never rewritten
//   - Tool failures are rendered into tool messages, never surfaced as run
//     errors; only the iteration budget and provider failures end a run early
package agent
