// Package workflow composes agents into multi-step executions.
//
// Two strategies are provided. Sequential runs an ordered list of agents,
// feeding each agent the normalized output of its predecessor. DAG runs a
// dependency graph in rounds: every round, all nodes whose dependencies have
// completed execute concurrently, and their outputs become visible to the
// next round. Both strategies share one input rule: any value that is not
// already a core.Message is wrapped as a user message before it reaches an
// agent.
//
// A workflow is built from a Definition, a typed tagged union validated at
// construction time. Definitions round-trip through the JSON wire form used
// for persistence:
//
//	{"type": "sequential", "sequence": ["a", "b"]}
//	{"type": "dag", "entry_point": "a", "final_node": "b",
//	 "dag": {"b": {"dependencies": ["a"], "input_mapping": {"x": "a.value"}}}}
package workflow
