package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mourad-ghafiri/agentflow/core"
)

// StepBudgetError reports that the scheduler exhausted its round budget
// before every node processed, usually because of an unsatisfiable
// dependency or a budget set below the graph's depth.
type StepBudgetError struct {
	MaxSteps int
}

func (e *StepBudgetError) Error() string {
	return fmt.Sprintf("step budget of %d rounds exhausted before all nodes processed", e.MaxSteps)
}

// DAG runs agents according to a dependency graph, in rounds. Each round
// takes a snapshot of accumulated results, executes every unprocessed node
// whose dependencies are satisfied against that snapshot, then applies the
// round's outputs together. A node therefore only ever observes results
// from strictly earlier rounds, and the output of a run does not depend on
// the order nodes are scanned in. Nodes within a round run concurrently.
//
// A dependency on a graph node is satisfied once that node has processed.
// A dependency on an id outside the graph is satisfied when the id is a
// results key, which only the entry-point seed can provide.
type DAG struct {
	baseWorkflow
	maxSteps int
}

var _ Workflow = (*DAG)(nil)

// NewDAG builds a DAG workflow from a validated definition. The round
// budget comes from the definition when set, otherwise from the workflow
// config.
func NewDAG(cfg core.WorkflowConfig, def Definition, optFns ...func(o *Options)) (*DAG, error) {
	if def.Kind != KindDAG {
		return nil, core.NewConfigurationError("dag workflow requires a dag definition, got %q", def.Kind)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	base := newBaseWorkflow(cfg, def, optFns...)
	maxSteps := base.cfg.MaxSteps
	if def.MaxSteps > 0 {
		maxSteps = def.MaxSteps
	}
	return &DAG{baseWorkflow: base, maxSteps: maxSteps}, nil
}

// Run executes the graph and returns the final node's raw output. The
// entry point's results slot is seeded with the normalized workflow input
// so the entry node (and anything mapping from its id before it runs) has
// a defined producer.
func (d *DAG) Run(ctx context.Context, input any) (any, error) {
	results := map[string]any{d.def.EntryPoint: core.NormalizeInput(input)}
	processed := make(map[string]bool, len(d.def.Nodes))

	d.logger.Debug("workflow.dag.start", "workflow", d.cfg.Name, "nodes", len(d.def.Nodes), "max_steps", d.maxSteps)

	steps := 0
	for steps < d.maxSteps && len(processed) < len(d.def.Nodes) {
		steps++
		eligible := d.eligibleNodes(results, processed)
		if err := d.runRound(ctx, eligible, results, processed, input); err != nil {
			return nil, err
		}
		d.logger.Debug("workflow.dag.round_complete", "workflow", d.cfg.Name, "round", steps, "executed", len(eligible))
	}

	if len(processed) < len(d.def.Nodes) {
		d.logger.Warn("workflow.dag.budget_exhausted", "workflow", d.cfg.Name, "processed", len(processed), "nodes", len(d.def.Nodes))
		return nil, &StepBudgetError{MaxSteps: d.maxSteps}
	}

	out, ok := results[d.def.FinalNode]
	if !ok {
		return nil, fmt.Errorf("final node %q was not processed", d.def.FinalNode)
	}
	d.logger.Debug("workflow.dag.complete", "workflow", d.cfg.Name, "rounds", steps)
	return out, nil
}

// eligibleNodes returns the unprocessed nodes whose dependencies are all
// satisfied, in sorted order for stable logs and error selection.
func (d *DAG) eligibleNodes(results map[string]any, processed map[string]bool) []string {
	var eligible []string
	for id, node := range d.def.Nodes {
		if processed[id] {
			continue
		}
		if d.depsSatisfied(node, results, processed) {
			eligible = append(eligible, id)
		}
	}
	sort.Strings(eligible)
	return eligible
}

func (d *DAG) depsSatisfied(node Node, results map[string]any, processed map[string]bool) bool {
	for _, dep := range node.Dependencies {
		if processed[dep] {
			continue
		}
		if _, isNode := d.def.Nodes[dep]; isNode {
			return false
		}
		if _, seeded := results[dep]; !seeded {
			return false
		}
	}
	return true
}

// runRound executes the eligible set concurrently against a fixed results
// snapshot, then applies every output. Each goroutine only reads results;
// writes happen after the WaitGroup drains.
func (d *DAG) runRound(ctx context.Context, eligible []string, results map[string]any, processed map[string]bool, workflowInput any) error {
	type nodeOutcome struct {
		output any
		err    error
	}
	outcomes := make([]nodeOutcome, len(eligible))

	var wg sync.WaitGroup
	for i, id := range eligible {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			out, err := d.runNode(ctx, id, results, workflowInput)
			outcomes[i] = nodeOutcome{output: out, err: err}
		}(i, id)
	}
	wg.Wait()

	for i, id := range eligible {
		if outcomes[i].err != nil {
			return outcomes[i].err
		}
		results[id] = outcomes[i].output
		processed[id] = true
	}
	return nil
}

func (d *DAG) runNode(ctx context.Context, id string, results map[string]any, workflowInput any) (any, error) {
	agent, err := d.agent(id)
	if err != nil {
		return nil, err
	}
	in := nodeInput(d.def.Nodes[id], results, workflowInput)
	out, err := agent.Run(ctx, core.NormalizeInput(in))
	if err != nil {
		return nil, fmt.Errorf("node %q failed: %w", id, err)
	}
	return out, nil
}

// nodeInput resolves what a node receives. With an input mapping, each key
// resolves through its producer ref: a bare node id takes the whole result,
// "nodeId.field" takes a named field of the result and falls back to the
// whole result when the field is missing. Refs naming an absent producer
// are dropped. Without a mapping, the first dependency's result is used,
// or the raw workflow input when the node has no dependencies.
func nodeInput(node Node, results map[string]any, workflowInput any) any {
	if len(node.InputMapping) > 0 {
		mapped := make(map[string]any, len(node.InputMapping))
		for key, ref := range node.InputMapping {
			source, field, hasField := strings.Cut(ref, ".")
			val, present := results[source]
			if !present {
				continue
			}
			if hasField {
				if m, ok := fieldMap(val); ok {
					if fv, has := m[field]; has {
						mapped[key] = fv
						continue
					}
				}
			}
			mapped[key] = val
		}
		return mapped
	}

	for _, dep := range node.Dependencies {
		if val, ok := results[dep]; ok {
			return val
		}
	}
	return workflowInput
}

// fieldMap views a producer result as a key/value map for field extraction.
// Plain maps are used directly; structured results such as messages resolve
// through their JSON object form.
func fieldMap(val any) (map[string]any, bool) {
	if m, ok := val.(map[string]any); ok {
		return m, true
	}
	data, err := json.Marshal(val)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	return m, true
}
