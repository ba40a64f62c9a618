package workflow

import (
	"encoding/json"

	"github.com/mourad-ghafiri/agentflow/core"
)

// Kind discriminates the workflow definition variants.
type Kind string

const (
	// KindSequential runs agents one after another in a fixed order.
	KindSequential Kind = "sequential"
	// KindDAG runs agents according to a directed acyclic dependency graph.
	KindDAG Kind = "dag"
)

// Node is one step of a DAG definition. Dependencies name the nodes whose
// results must exist before this node runs. InputMapping optionally builds
// the node's input from producer results: each value is either a bare node
// id (use the whole result) or "nodeId.field" (use a named field of a
// structured result, falling back to the whole result if the field is
// absent).
type Node struct {
	Dependencies []string          `json:"dependencies"`
	InputMapping map[string]string `json:"input_mapping,omitempty"`
}

// Definition is the tagged union describing a workflow. Exactly one variant
// is populated, selected by Kind. Use Validate before executing; the
// constructors in this package validate for you.
type Definition struct {
	Kind Kind

	// Sequential variant.
	Sequence []string

	// DAG variant.
	Nodes      map[string]Node
	EntryPoint string
	FinalNode  string

	// MaxSteps bounds DAG scheduling rounds. Zero means the workflow
	// config's value (or its default) applies.
	MaxSteps int
}

// NewSequentialDefinition builds a sequential definition over the given
// agent ids.
func NewSequentialDefinition(sequence ...string) Definition {
	return Definition{Kind: KindSequential, Sequence: sequence}
}

// NewDAGDefinition builds a DAG definition.
func NewDAGDefinition(entryPoint, finalNode string, nodes map[string]Node) Definition {
	return Definition{
		Kind:       KindDAG,
		Nodes:      nodes,
		EntryPoint: entryPoint,
		FinalNode:  finalNode,
	}
}

// Validate checks the structural requirements of the populated variant.
func (d Definition) Validate() error {
	switch d.Kind {
	case KindSequential:
		if len(d.Sequence) == 0 {
			return core.NewConfigurationError("sequential workflow requires a non-empty sequence of agent ids")
		}
	case KindDAG:
		if len(d.Nodes) == 0 {
			return core.NewConfigurationError("dag workflow requires a non-empty node map")
		}
		if d.EntryPoint == "" {
			return core.NewConfigurationError("dag workflow requires an entry point")
		}
		if d.FinalNode == "" {
			return core.NewConfigurationError("dag workflow requires a final node")
		}
	default:
		return core.NewConfigurationError("unknown workflow type: %s", d.Kind)
	}
	return nil
}

type wireDefinition struct {
	Type       Kind            `json:"type"`
	Sequence   []string        `json:"sequence,omitempty"`
	EntryPoint string          `json:"entry_point,omitempty"`
	FinalNode  string          `json:"final_node,omitempty"`
	DAG        map[string]Node `json:"dag,omitempty"`
	MaxSteps   int             `json:"max_steps,omitempty"`
}

// MarshalJSON emits the persisted wire form.
func (d Definition) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireDefinition{
		Type:       d.Kind,
		Sequence:   d.Sequence,
		EntryPoint: d.EntryPoint,
		FinalNode:  d.FinalNode,
		DAG:        d.Nodes,
		MaxSteps:   d.MaxSteps,
	})
}

// UnmarshalJSON parses the persisted wire form and validates it.
func (d *Definition) UnmarshalJSON(data []byte) error {
	var w wireDefinition
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = Definition{
		Kind:       w.Type,
		Sequence:   w.Sequence,
		Nodes:      w.DAG,
		EntryPoint: w.EntryPoint,
		FinalNode:  w.FinalNode,
		MaxSteps:   w.MaxSteps,
	}
	return d.Validate()
}
