// Package core contains the shared contracts and data model of AgentFlow:
// conversation messages and roles, tool call requests, tool and agent
// interfaces, configuration types and the common error taxonomy.
//
// Rationale: keeping domain contracts centralized lets the agent, tool,
// model, memory and workflow packages depend on a single leaf package
// without introducing dependency cycles. Implementations live in their
// respective packages and are selected at wiring time.
package core
