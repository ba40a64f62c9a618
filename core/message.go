package core

import (
	"github.com/google/uuid"

	"github.com/mourad-ghafiri/agentflow/internal/util"
)

// Role identifies the author of a conversation message. The set is closed:
// every message carries exactly one of the four constants below.
type Role string

const (
	// RoleSystem marks the instruction message seeded from an agent's system prompt.
	RoleSystem Role = "system"
	// RoleUser marks input provided by the caller (or an upstream agent).
	RoleUser Role = "user"
	// RoleAssistant marks completions produced by a model provider.
	RoleAssistant Role = "assistant"
	// RoleTool marks the materialized outcome of a tool call request.
	RoleTool Role = "tool"
)

// ToolCallFunction describes the concrete function target of a tool call.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // Serialized argument payload (JSON)
}

// ToolCall represents a tool invocation request surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider branching.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type,omitempty"` // "function"
	Function ToolCallFunction `json:"function"`
}

// Message is one entry of a conversation history. Messages are treated as
// immutable once appended: history order is append order and carries full
// causal meaning. ToolCallID is set only on tool-role messages and references
// a call issued by the immediately preceding assistant message; ToolCalls is
// set only on assistant-role messages that request tool use.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// NewSystemMessage creates a system-role message from an agent's prompt.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user-role text message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant-role text message without tool calls.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// NewToolMessage creates a tool-role message carrying the textual outcome of
// the tool call identified by callID.
func NewToolMessage(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}

// HasToolCalls reports whether this assistant message requests tool use.
func (m Message) HasToolCalls() bool { return len(m.ToolCalls) > 0 }

// NormalizeInput converts an arbitrary input value into a role-tagged message.
// Messages (and pointers to them) pass through unchanged; everything else is
// wrapped as a user message with stringified content. This is the single
// normalization rule shared by the decision loop and both workflow schedulers.
func NormalizeInput(input any) Message {
	switch v := input.(type) {
	case Message:
		return v
	case *Message:
		if v != nil {
			return *v
		}
		return NewUserMessage("")
	default:
		return NewUserMessage(util.Stringify(input))
	}
}

// NewID generates a new unique identifier used for agent, workflow and tool
// call correlation throughout the framework.
func NewID() string { return uuid.NewString() }
