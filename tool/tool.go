// Package tool implements the function / tool calling subsystem that lets
// agents invoke structured capabilities with schema validated arguments and
// consistent error handling. The Tool contract itself lives in the core
// package; this package provides the concrete implementations, the registry
// and the dispatcher that converts every call outcome into message text.
package tool

import "fmt"

// Error codes attached to ToolError for categorization.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
)

// ToolError represents errors that occur during tool resolution or execution.
// Tool errors are recovered locally by the dispatcher: they are rendered into
// tool-role messages and never abort an agent run.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
