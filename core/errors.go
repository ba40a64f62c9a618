package core

import "fmt"

// Reference kinds used by ResolutionError.
const (
	RefAgent    = "agent"
	RefTool     = "tool"
	RefProvider = "provider"
	RefWorkflow = "workflow"
)

// ConfigurationError reports a malformed agent or workflow definition: a
// missing sequence, DAG, entry point or final node, an empty structure, or an
// unknown variant type. It is fatal and raised before or at the start of
// execution, never mid-run.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// NewConfigurationError creates a ConfigurationError with a formatted reason.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// ResolutionError reports a reference to an agent, tool, provider or workflow
// that is not registered. It is fatal and aborts the run at the point of
// reference.
type ResolutionError struct {
	Kind string // one of the Ref* constants
	Name string // the unresolved identifier
}

// Error implements the error interface for ResolutionError.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// NewResolutionError creates a ResolutionError for the given reference kind and name.
func NewResolutionError(kind, name string) *ResolutionError {
	return &ResolutionError{Kind: kind, Name: name}
}
