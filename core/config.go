package core

// Default budgets applied by WithDefaults when the corresponding field is zero.
const (
	DefaultMaxIterations = 10
	DefaultTemperature   = 0.7
	DefaultMaxSteps      = 50
)

// AgentConfig is the immutable definition an agent instance is bound to.
// Provider and Model reference entries of the provider registry by name;
// Tools lists the names of the capabilities this agent may call.
type AgentConfig struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	SystemPrompt  string   `json:"system_prompt"`
	Model         string   `json:"model"`
	Provider      string   `json:"provider"`
	Tools         []string `json:"tools,omitempty"`
	MaxIterations int      `json:"max_iterations"`
	Temperature   float64  `json:"temperature"`
}

// WithDefaults returns a copy with a generated ID and baseline budgets filled
// in for zero-valued fields. Agent constructors apply this before storing the
// configuration.
func (c AgentConfig) WithDefaults() AgentConfig {
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	return c
}

// WorkflowConfig carries the identity and step budget of a workflow run.
// The ordering structure itself (sequence or DAG) lives in the workflow
// package's Definition type.
type WorkflowConfig struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Agents      []string `json:"agents"`
	MaxSteps    int      `json:"max_steps"`
}

// WithDefaults returns a copy with a generated ID and the default step budget
// filled in for zero-valued fields.
func (c WorkflowConfig) WithDefaults() WorkflowConfig {
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = DefaultMaxSteps
	}
	return c
}
