// Package agentflow provides a high-level façade over the agent, tool,
// model and workflow packages for building LLM agent applications. Most
// applications interact with this package by:
//  1. Creating an App via New()
//  2. Registering completion providers and tools
//  3. Creating agents and workflows from typed configurations
//  4. Running either by id (RunAgent, RunWorkflow)
//
// The façade keeps setup ergonomics concise while the underlying packages
// remain usable directly. Defaults are safe for local development and
// testing; production deployments typically supply a structured logger.
package agentflow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/mourad-ghafiri/agentflow/agent"
	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/logging"
	"github.com/mourad-ghafiri/agentflow/model"
	"github.com/mourad-ghafiri/agentflow/tool"
	"github.com/mourad-ghafiri/agentflow/workflow"
)

// Options configures the App instance.
type Options struct {
	// Description of the application, carried into saved configurations.
	Description string

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// App is the high-level façade aggregating the provider and tool
// registries with the agents and workflows built on them.
type App struct {
	name   string
	opts   Options
	logger logging.Logger

	providers *model.Registry
	tools     *tool.Registry

	mu        sync.RWMutex
	agents    map[string]core.Agent
	types     map[string]agent.Type
	workflows map[string]workflow.Workflow
	defs      map[string]workflow.Definition
}

// New creates a new App instance with optional overrides.
func New(name string, optFns ...func(o *Options)) *App {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &App{
		name:      name,
		opts:      opts,
		logger:    opts.Logger,
		providers: model.NewRegistry(),
		tools:     tool.NewRegistry(),
		agents:    make(map[string]core.Agent),
		types:     make(map[string]agent.Type),
		workflows: make(map[string]workflow.Workflow),
		defs:      make(map[string]workflow.Definition),
	}
}

// Name returns the application name.
func (a *App) Name() string { return a.name }

// Providers exposes the provider registry for direct use.
func (a *App) Providers() *model.Registry { return a.providers }

// Tools exposes the tool registry for direct use.
func (a *App) Tools() *tool.Registry { return a.tools }

// RegisterProvider registers a completion provider under a name that agent
// configurations can reference.
func (a *App) RegisterProvider(name string, provider model.Provider) {
	a.providers.Register(name, provider)
}

// RegisterTool registers a tool under its declared name.
func (a *App) RegisterTool(t core.Tool) {
	a.tools.Register(t)
}

// CreateAgent builds an agent of the given variant and registers it under
// its (possibly generated) configuration id.
func (a *App) CreateAgent(agentType agent.Type, cfg core.AgentConfig) (core.Agent, error) {
	ag, err := agent.New(agentType, cfg, a.providers, a.tools, func(o *agent.Options) {
		o.Logger = a.logger
	})
	if err != nil {
		return nil, err
	}
	id := ag.Config().ID
	a.mu.Lock()
	a.agents[id] = ag
	a.types[id] = agentType
	a.mu.Unlock()
	a.logger.Info("app.agent.created", "app", a.name, "agent", ag.Config().Name, "id", id, "type", string(agentType))
	return ag, nil
}

// CreateWorkflow builds a workflow from a definition, wires in every
// registered agent the configuration names and registers the workflow under
// its (possibly generated) configuration id. Agent ids that are not
// registered yet are skipped; they can be added later with AddAgent on the
// returned workflow.
func (a *App) CreateWorkflow(cfg core.WorkflowConfig, def workflow.Definition) (workflow.Workflow, error) {
	wf, err := workflow.New(cfg, def, func(o *workflow.Options) {
		o.Logger = a.logger
	})
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	for _, agentID := range wf.Config().Agents {
		if ag, ok := a.agents[agentID]; ok {
			wf.AddAgent(ag)
		}
	}
	id := wf.Config().ID
	a.workflows[id] = wf
	a.defs[id] = def
	a.mu.Unlock()

	a.logger.Info("app.workflow.created", "app", a.name, "workflow", wf.Config().Name, "id", id, "type", string(def.Kind))
	return wf, nil
}

// Agent returns a registered agent by id.
func (a *App) Agent(id string) (core.Agent, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ag, ok := a.agents[id]
	if !ok {
		return nil, core.NewResolutionError(core.RefAgent, id)
	}
	return ag, nil
}

// Workflow returns a registered workflow by id.
func (a *App) Workflow(id string) (workflow.Workflow, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	wf, ok := a.workflows[id]
	if !ok {
		return nil, core.NewResolutionError(core.RefWorkflow, id)
	}
	return wf, nil
}

// RunAgent runs a registered agent with the given input.
func (a *App) RunAgent(ctx context.Context, agentID string, input any) (any, error) {
	ag, err := a.Agent(agentID)
	if err != nil {
		return nil, err
	}
	return ag.Run(ctx, input)
}

// RunWorkflow runs a registered workflow with the given input.
func (a *App) RunWorkflow(ctx context.Context, workflowID string, input any) (any, error) {
	wf, err := a.Workflow(workflowID)
	if err != nil {
		return nil, err
	}
	return wf.Run(ctx, input)
}

type agentFileConfig struct {
	Type agent.Type `json:"type"`
	core.AgentConfig
}

type workflowFileConfig struct {
	core.WorkflowConfig
	Workflow workflow.Definition `json:"workflow"`
}

type fileConfig struct {
	Name        string                        `json:"name"`
	Description string                        `json:"description,omitempty"`
	Agents      map[string]agentFileConfig    `json:"agents"`
	Workflows   map[string]workflowFileConfig `json:"workflows"`
}

// SaveConfig writes the application's agents and workflows as JSON.
// Providers and tools are runtime objects and are not persisted; a loading
// application re-registers them by name before running anything.
func (a *App) SaveConfig(path string) error {
	a.mu.RLock()
	cfg := fileConfig{
		Name:        a.name,
		Description: a.opts.Description,
		Agents:      make(map[string]agentFileConfig, len(a.agents)),
		Workflows:   make(map[string]workflowFileConfig, len(a.workflows)),
	}
	for id, ag := range a.agents {
		cfg.Agents[id] = agentFileConfig{Type: a.types[id], AgentConfig: ag.Config()}
	}
	for id, wf := range a.workflows {
		cfg.Workflows[id] = workflowFileConfig{WorkflowConfig: wf.Config(), Workflow: a.defs[id]}
	}
	a.mu.RUnlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal app config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write app config: %w", err)
	}
	return nil
}

// LoadConfig reads a saved configuration and reconstructs its agents and
// workflows. Register the providers and tools the configurations reference
// on the returned App before running anything.
func LoadConfig(path string, optFns ...func(o *Options)) (*App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read app config: %w", err)
	}
	var cfg fileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse app config: %w", err)
	}

	app := New(cfg.Name, append([]func(o *Options){func(o *Options) {
		o.Description = cfg.Description
	}}, optFns...)...)

	for id, ac := range cfg.Agents {
		agentType := ac.Type
		if agentType == "" {
			agentType = agent.TypeReAct
		}
		if _, err := app.CreateAgent(agentType, ac.AgentConfig); err != nil {
			return nil, fmt.Errorf("restore agent %q: %w", id, err)
		}
	}
	for id, wc := range cfg.Workflows {
		if _, err := app.CreateWorkflow(wc.WorkflowConfig, wc.Workflow); err != nil {
			return nil, fmt.Errorf("restore workflow %q: %w", id, err)
		}
	}
	return app, nil
}
