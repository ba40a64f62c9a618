// Package anthropic provides a completion provider backed by the Anthropic
// Messages API (including tool use). It adapts AgentFlow's normalized Request
// into the SDK's message format and back.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/mourad-ghafiri/agentflow/core"
	"github.com/mourad-ghafiri/agentflow/model"
)

// Options configures the Anthropic provider adapter (default model id, max
// tokens, API key). Per-request model, temperature and max tokens from
// model.Request take precedence.
type Options struct {
	Model     anthropic.Model
	MaxTokens int64
	APIKey    string
}

// Provider wraps the Anthropic Messages API behind the generic model.Provider interface.
type Provider struct {
	client *anthropic.Client
	opts   Options
}

// NewProvider creates a new Anthropic provider using the official client.
func NewProvider(optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:     anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Provider{client: &client, opts: opts}
}

// NewProviderFromClient creates a new Anthropic provider from an existing client.
func NewProviderFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:     anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// Complete implements model.Provider using a non-streaming messages call.
func (p *Provider) Complete(ctx context.Context, req model.Request) (core.Message, error) {
	modelID := p.opts.Model
	if req.Model != "" {
		modelID = anthropic.Model(req.Model)
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = p.opts.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       modelID,
		Messages:    buildMessages(req.Messages),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(req.Temperature),
	}

	if systemBlocks := extractSystemBlocks(req.Messages); len(systemBlocks) > 0 {
		params.System = systemBlocks
	}
	if len(req.Tools) > 0 {
		params.Tools = buildTools(req.Tools)
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return core.Message{}, fmt.Errorf("anthropic api error: %w", err)
	}

	out := core.Message{Role: core.RoleAssistant}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			out.Content += block.AsText().Text
		case "tool_use":
			toolBlock := block.AsToolUse()
			args := ""
			if toolBlock.Input != nil {
				if argsBytes, err := json.Marshal(toolBlock.Input); err == nil {
					args = string(argsBytes)
				}
			}
			out.ToolCalls = append(out.ToolCalls, core.ToolCall{
				ID:   toolBlock.ID,
				Type: "function",
				Function: core.ToolCallFunction{
					Name:      toolBlock.Name,
					Arguments: args,
				},
			})
		}
	}
	return out, nil
}

// buildMessages converts the conversation history to Anthropic message
// format. System messages are handled separately via the system parameter.
// The Messages API expects tool results inside a user turn directly after
// the assistant turn that issued the tool_use blocks, so tool-role messages
// are folded into such a turn rather than sent on their own.
func buildMessages(msgs []core.Message) []anthropic.MessageParam {
	toolResults := make(map[string]string)
	for _, msg := range msgs {
		if msg.Role == core.RoleTool && msg.ToolCallID != "" {
			if _, exists := toolResults[msg.ToolCallID]; !exists {
				toolResults[msg.ToolCallID] = msg.Content
			}
		}
	}

	var messages []anthropic.MessageParam
	for _, msg := range msgs {
		switch msg.Role {
		case core.RoleSystem, core.RoleTool:
			continue
		case core.RoleAssistant:
			content := buildAssistantContent(msg)
			if len(content) > 0 {
				messages = append(messages, anthropic.NewAssistantMessage(content...))
			}
			if results := buildToolResultContent(msg, toolResults); len(results) > 0 {
				messages = append(messages, anthropic.NewUserMessage(results...))
			}
		default:
			if msg.Content != "" {
				messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		}
	}
	return messages
}

// buildAssistantContent renders an assistant turn as text plus tool_use blocks.
func buildAssistantContent(msg core.Message) []anthropic.ContentBlockParamUnion {
	var content []anthropic.ContentBlockParamUnion
	if msg.Content != "" {
		content = append(content, anthropic.NewTextBlock(msg.Content))
	}

	for _, tc := range msg.ToolCalls {
		var input any
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &input); err != nil {
				input = tc.Function.Arguments // fallback to string
			}
		}
		content = append(content, anthropic.NewToolUseBlock(tc.ID, input, tc.Function.Name))
	}
	return content
}

// buildToolResultContent collects the tool_result blocks answering an
// assistant turn's tool calls, in call order.
func buildToolResultContent(msg core.Message, toolResults map[string]string) []anthropic.ContentBlockParamUnion {
	var content []anthropic.ContentBlockParamUnion
	for _, tc := range msg.ToolCalls {
		if result, ok := toolResults[tc.ID]; ok {
			content = append(content, anthropic.NewToolResultBlock(tc.ID, result, false))
			delete(toolResults, tc.ID)
		}
	}
	return content
}

// extractSystemBlocks collects system message text for the system parameter.
func extractSystemBlocks(msgs []core.Message) []anthropic.TextBlockParam {
	var blocks []anthropic.TextBlockParam
	for _, msg := range msgs {
		if msg.Role == core.RoleSystem && msg.Content != "" {
			blocks = append(blocks, anthropic.TextBlockParam{Text: msg.Content})
		}
	}
	return blocks
}

// buildTools converts tool specs to the Anthropic tool format.
func buildTools(specs []core.ToolSpec) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, len(specs))
	for i, spec := range specs {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type:       constant.Object("object"),
			Properties: spec.Parameters,
			Required:   spec.Required,
		}
		tools[i] = anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        spec.Name,
				Description: anthropic.String(spec.Description),
				InputSchema: inputSchema,
			},
		}
	}
	return tools
}

// Info returns metadata describing this Anthropic provider implementation.
func (p *Provider) Info() model.Info {
	return model.Info{
		Name:          string(p.opts.Model),
		Vendor:        "anthropic",
		SupportsTools: true,
	}
}
