package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

// AnthropicClient implements Client on top of the Anthropic messages API.
type AnthropicClient struct {
	client *anthropic.Client
}

var _ Client = (*AnthropicClient)(nil)

// NewAnthropicClient builds a client authenticated with the given API key.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{client: &client}
}

// Invoke runs one messages call. Anthropic has no JSON response mode, so
// ForceJSON is expressed as a trailing instruction and the decode helpers
// handle any surrounding prose.
func (c *AnthropicClient) Invoke(ctx context.Context, req Request) (Message, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: anthropicMaxTokens,
		Messages:  toAnthropicMessages(req),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	if len(req.Tools) > 0 {
		params.Tools = toAnthropicTools(req.Tools)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return Message{}, fmt.Errorf("anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return Message{}, fmt.Errorf("no response from anthropic")
	}

	msg := Message{Role: RoleAssistant}
	var text strings.Builder
	for _, block := range resp.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(b.Text)
		case anthropic.ToolUseBlock:
			msg.ToolCalls = append(msg.ToolCalls, ToolCall{
				ID:        b.ID,
				Name:      b.Name,
				Arguments: json.RawMessage(b.Input),
			})
		}
	}
	msg.Content = text.String()
	return msg, nil
}

func toAnthropicTools(specs []ToolSpec) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, 0, len(specs))
	for _, t := range specs {
		schema := anthropic.ToolInputSchemaParam{
			Properties: t.Parameters["properties"],
		}
		if required, ok := t.Parameters["required"]; ok {
			schema.ExtraFields = map[string]any{"required": required}
		}
		tools = append(tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name,
				Description: anthropic.String(t.Description),
				InputSchema: schema,
			},
		})
	}
	return tools
}

func toAnthropicMessages(req Request) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(req.Messages)+1)
	for _, m := range req.Messages {
		switch m.Role {
		case RoleAssistant:
			blocks := make([]anthropic.ContentBlockParamUnion, 0, len(m.ToolCalls)+1)
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, call := range m.ToolCalls {
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    call.ID,
						Name:  call.Name,
						Input: json.RawMessage(call.Arguments),
					},
				})
			}
			messages = append(messages, anthropic.NewAssistantMessage(blocks...))
		case RoleTool:
			result := anthropic.ContentBlockParamUnion{
				OfToolResult: &anthropic.ToolResultBlockParam{
					ToolUseID: m.ToolCallID,
					Content: []anthropic.ToolResultBlockParamContentUnion{
						{OfText: &anthropic.TextBlockParam{Text: m.Content}},
					},
				},
			}
			messages = append(messages, anthropic.NewUserMessage(result))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	if req.ForceJSON {
		messages = append(messages, anthropic.NewUserMessage(
			anthropic.NewTextBlock("Respond with a single valid JSON object and nothing else.")))
	}

	// The messages API requires a non-empty conversation opening with a
	// user turn.
	if len(messages) == 0 || messages[0].Role != anthropic.MessageParamRoleUser {
		opener := anthropic.NewUserMessage(anthropic.NewTextBlock("Proceed as instructed."))
		messages = append([]anthropic.MessageParam{opener}, messages...)
	}
	return messages
}
