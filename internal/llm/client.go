// Package llm abstracts the language-model collaborators. Stages talk to a
// Client in terms of Request/Message values; the OpenAI and Anthropic
// implementations translate to their respective SDKs.
package llm

import (
	"context"
	"encoding/json"
)

// Role identifies who authored a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a model-requested invocation of a named tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Message is one entry of a stage conversation. Assistant messages may carry
// tool-call requests; tool messages carry the result for a specific call.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	ToolName   string
}

// ToolSpec describes a callable tool to the model. Parameters is a JSON
// Schema object.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is a single model invocation. When ForceJSON is set the client
// asks the backend to emit a JSON object; Tools must be empty in that case.
type Request struct {
	Model     string
	System    string
	Messages  []Message
	Tools     []ToolSpec
	ForceJSON bool
}

// Client is implemented by model backends. Invoke may fail on transport or
// auth problems; it may also return content that violates a requested JSON
// shape, which callers must tolerate via the decode helpers.
type Client interface {
	Invoke(ctx context.Context, req Request) (Message, error)
}
