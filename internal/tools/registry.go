// Package tools provides the search tools a scout may call during its
// investigation loop, plus the registry that exposes them to the model.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RyanWillie/Thinkle/internal/llm"
)

// Tool captures a single callable capability (web, community, academic
// search). Arguments arrive as the raw JSON object produced by the model.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Call(ctx context.Context, args json.RawMessage) (string, error)
}

// ExecutionError marks a tool call that failed (HTTP error, bad arguments).
// It is surfaced to the agent as a tool result, never past the loop.
type ExecutionError struct {
	Tool string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Registry keeps a mapping from tool names to their implementations.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: map[string]Tool{}}
}

// Register adds or replaces a tool implementation.
func (r *Registry) Register(tool Tool) {
	if r.tools == nil {
		r.tools = map[string]Tool{}
	}
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Resolve returns a tool by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Tool, error) {
	if tool, ok := r.tools[name]; ok {
		return tool, nil
	}
	return nil, fmt.Errorf("tool %s is not registered", name)
}

// Len reports how many tools are registered.
func (r *Registry) Len() int { return len(r.tools) }

// Specs renders every registered tool for the model, in registration order.
func (r *Registry) Specs() []llm.ToolSpec {
	specs := make([]llm.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		specs = append(specs, llm.ToolSpec{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return specs
}

// Execute resolves and calls a tool, wrapping any failure in an
// ExecutionError so the caller can record it and continue.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (string, error) {
	tool, err := r.Resolve(name)
	if err != nil {
		return "", &ExecutionError{Tool: name, Err: err}
	}
	result, err := tool.Call(ctx, args)
	if err != nil {
		return "", &ExecutionError{Tool: name, Err: err}
	}
	return result, nil
}
