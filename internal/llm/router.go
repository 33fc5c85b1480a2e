package llm

import (
	"context"
	"fmt"
	"strings"
)

// Credentials carry the API keys read once at process start. No stage reads
// the environment directly.
type Credentials struct {
	OpenAIKey    string
	AnthropicKey string
}

// Router dispatches requests to the backend matching the model identifier:
// "claude-*" models go to Anthropic, everything else to OpenAI.
type Router struct {
	openai    Client
	anthropic Client
}

var _ Client = (*Router)(nil)

// NewRouter constructs the backends for which credentials are present.
func NewRouter(creds Credentials) *Router {
	r := &Router{}
	if creds.OpenAIKey != "" {
		r.openai = NewOpenAIClient(creds.OpenAIKey)
	}
	if creds.AnthropicKey != "" {
		r.anthropic = NewAnthropicClient(creds.AnthropicKey)
	}
	return r
}

// Invoke forwards the request to the backend owning the requested model.
func (r *Router) Invoke(ctx context.Context, req Request) (Message, error) {
	client, err := r.resolve(req.Model)
	if err != nil {
		return Message{}, err
	}
	return client.Invoke(ctx, req)
}

func (r *Router) resolve(model string) (Client, error) {
	if strings.HasPrefix(strings.ToLower(model), "claude") {
		if r.anthropic == nil {
			return nil, fmt.Errorf("model %s requires an Anthropic API key", model)
		}
		return r.anthropic, nil
	}
	if r.openai == nil {
		return nil, fmt.Errorf("model %s requires an OpenAI API key", model)
	}
	return r.openai, nil
}
