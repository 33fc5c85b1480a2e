package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RyanWillie/Thinkle/internal/llm"
	"github.com/RyanWillie/Thinkle/internal/tools"
)

// maxToolIterations caps how many tool rounds a single loop run may execute
// before the final extraction pass is forced.
const maxToolIterations = 3

// toolLoop is the bounded agent loop: the model alternates between
// producing tool-call requests and seeing their results until it stops
// asking or the iteration budget runs out, after which one tool-free call
// extracts the structured payload. The loop therefore terminates within
// maxToolIterations+1 model calls plus exactly one extraction call.
type toolLoop struct {
	client   llm.Client
	registry *tools.Registry
	model    string
	logger   *slog.Logger
}

// run executes the loop under the given system directive and decodes the
// final structured payload into out. Tool failures are recorded in the
// transcript as tool results and never abort the loop. The opening text
// seeds the transcript as a user turn: model APIs require a non-empty
// conversation that starts with the user.
func (l *toolLoop) run(ctx context.Context, system, opening string, out any) error {
	transcript := []llm.Message{{Role: llm.RoleUser, Content: opening}}
	specs := l.registry.Specs()

	for iterations := 0; ; {
		reply, err := l.client.Invoke(ctx, llm.Request{
			Model:    l.model,
			System:   system,
			Messages: transcript,
			Tools:    specs,
		})
		if err != nil {
			return fmt.Errorf("agent model call: %w", err)
		}
		transcript = append(transcript, reply)

		if len(reply.ToolCalls) == 0 {
			break
		}

		for _, call := range reply.ToolCalls {
			result, err := l.registry.Execute(ctx, call.Name, call.Arguments)
			if err != nil {
				// The agent sees the failure and may retry with a
				// different query, subject to the iteration cap.
				l.debug("tool call failed", "tool", call.Name, "error", err)
				result = fmt.Sprintf("tool error: %v", err)
			} else {
				l.debug("tool call succeeded", "tool", call.Name, "args", string(call.Arguments))
			}
			transcript = append(transcript, llm.Message{
				Role:       llm.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}

		iterations++
		if iterations >= maxToolIterations {
			break
		}
	}

	return invokeStructured(ctx, l.client, l.model, system, transcript, out)
}

func (l *toolLoop) debug(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}
