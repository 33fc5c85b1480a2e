package agent

import (
	"context"
	"fmt"

	"github.com/RyanWillie/Thinkle/internal/llm"
)

// invokeStructured asks the model for a schema-conformant payload with a
// two-tier decode: a JSON-mode call decoded strictly, then one retry without
// enforcement decoded leniently (fences stripped, braces matched). When both
// fail the raw text and diagnostics surface as a MalformedOutputError.
func invokeStructured(ctx context.Context, client llm.Client, model, system string, history []llm.Message, out any) error {
	first, err := client.Invoke(ctx, llm.Request{
		Model:     model,
		System:    system,
		Messages:  history,
		ForceJSON: true,
	})
	if err != nil {
		return fmt.Errorf("structured model call: %w", err)
	}

	strictErr := llm.DecodeStrict(first.Content, out)
	if strictErr == nil {
		return nil
	}
	firstLenientErr := llm.DecodeLenient(first.Content, out)
	if firstLenientErr == nil {
		return nil
	}

	second, err := client.Invoke(ctx, llm.Request{
		Model:    model,
		System:   system,
		Messages: history,
	})
	if err != nil {
		return fmt.Errorf("recovery model call: %w", err)
	}

	lenientErr := llm.DecodeLenient(second.Content, out)
	if lenientErr == nil {
		return nil
	}

	return &llm.MalformedOutputError{
		Raw:      second.Content,
		Attempts: []string{strictErr.Error(), firstLenientErr.Error(), lenientErr.Error()},
	}
}
