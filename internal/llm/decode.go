package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator is implemented by structured-output payloads that carry their
// own field constraints.
type Validator interface {
	Validate() error
}

// MalformedOutputError reports that a stage's structured output failed every
// decode attempt. It carries the raw model text and the per-attempt
// diagnostics so the failure is debuggable at the top level.
type MalformedOutputError struct {
	Raw      string
	Attempts []string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("structured output could not be decoded (%s); raw: %.200s",
		strings.Join(e.Attempts, "; "), e.Raw)
}

// DecodeStrict parses raw as a JSON document directly into out and runs its
// validation if it has any.
func DecodeStrict(raw string, out any) error {
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("strict decode: %w", err)
	}
	return validate(out)
}

// DecodeLenient recovers a JSON object from prose-wrapped model text: it
// strips Markdown code fences, isolates the span from the first '{' to the
// last '}', parses it, and validates the result.
func DecodeLenient(raw string, out any) error {
	candidate := ExtractJSON(raw)
	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return fmt.Errorf("lenient decode: %w", err)
	}
	return validate(out)
}

// ExtractJSON strips code fences and surrounding prose from model output,
// returning the best candidate JSON object text.
func ExtractJSON(raw string) string {
	content := strings.TrimSpace(raw)

	if start := strings.Index(content, "```"); start != -1 {
		rest := content[start+3:]
		rest = strings.TrimPrefix(rest, "json")
		rest = strings.TrimPrefix(rest, "JSON")
		if end := strings.Index(rest, "```"); end != -1 {
			content = strings.TrimSpace(rest[:end])
		} else {
			content = strings.TrimSpace(rest)
		}
	}

	first := strings.Index(content, "{")
	last := strings.LastIndex(content, "}")
	if first != -1 && last > first {
		content = content[first : last+1]
	}
	return content
}

func validate(out any) error {
	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("schema validation: %w", err)
		}
	}
	return nil
}
