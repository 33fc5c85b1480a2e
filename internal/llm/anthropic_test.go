package llm

import (
	"encoding/json"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The messages API rejects an empty conversation, so a request with no
// history still produces an opening user turn.
func TestAnthropicMessagesNeverEmpty(t *testing.T) {
	t.Parallel()

	messages := toAnthropicMessages(Request{Model: "claude-sonnet-4-0"})
	require.Len(t, messages, 1)
	assert.Equal(t, anthropic.MessageParamRoleUser, messages[0].Role)
}

// A transcript that begins with an assistant turn gets a synthesized user
// opener; the original turns follow unchanged.
func TestAnthropicMessagesOpenWithUserTurn(t *testing.T) {
	t.Parallel()

	messages := toAnthropicMessages(Request{Messages: []Message{
		{Role: RoleAssistant, Content: "thinking out loud"},
		{Role: RoleUser, Content: "go on"},
	}})
	require.Len(t, messages, 3)
	assert.Equal(t, anthropic.MessageParamRoleUser, messages[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, messages[1].Role)
	assert.Equal(t, anthropic.MessageParamRoleUser, messages[2].Role)
}

// ForceJSON already appends a user instruction, so no extra opener is
// synthesized on top of it.
func TestAnthropicForceJSONAddsSingleUserTurn(t *testing.T) {
	t.Parallel()

	messages := toAnthropicMessages(Request{ForceJSON: true})
	require.Len(t, messages, 1)
	assert.Equal(t, anthropic.MessageParamRoleUser, messages[0].Role)
}

func TestAnthropicUserHistoryIsNotPrefixed(t *testing.T) {
	t.Parallel()

	messages := toAnthropicMessages(Request{Messages: []Message{
		{Role: RoleUser, Content: "the stories"},
	}})
	require.Len(t, messages, 1)
	assert.Equal(t, anthropic.MessageParamRoleUser, messages[0].Role)
}

// The tool schema keeps its required keys so the model cannot legally omit
// mandatory arguments.
func TestAnthropicToolSchemaCarriesRequiredKeys(t *testing.T) {
	t.Parallel()

	tools := toAnthropicTools([]ToolSpec{{
		Name:        "web_search",
		Description: "search the web",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string"},
			},
			"required": []string{"query"},
		},
	}})
	require.Len(t, tools, 1)
	require.NotNil(t, tools[0].OfTool)

	schema := tools[0].OfTool.InputSchema
	assert.NotNil(t, schema.Properties)
	assert.Equal(t, []string{"query"}, schema.ExtraFields["required"])

	raw, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"required":["query"]`)
}
