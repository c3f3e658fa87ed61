package anthropic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolInput_Found(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "calling the tool"},
			{Type: "tool_use", Name: "extract_company_info", Input: json.RawMessage(`{"domain":"sample.com"}`)},
		},
	}

	input, ok := resp.ToolInput("extract_company_info")
	require.True(t, ok)
	assert.JSONEq(t, `{"domain":"sample.com"}`, string(input))
}

func TestToolInput_Missing(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "no tool call here"},
		},
	}

	_, ok := resp.ToolInput("extract_company_info")
	assert.False(t, ok)
}

func TestToolInput_WrongName(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "tool_use", Name: "other_tool", Input: json.RawMessage(`{}`)},
		},
	}

	_, ok := resp.ToolInput("extract_company_info")
	assert.False(t, ok)
}

func TestToSDKMessages_Roles(t *testing.T) {
	msgs := toSDKMessages([]Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	})

	require.Len(t, msgs, 2)
	assert.Equal(t, "user", string(msgs[0].Role))
	assert.Equal(t, "assistant", string(msgs[1].Role))
}

func TestToSDKTools_Shape(t *testing.T) {
	tools := toSDKTools([]Tool{
		{
			Name:        "extract_company_info",
			Description: "Extracts company details.",
			InputSchema: InputSchema{
				Properties: map[string]any{
					"domain": map[string]any{"type": "string"},
				},
				Required: []string{"domain"},
			},
		},
	})

	require.Len(t, tools, 1)
	require.NotNil(t, tools[0].OfTool)
	assert.Equal(t, "extract_company_info", tools[0].OfTool.Name)
	assert.Equal(t, []string{"domain"}, tools[0].OfTool.InputSchema.Required)
}

func TestEstimateCost_KnownModel(t *testing.T) {
	u := TokenUsage{InputTokens: 1_000_000, OutputTokens: 1_000_000}
	cost := u.EstimateCost("claude-haiku-4-5-20251001")
	assert.InDelta(t, 4.80, cost, 0.001)
}

func TestEstimateCost_UnknownModel(t *testing.T) {
	u := TokenUsage{InputTokens: 1_000_000, OutputTokens: 1_000_000}
	assert.Zero(t, u.EstimateCost("unknown-model"))
}
