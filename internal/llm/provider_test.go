package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quizSchema mirrors the shape of the structured quiz response.
var quizSchema = &Schema{
	Name: "quiz-questions",
	Definition: map[string]any{
		"type":                 "object",
		"required":             []any{"questions"},
		"additionalProperties": false,
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"question", "options", "correct_answer"},
					"properties": map[string]any{
						"question":       map[string]any{"type": "string"},
						"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correct_answer": map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
					},
				},
			},
		},
	},
}

const quizJSON = `{"questions":[{"question":"What does the video cover?","options":["(A) Go","(B) Rust"],"correct_answer":"A"}]}`

func TestMockProvider_ServesQueueInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage("Part one of the summary."), Usage: Usage{InputTokens: 900, OutputTokens: 120}},
		MockText("Part two of the summary."),
	)

	first, err := mock.Generate(context.Background(), UserRequest("sys", "chunk 1", 512))
	require.NoError(t, err)
	assert.Equal(t, "Part one of the summary.", first.Text())
	assert.Equal(t, 1020, first.Usage.TotalTokens)
	assert.Equal(t, StopEnd, first.StopReason)
	assert.Equal(t, "mock", first.Model)

	second, err := mock.Generate(context.Background(), UserRequest("sys", "chunk 2", 512))
	require.NoError(t, err)
	assert.Equal(t, "Part two of the summary.", second.Text())

	require.Len(t, mock.Calls, 2)
	assert.Equal(t, "chunk 2", mock.Calls[1].Messages[0].Content)

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Equal(t, 3, mock.CallCount())
}

func TestMockProvider_AppliesOutputChecks(t *testing.T) {
	mock := NewMockProvider(
		MockText("  "),
		MockText(`{"questions":[]}`),
		MockResponse{Content: json.RawMessage(`{"questions":[`), Stop: StopMaxTokens},
		MockText(quizJSON),
	)
	ctx := context.Background()

	_, err := mock.Generate(ctx, UserRequest("sys", "summarize", 64))
	assert.ErrorIs(t, err, errEmptyText)

	req := UserRequest("sys", "quiz", 64)
	req.Schema = quizSchema

	_, err = mock.Generate(ctx, req)
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)

	_, err = mock.Generate(ctx, req)
	var trunc *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &trunc)
	assert.Equal(t, `{"questions":[`, string(trunc.Content))

	resp, err := mock.Generate(ctx, req)
	require.NoError(t, err)
	assert.JSONEq(t, quizJSON, resp.Text())
}

func TestFinish_TruncatedTextIsKept(t *testing.T) {
	resp, err := finish(UserRequest("sys", "chunk", 16), json.RawMessage("The speaker explains"), StopMaxTokens, Usage{}, "m")
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
	assert.Equal(t, "The speaker explains", resp.Text())
}

func TestFinish_KeepsReportedTotal(t *testing.T) {
	resp, err := finish(Request{}, json.RawMessage("ok"), StopEnd, Usage{InputTokens: 1, OutputTokens: 2, TotalTokens: 7}, "m")
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, UnknownPurpose, PurposeFrom(ctx))
	assert.Equal(t, UnknownPurpose, PurposeFrom(WithPurpose(ctx, "")))
	assert.Equal(t, "quiz-gen", PurposeFrom(WithPurpose(ctx, "quiz-gen")))
}

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  float64
	}{
		{"gemini-2.5-flash", 0.3},
		{"google/gemini-2.5-flash", 0.3},
		{"models/gemini-2.5-pro", 1.25},
		{"gpt-4.1-mini-2025-04-14", 0.4},
		{"claude-haiku-4-5-20251001", 1},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c := LookupCost(tt.model)
			require.NotNil(t, c)
			assert.Equal(t, tt.want, c.InputPerMTok)
		})
	}
	assert.Nil(t, LookupCost("mock"))

	c := ModelCost{InputPerMTok: 0.3, OutputPerMTok: 2.5}
	assert.InDelta(t, 0.0055, c.Cost(10_000, 1_000), 1e-9)
}
