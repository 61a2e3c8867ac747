package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"valid quiz", quizJSON, ""},
		{"not JSON", "1. What is Go?\n(A) A language", "invalid JSON"},
		{"missing questions", `{}`, "quiz-questions"},
		{"empty list", `{"questions":[]}`, "quiz-questions"},
		{"letter out of range", `{"questions":[{"question":"Q?","options":["(A) x"],"correct_answer":"E"}]}`, "quiz-questions"},
		{"extra top-level field", `{"questions":[{"question":"Q?","options":[],"correct_answer":"A"}],"notes":"x"}`, "quiz-questions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(quizSchema, json.RawMessage(tt.raw))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			require.ErrorAs(t, err, &inv)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.raw, string(inv.Content))
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsText(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage("plain summary text")))
}

func TestCompileSchema_Cached(t *testing.T) {
	first, err := compileSchema(quizSchema)
	require.NoError(t, err)
	second, err := compileSchema(quizSchema)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCompileSchema_BadDefinition(t *testing.T) {
	bad := &Schema{Name: "broken", Definition: map[string]any{"type": 42}}
	err := validateResponse(bad, json.RawMessage(`{}`))
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Contains(t, err.Error(), "broken")
}
