package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tubequiz/internal/apperr"
	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/quiz"
	"github.com/abhisek/tubequiz/internal/quizsession"
)

var summary = strings.Repeat("The video explains how linear equations are solved step by step. ", 10)

func quizText(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `Question %d: What is step %d?
Options:
(A) isolate x
(B) guess
(C) skip
(D) stop
Correct Answer: (A) isolate x
Explanation: Isolating x solves it.

`, i, i)
	}
	return b.String()
}

func TestCheckReadiness(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		wantErr bool
	}{
		{"empty", "", true},
		{"blank", "   \n\t", true},
		{"short", strings.Repeat("a", 499), true},
		{"padded short", "  " + strings.Repeat("a", 499) + "   ", true},
		{"exactly enough", strings.Repeat("a", 500), false},
		{"multibyte counts runes", strings.Repeat("é", 500), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckReadiness(tt.summary)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrInsufficientContent)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerate_TenQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(quizText(10)))
	res, err := New(mock, DefaultConfig(), nil).Generate(context.Background(), summary)
	require.NoError(t, err)

	require.Len(t, res.Questions, 10)
	assert.Equal(t, 1, res.Attempts)
	for _, q := range res.Questions {
		assert.Len(t, q.Options, quiz.OptionCount)
		assert.Equal(t, quiz.Letter('A'), q.CorrectLetter)
	}

	require.Equal(t, 1, mock.CallCount())
	assert.Contains(t, mock.Calls[0].Messages[0].Content, summary)
}

func TestGenerate_TruncatesExtraQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(quizText(12)))
	res, err := New(mock, DefaultConfig(), nil).Generate(context.Background(), summary)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 10)
}

func TestGenerate_ShortfallRetriesOnce(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(quizText(7)), llm.MockText(quizText(10)))
	res, err := New(mock, DefaultConfig(), nil).Generate(context.Background(), summary)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, 2, mock.CallCount())
}

func TestGenerate_ShortfallTwice(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(quizText(7)), llm.MockText(quizText(9)), llm.MockText(quizText(10)))
	_, err := New(mock, DefaultConfig(), nil).Generate(context.Background(), summary)
	assert.ErrorIs(t, err, apperr.ErrGenerationShortfall)
	assert.Equal(t, 2, mock.CallCount())
}

func TestGenerate_InsufficientSummarySkipsModel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(quizText(10)))
	_, err := New(mock, DefaultConfig(), nil).Generate(context.Background(), "too short")
	assert.ErrorIs(t, err, apperr.ErrInsufficientContent)
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerate_ModelFailureIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"transport", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"blocked", llm.MockResponse{Err: &llm.ErrContentBlocked{Reason: "SAFETY"}}},
		{"empty", llm.MockText("  ")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp, llm.MockText(quizText(10)))
			_, err := New(mock, DefaultConfig(), nil).Generate(context.Background(), summary)
			assert.ErrorIs(t, err, apperr.ErrUnavailable)
			assert.Equal(t, 1, mock.CallCount())
		})
	}
}

func TestGenerate_VerifiesMath(t *testing.T) {
	raw := strings.Replace(quizText(10), "What is step 1?", "Solve: 2x = 10", 1)
	mock := llm.NewMockProvider(llm.MockText(raw))
	res, err := New(mock, DefaultConfig(), nil).Generate(context.Background(), summary)
	require.NoError(t, err)

	q := res.Questions[0]
	assert.Equal(t, "(D) x = 5", q.Options[3])
	assert.Equal(t, quiz.Letter('D'), q.CorrectLetter)
	require.Len(t, res.Repairs(), 1)
	assert.True(t, strings.HasPrefix(res.Repairs()[0], "Q1: math:"))
}

func TestEndToEnd_AllCorrect(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(quizText(10)))
	res, err := New(mock, DefaultConfig(), nil).Generate(context.Background(), summary)
	require.NoError(t, err)

	s, err := quizsession.Start(quizsession.New(), res.Questions)
	require.NoError(t, err)
	for i := range s.Questions {
		correct, ok := s.Questions[i].CorrectOption()
		require.True(t, ok)
		s, err = quizsession.Select(s, correct)
		require.NoError(t, err)
		if !s.IsLast() {
			s, err = quizsession.Next(s, "")
			require.NoError(t, err)
		}
	}
	s, err = quizsession.Submit(s, "")
	require.NoError(t, err)

	require.NotNil(t, s.Report)
	assert.Equal(t, 10, s.Report.CorrectCount)
	assert.Equal(t, "100.00%", quizsession.FormatScore(s.Report.ScorePercent))
}
