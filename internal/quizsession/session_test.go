package quizsession

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tubequiz/internal/apperr"
	"github.com/abhisek/tubequiz/internal/quiz"
)

func makeQuestions(n int) []quiz.Question {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			Text:          fmt.Sprintf("Question text %d", i+1),
			Options:       []string{"(A) one", "(B) two", "(C) three", "(D) four"},
			CorrectLetter: 'B',
			Explanation:   "Because two.",
		}
	}
	return qs
}

func started(t *testing.T) Session {
	t.Helper()
	s, err := Start(New(), makeQuestions(12))
	require.NoError(t, err)
	return s
}

func TestStart(t *testing.T) {
	s := started(t)
	assert.Equal(t, PhaseInProgress, s.Phase)
	assert.Len(t, s.Questions, QuestionCount)
	assert.Equal(t, "Question text 1", s.Questions[0].Text)
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, make([]string, QuestionCount), s.Answers)
	assert.Nil(t, s.Report)
}

func TestStart_Shortfall(t *testing.T) {
	s := New()
	got, err := Start(s, makeQuestions(7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrGenerationShortfall))
	assert.Equal(t, PhaseAwaitingGeneration, got.Phase)
	assert.Empty(t, got.Questions)
}

func TestSelect(t *testing.T) {
	s := started(t)

	next, err := Select(s, "(C) three")
	require.NoError(t, err)
	assert.Equal(t, "(C) three", next.Answers[0])
	assert.Equal(t, "", s.Answers[0], "input session must not change")

	_, err = Select(s, "(E) nope")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestNavigate_SavesPending(t *testing.T) {
	s := started(t)

	s, err := Next(s, "(A) one")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, "(A) one", s.Answers[0])

	s, err = Prev(s, "(D) four")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, "(D) four", s.Answers[1])

	// Empty pending keeps the saved answer.
	s, err = Jump(s, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 5, s.Current)
	assert.Equal(t, "(A) one", s.Answers[0])
}

func TestNavigate_Bounds(t *testing.T) {
	s := started(t)

	_, err := Prev(s, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	s, err = Jump(s, QuestionCount-1, "")
	require.NoError(t, err)
	_, err = Next(s, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = Jump(s, -1, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestSubmit_OnlyOnLastQuestion(t *testing.T) {
	s := started(t)
	_, err := Submit(s, "(B) two")
	assert.ErrorIs(t, err, ErrNotLastQuestion)
}

func TestSubmit_NotStarted(t *testing.T) {
	_, err := Submit(New(), "")
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestSubmit_AllCorrect(t *testing.T) {
	s := started(t)
	var err error
	for i := 0; i < QuestionCount-1; i++ {
		s, err = Next(s, "(B) two")
		require.NoError(t, err)
	}
	s, err = Submit(s, "(B) two")
	require.NoError(t, err)

	require.Equal(t, PhaseGraded, s.Phase)
	require.NotNil(t, s.Report)
	assert.Equal(t, 10, s.Report.CorrectCount)
	assert.Equal(t, 10, s.Report.TotalCount)
	assert.Equal(t, 100.0, s.Report.ScorePercent)
	assert.Equal(t, "100.00%", FormatScore(s.Report.ScorePercent))
}

func TestGraded_IsTerminal(t *testing.T) {
	s := started(t)
	s, err := Jump(s, QuestionCount-1, "")
	require.NoError(t, err)
	graded, err := Submit(s, "(A) one")
	require.NoError(t, err)

	again, err := Submit(graded, "(B) two")
	require.NoError(t, err)
	assert.Same(t, graded.Report, again.Report)
	assert.Equal(t, graded, again)

	got, err := Select(graded, "(B) two")
	assert.ErrorIs(t, err, ErrGraded)
	assert.Equal(t, graded, got)

	got, err = Navigate(graded, 0, "")
	assert.ErrorIs(t, err, ErrGraded)
	assert.Equal(t, graded, got)
}

func TestAnsweredCount(t *testing.T) {
	s := started(t)
	s, _ = Next(s, "(A) one")
	s, _ = Next(s, "(B) two")
	assert.Equal(t, 2, s.AnsweredCount())
	assert.Equal(t, "", s.Answer())
}
