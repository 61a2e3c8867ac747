package results

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tubequiz/internal/pipeline"
	"github.com/abhisek/tubequiz/internal/quiz"
	"github.com/abhisek/tubequiz/internal/quizsession"
	"github.com/abhisek/tubequiz/internal/report"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/store"
)

func gradedReport() quizsession.GradeReport {
	questions := []quiz.Question{
		{Text: "Capital of France?", Options: []string{"(A) Paris", "(B) Rome", "(C) Oslo", "(D) Bern"}, CorrectLetter: 'A', Explanation: "Paris."},
		{Text: "2 + 2?", Options: []string{"(A) 3", "(B) 4", "(C) 5", "(D) 6"}, CorrectLetter: 'B', Explanation: "Four."},
	}
	return quizsession.Grade(questions, []string{"(A) Paris", "(C) 5"})
}

func newScreen(t *testing.T) (*ResultsScreen, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	pipe := &pipeline.Pipeline{Attempts: st.AttemptRepo(), ExportDir: t.TempDir()}
	s := New(pipe, pipeline.Summary{VideoID: "abc123", Text: "# Video notes\nmore"}, gradedReport())
	return s, st
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestInit_RecordsAttempt(t *testing.T) {
	s, st := newScreen(t)

	msg := s.Init()()
	s.Update(msg)
	require.Len(t, s.Notices(), 1)
	assert.Contains(t, s.Notices()[0], "Saved to history as ")
	require.NotEmpty(t, s.attemptID)

	a, err := st.AttemptRepo().GetAttempt(context.Background(), s.attemptID)
	require.NoError(t, err)
	assert.Equal(t, "abc123", a.VideoID)
	assert.Equal(t, "Video notes", a.Title)
	assert.Equal(t, 1, a.Correct)
	assert.Equal(t, 2, a.Total)
}

func TestExport(t *testing.T) {
	s, _ := newScreen(t)

	s.Update(key('e'))
	s.Update(key('t'))

	notices := s.Notices()
	require.Len(t, notices, 2)
	pdfPath := filepath.Join(s.pipe.ExportDir, report.DefaultResultsFile)
	txtPath := filepath.Join(s.pipe.ExportDir, TextFile)
	assert.Equal(t, "Exported to "+pdfPath, notices[0])
	assert.Equal(t, "Exported to "+txtPath, notices[1])

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	txt, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Contains(t, string(txt), "You got 1 out of 2 questions correct.")
}

func TestLeaveGoesHome(t *testing.T) {
	s, _ := newScreen(t)
	assert.True(t, s.HandlesEscape())

	for _, k := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		_, cmd := s.Update(k)
		require.NotNil(t, cmd)
		assert.Equal(t, router.PopToRootMsg{}, cmd())
	}
}

func TestView(t *testing.T) {
	s, _ := newScreen(t)
	assert.Equal(t, "Score 50.00%", s.Status())

	v := s.View(100, 40)
	assert.Contains(t, v, "You got 1 out of 2 questions correct.")
	assert.Contains(t, v, "Capital of France?")
}
