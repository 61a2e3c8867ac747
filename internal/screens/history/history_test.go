package history

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tubequiz/internal/pipeline"
	"github.com/abhisek/tubequiz/internal/quiz"
	"github.com/abhisek/tubequiz/internal/quizsession"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/store"
)

func newRepo(t *testing.T) store.AttemptRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.AttemptRepo()
}

func record(t *testing.T, repo store.AttemptRepo, videoID, summary string, answers ...string) {
	t.Helper()
	questions := []quiz.Question{
		{Text: "First question?", Options: []string{"(A) a", "(B) b", "(C) c", "(D) d"}, CorrectLetter: 'A', Explanation: "A."},
		{Text: "Second question?", Options: []string{"(A) a", "(B) b", "(C) c", "(D) d"}, CorrectLetter: 'C', Explanation: "C."},
	}
	p := &pipeline.Pipeline{Attempts: repo}
	_, err := p.RecordAttempt(context.Background(), videoID, summary, quizsession.Grade(questions, answers))
	require.NoError(t, err)
}

// load runs Init and feeds the result back, like the program loop would.
func load(s *HistoryScreen) {
	s.Update(s.Init()())
}

func TestEmpty(t *testing.T) {
	s := New(newRepo(t))
	assert.Contains(t, s.View(100, 30), "Loading history")
	load(s)
	assert.Contains(t, s.View(100, 30), "No quizzes yet")
}

func TestListAndExpand(t *testing.T) {
	repo := newRepo(t)
	record(t, repo, "old111", "Older video", "(A) a", "(C) c")
	record(t, repo, "new222", "Newer video", "(B) b", "")

	s := New(repo)
	load(s)
	require.Len(t, s.list, 2)

	v := s.View(120, 30)
	assert.Contains(t, v, "Newer video")
	assert.Contains(t, v, "0/2")
	assert.Contains(t, v, "2/2")

	// Newest first; move to the older attempt and expand it.
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(120, 30), "Loading...")

	s.Update(cmd())
	v = s.View(120, 30)
	assert.Contains(t, v, "First question?")
	assert.Contains(t, v, "Second question?")

	// Collapsing and re-expanding reuses the loaded report.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestEscapePops(t *testing.T) {
	s := New(newRepo(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}
