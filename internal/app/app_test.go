package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tubequiz/internal/pipeline"
	"github.com/abhisek/tubequiz/internal/quiz"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/screen"
	quizscreen "github.com/abhisek/tubequiz/internal/screens/quiz"
)

type plainScreen struct{}

func (plainScreen) Init() tea.Cmd                             { return nil }
func (s plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (plainScreen) View(int, int) string                      { return "plain" }
func (plainScreen) Title() string                             { return "Plain" }

func questions() []quiz.Question {
	qs := make([]quiz.Question, 10)
	for i := range qs {
		qs[i] = quiz.Question{Text: "Q?", Options: []string{"(A) a", "(B) b", "(C) c", "(D) d"}, CorrectLetter: 'A'}
	}
	return qs
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestEscapePopsPlainScreens(t *testing.T) {
	m := newAppModel(Options{Pipeline: &pipeline.Pipeline{}})
	m.router.Push(plainScreen{})

	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestEscapeLeftToHandlingScreens(t *testing.T) {
	m := newAppModel(Options{Pipeline: &pipeline.Pipeline{}})
	qs := quizscreen.New(nil, pipeline.Summary{}, questions())
	m.router.Push(qs)

	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.router.Depth())
	assert.Contains(t, qs.View(80, 24), "Leave this quiz?")
}

func TestEscapeAtRootIgnored(t *testing.T) {
	m := newAppModel(Options{Pipeline: &pipeline.Pipeline{}})
	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestView_HeaderStatus(t *testing.T) {
	m := newAppModel(Options{Pipeline: &pipeline.Pipeline{}})
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m.router.Push(quizscreen.New(nil, pipeline.Summary{}, questions()))

	frame := m.render()
	assert.Contains(t, frame, "TubeQuiz")
	assert.Contains(t, frame, "Question 1 of 10")
	assert.Contains(t, frame, "Go to", "footer hints come from the active screen")
}
