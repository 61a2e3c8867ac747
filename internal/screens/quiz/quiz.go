package quiz

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tubequiz/internal/pipeline"
	qz "github.com/abhisek/tubequiz/internal/quiz"
	"github.com/abhisek/tubequiz/internal/quizsession"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/screen"
	"github.com/abhisek/tubequiz/internal/screens/results"
	"github.com/abhisek/tubequiz/internal/ui/components"
	"github.com/abhisek/tubequiz/internal/ui/layout"
)

// QuizScreen runs one quiz session.
type QuizScreen struct {
	pipe    *pipeline.Pipeline
	summary pipeline.Summary
	session quizsession.Session
	choice  components.MultiChoice

	showingPicker      bool
	pickerCursor       int
	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New starts a session over questions. The generator guarantees a full set;
// a short set shows an error instead of the quiz.
func New(pipe *pipeline.Pipeline, summary pipeline.Summary, questions []qz.Question) *QuizScreen {
	s := &QuizScreen{pipe: pipe, summary: summary}
	sess, err := quizsession.Start(quizsession.New(), questions)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.session = sess
	s.syncChoice()
	return s
}

// Session returns the current session state.
func (s *QuizScreen) Session() quizsession.Session {
	return s.session
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) HandlesEscape() bool { return true }

func (s *QuizScreen) Status() string {
	if s.session.Phase != quizsession.PhaseInProgress {
		return ""
	}
	return s.progressLabel()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.showingPicker:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Go to question"},
			{Key: "Esc", Description: "Close"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓/1-4", Description: "Answer"},
		{Key: "←/p", Description: "Previous"},
		{Key: "→/n", Description: "Next"},
		{Key: "g", Description: "Go to"},
	}
	if s.session.IsLast() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if s.errMsg != "" && s.session.Phase != quizsession.PhaseInProgress {
		return s, router.PopCmd
	}

	key := kmsg.String()
	switch {
	case s.showingQuitConfirm:
		return s.handleQuitConfirm(key)
	case s.showingPicker:
		return s.handlePicker(key)
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "left", "p":
		if s.session.Current > 0 {
			s.navigate(quizsession.Prev)
		}
		return s, nil
	case "right", "n":
		if !s.session.IsLast() {
			s.navigate(quizsession.Next)
		}
		return s, nil
	case "g":
		s.showingPicker = true
		s.pickerCursor = s.session.Current
		return s, nil
	case "enter":
		if s.session.IsLast() {
			return s.submit()
		}
		s.navigate(quizsession.Next)
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

func (s *QuizScreen) handleQuitConfirm(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "y", "Y":
		return s, router.HomeCmd
	case "n", "N", "esc":
		s.showingQuitConfirm = false
	}
	return s, nil
}

func (s *QuizScreen) handlePicker(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if s.pickerCursor > 0 {
			s.pickerCursor--
		}
	case "down", "j":
		if s.pickerCursor < len(s.session.Questions)-1 {
			s.pickerCursor++
		}
	case "enter":
		idx := s.pickerCursor
		s.navigate(func(sess quizsession.Session, pending string) (quizsession.Session, error) {
			return quizsession.Jump(sess, idx, pending)
		})
		s.showingPicker = false
	case "esc", "g":
		s.showingPicker = false
	}
	return s, nil
}

// navigate applies a transition with the pending selection and reloads the
// option list for the new current question.
func (s *QuizScreen) navigate(move func(quizsession.Session, string) (quizsession.Session, error)) {
	next, err := move(s.session, s.choice.Pending())
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
	s.session = next
	s.syncChoice()
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	graded, err := quizsession.Submit(s.session, s.choice.Pending())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.session = graded
	return s, router.ReplaceCmd(results.New(s.pipe, s.summary, *graded.Report))
}

func (s *QuizScreen) syncChoice() {
	q, ok := s.session.Question()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Text, q.Options, s.session.Answer())
}
