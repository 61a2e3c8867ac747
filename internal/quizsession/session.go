// Package quizsession holds the quiz-taking state machine. Every transition
// is a pure function from one Session value to the next.
package quizsession

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/abhisek/tubequiz/internal/apperr"
	"github.com/abhisek/tubequiz/internal/prompt"
	"github.com/abhisek/tubequiz/internal/quiz"
)

// QuestionCount is the number of questions in a session.
const QuestionCount = prompt.QuizQuestionCount

// Phase is where a session is in its lifecycle.
type Phase int

const (
	PhaseAwaitingGeneration Phase = iota // No questions yet
	PhaseInProgress                      // Answering
	PhaseGraded                          // Terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingGeneration:
		return "awaiting-generation"
	case PhaseInProgress:
		return "in-progress"
	case PhaseGraded:
		return "graded"
	default:
		return "unknown"
	}
}

var (
	ErrNotStarted      = fmt.Errorf("%w: quiz has not started", apperr.ErrInvalidArgument)
	ErrNotLastQuestion = fmt.Errorf("%w: submit is only allowed on the last question", apperr.ErrInvalidArgument)
	ErrGraded          = fmt.Errorf("%w: quiz is already graded", apperr.ErrInvalidArgument)
)

// Session is one quiz attempt. Treat it as a value: transitions return a new
// Session and never modify their input.
type Session struct {
	Phase     Phase
	Questions []quiz.Question

	// Current is the index of the displayed question.
	Current int

	// Answers holds the chosen option string per question; "" is unanswered.
	Answers []string

	// Report is set once the session is graded.
	Report *GradeReport
}

// New returns a session waiting for questions.
func New() Session {
	return Session{Phase: PhaseAwaitingGeneration}
}

// Start begins the quiz with the first QuestionCount questions. With fewer
// questions no session is created and s is returned unchanged.
func Start(s Session, questions []quiz.Question) (Session, error) {
	if s.Phase == PhaseGraded {
		return s, ErrGraded
	}
	if len(questions) < QuestionCount {
		return s, fmt.Errorf("%w: got %d of %d questions",
			apperr.ErrGenerationShortfall, len(questions), QuestionCount)
	}
	return Session{
		Phase:     PhaseInProgress,
		Questions: slices.Clone(questions[:QuestionCount]),
		Current:   0,
		Answers:   make([]string, QuestionCount),
	}, nil
}

// Select records option as the answer to the current question.
func Select(s Session, option string) (Session, error) {
	if err := checkInProgress(s); err != nil {
		return s, err
	}
	if !slices.Contains(s.Questions[s.Current].Options, option) {
		return s, fmt.Errorf("%w: %q is not an option of question %d",
			apperr.ErrInvalidArgument, option, s.Current+1)
	}
	next := s.clone()
	next.Answers[next.Current] = option
	return next, nil
}

// Navigate saves pending (when non-empty) into the current slot and moves to
// question idx.
func Navigate(s Session, idx int, pending string) (Session, error) {
	if err := checkInProgress(s); err != nil {
		return s, err
	}
	if idx < 0 || idx >= len(s.Questions) {
		return s, fmt.Errorf("%w: question index %d out of range", apperr.ErrInvalidArgument, idx)
	}
	next := s
	if pending != "" {
		var err error
		if next, err = Select(s, pending); err != nil {
			return s, err
		}
	} else {
		next = s.clone()
	}
	next.Current = idx
	return next, nil
}

// Next moves forward one question.
func Next(s Session, pending string) (Session, error) {
	return Navigate(s, s.Current+1, pending)
}

// Prev moves back one question.
func Prev(s Session, pending string) (Session, error) {
	return Navigate(s, s.Current-1, pending)
}

// Jump moves to question idx (0-based).
func Jump(s Session, idx int, pending string) (Session, error) {
	return Navigate(s, idx, pending)
}

// Submit saves pending into the last slot, grades the quiz and moves to
// PhaseGraded. Submitting a graded session returns it as is.
func Submit(s Session, pending string) (Session, error) {
	switch s.Phase {
	case PhaseGraded:
		return s, nil
	case PhaseAwaitingGeneration:
		return s, ErrNotStarted
	}
	if s.Current != len(s.Questions)-1 {
		return s, ErrNotLastQuestion
	}

	next := s.clone()
	if pending != "" {
		var err error
		if next, err = Select(s, pending); err != nil {
			return s, err
		}
	}

	report := Grade(next.Questions, next.Answers)
	next.Phase = PhaseGraded
	next.Report = &report
	return next, nil
}

// Question returns the current question.
func (s Session) Question() (quiz.Question, bool) {
	if s.Current < 0 || s.Current >= len(s.Questions) {
		return quiz.Question{}, false
	}
	return s.Questions[s.Current], true
}

// Answer returns the saved answer for the current question.
func (s Session) Answer() string {
	if s.Current < 0 || s.Current >= len(s.Answers) {
		return ""
	}
	return s.Answers[s.Current]
}

// IsLast reports whether the current question is the final one.
func (s Session) IsLast() bool {
	return len(s.Questions) > 0 && s.Current == len(s.Questions)-1
}

// AnsweredCount returns how many questions have a saved answer.
func (s Session) AnsweredCount() int {
	return lo.CountBy(s.Answers, func(a string) bool { return a != "" })
}

func (s Session) clone() Session {
	s.Questions = slices.Clone(s.Questions)
	s.Answers = slices.Clone(s.Answers)
	return s
}

func checkInProgress(s Session) error {
	switch s.Phase {
	case PhaseGraded:
		return ErrGraded
	case PhaseAwaitingGeneration:
		return ErrNotStarted
	}
	return nil
}
