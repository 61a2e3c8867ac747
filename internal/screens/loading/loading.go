// Package loading runs blocking pipeline work behind a spinner and hands
// over to the screen the work produces.
package loading

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/apperr"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/screen"
	"github.com/abhisek/tubequiz/internal/ui/layout"
	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// Task is one stage of work. It returns the next stage, the finished
// screen, or an error.
type Task func(ctx context.Context) Result

// Result is the outcome of a Task.
type Result struct {
	Next      Task
	NextLabel string
	Screen    screen.Screen
	Err       error
}

// Then continues with next, shown under label.
func Then(label string, next Task) Result {
	return Result{Next: next, NextLabel: label}
}

// Done finishes with s.
func Done(s screen.Screen) Result {
	return Result{Screen: s}
}

// Fail stops with err.
func Fail(err error) Result {
	return Result{Err: err}
}

type stageDoneMsg struct {
	id     int64
	result Result
}

var lastID atomic.Int64

// LoadingScreen shows a spinner while its tasks run.
type LoadingScreen struct {
	id      int64
	title   string
	label   string
	task    Task
	spinner spinner.Model
	ctx     context.Context
	cancel  context.CancelFunc
	err     error
}

var _ screen.Screen = (*LoadingScreen)(nil)
var _ screen.KeyHintProvider = (*LoadingScreen)(nil)
var _ screen.EscapeHandler = (*LoadingScreen)(nil)
var _ screen.Closer = (*LoadingScreen)(nil)

// New creates a loading screen that runs task, showing label meanwhile.
func New(title, label string, task Task) *LoadingScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &LoadingScreen{
		id:    lastID.Add(1),
		title: title,
		label: label,
		task:  task,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *LoadingScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.run(s.task))
}

func (s *LoadingScreen) Title() string {
	return s.title
}

func (s *LoadingScreen) HandlesEscape() bool { return true }

func (s *LoadingScreen) KeyHints() []layout.KeyHint {
	if s.err != nil {
		return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
}

// Close abandons any task still running.
func (s *LoadingScreen) Close() {
	s.cancel()
}

// Err returns the error that stopped the work, if any.
func (s *LoadingScreen) Err() error {
	return s.err
}

func (s *LoadingScreen) run(task Task) tea.Cmd {
	id, ctx := s.id, s.ctx
	return func() tea.Msg {
		return stageDoneMsg{id: id, result: task(ctx)}
	}
}

func (s *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stageDoneMsg:
		if msg.id != s.id {
			return s, nil
		}
		res := msg.result
		switch {
		case res.Err != nil:
			s.err = res.Err
			return s, nil
		case res.Next != nil:
			s.label = res.NextLabel
			return s, s.run(res.Next)
		case res.Screen != nil:
			s.cancel()
			return s, router.ReplaceCmd(res.Screen)
		}
		return s, nil

	case spinner.TickMsg:
		if s.err != nil {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			s.cancel()
			return s, router.PopCmd
		case "enter":
			if s.err != nil {
				return s, router.PopCmd
			}
		}
	}
	return s, nil
}

func (s *LoadingScreen) View(width, height int) string {
	if s.err != nil {
		return "\n\n\n" + layout.Wrap(width, 70, theme.ErrorText.Align(lipgloss.Center), Message(s.err)) +
			"\n\n" + layout.Centered(width, theme.Hint, "Press Enter to go back.")
	}
	return "\n\n\n" + layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text),
		s.spinner.View()+" "+s.label)
}

// Message turns a pipeline error into the text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apperr.ErrInsufficientContent):
		return "Not enough summary available to generate the quiz. Try a different video."
	case errors.Is(err, apperr.ErrGenerationShortfall):
		return "Not enough questions could be generated. Try again or select a different video with subtitles."
	case errors.Is(err, apperr.ErrInvalidArgument):
		return "Please enter a YouTube watch URL containing v=<video id>."
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	}
	return fmt.Sprintf("%s: %s", apperr.Kind(err), strings.TrimSpace(err.Error()))
}
