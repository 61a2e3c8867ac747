// Package screen defines the contract between the router and the TUI
// screens: home, loading, summary, quiz, results and history.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tubequiz/internal/ui/layout"
)

// Screen is one page of the app.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body; the app draws the header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler screens receive Esc themselves instead of being popped,
// e.g. the quiz asks before discarding answers.
type EscapeHandler interface {
	HandlesEscape() bool
}

// StatusProvider screens show a status on the right of the header, such as
// "Question 3 of 10" or the final score.
type StatusProvider interface {
	Status() string
}

// Closer screens release resources, such as in-flight LLM calls, when
// they leave the stack.
type Closer interface {
	Close()
}
