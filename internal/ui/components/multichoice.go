package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// MultiChoice is a radio group over a question's options. Selected is -1
// until the user picks something.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int
}

// NewMultiChoice creates a radio group with saved preselected. An empty
// saved leaves nothing selected.
func NewMultiChoice(question string, options []string, saved string) MultiChoice {
	m := MultiChoice{Question: question, Options: options, Selected: -1}
	for i, opt := range options {
		if saved != "" && opt == saved {
			m.Selected = i
			break
		}
	}
	return m
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update selects with ↑/↓ (or k/j), digits 1-4 or letters a-d.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		} else if m.Selected < 0 {
			m.Selected = 0
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	default:
		if i, ok := optionIndex(key); ok && i < len(m.Options) {
			m.Selected = i
		}
	}
	return m, nil
}

// optionIndex maps "1".."4" and "a".."d" (either case) to an index.
func optionIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '4':
		return int(c - '1'), true
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'D':
		return int(c - 'A'), true
	}
	return 0, false
}

// Pending returns the selected option, or "" when none is selected.
func (m MultiChoice) Pending() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("▸ ◉ " + opt))
		} else {
			b.WriteString(theme.Unselected.Render("  ○ " + opt))
		}
		b.WriteString("\n")
	}
	return b.String()
}
