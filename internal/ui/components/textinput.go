package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// TextInput is a labelled bubbles text input with a validation message
// underneath. The message clears on the next keystroke.
type TextInput struct {
	Label string
	input textinput.Model
	err   string
}

// NewTextInput returns a focused input. width <= 0 lets it grow.
func NewTextInput(label, placeholder string, width int) TextInput {
	in := textinput.New()
	in.Prompt = "› "
	in.Placeholder = placeholder
	if width > 0 {
		in.SetWidth(width)
	}
	in.Focus()
	return TextInput{Label: label, input: in}
}

func (t TextInput) Init() tea.Cmd { return t.input.Focus() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.err = ""
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	lines := make([]string, 0, 3)
	if t.Label != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Label))
	}
	lines = append(lines, t.input.View())
	if t.err != "" {
		lines = append(lines, theme.ErrorText.Render("✗ "+t.err))
	}
	return strings.Join(lines, "\n")
}

// Value is the input with surrounding whitespace removed.
func (t TextInput) Value() string { return strings.TrimSpace(t.input.Value()) }

func (t *TextInput) SetError(msg string) { t.err = msg }
func (t TextInput) Error() string        { return t.err }

func (t *TextInput) Focus() tea.Cmd { return t.input.Focus() }
func (t *TextInput) Blur()          { t.input.Blur() }
func (t TextInput) Focused() bool   { return t.input.Focused() }
