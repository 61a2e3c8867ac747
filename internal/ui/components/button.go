package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// Button is a screen action shown in the button bar. The first key is the
// one printed on the button; the rest are aliases.
type Button struct {
	Label    string
	Keys     []string
	Disabled bool
}

func NewButton(label string, keys ...string) Button {
	return Button{Label: label, Keys: keys}
}

// Matches reports whether msg presses an enabled b.
func (b Button) Matches(msg tea.KeyPressMsg) bool {
	return !b.Disabled && lo.Contains(b.Keys, msg.String())
}

func (b Button) View() string {
	label := b.Label
	if len(b.Keys) > 0 {
		label = "[" + b.Keys[0] + "] " + label
	}
	if b.Disabled {
		return theme.ButtonInactive.Render(label)
	}
	return theme.ButtonActive.Render(label)
}

// Pressed returns the index of the button msg presses, or -1.
func Pressed(msg tea.Msg, buttons []Button) int {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return -1
	}
	_, i, _ := lo.FindIndexOf(buttons, func(b Button) bool { return b.Matches(kmsg) })
	return i
}

// ButtonBar lays buttons out in one centered row.
func ButtonBar(width int, buttons ...Button) string {
	views := lo.Map(buttons, func(b Button, _ int) string { return b.View() })
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(views, "  "))
}
