package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var options = []string{"(A) one", "(B) two", "(C) three", "(D) four"}

func TestMultiChoice_StartsOnSavedAnswer(t *testing.T) {
	m := NewMultiChoice("Q?", options, "(C) three")
	assert.Equal(t, 2, m.Selected)
	assert.Equal(t, "(C) three", m.Pending())

	m = NewMultiChoice("Q?", options, "")
	assert.Equal(t, -1, m.Selected)
	assert.Equal(t, "", m.Pending())
}

func TestMultiChoice_Keys(t *testing.T) {
	m := NewMultiChoice("Q?", options, "")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 0, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, m.Selected)

	m, _ = m.Update(key('4'))
	assert.Equal(t, "(D) four", m.Pending())
	m, _ = m.Update(key('b'))
	assert.Equal(t, "(B) two", m.Pending())
	m, _ = m.Update(key('9'))
	assert.Equal(t, "(B) two", m.Pending())
}

func TestMultiChoice_ViewMarksSelection(t *testing.T) {
	m := NewMultiChoice("Q?", options, "(B) two")
	view := m.View()
	assert.Contains(t, view, "▸ ◉ (B) two")
	assert.Contains(t, view, "○ (A) one")
	assert.Contains(t, view, "Q?")
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one"},
		{Label: "two"},
	})
	assert.Equal(t, 1, m.Selected)
	assert.True(t, m.AtTop())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, m.Selected)
	assert.False(t, m.AtTop())
}

func TestButton_Pressed(t *testing.T) {
	buttons := []Button{
		NewButton("Export", "e"),
		NewButton("Home", "enter", "esc"),
	}
	assert.Equal(t, 0, Pressed(key('e'), buttons))
	assert.Equal(t, 1, Pressed(tea.KeyPressMsg{Code: tea.KeyEscape}, buttons))
	assert.Equal(t, -1, Pressed(key('x'), buttons))
	assert.Equal(t, -1, Pressed(tea.WindowSizeMsg{}, buttons))

	buttons[0].Disabled = true
	assert.Equal(t, -1, Pressed(key('e'), buttons))
	assert.Contains(t, ButtonBar(60, buttons...), "[enter] Home")
}

func TestProgressBar_Fraction(t *testing.T) {
	assert.Equal(t, 0.0, NewProgressBar("", 0, 0, 20).Fraction())
	assert.Equal(t, 0.5, NewProgressBar("", 5, 10, 20).Fraction())
	assert.Equal(t, 1.0, NewProgressBar("", 12, 10, 20).Fraction())
	assert.Contains(t, NewProgressBar("Answered", 3, 10, 40).View(), "3/10")
}

func TestTextInput_ErrorClearsOnTyping(t *testing.T) {
	in := NewTextInput("URL", "https://…", 40)
	in.SetError("bad url")
	assert.Contains(t, in.View(), "bad url")

	in, _ = in.Update(key('h'))
	assert.Empty(t, in.Error())
	assert.Equal(t, "h", in.Value())
}
