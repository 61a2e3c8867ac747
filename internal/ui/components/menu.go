package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled items are shown greyed out and
// skipped by the cursor, e.g. History when no database is open.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu puts the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = max(m.next(-1, 1), 0)
	return m
}

// next returns the first enabled index after from in direction dir, or -1.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) Init() tea.Cmd {
	return nil
}

// Update moves the cursor with up/down (or k/j) and runs the selected
// item's Action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if i := m.next(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.next(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		if item, ok := m.selected(); ok && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m Menu) selected() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// View renders the menu. With active false the cursor is hidden, e.g.
// while the URL input has focus.
func (m Menu) View(active bool) string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			b.WriteString(theme.Disabled.Render("    " + item.Label))
		case active && i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// AtTop reports whether no enabled item sits above the cursor.
func (m Menu) AtTop() bool {
	return m.next(m.Selected, -1) < 0
}
