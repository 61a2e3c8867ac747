package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/ui/components"
	"github.com/abhisek/tubequiz/internal/ui/layout"
	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// maxQuestionWidth caps the question column.
const maxQuestionWidth = 80

func (s *QuizScreen) progressLabel() string {
	return fmt.Sprintf("Question %d of %d", s.session.Current+1, len(s.session.Questions))
}

func (s *QuizScreen) View(width, height int) string {
	if len(s.session.Questions) == 0 {
		return renderError(width, s.errMsg)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingPicker {
		return s.renderPicker(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	col := min(max(width-8, 20), maxQuestionWidth)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true), s.progressLabel()))
	b.WriteString("\n")
	bar := components.NewProgressBar("Answered", s.session.AnsweredCount(), len(s.session.Questions), col)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(col).Render(s.choice.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	b.WriteString("\n")

	hint := "Select with ↑↓, 1-4 or a-d. ← Previous · → Next"
	if s.session.IsLast() {
		hint = "Select with ↑↓, 1-4 or a-d. Press Enter to submit your answers."
	}
	b.WriteString(layout.Centered(width, theme.Hint, hint))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(width, theme.ErrorText, s.errMsg))
	}
	return b.String()
}

// renderPicker lists every question with its answered state.
func (s *QuizScreen) renderPicker(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Title, "Navigate Questions"))
	b.WriteString("\n\n")

	lines := make([]string, 0, len(s.session.Questions))
	for i := range s.session.Questions {
		mark := "  "
		if s.session.Answers[i] != "" {
			mark = "✓ "
		}
		prefix := "  "
		style := theme.Unselected
		if i == s.pickerCursor {
			prefix = "▸ "
			style = theme.Selected
		}
		if i == s.session.Current {
			mark += "(current) "
		}
		lines = append(lines, style.Render(fmt.Sprintf("%sQuestion %d %s", prefix, i+1, mark)))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n")))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "Your answers will be lost."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return "\n\n\n" + layout.Centered(width, theme.ErrorText, "Error: "+errMsg) +
		"\n\n" + layout.Centered(width, theme.Hint, "Press any key to go back.")
}
