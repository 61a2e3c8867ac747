// Package layout composes the app frame: header bar, screen body and key
// hint footer.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// Smallest terminal the quiz and results screens fit in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return Centered(width, lipgloss.NewStyle().Foreground(theme.Text).Height(height), fmt.Sprintf(
		"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height,
	))
}

// RenderHeader draws the brand on the left, the screen title centered and
// status, e.g. quiz progress, on the right.
func RenderHeader(title, status string, width int) string {
	left := theme.Brand.Render("  ▶ TubeQuiz")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := theme.Status.Render(status)

	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	return theme.Bar.Width(width).Render(
		left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter draws the key hints in one row.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = theme.KeyName.Render(h.Key) + " " + theme.KeyDesc.Render(h.Description)
	}
	return theme.Bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, giving content whatever
// height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Centered renders text centered across width in style.
func Centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

// Wrap renders text left-aligned in a column of at most maxWidth cells,
// centered within width. Summaries and reports use it for long prose.
func Wrap(width, maxWidth int, style lipgloss.Style, text string) string {
	col := min(max(width-8, 20), maxWidth)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Width(col).Render(text))
}
