package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/quizsession"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/screen"
	"github.com/abhisek/tubequiz/internal/store"
	"github.com/abhisek/tubequiz/internal/ui/layout"
	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// listLimit bounds how many attempts are listed.
const listLimit = 50

type historyLoadedMsg struct {
	Attempts []store.Attempt
	Err      error
}

type attemptLoadedMsg struct {
	Index  int
	Report quizsession.GradeReport
	Err    error
}

// HistoryScreen lists past quiz attempts.
type HistoryScreen struct {
	attempts store.AttemptRepo
	list     []store.Attempt
	reports  map[int]quizsession.GradeReport
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(attempts store.AttemptRepo) *HistoryScreen {
	return &HistoryScreen{
		attempts: attempts,
		reports:  make(map[int]quizsession.GradeReport),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.attempts
	return func() tea.Msg {
		list, err := repo.ListAttempts(context.Background(), listLimit)
		return historyLoadedMsg{Attempts: list, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.list = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case attemptLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.expanded[msg.Index] = false
			return s, nil
		}
		s.reports[msg.Index] = msg.Report
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.PopCmd
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.list)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.list) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			if _, ok := s.reports[s.selected]; s.expanded[s.selected] && !ok {
				return s, s.loadAttempt(s.selected)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAttempt(idx int) tea.Cmd {
	repo, id := s.attempts, s.list[idx].ID
	return func() tea.Msg {
		a, err := repo.GetAttempt(context.Background(), id)
		if err != nil {
			return attemptLoadedMsg{Index: idx, Err: err}
		}
		var r quizsession.GradeReport
		if err := json.Unmarshal(a.Report, &r); err != nil {
			return attemptLoadedMsg{Index: idx, Err: fmt.Errorf("decode report: %w", err)}
		}
		return attemptLoadedMsg{Index: idx, Report: r}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.list) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Summarize a video to take one!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.list {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		title := a.Title
		if title == "" {
			title = a.VideoID
		}
		line := fmt.Sprintf("%s%s  %-40s  %d/%d  %s",
			prefix, a.CreatedAt.Local().Format("Jan 02, 2006 15:04"), truncate(title, 40),
			a.Correct, a.Total, quizsession.FormatScore(a.Score))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderVerdicts(i, width))
		}
	}

	return b.String()
}

// renderVerdicts lists the per-question outcome of an expanded attempt.
func (s *HistoryScreen) renderVerdicts(idx, width int) string {
	r, ok := s.reports[idx]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("    Loading...")) + "\n"
	}

	var b strings.Builder
	for _, res := range r.Results {
		style := theme.Incorrect
		if res.Verdict == quizsession.VerdictCorrect {
			style = theme.Correct
		}
		line := fmt.Sprintf("    Q%-2d %s  %s", res.Number, style.Render(res.Result), truncate(res.Question, 50))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
