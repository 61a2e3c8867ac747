package results

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/pipeline"
	"github.com/abhisek/tubequiz/internal/quizsession"
	"github.com/abhisek/tubequiz/internal/report"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/screen"
	"github.com/abhisek/tubequiz/internal/ui/components"
	"github.com/abhisek/tubequiz/internal/ui/layout"
	"github.com/abhisek/tubequiz/internal/ui/theme"
)

const maxTextWidth = 90

// TextFile is the plain-text export name.
const TextFile = "quiz_results.txt"

const (
	btnPDF = iota
	btnText
	btnHome
)

type attemptSavedMsg struct {
	ID  string
	Err error
}

// ResultsScreen shows a graded quiz.
type ResultsScreen struct {
	pipe     *pipeline.Pipeline
	summary  pipeline.Summary
	report   quizsession.GradeReport
	viewport viewport.Model
	buttons  []components.Button
	width    int

	attemptID string
	notices   []string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.EscapeHandler = (*ResultsScreen)(nil)
var _ screen.StatusProvider = (*ResultsScreen)(nil)

// New creates a results screen for a graded report.
func New(pipe *pipeline.Pipeline, summary pipeline.Summary, r quizsession.GradeReport) *ResultsScreen {
	return &ResultsScreen{
		pipe:     pipe,
		summary:  summary,
		report:   r,
		viewport: viewport.New(),
		buttons: []components.Button{
			btnPDF:  components.NewButton("Export PDF", "e"),
			btnText: components.NewButton("Export text", "t"),
			btnHome: components.NewButton("Home", "enter", "esc"),
		},
	}
}

// Init stores the attempt in the history.
func (s *ResultsScreen) Init() tea.Cmd {
	pipe, sum, r := s.pipe, s.summary, s.report
	return func() tea.Msg {
		id, err := pipe.RecordAttempt(context.Background(), sum.VideoID, sum.Text, r)
		return attemptSavedMsg{ID: id, Err: err}
	}
}

func (s *ResultsScreen) Title() string {
	return report.Title
}

func (s *ResultsScreen) Status() string {
	return "Score " + quizsession.FormatScore(s.report.ScorePercent)
}

func (s *ResultsScreen) HandlesEscape() bool { return true }

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "e", Description: "PDF"},
		{Key: "t", Description: "Text"},
		{Key: "Enter/Esc", Description: "Home"},
	}
}

// Notices returns the status lines shown under the report.
func (s *ResultsScreen) Notices() []string {
	return s.notices
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if saved, ok := msg.(attemptSavedMsg); ok {
		switch {
		case saved.Err != nil:
			s.notices = append(s.notices, "Could not save attempt: "+saved.Err.Error())
		case saved.ID != "":
			s.attemptID = saved.ID
			s.notices = append(s.notices, "Saved to history as "+shortID(saved.ID))
		}
		return s, nil
	}

	switch components.Pressed(msg, s.buttons) {
	case btnPDF:
		s.export(report.DefaultResultsFile)
		return s, nil
	case btnText:
		s.export(TextFile)
		return s, nil
	case btnHome:
		return s, router.HomeCmd
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) export(name string) {
	path, err := s.pipe.Export(s.report, name)
	if err != nil {
		s.notices = append(s.notices, "Export failed: "+err.Error())
		return
	}
	s.notices = append(s.notices, "Exported to "+path)
}

func (s *ResultsScreen) View(width, height int) string {
	col := min(max(width-8, 20), maxTextWidth)
	if col != s.width {
		s.width = col
		s.viewport.SetWidth(col)
		s.viewport.SetContent(lipgloss.NewStyle().Width(col).Render(s.body()))
	}

	top := "\n" + layout.Centered(width, theme.Title, report.Header(s.report)) + "\n\n"
	bottom := "\n" + components.ButtonBar(width, s.buttons...)
	if n := len(s.notices); n > 0 {
		bottom += "\n\n" + layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Secondary), s.notices[n-1])
	}

	s.viewport.SetHeight(max(height-lipgloss.Height(top)-lipgloss.Height(bottom)-1, 3))
	return top + lipgloss.PlaceHorizontal(width, lipgloss.Center, s.viewport.View()) + bottom
}

// body renders each question result, coloring the verdict line.
func (s *ResultsScreen) body() string {
	parts := make([]string, 0, len(s.report.Results))
	for _, res := range s.report.Results {
		text := report.QuestionText(res)
		style := theme.Incorrect
		if res.Verdict == quizsession.VerdictCorrect {
			style = theme.Correct
		}
		text = strings.Replace(text, "Result: "+res.Result, "Result: "+style.Render(res.Result), 1)
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
