package summary

import (
	"context"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/pipeline"
	"github.com/abhisek/tubequiz/internal/screen"
	"github.com/abhisek/tubequiz/internal/screens/loading"
	"github.com/abhisek/tubequiz/internal/screens/quiz"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/ui/components"
	"github.com/abhisek/tubequiz/internal/ui/layout"
	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// maxTextWidth caps the summary column.
const maxTextWidth = 90

const (
	btnSave = iota
	btnQuiz
)

// SummaryScreen shows a video summary and leads into the quiz.
type SummaryScreen struct {
	pipe     *pipeline.Pipeline
	summary  pipeline.Summary
	viewport viewport.Model
	buttons  []components.Button
	notice   string
	noticeOK bool
	width    int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(pipe *pipeline.Pipeline, s pipeline.Summary) *SummaryScreen {
	scr := &SummaryScreen{
		pipe:     pipe,
		summary:  s,
		viewport: viewport.New(),
	}
	scr.buttons = []components.Button{
		btnSave: components.NewButton("Save summary", "s"),
		btnQuiz: components.NewButton("Ready for Quiz", "q", "enter"),
	}
	return scr
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "s", Description: "Save"},
		{Key: "q/Enter", Description: "Quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

// Notice returns the last save result line.
func (s *SummaryScreen) Notice() string {
	return s.notice
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch components.Pressed(msg, s.buttons) {
	case btnSave:
		s.save()
		return s, nil
	case btnQuiz:
		return s, router.PushCmd(s.quizLoader())
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) save() {
	path, err := s.pipe.SaveSummary(s.summary.Text, "")
	if err != nil {
		s.notice, s.noticeOK = "Could not save summary: "+err.Error(), false
		return
	}
	s.notice, s.noticeOK = "Summary saved to "+path, true
}

// quizLoader generates the quiz behind a spinner and opens it.
func (s *SummaryScreen) quizLoader() *loading.LoadingScreen {
	pipe, sum := s.pipe, s.summary
	return loading.New("Quiz", "Generating quiz…", func(ctx context.Context) loading.Result {
		res, err := pipe.Generate(ctx, sum.Text)
		if err != nil {
			return loading.Fail(err)
		}
		return loading.Done(quiz.New(pipe, sum, res.Questions))
	})
}

func (s *SummaryScreen) View(width, height int) string {
	col := min(max(width-8, 20), maxTextWidth)
	if col != s.width {
		s.width = col
		s.viewport.SetWidth(col)
		s.viewport.SetContent(lipgloss.NewStyle().Width(col).Render(s.summary.Text))
	}

	heading := "Summary"
	if s.summary.Cached {
		heading += " (cached)"
	}

	top := "\n" + layout.Centered(width, theme.Title, heading) + "\n\n"
	bottom := "\n" + components.ButtonBar(width, s.buttons...)
	if s.notice != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if !s.noticeOK {
			style = theme.ErrorText
		}
		bottom += "\n\n" + layout.Centered(width, style, s.notice)
	}

	s.viewport.SetHeight(max(height-lipgloss.Height(top)-lipgloss.Height(bottom)-1, 3))
	body := lipgloss.PlaceHorizontal(width, lipgloss.Center, s.viewport.View())
	return top + body + bottom
}
