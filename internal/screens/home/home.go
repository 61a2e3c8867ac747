package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/pipeline"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/screen"
	"github.com/abhisek/tubequiz/internal/screens/history"
	"github.com/abhisek/tubequiz/internal/screens/loading"
	"github.com/abhisek/tubequiz/internal/screens/summary"
	"github.com/abhisek/tubequiz/internal/ui/components"
	"github.com/abhisek/tubequiz/internal/ui/layout"
	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// inputWidth is the width of the URL field.
const inputWidth = 60

// HomeScreen takes a video URL and offers the main menu.
type HomeScreen struct {
	pipe  *pipeline.Pipeline
	input components.TextInput
	menu  components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(pipe *pipeline.Pipeline) *HomeScreen {
	h := &HomeScreen{
		pipe:  pipe,
		input: components.NewTextInput("YouTube video URL", "https://www.youtube.com/watch?v=...", inputWidth),
	}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Summarize video", Action: h.start},
		{Label: "History", Disabled: pipe == nil || pipe.Attempts == nil, Action: func() tea.Cmd {
			return router.PushCmd(history.New(pipe.Attempts))
		}},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.input.Init()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.input.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Summarize"},
			{Key: "Tab", Description: "Menu"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Tab", Description: "URL"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Input exposes the URL field.
func (h *HomeScreen) Input() components.TextInput {
	return h.input
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return h, cmd
	}

	if h.input.Focused() {
		switch kmsg.String() {
		case "enter":
			return h, h.start()
		case "tab", "down":
			h.input.Blur()
			return h, nil
		}
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return h, cmd
	}

	switch kmsg.String() {
	case "tab":
		return h, h.input.Focus()
	case "up", "k":
		if h.menu.AtTop() {
			return h, h.input.Focus()
		}
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// start validates the URL and pushes the summarizing screen.
func (h *HomeScreen) start() tea.Cmd {
	url := h.input.Value()
	if url == "" {
		h.input.SetError("Enter a YouTube video URL first.")
		return h.input.Focus()
	}
	id, err := h.pipe.VideoID(url)
	if err != nil {
		h.input.SetError(loading.Message(err))
		return h.input.Focus()
	}
	return router.PushCmd(loading.New("Summary", "Fetching transcript…", h.summarizeTask(id)))
}

func (h *HomeScreen) summarizeTask(videoID string) loading.Task {
	pipe := h.pipe
	return func(ctx context.Context) loading.Result {
		if s, ok := pipe.CachedSummary(ctx, videoID); ok {
			return loading.Done(summary.New(pipe, s))
		}
		text, err := pipe.FetchTranscript(ctx, videoID)
		if err != nil {
			return loading.Fail(err)
		}
		return loading.Then("Summarizing…", func(ctx context.Context) loading.Result {
			s, err := pipe.SummarizeTranscript(ctx, videoID, text)
			if err != nil {
				return loading.Fail(err)
			}
			return loading.Done(summary.New(pipe, s))
		})
	}
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "▶ TubeQuiz"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Hint, "Summarize a YouTube video, then take a 10-question quiz on it."))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2)
	if h.input.Focused() {
		box = box.BorderForeground(theme.Primary)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, box.Render(h.input.View())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View(!h.input.Focused())))
	return b.String()
}
