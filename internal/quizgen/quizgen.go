// Package quizgen generates a verified ten-question quiz from a summary.
package quizgen

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/tubequiz/internal/apperr"
	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/logger"
	"github.com/abhisek/tubequiz/internal/prompt"
	"github.com/abhisek/tubequiz/internal/quiz"
)

// Purpose tags quiz requests in the LLM event log.
const Purpose = "quiz-gen"

// MinSummaryRunes is the shortest summary a quiz is generated from.
const MinSummaryRunes = 500

// MaxAttempts bounds generation tries for one summary: the first attempt
// plus one extra on a shortfall.
const MaxAttempts = 2

// Config holds quiz generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Structured requests JSON matching QuizSchema instead of the text
	// layout. The JSON is converted to text before parsing.
	Structured bool
}

// DefaultConfig returns the defaults used by the CLI and TUI.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Result is a generated quiz.
type Result struct {
	// Questions holds exactly prompt.QuizQuestionCount questions.
	Questions []quiz.Question
	Attempts  int
	Model     string
}

// Repairs returns every repair recorded on the questions, prefixed with the
// question number.
func (r Result) Repairs() []string {
	var out []string
	for i, q := range r.Questions {
		for _, rep := range q.Repairs {
			out = append(out, fmt.Sprintf("Q%d: %s", i+1, rep))
		}
	}
	return out
}

// CheckReadiness reports whether summary is long enough to build a quiz
// from: non-blank and at least MinSummaryRunes characters.
func CheckReadiness(summary string) error {
	trimmed := strings.TrimSpace(summary)
	if trimmed == "" {
		return fmt.Errorf("%w: no summary available", apperr.ErrInsufficientContent)
	}
	if n := utf8.RuneCountInString(trimmed); n < MinSummaryRunes {
		return fmt.Errorf("%w: summary has %d characters, need %d",
			apperr.ErrInsufficientContent, n, MinSummaryRunes)
	}
	return nil
}

// Generator turns summaries into quizzes.
type Generator struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// New creates a Generator. A nil log discards output.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{provider: provider, cfg: cfg, log: log}
}

// Generate builds a quiz from summary. It checks readiness, then asks the
// model for quiz text, parses and verifies it. When fewer than
// prompt.QuizQuestionCount questions come back it tries once more before
// giving up with apperr.ErrGenerationShortfall. A model failure on any
// attempt returns apperr.ErrUnavailable straight away.
func (g *Generator) Generate(ctx context.Context, summary string) (Result, error) {
	if err := CheckReadiness(summary); err != nil {
		return Result{}, err
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	kind := prompt.KindQuiz
	if g.cfg.Structured {
		kind = prompt.KindQuizJSON
	}
	req := llm.UserRequest(prompt.SystemPrompt(kind), prompt.Build(kind, summary), g.cfg.MaxTokens)
	req.Temperature = g.cfg.Temperature
	if g.cfg.Structured {
		req.Schema = QuizSchema
	}

	var got int
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		g.log.Info("generating quiz", "attempt", attempt, "contract", prompt.ContractVersion, "structured", g.cfg.Structured)

		resp, err := g.provider.Generate(ctx, req)
		if err == nil {
			err = nonEmpty(resp)
		}
		text := resp.Text()
		if err == nil && g.cfg.Structured {
			text, err = structuredText(resp.Content)
		}
		if err != nil {
			return Result{}, fmt.Errorf("quiz generation: %w", llm.Unavailable(err))
		}

		questions := quiz.VerifyAll(quiz.Parse(text))
		got = len(questions)
		if got >= prompt.QuizQuestionCount {
			res := Result{
				Questions: questions[:prompt.QuizQuestionCount],
				Attempts:  attempt,
				Model:     resp.Model,
			}
			g.logRepairs(res)
			return res, nil
		}
		g.log.Warn("quiz generation shortfall", "attempt", attempt, "questions", got, "want", prompt.QuizQuestionCount)
	}

	return Result{}, fmt.Errorf("%w: got %d of %d questions after %d attempts",
		apperr.ErrGenerationShortfall, got, prompt.QuizQuestionCount, MaxAttempts)
}

func nonEmpty(resp *llm.Response) error {
	if strings.TrimSpace(resp.Text()) == "" {
		return fmt.Errorf("%w: empty quiz text", apperr.ErrUnavailable)
	}
	return nil
}

func (g *Generator) logRepairs(res Result) {
	for i, q := range res.Questions {
		for _, rep := range q.Repairs {
			if strings.HasPrefix(rep, "math:") {
				g.log.Warn("quiz answer replaced", "question", i+1, "repair", rep)
				continue
			}
			g.log.Debug("quiz repaired", "question", i+1, "repair", rep)
		}
	}
}
