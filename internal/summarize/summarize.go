// Package summarize turns a transcript into a plain-text summary by
// summarizing fixed-size chunks independently and joining the results.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/tubequiz/internal/apperr"
	"github.com/abhisek/tubequiz/internal/chunker"
	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/logger"
	"github.com/abhisek/tubequiz/internal/prompt"
)

// Purpose tags summary requests in the LLM event log.
const Purpose = "summary"

// Config holds summary generation settings.
type Config struct {
	MaxWords    int
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the defaults used by the CLI and TUI.
func DefaultConfig() Config {
	return Config{
		MaxWords:    chunker.DefaultMaxWords,
		MaxTokens:   1024,
		Temperature: 0.3,
	}
}

// Result is a joined summary plus how many chunks contributed to it.
type Result struct {
	Text    string
	Chunks  int
	Skipped int
	Model   string
}

// Summarizer summarizes transcripts chunk by chunk.
type Summarizer struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// New creates a Summarizer. A nil log discards output.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Summarizer {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.MaxWords == 0 {
		cfg.MaxWords = chunker.DefaultMaxWords
	}
	return &Summarizer{provider: provider, cfg: cfg, log: log}
}

// Summarize sends each chunk of transcript to the model in order and joins
// the non-empty results with blank lines. A chunk whose request fails or
// comes back empty is skipped. If no chunk yields text the call fails with
// apperr.ErrUnavailable.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (Result, error) {
	seq, err := chunker.Chunks(transcript, s.cfg.MaxWords)
	if err != nil {
		return Result{}, err
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	var (
		parts   []string
		res     Result
		lastErr error
	)
	for chunk := range seq {
		res.Chunks++

		req := llm.UserRequest(prompt.SystemPrompt(prompt.KindSummary), prompt.Build(prompt.KindSummary, chunk), s.cfg.MaxTokens)
		req.Temperature = s.cfg.Temperature

		resp, err := s.provider.Generate(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			lastErr = err
			res.Skipped++
			s.log.Warn("summary chunk skipped", "chunk", res.Chunks, "error", err)
			continue
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			res.Skipped++
			s.log.Warn("summary chunk skipped", "chunk", res.Chunks, "error", "empty response")
			continue
		}
		if res.Model == "" {
			res.Model = resp.Model
		}
		parts = append(parts, text)
	}

	if res.Chunks == 0 {
		return Result{}, fmt.Errorf("%w: transcript is empty", apperr.ErrUnavailable)
	}
	if len(parts) == 0 {
		if lastErr != nil {
			return Result{}, fmt.Errorf("summarize: all %d chunks failed: %w", res.Chunks, llm.Unavailable(lastErr))
		}
		return Result{}, fmt.Errorf("%w: all %d chunks returned empty summaries", apperr.ErrUnavailable, res.Chunks)
	}

	res.Text = strings.Join(parts, "\n\n")
	s.log.Info("summary generated", "chunks", res.Chunks, "skipped", res.Skipped, "chars", len(res.Text))
	return res, nil
}
