// Package pipeline wires the transcript, summary, quiz and persistence
// steps into the user-level actions shared by the CLI and the TUI.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abhisek/tubequiz/internal/logger"
	"github.com/abhisek/tubequiz/internal/quizgen"
	"github.com/abhisek/tubequiz/internal/quizsession"
	"github.com/abhisek/tubequiz/internal/report"
	"github.com/abhisek/tubequiz/internal/store"
	"github.com/abhisek/tubequiz/internal/summarize"
	"github.com/abhisek/tubequiz/internal/transcript"
)

// Pipeline holds the collaborators of one run. Summaries and Attempts may
// be nil, which disables caching and attempt history.
type Pipeline struct {
	Transcripts transcript.Provider
	Summarizer  *summarize.Summarizer
	Generator   *quizgen.Generator
	Summaries   store.SummaryRepo
	Attempts    store.AttemptRepo
	ExportDir   string
	Log         *logger.Logger
}

// Summary is the outcome of summarizing one video.
type Summary struct {
	VideoID string
	Text    string
	Cached  bool
}

func (p *Pipeline) log() *logger.Logger {
	if p.Log == nil {
		return logger.Nop()
	}
	return p.Log
}

// VideoID validates url and returns its video id.
func (p *Pipeline) VideoID(url string) (string, error) {
	return transcript.VideoID(url)
}

// Summarize returns the summary for the video at url. A cached summary is
// reused unless refresh is set. Fresh summaries are cached.
func (p *Pipeline) Summarize(ctx context.Context, url string, refresh bool) (Summary, error) {
	id, err := transcript.VideoID(url)
	if err != nil {
		return Summary{}, err
	}

	if !refresh {
		if s, ok := p.CachedSummary(ctx, id); ok {
			return s, nil
		}
	}

	text, err := p.FetchTranscript(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	return p.SummarizeTranscript(ctx, id, text)
}

// CachedSummary looks up a stored summary for videoID.
func (p *Pipeline) CachedSummary(ctx context.Context, videoID string) (Summary, bool) {
	if p.Summaries == nil {
		return Summary{}, false
	}
	cached, err := p.Summaries.GetSummary(ctx, videoID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.log().Warn("summary cache lookup failed", "video_id", videoID, "error", err)
		}
		return Summary{}, false
	}
	p.log().Debug("summary cache hit", "video_id", videoID)
	return Summary{VideoID: videoID, Text: cached.Text, Cached: true}, true
}

// SummarizeTranscript summarizes transcript text and caches the result.
func (p *Pipeline) SummarizeTranscript(ctx context.Context, videoID, text string) (Summary, error) {
	res, err := p.Summarizer.Summarize(ctx, text)
	if err != nil {
		return Summary{}, err
	}

	if p.Summaries != nil {
		err := p.Summaries.SaveSummary(ctx, store.Summary{
			VideoID: videoID,
			Text:    res.Text,
			Chunks:  res.Chunks,
			Model:   res.Model,
		})
		if err != nil {
			p.log().Warn("failed to cache summary", "video_id", videoID, "error", err)
		}
	}
	return Summary{VideoID: videoID, Text: res.Text}, nil
}

// FetchTranscript returns the joined transcript text of a video.
func (p *Pipeline) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	segments, err := p.Transcripts.Fetch(ctx, videoID)
	if err != nil {
		return "", err
	}
	p.log().Info("transcript fetched", "video_id", videoID, "segments", len(segments))
	return transcript.Join(segments), nil
}

// Generate builds a quiz from summary.
func (p *Pipeline) Generate(ctx context.Context, summary string) (quizgen.Result, error) {
	return p.Generator.Generate(ctx, summary)
}

// SaveSummary writes summary to name inside the export directory and
// returns the path written.
func (p *Pipeline) SaveSummary(summary, name string) (string, error) {
	if name == "" {
		name = report.DefaultSummaryFile
	}
	path := report.Resolve(p.ExportDir, name)
	return path, report.SummaryFile(path, summary)
}

// Export writes a graded report to name inside the export directory. The
// extension picks the format. It returns the path written.
func (p *Pipeline) Export(r quizsession.GradeReport, name string) (string, error) {
	if name == "" {
		name = report.DefaultResultsFile
	}
	path := report.Resolve(p.ExportDir, name)
	return path, report.ExportFile(path, r)
}

// RecordAttempt stores a graded quiz and returns its id. It is a no-op
// returning "" when attempt history is disabled.
func (p *Pipeline) RecordAttempt(ctx context.Context, videoID, summary string, r quizsession.GradeReport) (string, error) {
	if p.Attempts == nil {
		return "", nil
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	id, err := p.Attempts.SaveAttempt(ctx, store.Attempt{
		CreatedAt: time.Now(),
		VideoID:   videoID,
		Title:     Title(summary),
		Correct:   r.CorrectCount,
		Total:     r.TotalCount,
		Score:     r.ScorePercent,
		Report:    raw,
	})
	if err != nil {
		return "", err
	}
	p.log().Info("attempt saved", "id", id, "video_id", videoID, "score", r.ScorePercent)
	return id, nil
}

// titleRunes bounds attempt titles.
const titleRunes = 60

// Title derives a short label from the first line of a summary.
func Title(summary string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(summary), "\n")
	line = strings.TrimSpace(strings.TrimLeft(line, "#*- "))
	if utf8.RuneCountInString(line) <= titleRunes {
		return line
	}
	r := []rune(line)
	return strings.TrimSpace(string(r[:titleRunes-1])) + "…"
}
