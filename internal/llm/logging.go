package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/tubequiz/internal/logger"
	"github.com/abhisek/tubequiz/internal/store"
)

// LoggingProvider stores every call, successful or not, in the event log
// that `tubequiz llm` reads.
type LoggingProvider struct {
	inner  Provider
	family string
	events store.EventRepo
	log    *logger.Logger
}

// WithLogging records calls made through p. family names the provider
// ("gemini", "openai", ...) and is stored next to the model.
func WithLogging(p Provider, family string, events store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, family: family, events: events, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := l.event(PurposeFrom(ctx), req, resp, err)
	ev.LatencyMs = time.Since(start).Milliseconds()

	fields := []any{
		"provider", ev.Provider, "model", ev.Model, "purpose", ev.Purpose,
		"latency_ms", ev.LatencyMs, "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens,
	}
	if err != nil {
		l.log.Debug("llm request failed", append(fields, "error", err)...)
	} else {
		l.log.Debug("llm request", fields...)
	}

	// Cancelled requests are still recorded.
	if appendErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); appendErr != nil {
		l.log.Warn("could not record llm request", "error", appendErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) event(purpose string, req Request, resp *Response, err error) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.family,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		Success:     err == nil,
		RequestBody: transcriptOf(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	return ev
}

// transcriptOf renders req as role-tagged blocks, e.g. "[system]\n...".
func transcriptOf(req Request) string {
	var b strings.Builder
	block := func(tag, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", tag, body)
	}
	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			block("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
