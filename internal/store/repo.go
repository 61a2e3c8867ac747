package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// Summary is a cached video summary.
type Summary struct {
	VideoID   string
	Text      string
	Chunks    int
	Model     string
	UpdatedAt time.Time
}

// SummaryRepo caches summaries by video id.
type SummaryRepo interface {
	// SaveSummary inserts or replaces the summary for s.VideoID.
	SaveSummary(ctx context.Context, s Summary) error

	// GetSummary returns the cached summary, or ErrNotFound.
	GetSummary(ctx context.Context, videoID string) (*Summary, error)
}

// Attempt is a graded quiz attempt. Report holds the grade report as JSON.
type Attempt struct {
	ID        string
	Sequence  int64
	CreatedAt time.Time
	VideoID   string
	Title     string
	Correct   int
	Total     int
	Score     float64
	Report    json.RawMessage
}

// AttemptRepo persists graded quiz attempts.
type AttemptRepo interface {
	// SaveAttempt validates a.Report, assigns an id when empty and stores
	// the attempt. It returns the stored id.
	SaveAttempt(ctx context.Context, a Attempt) (string, error)

	// ListAttempts returns attempts newest first, without their reports.
	ListAttempts(ctx context.Context, limit int) ([]Attempt, error)

	// GetAttempt returns one attempt with its validated report, or
	// ErrNotFound.
	GetAttempt(ctx context.Context, id string) (*Attempt, error)
}
