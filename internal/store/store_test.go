package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SummaryRepo().SaveSummary(ctx, Summary{VideoID: "v1", Text: "kept"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.SummaryRepo().GetSummary(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Text)
}

func TestSequenceSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	first, err := s.seq.Next(ctx)
	require.NoError(t, err)
	second, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
	require.NoError(t, s.Close())

	// Reopening must not reseed the counter.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	third, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, second+1, third)
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "summary", Success: true}))
	_, err := s.AttemptRepo().SaveAttempt(ctx, Attempt{VideoID: "dQw4w9WgXcQ", Correct: 1, Total: 1, Score: 100, Report: json.RawMessage(validReport)})
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "quiz-gen", Success: true}))

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	attempts, err := s.AttemptRepo().ListAttempts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Len(t, attempts, 1)

	// Newest first: quiz-gen event, attempt, summary event.
	assert.Greater(t, events[0].Sequence, attempts[0].Sequence)
	assert.Greater(t, attempts[0].Sequence, events[1].Sequence)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "summary", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true, RequestBody: "req1", ResponseBody: "resp1"},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "summary", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "quiz", InputTokens: 400, OutputTokens: 900, LatencyMs: 2000, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "quiz", all[0].Purpose, "newest first")
	assert.False(t, all[0].Success)
	assert.Equal(t, "boom", all[0].ErrorMessage)
	assert.WithinDuration(t, time.Now(), all[0].Timestamp, time.Minute)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "summary"})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 50, limited[0].InputTokens)

	first := all[2]
	got, err := repo.GetLLMEvent(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "req1", got.RequestBody)
	assert.Equal(t, "resp1", got.ResponseBody)

	_, err = repo.GetLLMEvent(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "quiz", Calls: 1, InputTokens: 400, OutputTokens: 900, AvgLatencyMs: 2000}, byPurpose[0])
	assert.Equal(t, PurposeUsage{Purpose: "summary", Calls: 2, InputTokens: 150, OutputTokens: 30, AvgLatencyMs: 200}, byPurpose[1])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, 3, byModel[0].Calls)
	assert.Equal(t, 550, byModel[0].InputTokens)
}

func TestSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.SummaryRepo()
	ctx := context.Background()

	_, err := repo.GetSummary(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.SaveSummary(ctx, Summary{VideoID: "abc", Text: "first", Chunks: 2, Model: "m"}))
	require.NoError(t, repo.SaveSummary(ctx, Summary{VideoID: "abc", Text: "second", Chunks: 3, Model: "m"}))

	got, err := repo.GetSummary(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Text)
	assert.Equal(t, 3, got.Chunks)

	assert.Error(t, repo.SaveSummary(ctx, Summary{Text: "no id"}))
}

const validReport = `{
  "results": [{
    "number": 1,
    "question": "Q?",
    "user_answer": "(A) a",
    "correct_letter": "A",
    "correct_answer": "(A) a",
    "verdict": "correct",
    "result": "Correct! ✅",
    "annotated_options": ["(A) a ✅", "(B) b", "(C) c", "(D) d"],
    "explanation": "because"
  }],
  "correct_count": 1,
  "total_count": 1,
  "score_percent": 100
}`

func TestAttempts(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	id1, err := repo.SaveAttempt(ctx, Attempt{VideoID: "v1", Title: "first", Correct: 1, Total: 1, Score: 100, Report: json.RawMessage(validReport)})
	require.NoError(t, err)
	assert.Len(t, id1, 36)

	id2, err := repo.SaveAttempt(ctx, Attempt{ID: "fixed-id", VideoID: "v2", Correct: 1, Total: 1, Score: 100, Report: json.RawMessage(validReport)})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id2)

	list, err := repo.ListAttempts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "fixed-id", list[0].ID, "newest first")
	assert.Nil(t, list[0].Report, "listing omits reports")

	got, err := repo.GetAttempt(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
	assert.JSONEq(t, validReport, string(got.Report))

	got, err = repo.GetAttempt(ctx, id1[:8])
	require.NoError(t, err)
	assert.Equal(t, id1, got.ID)

	_, err = repo.GetAttempt(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttempts_RejectsInvalidReport(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	_, err := repo.SaveAttempt(ctx, Attempt{VideoID: "v", Report: json.RawMessage(`{"results": []}`)})
	assert.Error(t, err)

	_, err = repo.SaveAttempt(ctx, Attempt{VideoID: "v", Report: json.RawMessage(`not json`)})
	assert.Error(t, err)
}

func TestAttempts_CorruptStoredReport(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(`INSERT INTO quiz_attempts (id, sequence, created_at, video_id, title, correct, total, score, report)
		VALUES ('corrupt-0000-0000-0000-000000000000', 999, 0, 'v', '', 0, 0, 0, '{"results": "oops"}')`)
	require.NoError(t, err)

	_, err = s.AttemptRepo().GetAttempt(ctx, "corrupt-0000-0000-0000-000000000000")
	assert.ErrorContains(t, err, "schema validation failed")
}

func TestDSN(t *testing.T) {
	pragmas := "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"
	assert.Equal(t, "a.db?"+pragmas, dsn("a.db"))
	assert.Equal(t, "file::memory:?cache=shared&"+pragmas, dsn("file::memory:?cache=shared"))
	assert.Equal(t, "a.db?_pragma=foo(1)", dsn("a.db?_pragma=foo(1)"))
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "quiz.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.FileExists(t, path)
}
