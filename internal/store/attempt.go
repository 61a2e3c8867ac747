package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

type attemptRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

type attemptRow struct {
	ID        string  `sql:"id"`
	Sequence  int64   `sql:"sequence"`
	CreatedAt int64   `sql:"created_at"`
	VideoID   string  `sql:"video_id"`
	Title     string  `sql:"title"`
	Correct   int     `sql:"correct"`
	Total     int     `sql:"total"`
	Score     float64 `sql:"score"`
	Report    string  `sql:"report"`
}

func (row attemptRow) attempt() Attempt {
	a := Attempt{
		ID:        row.ID,
		Sequence:  row.Sequence,
		CreatedAt: time.UnixMilli(row.CreatedAt).UTC(),
		VideoID:   row.VideoID,
		Title:     row.Title,
		Correct:   row.Correct,
		Total:     row.Total,
		Score:     row.Score,
	}
	if row.Report != "" {
		a.Report = json.RawMessage(row.Report)
	}
	return a
}

func (r *attemptRepo) SaveAttempt(ctx context.Context, a Attempt) (string, error) {
	if err := ValidateReport(a.Report); err != nil {
		return "", err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableQuizAttempts).
		Columns("id", "sequence", "created_at", "video_id", "title", "correct", "total", "score", "report").
		Values(a.ID, seqNum, created.UnixMilli(), a.VideoID, a.Title, a.Correct, a.Total, a.Score, string(a.Report)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return "", fmt.Errorf("save attempt: %w", err)
	}
	return a.ID, nil
}

func (r *attemptRepo) ListAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "created_at", "video_id", "title", "correct", "total", "score").
		From(entsql.Table(tableQuizAttempts)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	var rows []attemptRow
	if err := scanSelector(ctx, r.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	out := make([]Attempt, len(rows))
	for i, row := range rows {
		out[i] = row.attempt()
	}
	return out, nil
}

func (r *attemptRepo) GetAttempt(ctx context.Context, id string) (*Attempt, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "created_at", "video_id", "title", "correct", "total", "score", "report").
		From(entsql.Table(tableQuizAttempts))

	// Accept an unambiguous id prefix, as printed by history listings.
	if len(id) < 36 {
		sel.Where(entsql.HasPrefix("id", id)).Limit(2)
	} else {
		sel.Where(entsql.EQ("id", id)).Limit(1)
	}

	var rows []attemptRow
	if err := scanSelector(ctx, r.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("get attempt %s: %w", id, err)
	}
	switch {
	case len(rows) == 0:
		return nil, fmt.Errorf("attempt %s: %w", id, ErrNotFound)
	case len(rows) > 1:
		return nil, fmt.Errorf("attempt id prefix %q is ambiguous", id)
	}

	a := rows[0].attempt()
	if err := ValidateReport(a.Report); err != nil {
		return nil, fmt.Errorf("attempt %s: %w", a.ID, err)
	}
	return &a, nil
}

// reportSchema describes the stored grade report JSON.
const reportSchema = `{
  "type": "object",
  "required": ["results", "correct_count", "total_count", "score_percent"],
  "properties": {
    "correct_count": {"type": "integer", "minimum": 0},
    "total_count": {"type": "integer", "minimum": 0},
    "score_percent": {"type": "number", "minimum": 0, "maximum": 100},
    "results": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["number", "question", "user_answer", "verdict", "result", "annotated_options", "explanation"],
        "properties": {
          "number": {"type": "integer", "minimum": 1},
          "question": {"type": "string"},
          "user_answer": {"type": "string"},
          "correct_letter": {"type": "string"},
          "correct_answer": {"type": "string"},
          "verdict": {"enum": ["correct", "incorrect", "unanswerable"]},
          "result": {"type": "string"},
          "annotated_options": {"type": "array", "items": {"type": "string"}},
          "explanation": {"type": "string"}
        }
      }
    }
  }
}`

var (
	reportSchemaOnce     sync.Once
	reportSchemaCompiled *jsonschema.Schema
	reportSchemaErr      error
)

func compiledReportSchema() (*jsonschema.Schema, error) {
	reportSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(reportSchema))
		if err != nil {
			reportSchemaErr = fmt.Errorf("parse report schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://grade-report.json"
		if err := c.AddResource(url, doc); err != nil {
			reportSchemaErr = fmt.Errorf("add report schema: %w", err)
			return
		}
		reportSchemaCompiled, reportSchemaErr = c.Compile(url)
	})
	return reportSchemaCompiled, reportSchemaErr
}

// ValidateReport checks grade report JSON against the stored schema.
func ValidateReport(raw json.RawMessage) error {
	sch, err := compiledReportSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return fmt.Errorf("invalid report JSON: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("report schema validation failed: %w", err)
	}
	return nil
}
