package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type summaryRepo struct {
	drv *entsql.Driver
}

type summaryRow struct {
	VideoID   string `sql:"video_id"`
	Summary   string `sql:"summary"`
	Chunks    int    `sql:"chunks"`
	Model     string `sql:"model"`
	UpdatedAt int64  `sql:"updated_at"`
}

func (r *summaryRepo) SaveSummary(ctx context.Context, s Summary) error {
	if s.VideoID == "" {
		return fmt.Errorf("save summary: empty video id")
	}
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSummaries).
		Columns("video_id", "summary", "chunks", "model", "updated_at").
		Values(s.VideoID, s.Text, s.Chunks, s.Model, updated.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("video_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save summary for %s: %w", s.VideoID, err)
	}
	return nil
}

func (r *summaryRepo) GetSummary(ctx context.Context, videoID string) (*Summary, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("video_id", "summary", "chunks", "model", "updated_at").
		From(entsql.Table(tableSummaries)).
		Where(entsql.EQ("video_id", videoID)).
		Limit(1)

	var rows []summaryRow
	if err := scanSelector(ctx, r.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("get summary for %s: %w", videoID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("summary for %s: %w", videoID, ErrNotFound)
	}

	row := rows[0]
	return &Summary{
		VideoID:   row.VideoID,
		Text:      row.Summary,
		Chunks:    row.Chunks,
		Model:     row.Model,
		UpdatedAt: time.UnixMilli(row.UpdatedAt).UTC(),
	}, nil
}
