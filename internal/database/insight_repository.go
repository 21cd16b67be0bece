package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/tummybutters/wm/internal/models"
)

// InsightRepository persists insight records in Postgres, one row per
// (user_id, day). The payload's list fields are stored as native arrays
// so they stay queryable.
type InsightRepository struct {
	db *sql.DB
}

// NewInsightRepository creates a new insight repository.
func NewInsightRepository(db *sql.DB) *InsightRepository {
	return &InsightRepository{db: db}
}

// Upsert creates or replaces the record for its (user, day) key,
// preserving created_at on replacement.
func (r *InsightRepository) Upsert(ctx context.Context, record models.InsightRecord) error {
	query := `
		INSERT INTO insight_records (user_id, day, themes, assumptions, mood, biases, summary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, day) DO UPDATE SET
			themes = EXCLUDED.themes,
			assumptions = EXCLUDED.assumptions,
			mood = EXCLUDED.mood,
			biases = EXCLUDED.biases,
			summary = EXCLUDED.summary,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		record.UserID,
		record.Day.Start(),
		pq.Array(record.Payload.Themes),
		pq.Array(record.Payload.Assumptions),
		record.Payload.Mood,
		pq.Array(record.Payload.Biases),
		record.Payload.Summary,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert insight record: %w", err)
	}

	return nil
}

// Get returns the record for (user, day), or nil when absent.
func (r *InsightRepository) Get(ctx context.Context, userID string, day models.Day) (*models.InsightRecord, error) {
	query := `
		SELECT user_id, day, themes, assumptions, mood, biases, summary, created_at, updated_at
		FROM insight_records
		WHERE user_id = $1 AND day = $2
	`

	var record models.InsightRecord
	var dayValue time.Time

	err := r.db.QueryRowContext(ctx, query, userID, day.Start()).Scan(
		&record.UserID,
		&dayValue,
		pq.Array(&record.Payload.Themes),
		pq.Array(&record.Payload.Assumptions),
		&record.Payload.Mood,
		pq.Array(&record.Payload.Biases),
		&record.Payload.Summary,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insight record: %w", err)
	}

	record.Day = models.NewDay(dayValue)
	return &record, nil
}
