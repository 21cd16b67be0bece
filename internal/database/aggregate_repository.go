package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tummybutters/wm/internal/models"
)

// AggregateRepository persists daily aggregates in Postgres, one row per
// (user_id, day).
type AggregateRepository struct {
	db *sql.DB
}

// NewAggregateRepository creates a new aggregate repository.
func NewAggregateRepository(db *sql.DB) *AggregateRepository {
	return &AggregateRepository{db: db}
}

// Upsert creates or replaces the aggregate for its (user, day) key.
func (r *AggregateRepository) Upsert(ctx context.Context, agg models.DailyAggregate) error {
	query := `
		INSERT INTO daily_aggregates (user_id, day, word_freq, open_bets, resolved_bets, brier_score, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, day) DO UPDATE SET
			word_freq = EXCLUDED.word_freq,
			open_bets = EXCLUDED.open_bets,
			resolved_bets = EXCLUDED.resolved_bets,
			brier_score = EXCLUDED.brier_score,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		agg.UserID,
		agg.Day.Start(),
		agg.WordFrequencies,
		agg.BetCounts.Open,
		agg.BetCounts.Resolved,
		agg.BrierScore,
		agg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily aggregate: %w", err)
	}

	return nil
}

// Get returns the aggregate for (user, day), or nil when absent.
func (r *AggregateRepository) Get(ctx context.Context, userID string, day models.Day) (*models.DailyAggregate, error) {
	query := `
		SELECT user_id, day, word_freq, open_bets, resolved_bets, brier_score, updated_at
		FROM daily_aggregates
		WHERE user_id = $1 AND day = $2
	`

	var agg models.DailyAggregate
	var dayValue time.Time

	err := r.db.QueryRowContext(ctx, query, userID, day.Start()).Scan(
		&agg.UserID,
		&dayValue,
		&agg.WordFrequencies,
		&agg.BetCounts.Open,
		&agg.BetCounts.Resolved,
		&agg.BrierScore,
		&agg.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily aggregate: %w", err)
	}

	agg.Day = models.NewDay(dayValue)
	return &agg, nil
}

// ListUserIDsForDay returns users holding an aggregate for the day.
func (r *AggregateRepository) ListUserIDsForDay(ctx context.Context, day models.Day) ([]string, error) {
	query := `
		SELECT user_id FROM daily_aggregates
		WHERE day = $1
		ORDER BY user_id
	`

	rows, err := r.db.QueryContext(ctx, query, day.Start())
	if err != nil {
		return nil, fmt.Errorf("failed to list users with aggregates: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
