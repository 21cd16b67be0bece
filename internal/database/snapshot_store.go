package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tummybutters/wm/internal/models"
)

// SnapshotStore persists ingestion runs in Postgres. The raw snapshot and
// the normalized positions for one user commit in a single transaction.
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore creates a new snapshot store.
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// HasSnapshotForDay reports whether a raw snapshot already exists for
// (user, source) within the day's UTC window.
func (s *SnapshotStore) HasSnapshotForDay(ctx context.Context, userID, source string, day models.Day) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM raw_positions_snapshots
			WHERE user_id = $1 AND source = $2
			  AND fetched_at >= $3 AND fetched_at < $4
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, userID, source, day.Start(), day.Next().Start()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing snapshot: %w", err)
	}

	return exists, nil
}

// SaveRun writes the raw snapshot and upserts the normalized positions in
// a single transaction. A failure anywhere rolls back everything.
func (s *SnapshotStore) SaveRun(ctx context.Context, snapshot models.RawPositionsSnapshot, positions []models.NormalizedMarketPosition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	snapshotQuery := `
		INSERT INTO raw_positions_snapshots (id, user_id, source, payload, fetched_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = tx.ExecContext(ctx, snapshotQuery,
		snapshot.ID,
		snapshot.UserID,
		snapshot.Source,
		[]byte(snapshot.Payload),
		snapshot.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert raw snapshot: %w", err)
	}

	positionQuery := `
		INSERT INTO normalized_market_positions
			(id, user_id, source, market_id, title, category, tags, outcome, size, avg_price, current_value, pnl, resolved, as_of)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id, source, market_id, as_of) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			tags = EXCLUDED.tags,
			outcome = EXCLUDED.outcome,
			size = EXCLUDED.size,
			avg_price = EXCLUDED.avg_price,
			current_value = EXCLUDED.current_value,
			pnl = EXCLUDED.pnl,
			resolved = EXCLUDED.resolved
	`

	for _, p := range positions {
		_, err = tx.ExecContext(ctx, positionQuery,
			p.ID,
			p.UserID,
			p.Source,
			p.MarketID,
			p.Title,
			p.Category,
			pq.Array(p.Tags),
			p.Outcome,
			p.Size,
			p.AvgPrice,
			p.CurrentValue,
			p.PnL,
			p.Resolved,
			p.AsOf,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert position %s: %w", p.MarketID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot run: %w", err)
	}

	return nil
}
