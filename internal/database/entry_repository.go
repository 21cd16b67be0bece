package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tummybutters/wm/internal/models"
)

// EntryRepository reads entries from Postgres.
type EntryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new entry repository.
func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// ListByUserAndRange returns a user's entries created within [start, end],
// newest first.
func (r *EntryRepository) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]models.Entry, error) {
	query := `
		SELECT id, user_id, kind, text, created_at
		FROM entries
		WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var entry models.Entry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Kind, &entry.Text, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
