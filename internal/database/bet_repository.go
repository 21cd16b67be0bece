package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tummybutters/wm/internal/models"
)

// BetRepository reads bets from Postgres.
type BetRepository struct {
	db *sql.DB
}

// NewBetRepository creates a new bet repository.
func NewBetRepository(db *sql.DB) *BetRepository {
	return &BetRepository{db: db}
}

// ListByUser returns all of a user's bets, open and resolved. Brier
// scoring uses the full history, so there is no day filter.
func (r *BetRepository) ListByUser(ctx context.Context, userID string) ([]models.Bet, error) {
	query := `
		SELECT id, user_id, statement, probability, status, outcome
		FROM bets
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	defer rows.Close()

	var bets []models.Bet
	for rows.Next() {
		var bet models.Bet
		var outcome sql.NullBool
		if err := rows.Scan(&bet.ID, &bet.UserID, &bet.Statement, &bet.Probability, &bet.Status, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		if outcome.Valid {
			bet.Outcome = &outcome.Bool
		}
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}
