package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tummybutters/wm/internal/models"
)

// WalletLinkRepository reads wallet links from Postgres.
type WalletLinkRepository struct {
	db *sql.DB
}

// NewWalletLinkRepository creates a new wallet-link repository.
func NewWalletLinkRepository(db *sql.DB) *WalletLinkRepository {
	return &WalletLinkRepository{db: db}
}

// ListAll returns every wallet link ordered by (userID, chain).
func (r *WalletLinkRepository) ListAll(ctx context.Context) ([]models.WalletLink, error) {
	query := `
		SELECT user_id, chain, address
		FROM wallet_links
		ORDER BY user_id, chain
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet links: %w", err)
	}
	defer rows.Close()

	var links []models.WalletLink
	for rows.Next() {
		var link models.WalletLink
		if err := rows.Scan(&link.UserID, &link.Chain, &link.Address); err != nil {
			return nil, fmt.Errorf("failed to scan wallet link: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}
