package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// SourcePolymarket is the only external position source currently wired.
const SourcePolymarket = "polymarket"

// WalletLink ties an on-chain address to a user. Several wallets may map
// to the same user. Read-only to the pipeline.
type WalletLink struct {
	UserID  string `json:"userId"`
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

// RawPositionsSnapshot is the append-only record of one ingestion run for
// one user: the unmodified provider payloads for all of the user's
// wallets, wrapped in a single JSON array. At most one snapshot exists per
// (UserID, Source, UTC calendar day); the ingestion job skips users that
// already have one.
type RawPositionsSnapshot struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Source    string          `json:"source"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// NormalizedMarketPosition is one point-in-time state of a user's position
// in one market. AsOf is the ingestion run's snapshot timestamp, so the
// table is an append-only time series keyed by
// (UserID, Source, MarketID, AsOf), not a mutable row per market.
type NormalizedMarketPosition struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Source       string          `json:"source"`
	MarketID     string          `json:"marketId"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	Tags         []string        `json:"tags"`
	Outcome      *string         `json:"outcome,omitempty"`
	Size         decimal.Decimal `json:"size"`
	AvgPrice     decimal.Decimal `json:"avgPrice"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	PnL          decimal.Decimal `json:"pnl"`
	Resolved     bool            `json:"resolved"`
	AsOf         time.Time       `json:"asOf"`
}
