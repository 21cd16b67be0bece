package marketdata

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tummybutters/wm/internal/models"
)

// MarketLookup indexes the metadata catalog by market ID for enrichment.
type MarketLookup map[string]Market

// BuildMarketLookup builds a lookup over the catalog. Built once per
// ingestion run and shared across all wallets.
func BuildMarketLookup(markets []Market) MarketLookup {
	lookup := make(MarketLookup, len(markets))
	for _, market := range markets {
		lookup[market.ID] = market
	}
	return lookup
}

// NormalizePosition maps one raw position plus the wallet's portfolio
// value into the canonical snapshot shape. Outcome comes from the first
// contract, nil when the position holds none. asOf is supplied by the
// caller so every position in a run carries the same snapshot timestamp.
func NormalizePosition(pos Position, value *ValueResponse, asOf time.Time) models.NormalizedMarketPosition {
	var outcome *string
	if len(pos.Contracts) > 0 {
		o := pos.Contracts[0].Outcome
		outcome = &o
	}

	currentValue := decimal.Zero
	pnl := decimal.Zero
	if value != nil {
		currentValue = value.Value.Out
		pnl = value.Value.Unrealized
	}

	tags := pos.Market.Tags
	if tags == nil {
		tags = []string{}
	}

	// The data API exposes no per-position sizing, so size and average
	// price are fixed defaults.
	// TODO: derive real size/avg price from the trades endpoint.
	return models.NormalizedMarketPosition{
		Source:       models.SourcePolymarket,
		MarketID:     pos.Market.ID,
		Title:        pos.Market.Question,
		Category:     pos.Market.Category,
		Tags:         tags,
		Outcome:      outcome,
		Size:         decimal.NewFromInt(1),
		AvgPrice:     decimal.NewFromFloat(0.5),
		CurrentValue: currentValue,
		PnL:          pnl,
		Resolved:     pos.Market.Resolved,
		AsOf:         asOf,
	}
}

// Enrich overwrites title, category, tags and resolved with catalog values
// when the position's market appears in the lookup; otherwise the
// position-derived values stay untouched.
func (l MarketLookup) Enrich(p models.NormalizedMarketPosition) models.NormalizedMarketPosition {
	metadata, ok := l[p.MarketID]
	if !ok {
		return p
	}

	p.Title = metadata.Question
	p.Category = metadata.Category
	if metadata.Tags != nil {
		p.Tags = metadata.Tags
	} else {
		p.Tags = []string{}
	}
	p.Resolved = metadata.Resolved
	return p
}
