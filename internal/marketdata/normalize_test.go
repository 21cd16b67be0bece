package marketdata

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func samplePosition() Position {
	return Position{
		Market: Market{
			ID:       "mkt-1",
			Question: "Will it rain tomorrow?",
			Category: "weather",
			Tags:     []string{"rain", "forecast"},
			Outcomes: []string{"Yes", "No"},
			Resolved: false,
		},
		Contracts: []Contract{
			{ID: "c-1", Outcome: "Yes", IsResolved: false},
			{ID: "c-2", Outcome: "No", IsResolved: false},
		},
	}
}

func sampleValue() *ValueResponse {
	return &ValueResponse{
		UserAddress: "0xabc",
		Value: PortfolioValue{
			In:         decimal.NewFromFloat(120.5),
			Out:        decimal.NewFromFloat(133.7),
			Unrealized: decimal.NewFromFloat(13.2),
		},
	}
}

func TestNormalizePosition(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	got := NormalizePosition(samplePosition(), sampleValue(), asOf)

	if got.MarketID != "mkt-1" {
		t.Errorf("market id = %q, want mkt-1", got.MarketID)
	}
	if got.Title != "Will it rain tomorrow?" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Outcome == nil || *got.Outcome != "Yes" {
		t.Errorf("outcome = %v, want Yes (first contract)", got.Outcome)
	}
	if !got.CurrentValue.Equal(decimal.NewFromFloat(133.7)) {
		t.Errorf("current value = %s, want 133.7", got.CurrentValue)
	}
	if !got.PnL.Equal(decimal.NewFromFloat(13.2)) {
		t.Errorf("pnl = %s, want 13.2", got.PnL)
	}
	if !got.AsOf.Equal(asOf) {
		t.Errorf("asOf = %v, want %v", got.AsOf, asOf)
	}
}

func TestNormalizePositionNoContracts(t *testing.T) {
	pos := samplePosition()
	pos.Contracts = nil

	got := NormalizePosition(pos, sampleValue(), time.Now())
	if got.Outcome != nil {
		t.Errorf("outcome = %v, want nil for position without contracts", *got.Outcome)
	}
}

func TestNormalizePositionNoValueData(t *testing.T) {
	got := NormalizePosition(samplePosition(), nil, time.Now())

	if !got.CurrentValue.IsZero() {
		t.Errorf("current value = %s, want 0 without value data", got.CurrentValue)
	}
	if !got.PnL.IsZero() {
		t.Errorf("pnl = %s, want 0 without value data", got.PnL)
	}
}

func TestEnrichMatchOverridesMetadata(t *testing.T) {
	asOf := time.Now()
	normalized := NormalizePosition(samplePosition(), sampleValue(), asOf)

	lookup := BuildMarketLookup([]Market{
		{
			ID:       "mkt-1",
			Question: "Will it rain tomorrow? (amended)",
			Category: "climate",
			Tags:     []string{"weather"},
			Resolved: true,
		},
	})

	got := lookup.Enrich(normalized)

	if got.Title != "Will it rain tomorrow? (amended)" {
		t.Errorf("title = %q, want catalog title", got.Title)
	}
	if got.Category != "climate" {
		t.Errorf("category = %q, want climate", got.Category)
	}
	if !reflect.DeepEqual(got.Tags, []string{"weather"}) {
		t.Errorf("tags = %v, want [weather]", got.Tags)
	}
	if !got.Resolved {
		t.Error("resolved should take the catalog value")
	}

	// Non-metadata fields stay untouched.
	if !got.CurrentValue.Equal(normalized.CurrentValue) {
		t.Errorf("current value changed during enrichment: %s", got.CurrentValue)
	}
	if got.Outcome == nil || *got.Outcome != "Yes" {
		t.Errorf("outcome changed during enrichment: %v", got.Outcome)
	}
}

func TestEnrichNoMatchKeepsPositionValues(t *testing.T) {
	normalized := NormalizePosition(samplePosition(), sampleValue(), time.Now())

	lookup := BuildMarketLookup([]Market{
		{ID: "other-market", Question: "Unrelated", Category: "misc"},
	})

	got := lookup.Enrich(normalized)

	if !reflect.DeepEqual(got, normalized) {
		t.Errorf("enrichment without a match changed the position:\ngot  %+v\nwant %+v", got, normalized)
	}
}
