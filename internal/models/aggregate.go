package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WordCount is one entry in a ranked word-frequency table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordCounts is an ordered word-frequency ranking. Order is part of the
// contract (count descending), so it is persisted as a JSONB list rather
// than flattened into rows; this type is the single encode/decode boundary
// for that column.
type WordCounts []WordCount

// Value implements driver.Valuer, encoding the ranking as JSON.
func (w WordCounts) Value() (driver.Value, error) {
	if w == nil {
		w = WordCounts{}
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner, decoding a JSON column value.
func (w *WordCounts) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*w = WordCounts{}
		return nil
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	default:
		return fmt.Errorf("cannot scan %T into WordCounts", src)
	}
}

// BetCounts summarizes a user's bets by lifecycle state.
type BetCounts struct {
	Open     int `json:"open"`
	Resolved int `json:"resolved"`
}

// Total returns the overall number of bets.
func (c BetCounts) Total() int {
	return c.Open + c.Resolved
}

// DailyAggregate holds the computed statistics for one user and one UTC
// calendar day. At most one row exists per (UserID, Day); re-running the
// aggregation job replaces the row in place.
type DailyAggregate struct {
	UserID          string     `json:"userId"`
	Day             Day        `json:"day"`
	WordFrequencies WordCounts `json:"wordFrequencies"`
	BetCounts       BetCounts  `json:"betCounts"`
	BrierScore      float64    `json:"brierScore"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
