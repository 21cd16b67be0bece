package models

// BetStatus is the lifecycle state of a prediction bet.
type BetStatus string

const (
	BetStatusOpen     BetStatus = "open"
	BetStatusResolved BetStatus = "resolved"
)

// Bet is a user's probability prediction. Outcome is non-nil iff the bet
// has resolved. Read-only to the pipeline.
type Bet struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Statement   string    `json:"statement"`
	Probability float64   `json:"probability"`
	Status      BetStatus `json:"status"`
	Outcome     *bool     `json:"outcome,omitempty"`
}

// Resolved reports whether the bet carries a realized outcome.
func (b Bet) Resolved() bool {
	return b.Outcome != nil
}
