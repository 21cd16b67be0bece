package models

import (
	"fmt"
	"time"
)

// InsightPayload is the structured analysis returned by the language
// model. All five fields are required; a response missing any of them is
// rejected before anything is persisted.
type InsightPayload struct {
	Themes      []string `json:"themes"`
	Assumptions []string `json:"assumptions"`
	Mood        string   `json:"mood"`
	Biases      []string `json:"biases"`
	Summary     string   `json:"summary"`
}

// Validate checks that the payload carries every required field.
func (p InsightPayload) Validate() error {
	if p.Themes == nil {
		return fmt.Errorf("missing required field: themes")
	}
	if p.Assumptions == nil {
		return fmt.Errorf("missing required field: assumptions")
	}
	if p.Mood == "" {
		return fmt.Errorf("missing required field: mood")
	}
	if p.Biases == nil {
		return fmt.Errorf("missing required field: biases")
	}
	if p.Summary == "" {
		return fmt.Errorf("missing required field: summary")
	}
	return nil
}

// InsightRecord is the stored analysis for one user and one UTC calendar
// day. At most one row per (UserID, Day); re-running the insight job
// overwrites it.
type InsightRecord struct {
	UserID    string         `json:"userId"`
	Day       Day            `json:"day"`
	Payload   InsightPayload `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
