package analytics

import (
	"math"
	"testing"

	"github.com/tummybutters/wm/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func TestBrierScore(t *testing.T) {
	tests := []struct {
		name string
		bets []models.Bet
		want float64
	}{
		{
			name: "single confident correct bet",
			bets: []models.Bet{
				{Probability: 0.8, Status: models.BetStatusResolved, Outcome: boolPtr(true)},
			},
			want: 0.04,
		},
		{
			name: "single confident wrong bet",
			bets: []models.Bet{
				{Probability: 0.9, Status: models.BetStatusResolved, Outcome: boolPtr(false)},
			},
			want: 0.81,
		},
		{
			name: "mean over resolved bets only",
			bets: []models.Bet{
				{Probability: 0.8, Status: models.BetStatusResolved, Outcome: boolPtr(true)},
				{Probability: 0.5, Status: models.BetStatusResolved, Outcome: boolPtr(false)},
				{Probability: 0.99, Status: models.BetStatusOpen, Outcome: nil},
			},
			want: (0.04 + 0.25) / 2,
		},
		{
			name: "no resolved bets is zero, not an error",
			bets: []models.Bet{
				{Probability: 0.3, Status: models.BetStatusOpen, Outcome: nil},
			},
			want: 0,
		},
		{
			name: "no bets at all",
			bets: nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BrierScore(tt.bets)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("BrierScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBrierScoreBounds(t *testing.T) {
	probabilities := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}
	outcomes := []bool{true, false}

	var bets []models.Bet
	for _, p := range probabilities {
		for _, o := range outcomes {
			out := o
			bets = append(bets, models.Bet{
				Probability: p,
				Status:      models.BetStatusResolved,
				Outcome:     &out,
			})
		}
	}

	got := BrierScore(bets)
	if got < 0 || got > 1 {
		t.Errorf("BrierScore = %v, outside [0, 1]", got)
	}
}
