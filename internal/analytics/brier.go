package analytics

import "github.com/tummybutters/wm/internal/models"

// BrierScore computes the mean squared error between stated probabilities
// and realized binary outcomes over the resolved subset of bets. 0 is
// perfect calibration, 1 is worst. With no resolved bets the score is 0
// exactly; callers must use the resolved count, not the score, to tell
// "no information" apart from "perfectly calibrated".
func BrierScore(bets []models.Bet) float64 {
	var sum float64
	var resolved int

	for _, bet := range bets {
		if bet.Outcome == nil {
			continue
		}
		outcome := 0.0
		if *bet.Outcome {
			outcome = 1.0
		}
		diff := bet.Probability - outcome
		sum += diff * diff
		resolved++
	}

	if resolved == 0 {
		return 0
	}

	return sum / float64(resolved)
}
