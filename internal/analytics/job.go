package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tummybutters/wm/internal/models"
)

// topWordLimit caps the per-day word-frequency ranking.
const topWordLimit = 20

// Job computes daily aggregates (word frequencies, bet counts, Brier
// score) for every user. Each invocation targets a single UTC calendar
// day; per-user failures are logged and counted but never abort the batch.
type Job struct {
	users      UserRepository
	entries    EntryRepository
	bets       BetRepository
	aggregates AggregateRepository
	logger     *slog.Logger
}

// Summary reports the outcome of one aggregation run.
type Summary struct {
	Day       models.Day
	Users     int
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// NewJob wires an aggregation job from its dependencies.
func NewJob(
	users UserRepository,
	entries EntryRepository,
	bets BetRepository,
	aggregates AggregateRepository,
	logger *slog.Logger,
) *Job {
	return &Job{
		users:      users,
		entries:    entries,
		bets:       bets,
		aggregates: aggregates,
		logger:     logger,
	}
}

// Run aggregates yesterday (UTC) for all users. The target day is fixed
// once at start so a run straddling midnight cannot produce inconsistent
// day boundaries across users.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	return j.RunForDay(ctx, models.YesterdayUTC())
}

// RunForDay aggregates the given day for all users. The returned error is
// non-nil only when no independent progress was possible (the user list
// itself could not be read); per-user failures land in the summary.
func (j *Job) RunForDay(ctx context.Context, day models.Day) (Summary, error) {
	start := time.Now()
	summary := Summary{Day: day}

	j.logger.Info("starting daily aggregation",
		"day", day.String(),
		"window_start", day.Start(),
		"window_end", day.End(),
	)

	userIDs, err := j.users.ListUserIDs(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list users: %w", err)
	}

	summary.Users = len(userIDs)

	for _, userID := range userIDs {
		if err := j.processUser(ctx, userID, day); err != nil {
			summary.Failed++
			j.logger.Error("user aggregation failed",
				"user_id", userID,
				"day", day.String(),
				"error", err,
			)
			continue
		}
		summary.Succeeded++
	}

	summary.Duration = time.Since(start)

	j.logger.Info("daily aggregation complete",
		"day", day.String(),
		"users", summary.Users,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"duration", summary.Duration,
	)

	return summary, nil
}

// processUser computes and upserts one user's aggregate for the day.
func (j *Job) processUser(ctx context.Context, userID string, day models.Day) error {
	entries, err := j.entries.ListByUserAndRange(ctx, userID, day.Start(), day.End())
	if err != nil {
		return fmt.Errorf("failed to fetch entries: %w", err)
	}

	texts := make([]string, 0, len(entries))
	for _, entry := range entries {
		texts = append(texts, entry.Text)
	}
	wordFreq := TopWords(texts, topWordLimit)

	// Bets are deliberately not filtered to the target day: counts and
	// calibration cover the user's entire prediction history.
	bets, err := j.bets.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch bets: %w", err)
	}

	var counts models.BetCounts
	for _, bet := range bets {
		switch bet.Status {
		case models.BetStatusOpen:
			counts.Open++
		case models.BetStatusResolved:
			counts.Resolved++
		}
	}

	agg := models.DailyAggregate{
		UserID:          userID,
		Day:             day,
		WordFrequencies: wordFreq,
		BetCounts:       counts,
		BrierScore:      BrierScore(bets),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := j.aggregates.Upsert(ctx, agg); err != nil {
		return fmt.Errorf("failed to upsert aggregate: %w", err)
	}

	j.logger.Info("user aggregated",
		"user_id", userID,
		"day", day.String(),
		"entries", len(entries),
		"top_words", len(wordFreq),
		"open_bets", counts.Open,
		"resolved_bets", counts.Resolved,
		"brier_score", agg.BrierScore,
	)

	return nil
}
