package insight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tummybutters/wm/internal/models"
)

// Job generates one stored insight per user per day from that day's
// aggregate and raw entries. Users without an aggregate are skipped, so
// the aggregation batch must have run first.
type Job struct {
	aggregates AggregateReader
	entries    EntryReader
	insights   InsightRepository
	generator  Generator
	logger     *slog.Logger
}

// Summary reports the outcome of one insight run.
type Summary struct {
	Day       models.Day
	Users     int
	Succeeded int
	Failed    int
	Skipped   int
	Duration  time.Duration
}

// NewJob wires an insight job from its dependencies.
func NewJob(
	aggregates AggregateReader,
	entries EntryReader,
	insights InsightRepository,
	generator Generator,
	logger *slog.Logger,
) *Job {
	return &Job{
		aggregates: aggregates,
		entries:    entries,
		insights:   insights,
		generator:  generator,
		logger:     logger,
	}
}

// Run generates insights for yesterday (UTC), matching the day the
// aggregation batch produced.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	return j.RunForDay(ctx, models.YesterdayUTC())
}

// RunForDay generates insights for every user holding an aggregate for
// the given day. Per-user failures are counted and logged without
// aborting the batch; the returned error is non-nil only when the user
// list itself could not be read.
func (j *Job) RunForDay(ctx context.Context, day models.Day) (Summary, error) {
	start := time.Now()
	summary := Summary{Day: day}

	j.logger.Info("starting insight generation", "day", day.String())

	userIDs, err := j.aggregates.ListUserIDsForDay(ctx, day)
	if err != nil {
		return summary, fmt.Errorf("failed to list users with aggregates: %w", err)
	}
	summary.Users = len(userIDs)

	if len(userIDs) == 0 {
		j.logger.Warn("no aggregates found, nothing to analyze", "day", day.String())
		summary.Duration = time.Since(start)
		return summary, nil
	}

	j.logger.Info("resolved users with aggregates", "users", len(userIDs))

	for _, userID := range userIDs {
		skipped, err := j.processUser(ctx, userID, day)
		switch {
		case err != nil:
			summary.Failed++
			j.logger.Error("user insight generation failed",
				"user_id", userID,
				"day", day.String(),
				"error", err,
			)
		case skipped:
			summary.Skipped++
		default:
			summary.Succeeded++
		}
	}

	summary.Duration = time.Since(start)

	j.logger.Info("insight generation complete",
		"day", day.String(),
		"users", summary.Users,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"duration", summary.Duration,
	)

	return summary, nil
}

// processUser generates and stores one user's insight. It reports skipped
// when the user's aggregate disappeared between listing and processing.
func (j *Job) processUser(ctx context.Context, userID string, day models.Day) (bool, error) {
	agg, err := j.aggregates.Get(ctx, userID, day)
	if err != nil {
		return false, fmt.Errorf("failed to load aggregate: %w", err)
	}
	if agg == nil {
		j.logger.Warn("no aggregate for user, skipping",
			"user_id", userID,
			"day", day.String(),
		)
		return true, nil
	}

	entries, err := j.entries.ListByUserAndRange(ctx, userID, day.Start(), day.End())
	if err != nil {
		return false, fmt.Errorf("failed to load entries: %w", err)
	}

	texts := make([]string, 0, promptEntryLimit)
	for _, entry := range entries {
		if len(texts) == promptEntryLimit {
			break
		}
		texts = append(texts, entry.Text)
	}

	j.logger.Info("processing user",
		"user_id", userID,
		"top_words", len(agg.WordFrequencies),
		"entries", len(texts),
		"brier_score", agg.BrierScore,
	)

	payload, err := j.generator.Generate(ctx, PromptData{
		TopWords:      agg.WordFrequencies,
		BetCounts:     agg.BetCounts,
		BrierScore:    agg.BrierScore,
		RecentEntries: texts,
	})
	if err != nil {
		return false, fmt.Errorf("generation failed: %w", err)
	}

	now := time.Now().UTC()
	record := models.InsightRecord{
		UserID:    userID,
		Day:       day,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := j.insights.Upsert(ctx, record); err != nil {
		return false, fmt.Errorf("failed to save insight: %w", err)
	}

	j.logger.Info("insight saved",
		"user_id", userID,
		"themes", len(payload.Themes),
		"mood", payload.Mood,
	)

	return false, nil
}
