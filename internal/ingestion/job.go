package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tummybutters/wm/internal/marketdata"
	"github.com/tummybutters/wm/internal/models"
)

// MarketDataProvider is the slice of the market-data client the job needs.
// Every fetch degrades to "no data" instead of returning an error; see
// marketdata.Client.
type MarketDataProvider interface {
	FetchPositions(ctx context.Context, address string) (*marketdata.PositionResponse, json.RawMessage)
	FetchValue(ctx context.Context, address string) *marketdata.ValueResponse
	FetchMarkets(ctx context.Context) []marketdata.Market
}

// Job pulls externally-held positions for every user with linked wallets,
// normalizes them against the shared market catalog, and persists one raw
// snapshot plus the normalized rows per user inside a single transaction.
// A user already holding a snapshot for today is skipped without any
// fetches or writes.
type Job struct {
	wallets   WalletLinkRepository
	snapshots SnapshotStore
	provider  MarketDataProvider
	logger    *slog.Logger
}

// Summary reports the outcome of one ingestion run.
type Summary struct {
	Day       models.Day
	Users     int
	Succeeded int
	Failed    int
	Skipped   int
	Positions int
	Duration  time.Duration
}

// NewJob wires an ingestion job from its dependencies.
func NewJob(
	wallets WalletLinkRepository,
	snapshots SnapshotStore,
	provider MarketDataProvider,
	logger *slog.Logger,
) *Job {
	return &Job{
		wallets:   wallets,
		snapshots: snapshots,
		provider:  provider,
		logger:    logger,
	}
}

// Run ingests positions for all users. The dedup window is today's UTC
// day, fixed once at start. The returned error is non-nil only when the
// wallet list itself could not be read.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	day := models.TodayUTC()
	summary := Summary{Day: day}

	j.logger.Info("starting position ingestion",
		"source", models.SourcePolymarket,
		"day", day.String(),
	)

	links, err := j.wallets.ListAll(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list wallet links: %w", err)
	}

	userIDs, walletsByUser := groupWallets(links)
	summary.Users = len(userIDs)

	if len(userIDs) == 0 {
		j.logger.Warn("no wallet links found, nothing to ingest")
		summary.Duration = time.Since(start)
		return summary, nil
	}

	j.logger.Info("resolved wallet links",
		"links", len(links),
		"users", len(userIDs),
	)

	// One catalog fetch and one snapshot timestamp for the whole run.
	lookup := marketdata.BuildMarketLookup(j.provider.FetchMarkets(ctx))
	asOf := time.Now().UTC()

	for _, userID := range userIDs {
		processed, skipped, err := j.processUser(ctx, userID, walletsByUser[userID], day, lookup, asOf)
		switch {
		case err != nil:
			summary.Failed++
			j.logger.Error("user ingestion failed",
				"user_id", userID,
				"error", err,
			)
		case skipped:
			summary.Skipped++
		default:
			summary.Succeeded++
			summary.Positions += processed
		}
	}

	summary.Duration = time.Since(start)

	j.logger.Info("position ingestion complete",
		"day", day.String(),
		"users", summary.Users,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"positions", summary.Positions,
		"duration", summary.Duration,
	)

	return summary, nil
}

// processUser ingests one user's wallets. It returns the number of
// normalized positions written and whether the user was skipped by the
// per-day dedup check.
func (j *Job) processUser(
	ctx context.Context,
	userID string,
	wallets []string,
	day models.Day,
	lookup marketdata.MarketLookup,
	asOf time.Time,
) (int, bool, error) {
	already, err := j.snapshots.HasSnapshotForDay(ctx, userID, models.SourcePolymarket, day)
	if err != nil {
		return 0, false, fmt.Errorf("dedup check failed: %w", err)
	}
	if already {
		j.logger.Info("already synced today, skipping",
			"user_id", userID,
			"day", day.String(),
		)
		return 0, true, nil
	}

	j.logger.Info("processing user",
		"user_id", userID,
		"wallets", len(wallets),
	)

	var rawPayloads []json.RawMessage
	var normalized []models.NormalizedMarketPosition

	for _, address := range wallets {
		positions, raw := j.provider.FetchPositions(ctx, address)
		value := j.provider.FetchValue(ctx, address)

		if positions == nil {
			// Degraded wallet; already logged by the client. The
			// sibling wallets still get their chance.
			continue
		}

		rawPayloads = append(rawPayloads, raw)

		for _, pos := range positions.Positions {
			p := marketdata.NormalizePosition(pos, value, asOf)
			p.ID = uuid.New().String()
			p.UserID = userID
			normalized = append(normalized, lookup.Enrich(p))
		}
	}

	if len(rawPayloads) == 0 {
		// Every wallet degraded. Writing nothing leaves the dedup
		// window open, so tomorrow's run (or a rerun today) retries.
		j.logger.Warn("no wallet produced data, nothing written",
			"user_id", userID,
		)
		return 0, false, nil
	}

	payload, err := json.Marshal(rawPayloads)
	if err != nil {
		return 0, false, fmt.Errorf("failed to encode raw payload: %w", err)
	}

	snapshot := models.RawPositionsSnapshot{
		ID:        uuid.New().String(),
		UserID:    userID,
		Source:    models.SourcePolymarket,
		Payload:   payload,
		FetchedAt: time.Now().UTC(),
	}

	if err := j.snapshots.SaveRun(ctx, snapshot, normalized); err != nil {
		return 0, false, fmt.Errorf("failed to save run: %w", err)
	}

	j.logger.Info("user synced",
		"user_id", userID,
		"wallets_with_data", len(rawPayloads),
		"positions", len(normalized),
	)

	return len(normalized), false, nil
}

// groupWallets folds the link list into per-user address lists, keeping
// the repository's (userID, chain) ordering.
func groupWallets(links []models.WalletLink) ([]string, map[string][]string) {
	var userIDs []string
	byUser := make(map[string][]string)

	for _, link := range links {
		if _, seen := byUser[link.UserID]; !seen {
			userIDs = append(userIDs, link.UserID)
		}
		byUser[link.UserID] = append(byUser[link.UserID], link.Address)
	}

	return userIDs, byUser
}
