package database

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tummybutters/wm/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// openTestDB connects to TEST_DATABASE_URL and applies migrations, or
// skips the test when no database is configured.
func openTestDB(t *testing.T) (context.Context, *AggregateRepository, *SnapshotStore, *InsightRepository, func()) {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.URL = dbURL

	db, err := Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	logger := testLogger()
	if err := RunMigrations(db, "../../migrations", logger); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return ctx, NewAggregateRepository(db), NewSnapshotStore(db), NewInsightRepository(db), func() { db.Close() }
}

func seedTestUser(t *testing.T, ctx context.Context, store *SnapshotStore) string {
	t.Helper()
	userID := uuid.New().String()
	_, err := store.db.ExecContext(ctx,
		"INSERT INTO users (id, email) VALUES ($1, $2)",
		userID, userID+"@test.local")
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return userID
}

func TestAggregateUpsertRoundTrip(t *testing.T) {
	ctx, aggregates, snapshots, _, closeDB := openTestDB(t)
	defer closeDB()

	userID := seedTestUser(t, ctx, snapshots)
	day := models.NewDay(time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC))

	agg := models.DailyAggregate{
		UserID: userID,
		Day:    day,
		WordFrequencies: models.WordCounts{
			{Word: "markets", Count: 3},
			{Word: "discipline", Count: 1},
		},
		BetCounts:  models.BetCounts{Open: 2, Resolved: 4},
		BrierScore: 0.0625,
		UpdatedAt:  time.Now().UTC(),
	}

	if err := aggregates.Upsert(ctx, agg); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := aggregates.Get(ctx, userID, day)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("aggregate not found after upsert")
	}

	if !got.Day.Equal(day) {
		t.Errorf("day = %s, want %s", got.Day, day)
	}
	// JSONB must preserve ranking order.
	if len(got.WordFrequencies) != 2 || got.WordFrequencies[0].Word != "markets" {
		t.Errorf("word frequencies = %v", got.WordFrequencies)
	}
	if got.BetCounts != agg.BetCounts {
		t.Errorf("bet counts = %+v", got.BetCounts)
	}
	if got.BrierScore != agg.BrierScore {
		t.Errorf("brier = %v", got.BrierScore)
	}

	// Replacing in place leaves exactly one row.
	agg.BrierScore = 0.25
	if err := aggregates.Upsert(ctx, agg); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	got, err = aggregates.Get(ctx, userID, day)
	if err != nil || got == nil {
		t.Fatalf("Get after rerun failed: %v", err)
	}
	if got.BrierScore != 0.25 {
		t.Errorf("brier after rerun = %v, want 0.25", got.BrierScore)
	}

	ids, err := aggregates.ListUserIDsForDay(ctx, day)
	if err != nil {
		t.Fatalf("ListUserIDsForDay failed: %v", err)
	}
	found := false
	for _, id := range ids {
		if id == userID {
			found = true
		}
	}
	if !found {
		t.Error("user missing from day listing")
	}
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	ctx, _, snapshots, _, closeDB := openTestDB(t)
	defer closeDB()

	userID := seedTestUser(t, ctx, snapshots)
	day := models.TodayUTC()

	exists, err := snapshots.HasSnapshotForDay(ctx, userID, models.SourcePolymarket, day)
	if err != nil {
		t.Fatalf("HasSnapshotForDay failed: %v", err)
	}
	if exists {
		t.Fatal("fresh user should have no snapshot")
	}

	outcome := "Yes"
	snapshot := models.RawPositionsSnapshot{
		ID:        uuid.New().String(),
		UserID:    userID,
		Source:    models.SourcePolymarket,
		Payload:   json.RawMessage(`[{"positions":[]}]`),
		FetchedAt: time.Now().UTC(),
	}
	positions := []models.NormalizedMarketPosition{
		{
			ID:       uuid.New().String(),
			UserID:   userID,
			Source:   models.SourcePolymarket,
			MarketID: "m1",
			Title:    "Will it rain",
			Category: "weather",
			Tags:     []string{"weather", "short-term"},
			Outcome:  &outcome,
			Resolved: false,
			AsOf:     time.Now().UTC(),
		},
	}

	if err := snapshots.SaveRun(ctx, snapshot, positions); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	exists, err = snapshots.HasSnapshotForDay(ctx, userID, models.SourcePolymarket, day)
	if err != nil {
		t.Fatalf("HasSnapshotForDay failed: %v", err)
	}
	if !exists {
		t.Error("snapshot not visible in today's dedup window")
	}
}

func TestInsightRepositoryRoundTrip(t *testing.T) {
	ctx, _, snapshots, insights, closeDB := openTestDB(t)
	defer closeDB()

	userID := seedTestUser(t, ctx, snapshots)
	day := models.NewDay(time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC))

	record := models.InsightRecord{
		UserID: userID,
		Day:    day,
		Payload: models.InsightPayload{
			Themes:      []string{"markets", "calibration"},
			Assumptions: []string{"rates stay high"},
			Mood:        "analytical",
			Biases:      []string{"anchoring"},
			Summary:     "Focused on market outcomes.",
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := insights.Upsert(ctx, record); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := insights.Get(ctx, userID, day)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("record not found after upsert")
	}
	if err := got.Payload.Validate(); err != nil {
		t.Errorf("stored payload invalid: %v", err)
	}
	if len(got.Payload.Themes) != 2 || got.Payload.Themes[1] != "calibration" {
		t.Errorf("themes = %v", got.Payload.Themes)
	}

	// Replacement keeps created_at and bumps updated_at.
	record.Payload.Mood = "confident"
	record.UpdatedAt = time.Now().UTC().Add(time.Minute)
	if err := insights.Upsert(ctx, record); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	got, err = insights.Get(ctx, userID, day)
	if err != nil || got == nil {
		t.Fatalf("Get after rerun failed: %v", err)
	}
	if got.Payload.Mood != "confident" {
		t.Errorf("mood = %q, want confident", got.Payload.Mood)
	}
}
