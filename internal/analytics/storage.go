package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/tummybutters/wm/internal/models"
)

// UserRepository lists the users the aggregation batch iterates over.
type UserRepository interface {
	// ListUserIDs returns the IDs of every known user.
	ListUserIDs(ctx context.Context) ([]string, error)
}

// EntryRepository reads user entries for a time window.
type EntryRepository interface {
	// ListByUserAndRange returns a user's entries created within
	// [start, end], newest first.
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]models.Entry, error)
}

// BetRepository reads a user's full bet history.
type BetRepository interface {
	// ListByUser returns all of a user's bets, open and resolved.
	ListByUser(ctx context.Context, userID string) ([]models.Bet, error)
}

// AggregateRepository persists daily aggregates keyed by (user, day).
type AggregateRepository interface {
	// Upsert creates or replaces the aggregate for its (user, day) key.
	Upsert(ctx context.Context, agg models.DailyAggregate) error

	// Get returns the aggregate for (user, day), or nil when absent.
	Get(ctx context.Context, userID string, day models.Day) (*models.DailyAggregate, error)
}

// MemoryUserRepository is an in-memory user list for testing/development.
type MemoryUserRepository struct {
	ids []string
}

// NewMemoryUserRepository creates a user repository over a fixed ID list.
func NewMemoryUserRepository(ids ...string) *MemoryUserRepository {
	return &MemoryUserRepository{ids: ids}
}

// ListUserIDs returns the fixed user ID list.
func (r *MemoryUserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out, nil
}

// MemoryEntryRepository is an in-memory entry store for testing/development.
type MemoryEntryRepository struct {
	entries []models.Entry
}

// NewMemoryEntryRepository creates an entry repository seeded with entries.
func NewMemoryEntryRepository(entries ...models.Entry) *MemoryEntryRepository {
	return &MemoryEntryRepository{entries: entries}
}

// Add appends an entry to the store.
func (r *MemoryEntryRepository) Add(entry models.Entry) {
	r.entries = append(r.entries, entry)
}

// ListByUserAndRange filters entries by user and creation window.
func (r *MemoryEntryRepository) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]models.Entry, error) {
	var result []models.Entry
	for _, entry := range r.entries {
		if entry.UserID != userID {
			continue
		}
		if entry.CreatedAt.Before(start) || entry.CreatedAt.After(end) {
			continue
		}
		result = append(result, entry)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// MemoryBetRepository is an in-memory bet store for testing/development.
type MemoryBetRepository struct {
	bets []models.Bet
}

// NewMemoryBetRepository creates a bet repository seeded with bets.
func NewMemoryBetRepository(bets ...models.Bet) *MemoryBetRepository {
	return &MemoryBetRepository{bets: bets}
}

// Add appends a bet to the store.
func (r *MemoryBetRepository) Add(bet models.Bet) {
	r.bets = append(r.bets, bet)
}

// ListByUser returns the user's bets.
func (r *MemoryBetRepository) ListByUser(ctx context.Context, userID string) ([]models.Bet, error) {
	var result []models.Bet
	for _, bet := range r.bets {
		if bet.UserID == userID {
			result = append(result, bet)
		}
	}
	return result, nil
}

// MemoryAggregateRepository is an in-memory aggregate store keyed by
// (user, day) for testing/development.
type MemoryAggregateRepository struct {
	aggregates map[string]models.DailyAggregate
	UpsertErr  error // when set, Upsert fails with this error
}

// NewMemoryAggregateRepository creates an empty aggregate store.
func NewMemoryAggregateRepository() *MemoryAggregateRepository {
	return &MemoryAggregateRepository{
		aggregates: make(map[string]models.DailyAggregate),
	}
}

func aggregateKey(userID string, day models.Day) string {
	return userID + "|" + day.String()
}

// Upsert stores the aggregate under its natural key.
func (r *MemoryAggregateRepository) Upsert(ctx context.Context, agg models.DailyAggregate) error {
	if r.UpsertErr != nil {
		return r.UpsertErr
	}
	r.aggregates[aggregateKey(agg.UserID, agg.Day)] = agg
	return nil
}

// Get retrieves the aggregate for (user, day), nil when absent.
func (r *MemoryAggregateRepository) Get(ctx context.Context, userID string, day models.Day) (*models.DailyAggregate, error) {
	agg, ok := r.aggregates[aggregateKey(userID, day)]
	if !ok {
		return nil, nil
	}
	return &agg, nil
}

// ListUserIDsForDay returns users holding an aggregate for the day.
func (r *MemoryAggregateRepository) ListUserIDsForDay(ctx context.Context, day models.Day) ([]string, error) {
	var ids []string
	for _, agg := range r.aggregates {
		if agg.Day.Equal(day) {
			ids = append(ids, agg.UserID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Size returns the number of stored aggregate rows.
func (r *MemoryAggregateRepository) Size() int {
	return len(r.aggregates)
}
