package insight

import (
	"context"
	"time"

	"github.com/tummybutters/wm/internal/models"
)

// AggregateReader is the read-only slice of the aggregate store the
// insight job needs.
type AggregateReader interface {
	// Get returns the aggregate for (user, day), or nil when absent.
	Get(ctx context.Context, userID string, day models.Day) (*models.DailyAggregate, error)

	// ListUserIDsForDay returns users holding an aggregate for the day.
	ListUserIDsForDay(ctx context.Context, day models.Day) ([]string, error)
}

// EntryReader reads user entries for a time window.
type EntryReader interface {
	// ListByUserAndRange returns a user's entries created within
	// [start, end], newest first.
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]models.Entry, error)
}

// InsightRepository persists insight records keyed by (user, day).
type InsightRepository interface {
	// Upsert creates or replaces the record for its (user, day) key.
	Upsert(ctx context.Context, record models.InsightRecord) error

	// Get returns the record for (user, day), or nil when absent.
	Get(ctx context.Context, userID string, day models.Day) (*models.InsightRecord, error)
}

// MemoryInsightRepository is an in-memory insight store keyed by
// (user, day) for testing/development.
type MemoryInsightRepository struct {
	records map[string]models.InsightRecord
}

// NewMemoryInsightRepository creates an empty insight store.
func NewMemoryInsightRepository() *MemoryInsightRepository {
	return &MemoryInsightRepository{
		records: make(map[string]models.InsightRecord),
	}
}

func recordKey(userID string, day models.Day) string {
	return userID + "|" + day.String()
}

// Upsert stores the record under its natural key, preserving CreatedAt on
// replacement the way the SQL upsert does.
func (r *MemoryInsightRepository) Upsert(ctx context.Context, record models.InsightRecord) error {
	key := recordKey(record.UserID, record.Day)
	if existing, ok := r.records[key]; ok {
		record.CreatedAt = existing.CreatedAt
	}
	r.records[key] = record
	return nil
}

// Get retrieves the record for (user, day), nil when absent.
func (r *MemoryInsightRepository) Get(ctx context.Context, userID string, day models.Day) (*models.InsightRecord, error) {
	record, ok := r.records[recordKey(userID, day)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Size returns the number of stored records.
func (r *MemoryInsightRepository) Size() int {
	return len(r.records)
}
