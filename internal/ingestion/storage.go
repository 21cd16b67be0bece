package ingestion

import (
	"context"
	"errors"
	"sort"

	"github.com/tummybutters/wm/internal/models"
)

// WalletLinkRepository reads the user-to-wallet mapping.
type WalletLinkRepository interface {
	// ListAll returns every wallet link ordered by (userID, chain).
	ListAll(ctx context.Context) ([]models.WalletLink, error)
}

// SnapshotStore persists one ingestion run's output for one user. The raw
// snapshot and the normalized rows commit atomically: a failure anywhere
// leaves neither behind.
type SnapshotStore interface {
	// HasSnapshotForDay reports whether a raw snapshot already exists
	// for (user, source) within the day's UTC window.
	HasSnapshotForDay(ctx context.Context, userID, source string, day models.Day) (bool, error)

	// SaveRun writes the raw snapshot and upserts the normalized
	// positions in a single transaction.
	SaveRun(ctx context.Context, snapshot models.RawPositionsSnapshot, positions []models.NormalizedMarketPosition) error
}

// MemoryWalletLinkRepository is an in-memory wallet-link store for
// testing/development.
type MemoryWalletLinkRepository struct {
	links []models.WalletLink
}

// NewMemoryWalletLinkRepository creates a wallet-link repository seeded
// with links.
func NewMemoryWalletLinkRepository(links ...models.WalletLink) *MemoryWalletLinkRepository {
	return &MemoryWalletLinkRepository{links: links}
}

// ListAll returns the links ordered by (userID, chain).
func (r *MemoryWalletLinkRepository) ListAll(ctx context.Context) ([]models.WalletLink, error) {
	out := make([]models.WalletLink, len(r.links))
	copy(out, r.links)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Chain < out[j].Chain
	})
	return out, nil
}

// ErrInjectedWriteFailure is returned by the memory store when a test asks
// for a mid-transaction failure.
var ErrInjectedWriteFailure = errors.New("injected write failure")

// MemorySnapshotStore is an in-memory snapshot store for
// testing/development. Writes stage into a scratch copy and apply on
// commit, mirroring the all-or-nothing transaction of the Postgres
// implementation.
type MemorySnapshotStore struct {
	snapshots []models.RawPositionsSnapshot
	positions map[string]models.NormalizedMarketPosition

	// FailOnPosition, when > 0, fails SaveRun while upserting the n-th
	// normalized position (1-based), leaving the store untouched.
	FailOnPosition int
}

// NewMemorySnapshotStore creates an empty snapshot store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		positions: make(map[string]models.NormalizedMarketPosition),
	}
}

func positionKey(p models.NormalizedMarketPosition) string {
	return p.UserID + "|" + p.Source + "|" + p.MarketID + "|" + p.AsOf.UTC().Format("2006-01-02T15:04:05.000000000")
}

// HasSnapshotForDay scans stored snapshots for one inside the day window.
func (s *MemorySnapshotStore) HasSnapshotForDay(ctx context.Context, userID, source string, day models.Day) (bool, error) {
	for _, snap := range s.snapshots {
		if snap.UserID == userID && snap.Source == source && day.Contains(snap.FetchedAt) {
			return true, nil
		}
	}
	return false, nil
}

// SaveRun applies the snapshot and positions atomically.
func (s *MemorySnapshotStore) SaveRun(ctx context.Context, snapshot models.RawPositionsSnapshot, positions []models.NormalizedMarketPosition) error {
	staged := make(map[string]models.NormalizedMarketPosition, len(positions))
	for i, p := range positions {
		if s.FailOnPosition > 0 && i+1 == s.FailOnPosition {
			return ErrInjectedWriteFailure
		}
		staged[positionKey(p)] = p
	}

	s.snapshots = append(s.snapshots, snapshot)
	for k, p := range staged {
		s.positions[k] = p
	}
	return nil
}

// Snapshots returns the stored raw snapshots.
func (s *MemorySnapshotStore) Snapshots() []models.RawPositionsSnapshot {
	out := make([]models.RawPositionsSnapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

// Positions returns the stored normalized positions in key order.
func (s *MemorySnapshotStore) Positions() []models.NormalizedMarketPosition {
	out := make([]models.NormalizedMarketPosition, 0, len(s.positions))
	for _, p := range s.positions {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return positionKey(out[i]) < positionKey(out[j])
	})
	return out
}
