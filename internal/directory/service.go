package directory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/repo"
)

// Fetcher is the subset of the directory contract the service needs.
// Implemented by *Client in production and by fakes in tests.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, code, storeName string) (entity.Snapshot, error)
	PublishSnapshot(ctx context.Context, code, storeName string, snap entity.Snapshot) error
}

// Service composes the directory client with the on-device snapshot
// cache: fetches replace the cached entry on success and fall back to
// the stale entry on failure (no TTL - stale data beats no data for a
// read-only view of a sibling store).
type Service struct {
	fetcher   Fetcher
	snapshots *repo.Snapshots
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates the snapshot service.
func NewService(fetcher Fetcher, snapshots *repo.Snapshots, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, snapshots: snapshots, logger: logger, now: time.Now}
}

// Snapshot returns the freshest available snapshot for a sibling store.
// stale=true means the fetch failed and the cached copy was served. An
// error is returned only when the fetch failed and nothing is cached.
func (s *Service) Snapshot(ctx context.Context, code, storeName string) (snap entity.Snapshot, stale bool, err error) {
	fetched, fetchErr := s.fetcher.FetchSnapshot(ctx, code, storeName)
	if fetchErr == nil {
		s.snapshots.Put(ctx, fetched)
		return fetched, false, nil
	}

	s.logger.Warn("snapshot fetch failed, trying cache",
		"store", storeName, "error", fetchErr)
	if cached, ok := s.snapshots.Get(storeName); ok {
		return cached, true, nil
	}
	return entity.Snapshot{}, false, fmt.Errorf("snapshot for %s: %w", storeName, fetchErr)
}

// Publish uploads this store's snapshot, built from the current session
// and supplier repositories.
func (s *Service) Publish(ctx context.Context, code, storeName string, sessions *repo.Sessions, suppliers *repo.Suppliers) error {
	snap := entity.Snapshot{
		StoreName:   storeName,
		PublishedAt: s.now().UnixMilli(),
		Sessions:    sessions.All(),
		Suppliers:   suppliers.All(),
	}
	if err := s.fetcher.PublishSnapshot(ctx, code, storeName, snap); err != nil {
		return err
	}
	// Our own published state is as good as a fetch.
	s.snapshots.Put(ctx, snap)
	return nil
}
