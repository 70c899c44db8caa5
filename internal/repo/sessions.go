package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
)

var (
	// ErrSessionNotFound reports an unknown session or item id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrItemNotFound reports an unknown item id within a session.
	ErrItemNotFound = errors.New("item not found")
	// ErrStatusRegression reports an attempt to move a session's status
	// backwards. Status only ever advances: active -> pendingEmails ->
	// completed.
	ErrStatusRegression = errors.New("session status may not regress")
)

// Sessions is the restock-session repository.
type Sessions struct {
	store    *store.Store
	ids      entity.IDGenerator
	logger   *slog.Logger
	now      func() time.Time
	items    []entity.Session
	hydrated bool
}

// NewSessions creates the repository.
func NewSessions(s *store.Store, ids entity.IDGenerator, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{store: s, ids: ids, logger: logger, now: time.Now}
}

// WithNow overrides the repository's clock. Used by tests that need
// deterministic createdAt values. Returns r for chaining.
func (r *Sessions) WithNow(now func() time.Time) *Sessions {
	r.now = now
	return r
}

// Load hydrates the cache. Idempotent; see Profile.Load.
func (r *Sessions) Load(ctx context.Context) {
	items, ok := store.ReadVersioned(ctx, r.store, keySessions, sessionsMigration)
	if !ok {
		items = nil
	}
	r.items = items
	r.hydrated = true
}

// IsHydrated reports whether at least one Load has completed.
func (r *Sessions) IsHydrated() bool { return r.hydrated }

// All returns a copy of the collection in stored order.
func (r *Sessions) All() []entity.Session {
	out := make([]entity.Session, len(r.items))
	copy(out, r.items)
	return out
}

// Get returns the session with the given id.
func (r *Sessions) Get(id string) (entity.Session, bool) {
	for _, s := range r.items {
		if s.ID == id {
			return s, true
		}
	}
	return entity.Session{}, false
}

// Create starts a new active session and returns it.
func (r *Sessions) Create(ctx context.Context) entity.Session {
	s := entity.Session{
		ID:        r.ids.NewID(),
		CreatedAt: r.now().UnixMilli(),
		Items:     []entity.SessionItem{},
		Status:    entity.StatusActive,
	}
	r.items = append(r.items, s)
	r.persist(ctx)
	return s
}

// AddItem appends a line item to the session and returns it.
func (r *Sessions) AddItem(ctx context.Context, sessionID, productName string, quantity int, supplierID string) (entity.SessionItem, error) {
	i := r.index(sessionID)
	if i < 0 {
		return entity.SessionItem{}, fmt.Errorf("add item: %w", ErrSessionNotFound)
	}
	item := entity.SessionItem{
		ID:          r.ids.NewID(),
		ProductName: productName,
		Quantity:    quantity,
		SupplierID:  supplierID,
	}
	r.items[i].Items = append(r.items[i].Items, item)
	r.persist(ctx)
	return item, nil
}

// UpdateItem applies fn to the identified item and persists the result.
func (r *Sessions) UpdateItem(ctx context.Context, sessionID, itemID string, fn func(entity.SessionItem) entity.SessionItem) error {
	i := r.index(sessionID)
	if i < 0 {
		return fmt.Errorf("update item: %w", ErrSessionNotFound)
	}
	for j := range r.items[i].Items {
		if r.items[i].Items[j].ID == itemID {
			updated := fn(r.items[i].Items[j])
			updated.ID = itemID // identity is not editable
			r.items[i].Items[j] = updated
			r.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("update item: %w", ErrItemNotFound)
}

// RemoveItem deletes a line item.
func (r *Sessions) RemoveItem(ctx context.Context, sessionID, itemID string) error {
	i := r.index(sessionID)
	if i < 0 {
		return fmt.Errorf("remove item: %w", ErrSessionNotFound)
	}
	for j, item := range r.items[i].Items {
		if item.ID == itemID {
			r.items[i].Items = append(r.items[i].Items[:j], r.items[i].Items[j+1:]...)
			r.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("remove item: %w", ErrItemNotFound)
}

// Advance moves the session's status forward. A regression attempt
// returns ErrStatusRegression and leaves the session unchanged; advancing
// to the current status is a no-op.
func (r *Sessions) Advance(ctx context.Context, sessionID string, status entity.SessionStatus) error {
	i := r.index(sessionID)
	if i < 0 {
		return fmt.Errorf("advance: %w", ErrSessionNotFound)
	}
	if !r.items[i].Status.CanAdvanceTo(status) {
		return fmt.Errorf("advance %s -> %s: %w", r.items[i].Status, status, ErrStatusRegression)
	}
	if r.items[i].Status == status {
		return nil
	}
	r.items[i].Status = status
	r.persist(ctx)
	return nil
}

// Delete removes the session entirely. Permitted from any status.
func (r *Sessions) Delete(ctx context.Context, sessionID string) error {
	i := r.index(sessionID)
	if i < 0 {
		return fmt.Errorf("delete: %w", ErrSessionNotFound)
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	r.persist(ctx)
	return nil
}

// RemoveAll deletes every session.
func (r *Sessions) RemoveAll(ctx context.Context) {
	r.items = nil
	r.store.Remove(ctx, keySessions)
}

func (r *Sessions) index(id string) int {
	for i, s := range r.items {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (r *Sessions) persist(ctx context.Context) {
	store.Write(ctx, r.store, keySessions, r.items)
}
