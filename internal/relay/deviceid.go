package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
)

// keyDeviceID is wire-stable; the id under it is generated once per
// device and cached indefinitely.
const keyDeviceID = "deviceId"

// EnsureDeviceID returns the device's persisted opaque identifier,
// generating and persisting one on first use. The identifier is attached
// to outbound send requests for relay-side rate limiting.
//
// Format: device-<unix ms>-<8 hex chars>.
func EnsureDeviceID(ctx context.Context, s *store.Store) string {
	if id, ok := store.ReadVersioned[string](ctx, s, keyDeviceID, nil); ok && id != "" {
		return id
	}
	id := fmt.Sprintf("device-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	store.Write(ctx, s, keyDeviceID, id)
	return id
}
