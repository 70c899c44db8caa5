package entity

// Profile identifies the sender on outbound order emails.
// Singleton per device: created during onboarding, edited in settings,
// never hard-deleted short of a full reset.
type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	StoreName string `json:"storeName,omitempty"`
}

// Supplier is a destination for order emails. Name lookups are
// case-insensitive and whitespace-trimmed (see NormalizeName).
type Supplier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Product is an autocomplete/recall record: at most one per normalized
// name, remembering the last supplier and quantity the user chose.
// Not authoritative for any session.
type Product struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	LastSupplierID string `json:"lastSupplierId,omitempty"`
	LastQty        int    `json:"lastQty,omitempty"`
}

// SessionStatus is a strict forward-moving state machine:
// active -> pendingEmails -> completed. Once emails have begun sending
// there is no transition back to active. Deletion is permitted from any
// state.
type SessionStatus string

const (
	StatusActive        SessionStatus = "active"
	StatusPendingEmails SessionStatus = "pendingEmails"
	StatusCompleted     SessionStatus = "completed"
)

// rank orders statuses for forward-only enforcement.
func (s SessionStatus) rank() int {
	switch s {
	case StatusActive:
		return 0
	case StatusPendingEmails:
		return 1
	case StatusCompleted:
		return 2
	}
	return -1
}

// Valid reports whether s is a known status value.
func (s SessionStatus) Valid() bool {
	return s.rank() >= 0
}

// CanAdvanceTo reports whether the transition s -> next is permitted.
// Transitions never regress and never skip states backwards; advancing
// to the same status is a no-op and allowed.
func (s SessionStatus) CanAdvanceTo(next SessionStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return next.rank() >= s.rank()
}

// SessionItem is one line of a draft purchase order. SupplierID is a
// non-owning reference; it may be empty (unassigned) or point at a
// supplier that no longer exists.
type SessionItem struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	SupplierID  string `json:"supplierId,omitempty"`
}

// Session is one restock run: a draft purchase order being assembled.
type Session struct {
	ID        string        `json:"id"`
	CreatedAt int64         `json:"createdAt"` // unix milliseconds
	Items     []SessionItem `json:"items"`
	Status    SessionStatus `json:"status"`
}

// CompanyLink associates this device with a remote multi-store
// organization. At most one per device; absence means standalone mode.
type CompanyLink struct {
	Code      string `json:"code"`
	OrgID     string `json:"orgId"`
	StoreName string `json:"storeName"`
	JoinedAt  int64  `json:"joinedAt"` // unix milliseconds
}

// Snapshot is the published state of one store within an organization,
// fetched from the directory service and cached opportunistically.
type Snapshot struct {
	StoreName   string     `json:"storeName"`
	PublishedAt int64      `json:"publishedAt"` // unix milliseconds
	Sessions    []Session  `json:"sessions"`
	Suppliers   []Supplier `json:"suppliers"`
}
