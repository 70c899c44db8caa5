package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/relay"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/repo"
)

// Sender issues one outbound email request. Implemented by relay.Client
// in production and by fakes in tests.
type Sender interface {
	Send(ctx context.Context, msg relay.Message) (relay.Receipt, error)
}

// State is the dispatcher's lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateConfirming State = "confirming"
	StateSending    State = "sending"
)

// Outcome is the tri-state aggregate result of a run.
type Outcome string

const (
	AllSucceeded Outcome = "allSucceeded"
	Partial      Outcome = "partial"
	AllFailed    Outcome = "allFailed"
)

// maxReasons bounds the number of underlying failure reasons surfaced in
// an aggregate message.
const maxReasons = 2

// GroupOutcome classifies one destination group's send independently.
type GroupOutcome struct {
	SupplierID   string
	SupplierName string
	MessageID    string
	Reason       string // empty on success
}

// OK reports whether the group's send succeeded.
func (o GroupOutcome) OK() bool { return o.Reason == "" }

// Result aggregates a completed run. A single send action always ends in
// exactly one of three outcomes; the Message is bounded-length, never a
// raw stack trace.
type Result struct {
	Outcome Outcome
	Sent    int
	Failed  int
	Groups  []GroupOutcome
	Message string
}

// Dispatcher runs the send state machine. One logical thread of control
// drives it; see the package documentation for the concurrency model.
type Dispatcher struct {
	sender    Sender
	sessions  *repo.Sessions
	suppliers *repo.Suppliers
	profile   *repo.Profile
	deviceID  string
	logger    *slog.Logger

	state     State
	sessionID string
	groups    []DestinationGroup
}

// NewDispatcher creates a dispatcher in the idle state. The deviceID is
// attached to every outbound request for relay-side rate limiting.
func NewDispatcher(sender Sender, sessions *repo.Sessions, suppliers *repo.Suppliers, profile *repo.Profile, deviceID string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		sender:    sender,
		sessions:  sessions,
		suppliers: suppliers,
		profile:   profile,
		deviceID:  deviceID,
		logger:    logger,
		state:     StateIdle,
	}
}

// State returns the current lifecycle state.
func (d *Dispatcher) State() State { return d.state }

// Prepare enters the confirming state for a session and returns its
// destination groups, including the unassigned bucket, so the caller can
// show the user exactly what will (and will not) be sent. No network
// activity occurs.
func (d *Dispatcher) Prepare(sessionID string) ([]DestinationGroup, error) {
	if d.state != StateIdle {
		return nil, newError(ErrCodeBadState, "cannot prepare while %s", d.state)
	}
	session, ok := d.sessions.Get(sessionID)
	if !ok {
		return nil, newError(ErrCodeSessionNotFound, "no session with id %s", sessionID)
	}

	d.groups = GroupByDestination(session.Items, d.suppliers.All())
	d.sessionID = sessionID
	d.state = StateConfirming
	return d.groups, nil
}

// Cancel abandons a confirming run with no side effects. A no-op in any
// other state: once sending has begun, the run cannot be canceled.
func (d *Dispatcher) Cancel() {
	if d.state != StateConfirming {
		return
	}
	d.reset()
}

// Send executes the confirmed run: one sequential relay send per
// addressable group, aggregated into a Result. The dispatcher returns to
// idle whether the run succeeds or not.
//
// The returned error is non-nil only for the fatal precondition (no
// syntactically valid reply-to address, zero network calls made) and for
// lifecycle misuse. All per-group failures are data in the Result.
func (d *Dispatcher) Send(ctx context.Context) (Result, error) {
	if d.state != StateConfirming {
		return Result{}, newError(ErrCodeBadState, "cannot send while %s", d.state)
	}
	defer d.reset()

	profile, _ := d.profile.Get()
	if !ValidEmail(profile.Email) {
		return Result{}, newError(ErrCodeMissingReplyTo,
			"add your email address in settings before sending orders")
	}

	var addressable []DestinationGroup
	for _, g := range d.groups {
		if g.Addressable() {
			addressable = append(addressable, g)
		}
	}
	if len(addressable) == 0 {
		return Result{}, newError(ErrCodeNoRecipients,
			"no items are assigned to a supplier")
	}

	d.state = StateSending

	// Session leaves active before the first network call, so a crash
	// mid-run is visible as in-flight rather than untouched.
	if err := d.sessions.Advance(ctx, d.sessionID, entity.StatusPendingEmails); err != nil {
		d.logger.Warn("failed to mark session pending", "session", d.sessionID, "error", err)
	}

	result := Result{Groups: make([]GroupOutcome, 0, len(addressable))}
	for _, g := range addressable {
		outcome := d.sendGroup(ctx, g, profile)
		if outcome.OK() {
			result.Sent++
		} else {
			result.Failed++
			d.logger.Warn("group send failed",
				"session", d.sessionID, "supplier", g.SupplierName, "reason", outcome.Reason)
		}
		result.Groups = append(result.Groups, outcome)
	}

	result.Outcome = classify(result.Sent, result.Failed)
	result.Message = summarize(result)

	// Any non-zero success is forward progress; allFailed leaves the
	// status unchanged so the user may retry.
	if result.Sent > 0 {
		if err := d.sessions.Advance(ctx, d.sessionID, entity.StatusCompleted); err != nil {
			d.logger.Warn("failed to complete session", "session", d.sessionID, "error", err)
		}
	}

	return result, nil
}

// sendGroup classifies one group's outcome. Validation failures are
// recorded without a network call; no failure of any kind aborts the
// remaining groups.
func (d *Dispatcher) sendGroup(ctx context.Context, g DestinationGroup, profile entity.Profile) GroupOutcome {
	outcome := GroupOutcome{SupplierID: g.SupplierID, SupplierName: g.SupplierName}

	if !ValidEmail(g.SupplierEmail) {
		outcome.Reason = fmt.Sprintf("%s has no valid email address", g.SupplierName)
		return outcome
	}

	items := make([]relay.Item, 0, len(g.Items))
	for _, it := range g.Items {
		items = append(items, relay.Item{ProductName: it.ProductName, Quantity: it.Quantity})
	}

	receipt, err := d.sender.Send(ctx, relay.Message{
		To:        g.SupplierEmail,
		ReplyTo:   profile.Email,
		Subject:   Subject(profile),
		Text:      Body(g, profile),
		Items:     items,
		StoreName: profile.StoreName,
		DeviceID:  d.deviceID,
	})
	if err != nil {
		outcome.Reason = fmt.Sprintf("%s: %v", g.SupplierName, err)
		return outcome
	}
	outcome.MessageID = receipt.MessageID
	return outcome
}

func (d *Dispatcher) reset() {
	d.state = StateIdle
	d.sessionID = ""
	d.groups = nil
}

func classify(sent, failed int) Outcome {
	switch {
	case sent == 0:
		return AllFailed
	case failed == 0:
		return AllSucceeded
	default:
		return Partial
	}
}

// summarize builds the bounded-length user-facing message: counts plus
// at most the first two underlying reasons.
func summarize(r Result) string {
	switch r.Outcome {
	case AllSucceeded:
		if r.Sent == 1 {
			return "Sent 1 email"
		}
		return fmt.Sprintf("Sent %d emails", r.Sent)
	case AllFailed:
		return fmt.Sprintf("All %d emails failed: %s", r.Failed, firstReasons(r.Groups))
	default:
		return fmt.Sprintf("%d of %d emails failed: %s (%d sent)",
			r.Failed, r.Sent+r.Failed, firstReasons(r.Groups), r.Sent)
	}
}

func firstReasons(groups []GroupOutcome) string {
	var reasons []string
	for _, g := range groups {
		if g.OK() {
			continue
		}
		reasons = append(reasons, g.Reason)
		if len(reasons) == maxReasons {
			break
		}
	}
	return strings.Join(reasons, "; ")
}
