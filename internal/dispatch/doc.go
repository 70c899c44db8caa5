// Package dispatch groups a session's line items by destination supplier
// and fans out one relay send per destination, aggregating partial
// success and failure into a single tri-state outcome.
//
// ARCHITECTURE:
//
// Per-run state machine:
//
//	idle -> confirming -> sending -> {allFailed | partial | allSucceeded} -> idle
//
// Confirming is entered with no network activity and is cancelable with
// no side effects. Once sending begins the run is not cancelable: each
// in-flight group send completes or fails naturally and no group is
// skipped, which keeps the success/failure accounting consistent.
//
// Sends are issued sequentially, not concurrently. This is a deliberate
// choice, not a limitation: it preserves supplier notification order and
// avoids hitting the relay with parallel bursts against unknown
// per-destination rate limits.
//
// The central partial-failure contract: a failure on one group never
// prevents subsequent groups from being attempted. Per-group outcomes
// are classified independently and returned as data; the only error a
// run surfaces directly is the fatal precondition (no valid reply-to
// address), which aborts before any network call.
package dispatch
