// Package relay is the client for the outbound-email relay collaborator.
//
// The relay is consumed through a narrow request/response contract:
// one POST per destination carrying the order email plus an opaque
// per-device identifier the relay uses for rate limiting. The relay's
// own timeout bounds each send; this layer defines none of its own.
package relay
