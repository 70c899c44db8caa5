package dispatch

import "fmt"

// DispatchError represents a failure detected before or around a send
// run, as opposed to per-group failures, which are aggregated into the
// Result rather than returned as errors.
type DispatchError struct {
	// Code identifies the error category.
	Code DispatchErrorCode

	// Message is a human-readable description.
	Message string
}

// DispatchErrorCode categorizes dispatch errors.
type DispatchErrorCode string

const (
	// ErrCodeMissingReplyTo indicates the fatal precondition: no valid
	// reply-to address, so the run aborts before any network call.
	ErrCodeMissingReplyTo DispatchErrorCode = "MISSING_REPLY_TO"

	// ErrCodeSessionNotFound indicates the requested session id is
	// unknown.
	ErrCodeSessionNotFound DispatchErrorCode = "SESSION_NOT_FOUND"

	// ErrCodeNoRecipients indicates the session has no addressable
	// destination groups (every item is unassigned, or there are no
	// items at all).
	ErrCodeNoRecipients DispatchErrorCode = "NO_RECIPIENTS"

	// ErrCodeBadState indicates a lifecycle misuse, e.g. Send without a
	// prior Prepare.
	ErrCodeBadState DispatchErrorCode = "BAD_STATE"
)

// Error implements the error interface.
func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code DispatchErrorCode, format string, args ...any) *DispatchError {
	return &DispatchError{Code: code, Message: fmt.Sprintf(format, args...)}
}
