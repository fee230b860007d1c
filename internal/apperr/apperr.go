// Package apperr defines the error taxonomy the service layer reports and
// the handler layer translates to HTTP statuses. Store and service code never
// leak internal fault text through these; anything unclassified stays a plain
// error and renders as a generic server fault.
package apperr

import "errors"

// Kind classifies an operation failure.
type Kind int

const (
	// KindInternal is the zero value: an unclassified fault.
	KindInternal Kind = iota
	// KindBadRequest marks malformed or missing input.
	KindBadRequest
	// KindConflict marks a uniqueness violation.
	KindConflict
	// KindInvalidCredentials marks a failed login (unknown email or hash mismatch).
	KindInvalidCredentials
	// KindNotApproved marks valid credentials on an account awaiting approval.
	KindNotApproved
	// KindUnauthenticated marks a missing, malformed, expired or forged token.
	KindUnauthenticated
	// KindForbidden marks an authenticated caller lacking rights.
	KindForbidden
	// KindNotFound marks a missing resource.
	KindNotFound
)

// Error carries a Kind plus a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func BadRequest(message string) *Error         { return New(KindBadRequest, message) }
func Conflict(message string) *Error           { return New(KindConflict, message) }
func InvalidCredentials(message string) *Error { return New(KindInvalidCredentials, message) }
func NotApproved(message string) *Error        { return New(KindNotApproved, message) }
func Unauthenticated(message string) *Error    { return New(KindUnauthenticated, message) }
func Forbidden(message string) *Error          { return New(KindForbidden, message) }
func NotFound(message string) *Error           { return New(KindNotFound, message) }

// KindOf extracts the Kind from err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
