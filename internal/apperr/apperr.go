// Package apperr defines the failure taxonomy shared by all services.
// Services raise these structured errors; the handler layer is the only
// place they are flattened into a user-facing response envelope.
package apperr

import "fmt"

// Kind classifies a failure so the handler boundary can map it to a
// status code and message prefix without string matching.
type Kind int

const (
	KindUnauthenticated Kind = iota // no or invalid session
	KindUnauthorized                // valid session, insufficient role or ownership
	KindNotFound                    // entity missing or soft-deleted
	KindInvalid                     // missing/malformed field, illegal role assignment
	KindConflict                    // uniqueness violation, duplicate assignment
	KindStorage                     // underlying persistence failure
)

type Error struct {
	Kind Kind
	Msg  string
	// Field names the offending field for KindInvalid failures.
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Msg
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Msg: msg} }
func Unauthorized(msg string) *Error    { return &Error{Kind: KindUnauthorized, Msg: msg} }
func NotFound(resource string) *Error   { return &Error{Kind: KindNotFound, Msg: resource + " not found"} }
func Conflict(msg string) *Error        { return &Error{Kind: KindConflict, Msg: msg} }

func Invalid(field, msg string) *Error {
	return &Error{Kind: KindInvalid, Msg: msg, Field: field}
}

// Storage wraps a persistence failure so it is never surfaced verbatim.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Msg: "storage failure", Err: err}
}

// KindOf reports the kind of err if it is an *Error.
func KindOf(err error) (Kind, bool) {
	e, ok := err.(*Error)
	if !ok {
		return 0, false
	}
	return e.Kind, true
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

// Invalidf builds a KindInvalid error with a formatted message.
func Invalidf(field, format string, args ...any) *Error {
	return Invalid(field, fmt.Sprintf(format, args...))
}
