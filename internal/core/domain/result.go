package domain

// FailureKind classifies an expected business failure so callers can map it
// to a transport status without string matching.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNotFound
	FailureUnauthorized
	FailureConflict
	FailureValidation
)

// Result is a tagged outcome: either a success carrying a value, or an
// expected business failure carrying a user-facing message. Infrastructure
// failures (store unreachable, network errors) are not Results — they travel
// as ordinary Go errors alongside.
type Result[T any] struct {
	ok      bool
	value   T
	kind    FailureKind
	message string
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{ok: true, value: v}
}

// Fail wraps an expected business failure with a user-facing message.
func Fail[T any](kind FailureKind, message string) Result[T] {
	return Result[T]{kind: kind, message: message}
}

// IsOk reports whether the result is a success.
func (r Result[T]) IsOk() bool { return r.ok }

// Value returns the success value; the zero value when the result failed.
func (r Result[T]) Value() T { return r.value }

// Kind returns the failure classification; FailureNone on success.
func (r Result[T]) Kind() FailureKind { return r.kind }

// Message returns the user-facing failure message; empty on success.
func (r Result[T]) Message() string { return r.message }

// PagedResult is a windowed view over a larger ordered collection plus the
// total count of the pre-pagination set.
type PagedResult[T any] struct {
	Items        []T   `json:"items"`
	TotalRecords int64 `json:"total_records"`
	PageIndex    int   `json:"page_index"`
	PageSize     int   `json:"page_size"`
}
