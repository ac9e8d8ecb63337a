package apperr

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable error code the frontend branches on.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindNotFound          Kind = "NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindStateConflict     Kind = "STATE_CONFLICT"
	KindCapacityExhausted Kind = "CAPACITY_EXHAUSTED"
	KindOutOfStock        Kind = "OUT_OF_STOCK"
	KindInternal          Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(msg string) *Error        { return New(KindValidation, msg) }
func NotFound(msg string) *Error          { return New(KindNotFound, msg) }
func Forbidden(msg string) *Error         { return New(KindForbidden, msg) }
func StateConflict(msg string) *Error     { return New(KindStateConflict, msg) }
func CapacityExhausted(msg string) *Error { return New(KindCapacityExhausted, msg) }
func OutOfStock(msg string) *Error        { return New(KindOutOfStock, msg) }

// KindOf classifies any error; non-app errors map to INTERNAL so nothing
// leaks to the client by accident.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
