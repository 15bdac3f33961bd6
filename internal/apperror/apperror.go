// Package apperror defines the error kinds surfaced by the journal, streak
// and footprint services.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation             Kind = "validation"
	KindOutOfOrderEntry        Kind = "out_of_order_entry"
	KindFreezeUnavailable      Kind = "freeze_unavailable"
	KindLookupFallbackUsed     Kind = "lookup_fallback_used"
	KindPersistenceUnavailable Kind = "persistence_unavailable"
	KindNotFound               Kind = "not_found"
	KindUnauthorized           Kind = "unauthorized"
	KindConflict               Kind = "conflict"
	KindInternal               Kind = "internal"
)

// Error carries a stable kind and a human readable message.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, apperror.ErrValidation) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation             = &Error{Kind: KindValidation}
	ErrFreezeUnavailable      = &Error{Kind: KindFreezeUnavailable}
	ErrPersistenceUnavailable = &Error{Kind: KindPersistenceUnavailable}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrUnauthorized           = &Error{Kind: KindUnauthorized}
	ErrConflict               = &Error{Kind: KindConflict}
)

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return Newf(KindValidation, format, args...)
}

func Persistence(err error, msg string) *Error {
	return Wrap(KindPersistenceUnavailable, err, msg)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind to a response code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindFreezeUnavailable, KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindPersistenceUnavailable:
		return http.StatusServiceUnavailable
	case KindOutOfOrderEntry, KindLookupFallbackUsed:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
