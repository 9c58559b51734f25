package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Base kinds. Every error surfaced to the operator wraps exactly one of these.
var (
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStore             = errors.New("store error")
)

// Error carries a human-readable message, its kind and an optional cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func New(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Store wraps a persistence failure of operation op.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrStore, Msg: op, Err: err}
}

// HTTPStatus maps an error to the response code used by the API handlers.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message is the single line shown to the operator. Store failures never leak
// driver details.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrStore) {
		return "The store could not complete the operation, please try again."
	}
	return err.Error()
}
