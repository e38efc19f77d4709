// Package errors defines the coded errors seatplan reports to people and
// to API clients.
//
// Every user-facing failure carries a [Code]. The CLI prints
// [UserMessage]; the HTTP API answers with [HTTPStatus] and the code in a
// JSON envelope. Transport sentinels from the integrations package and the
// planner's stale-data error are mapped onto codes at the edges.
//
//	err := errors.New(errors.ErrCodeInvalidDate, "invalid departure date %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidDate) {
//	    // ask again
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

// Input codes: the request or flags were wrong.
const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidTrip     Code = "INVALID_TRIP"
	ErrCodeInvalidDate     Code = "INVALID_DATE"
	ErrCodeInvalidBusModel Code = "INVALID_BUS_MODEL"
	ErrCodeInvalidSeat     Code = "INVALID_SEAT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeIncompleteKey   Code = "INCOMPLETE_KEY"
)

// Backend codes: the booking backend could not answer.
const (
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeRateLimited  Code = "RATE_LIMITED"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
)

// ErrCodeStale marks seat data superseded by a newer load.
const ErrCodeStale Code = "STALE_DATA"

// ErrCodeInternal is everything else.
const ErrCodeInternal Code = "INTERNAL_ERROR"

// HTTPStatus is the response status the API uses for code.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeStale:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusServiceUnavailable
	case ErrCodeNetwork, ErrCodeUnauthorized:
		// The backend failed, not the caller.
		return http.StatusBadGateway
	case ErrCodeInternal, "":
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the text shown to a person: messages of coded errors
// without their codes, joined with their causes.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
