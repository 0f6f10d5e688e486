package domain

import (
	"errors"
	"strings"
)

// Error codes understood by the HTTP layer.
const (
	EInternal     = "internal error"
	ENotFound     = "not found"
	EInvalid      = "invalid"
	EForbidden    = "forbidden"
	EUnauthorized = "unauthorized"
)

// Error is the error type returned by services. Code drives the response
// status, Msg is shown to the caller, Op and Err are for operators.
type Error struct {
	Code string
	Msg  string
	Op   string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		b.WriteString(e.Msg)
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString("<" + e.Code + ">")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the outermost *Error in err's chain, or
// EInternal when there is none.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return EInternal
}

// ErrorMessage returns the caller-facing message for err. Internal errors
// never leak their cause.
func ErrorMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Code == EInternal || e.Code == "" {
		return "An internal error occurred"
	}
	if e.Msg != "" {
		return e.Msg
	}
	return e.Code
}

func NotFound(msg string) *Error {
	return &Error{Code: ENotFound, Msg: msg}
}

func Invalid(msg string) *Error {
	return &Error{Code: EInvalid, Msg: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Code: EForbidden, Msg: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Code: EUnauthorized, Msg: msg}
}

func Internal(op string, err error) *Error {
	return &Error{Code: EInternal, Op: op, Err: err}
}
