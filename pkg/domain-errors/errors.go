// Package domainerrors provides coded errors shared by the core identifier
// packages and the service layers built on top of them.
//
// Every failure the core can produce carries a Code. Callers that only need a
// yes/no answer use the IsValid* facades; callers that need the precise kind
// (tests, the HTTP layer, the account-number generator) inspect the code with
// HasCode or CodeOf.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies an error. Codes are stable strings and appear verbatim in
// HTTP error envelopes.
type Code string

// Generic codes.
const (
	CodeInternal        Code = "internal_error"
	CodeBadRequest      Code = "bad_request"
	CodeValidation      Code = "validation_error"
	CodeInvalidInput    Code = "invalid_input"
	CodeNotFound        Code = "not_found"
	CodeTooManyRequests Code = "too_many_requests"
	CodeTimeout         Code = "timeout"
)

// Identifier codes. These are deterministic functions of the input and never
// worth retrying.
const (
	// CodeInvalidFormat: a non-digit character, or the wrong exact length.
	CodeInvalidFormat Code = "invalid_format"
	// CodeInvalidLength: length outside an allowed range.
	CodeInvalidLength Code = "invalid_length"
	// CodeLeadingZeros: an account number beginning with four zeros.
	CodeLeadingZeros Code = "leading_zeros"
	// CodeInvalidChecksum: the computed checksum does not match the trailing digit.
	CodeInvalidChecksum Code = "invalid_checksum"
	// CodeNoValidChecksum: the weighted sum of the prefix leaves remainder 1
	// mod 11, so no checksum digit 0-9 can ever satisfy it.
	CodeNoValidChecksum Code = "no_valid_checksum"
)

// Error is a coded error with a human readable message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// New creates a coded error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the outermost coded error in err's chain has the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// HasCode reports whether any coded error in err's chain has the given code.
// Unlike Is it looks past the outermost wrapper, so a service-level wrap of a
// core failure still matches the core code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the outermost code in err's chain, or CodeInternal for
// uncoded errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsIdentifierCode reports whether code describes a rejected identifier rather
// than a malformed request or an internal failure.
func IsIdentifierCode(code Code) bool {
	switch code {
	case CodeInvalidFormat, CodeInvalidLength, CodeLeadingZeros, CodeInvalidChecksum, CodeNoValidChecksum:
		return true
	}
	return false
}

// ToHTTPStatus maps a code to the HTTP status used in error responses.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	}
	if IsIdentifierCode(code) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
