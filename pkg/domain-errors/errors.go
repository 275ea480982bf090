// Package domainerrors provides coded errors shared by services, stores, and
// the HTTP layer. Codes are stable string enums so transport layers can map
// them without parsing messages, and callers can branch with HasCode instead
// of string matching.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for policy and transport decisions.
type Code string

const (
	// CodeInvalidInput marks malformed caller input (bad frame, bad
	// coordinate, unparsable ID). The caller's fault; not audit-worthy
	// when raised before any scoring happened.
	CodeInvalidInput Code = "invalid_input"

	// CodeBadRequest marks a structurally valid but unusable request.
	CodeBadRequest Code = "bad_request"

	// CodeUnauthorized marks a missing or invalid credential.
	CodeUnauthorized Code = "unauthorized"

	// CodeForbidden marks an authenticated but disallowed action.
	CodeForbidden Code = "forbidden"

	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "not_found"

	// CodeConflict marks a uniqueness or state conflict.
	CodeConflict Code = "conflict"

	// CodeUnavailable marks an external scorer or dependency that failed
	// after retry. The engine treats this as a rejection (fail-closed).
	CodeUnavailable Code = "unavailable"

	// CodePolicyRejection marks an expected, normal rejection produced by
	// the decision table. Always recorded in the audit trace.
	CodePolicyRejection Code = "policy_rejection"

	// CodeConsistencyViolation marks misuse or a lost race: check-out with
	// no open record, lock acquisition timeout. Distinct from policy
	// rejections because it is not a biometric failure.
	CodeConsistencyViolation Code = "consistency_violation"

	// CodeInternal marks an unexpected internal failure.
	CodeInternal Code = "internal"
)

// Error is a coded error with an operator-facing message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message, preserving the cause chain.
// Wrapping nil returns nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// CodeOf returns the code of the outermost coded error in err's chain,
// or CodeInternal when err carries no code.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	for errors.As(err, &coded) {
		if coded.Code == code {
			return true
		}
		err = coded.cause
		if err == nil {
			return false
		}
		coded = nil
	}
	return false
}

// MessageOf returns the message of the outermost coded error, or the raw
// error string for uncoded errors.
func MessageOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// HTTPStatus maps a code to its transport status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodePolicyRejection:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeConsistencyViolation:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
