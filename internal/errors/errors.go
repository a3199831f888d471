package errors

import (
	"fmt"
	"strings"
)

// Code identifies a failure category.
type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"           // name or identifier does not resolve
	CodeValidation         Code = "VALIDATION"          // malformed or conflicting input
	CodeAuthentication     Code = "AUTHENTICATION"      // credential rejected
	CodeAuthorization      Code = "AUTHORIZATION"       // credential lacks access
	CodeRateLimited        Code = "RATE_LIMITED"        // upstream quota exceeded
	CodeMutationFailed     Code = "MUTATION_FAILED"     // remote reported an unsuccessful write
	CodeConfirmationFailed Code = "CONFIRMATION_FAILED" // write succeeded but post-write read failed
	CodeUnexpected         Code = "UNEXPECTED"          // anything uncategorized
)

// Error is a categorized failure with an optional recovery hint.
type Error struct {
	Code    Code
	Message string
	Hint    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Format renders the error as the diagnostic string sent over the tool
// boundary. The hint, when present, follows the message.
func (e *Error) Format() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (hint: %s)", e.Code, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNotFound creates a not-found error. The message should already name
// the offending identifier and enumerate valid alternatives where known.
func NewNotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NewValidation creates an error for invalid or conflicting input.
func NewValidation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// NewMutationFailed creates an error for a remote-reported unsuccessful write.
func NewMutationFailed(op string) *Error {
	return &Error{
		Code:    CodeMutationFailed,
		Message: fmt.Sprintf("%s was rejected by the API", op),
	}
}

// NewConfirmationFailed creates an error for a write that succeeded but
// could not be confirmed by a follow-up read. The side effect did occur;
// callers must not assume the operation was a no-op.
func NewConfirmationFailed(op string) *Error {
	return &Error{
		Code:    CodeConfirmationFailed,
		Message: fmt.Sprintf("%s succeeded but the result could not be fetched; the change was applied", op),
	}
}

// NewAuthentication creates an error for a rejected credential.
func NewAuthentication(msg string) *Error {
	return &Error{
		Code:    CodeAuthentication,
		Message: msg,
		Hint:    "regenerate your API key at linear.app/settings/api",
	}
}

// NewAuthorization creates an error for a credential lacking access.
func NewAuthorization(msg string) *Error {
	return &Error{Code: CodeAuthorization, Message: msg}
}

// NewRateLimited creates an error for an upstream quota rejection.
func NewRateLimited(msg string) *Error {
	return &Error{
		Code:    CodeRateLimited,
		Message: msg,
		Hint:    "wait a minute before retrying",
	}
}

// NewUnexpected wraps an uncategorized failure, preserving its message.
func NewUnexpected(err error) *Error {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Code: CodeUnexpected, Message: msg}
}

// Classify converts an arbitrary failure into an *Error. Already-categorized
// errors pass through unchanged; everything else is matched against known
// message substrings, falling back to UNEXPECTED with the original message
// preserved verbatim.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case containsAny(lower, "authentication required", "invalid api key", "unauthorized", "401"):
		return NewAuthentication(msg)
	case containsAny(lower, "forbidden", "access denied", "403"):
		return NewAuthorization(msg)
	case containsAny(lower, "rate limit", "ratelimited", "too many requests", "429"):
		return NewRateLimited(msg)
	case containsAny(lower, "not found", "entity not found"):
		return NewNotFound(msg)
	default:
		return NewUnexpected(err)
	}
}

// Is checks whether err is a categorized error with the given code.
func Is(err error, code Code) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
