// Package apperror define error kinds that every layer use to report rejected operation.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation was rejected.
type Kind int

// Error kinds. None of them is transient, so nothing retries on them.
const (
	Internal Kind = iota
	InvalidInput
	Unauthenticated
	Forbidden
	DuplicateEmail
	DuplicateApplication
	JobNotFound
	ApplicationNotFound
	InvalidTransition
)

var kindNames = map[Kind]string{
	Internal:             "Internal",
	InvalidInput:         "InvalidInput",
	Unauthenticated:      "Unauthenticated",
	Forbidden:            "Forbidden",
	DuplicateEmail:       "DuplicateEmail",
	DuplicateApplication: "DuplicateApplication",
	JobNotFound:          "JobNotFound",
	ApplicationNotFound:  "ApplicationNotFound",
	InvalidTransition:    "InvalidTransition",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is an operation failure carrying its Kind and optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New construct Error of given kind
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf return kind of the first *Error in err chain, Internal if there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// Message return message meant for the caller, hiding cause of internal error.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == Internal {
			return appErr.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
