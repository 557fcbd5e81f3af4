package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindValidation      Kind = "VALIDATION"
	KindPeerUnavailable Kind = "PEER_UNAVAILABLE"
	KindPeerRejected    Kind = "PEER_REJECTED"
	KindPeerFaulted     Kind = "PEER_FAULTED"
	KindTimeout         Kind = "TIMEOUT"
	KindRelayDegraded   Kind = "RELAY_DEGRADED"
	KindInternal        Kind = "INTERNAL"
)

// AppError is the single error type crossing package boundaries. Callers
// switch on Kind, never on the message.
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	// Status is the HTTP status a peer answered with, zero otherwise.
	Status int   `json:"status,omitempty"`
	Cause  error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another *AppError by kind and message so that sentinel values
// such as ErrEmptyReceiverList work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Constructors
func New(kind Kind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) error {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func NotFound(msg string) error {
	return New(KindNotFound, msg)
}

func Conflict(msg string) error {
	return New(KindConflict, msg)
}

func Validation(msg string) error {
	return New(KindValidation, msg)
}

func Internal(msg string, cause error) error {
	return Wrap(KindInternal, msg, cause)
}

// Peer builds a gateway failure carrying the peer's HTTP status, if any.
func Peer(kind Kind, status int, msg string, cause error) error {
	return &AppError{Kind: kind, Message: msg, Status: status, Cause: cause}
}

// KindOf reports the kind of the first AppError in err's chain. Errors that
// carry no kind are INTERNAL.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
