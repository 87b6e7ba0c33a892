package errors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalid      = errors.New("invalid")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotVerified  = errors.New("not verified")
	ErrInternal     = errors.New("internal")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

type messageError struct {
	cause error
	msg   string
}

func (e *messageError) Error() string {
	return e.msg
}

func (e *messageError) Unwrap() error {
	return e.cause
}

// WithMessage attaches a user-facing reason to a sentinel. errors.Is still
// matches the sentinel, Error() yields the reason.
func WithMessage(cause error, msg string) error {
	return &messageError{cause: cause, msg: msg}
}

// Message returns the user-facing reason attached via WithMessage, or
// fallback when the chain carries none.
func Message(err error, fallback string) string {
	var me *messageError
	if errors.As(err, &me) {
		return me.msg
	}
	return fallback
}
