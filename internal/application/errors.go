package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCannotDeleteSelf   = errors.New("cannot delete own account")
	ErrAccountNotFound    = errors.New("account no longer exists")

	ErrEventNotFound    = errors.New("event not found")
	ErrEventDateInPast  = errors.New("event date must be in the future")
	ErrInvalidEventDate = errors.New("invalid event date")

	ErrAlreadyRegistered = errors.New("already registered for event")
	ErrNotRegistered     = errors.New("not registered for event")

	ErrMissingImage  = errors.New("image file is required")
	ErrInvalidImage  = errors.New("image must be png or jpeg")
	ErrImageTooLarge = errors.New("image exceeds 5MB")
)

// ValidationError is a bad-input failure whose message is safe to return to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }
