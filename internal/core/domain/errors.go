package domain

import (
	"errors"
	"fmt"
)

// Access-policy outcomes. Every authorization check returns one of these
// (possibly wrapped) so the HTTP layer can map them without string matching.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("access forbidden")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrConflict         = errors.New("conflict")
	ErrNoRecipient      = errors.New("no recipient available for this order yet")
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
)

var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrOrderNotFound        = fmt.Errorf("order %w", ErrNotFound)
	ErrImageNotFound        = fmt.Errorf("image %w", ErrNotFound)
	ErrCommentNotFound      = fmt.Errorf("comment %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)
)
