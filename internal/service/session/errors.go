package session

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrPrecondition        = errors.New("operation is not allowed in the current state")
	ErrConcurrentOperation = errors.New("another operation is in progress")
	ErrPersistence         = errors.New("session state was not persisted")
)
