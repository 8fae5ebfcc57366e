package services

import "errors"

// Failure taxonomy shared by every service. Controllers translate these into
// HTTP status codes with errors.Is; services wrap them with context via
// fmt.Errorf("...: %w", Err...).
var (
	ErrValidation  = errors.New("validation failed")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")
	ErrAuth        = errors.New("invalid credentials")
)
