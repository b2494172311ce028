package domain

import "errors"

// Sentinel errors shared across services. Callers match with errors.Is;
// the api layer maps them to HTTP status codes.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientSeats = errors.New("not enough available seats")
	ErrCapacityExceeded  = errors.New("availability would exceed total seats")
)
