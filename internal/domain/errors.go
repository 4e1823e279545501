package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock is returned when a quantity would exceed available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInsufficientPayment is returned when tendered cash does not cover the total.
	ErrInsufficientPayment = errors.New("insufficient payment")
	// ErrInvalidQuantity is returned for non-positive line quantities.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidState is returned when an operation is not allowed in the current state.
	ErrInvalidState = errors.New("invalid state")
	// ErrValidation wraps missing or rejected input, including backend validation errors.
	ErrValidation = errors.New("validation failed")
	// ErrConnection indicates the backend could not be reached.
	ErrConnection   = errors.New("backend unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
