package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Validation errors
	ErrInvalidPlayerID = errors.New("player ID must be a string of at least 5 characters")
	ErrInvalidAmount   = errors.New("amount must be a non-negative integer")
	ErrZeroAmount      = errors.New("amount must be a positive integer")
	ErrAmountTooLarge  = errors.New("amount exceeds the maximum credit")

	// Transaction errors
	ErrTxAborted = errors.New("transaction could not commit after retries")
)
