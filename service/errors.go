package service

import "errors"

var (
	// ErrNoOutcomes is returned when a record request carries no Banker, Player or Tie code
	ErrNoOutcomes = errors.New("no outcomes to record")

	// ErrCodeInvalid is returned for unknown or already used redemption codes
	ErrCodeInvalid = errors.New("redemption code is invalid or already used")

	// ErrInvalidDuration is returned when a code duration is not one of the issued periods
	ErrInvalidDuration = errors.New("invalid code duration")

	// ErrNotAdmin is returned when a non-admin tries an admin operation
	ErrNotAdmin = errors.New("admin permission required")

	// ErrInvalidCount is returned when a code batch size is out of range
	ErrInvalidCount = errors.New("code count must be between 1 and 100")

	// ErrInvalidAmount is returned for negative slot bets or score rates
	ErrInvalidAmount = errors.New("amount must not be negative")
)
