package models

import "errors"

// Error taxonomy shared across the engine. Callers match with errors.Is;
// packages wrap these with fmt.Errorf("...: %w", ...) to add detail.
var (
	// ErrInvalidInput covers malformed SPI values and malformed requests
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidProjectionWindow is returned when projection_days is outside [1,365]
	ErrInvalidProjectionWindow = errors.New("invalid projection window")

	// ErrUnknownActionID is returned when an explicit action id is not in the catalog
	ErrUnknownActionID = errors.New("unknown action id")

	// ErrNoPlantsAvailable is returned when a zone has no active plants to simulate
	ErrNoPlantsAvailable = errors.New("no active plants available")

	// ErrInvariantViolation marks a computed value that escaped its legal
	// range. Never recovered; the run aborts rather than return wrong numbers.
	ErrInvariantViolation = errors.New("computation invariant violation")
)
