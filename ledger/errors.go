/*
errors.go - Error taxonomy for the balance engine

PURPOSE:
  All engine error types in one place. Note what is NOT here: running a
  balance short is not an error. Deduct reports insufficiency through
  DeductionResult so callers can record the attempt and warn the user;
  only malformed input and persistence failures surface as errors.

USAGE:
  Callers classify with errors.Is:

    if errors.Is(err, ledger.ErrNegativeHours) {
        // 400, not 500
    }

SEE ALSO:
  - service.go: Produces these errors
  - api/handlers.go: Maps them to HTTP status codes
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNegativeHours is returned when an operation that takes an unsigned
	// quantity (Deduct, Restore, Transfer) receives negative hours.
	// AddHours is the sanctioned signed path for corrections.
	ErrNegativeHours = errors.New("negative hours")

	// ErrSameLeaveType is returned when a transfer names the same leave type
	// on both sides.
	ErrSameLeaveType = errors.New("transfer requires two distinct leave types")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NegativeHoursError says which operation rejected which value.
type NegativeHoursError struct {
	Op    string
	Hours Hours
}

func (e *NegativeHoursError) Error() string {
	return fmt.Sprintf("%s: negative hours %v", e.Op, e.Hours.Value)
}

func (e *NegativeHoursError) Unwrap() error {
	return ErrNegativeHours
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNegativeHours) ||
		errors.Is(err, ErrSameLeaveType)
}
