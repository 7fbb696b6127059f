/*
Package ledger implements the leave-accrual balance engine.

PURPOSE:
  This package tracks, per (person, leave type) pair, how many hours of
  leave are available and how many have been used. Balances are mutable
  rows updated in place: a deduction moves hours from available to used,
  a restoration moves them back. The package has no knowledge of people
  or leave types beyond their identifiers.

KEY CONCEPTS IN THIS FILE (types.go):
  - Hours: A decimal quantity of leave hours
  - PersonID / LeaveTypeID: Type-safe identifiers (opaque to the engine)
  - Balance: The mutable available/used pair for one key
  - DeductionResult: The reported outcome of a deduction attempt

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal so 0.1 + 0.2 is exactly 0.3
  2. Type Safety: Strong typing for IDs prevents mixing person/type IDs
  3. Opacity: Identifiers are never interpreted; renames happen elsewhere
  4. Reporting over refusal: insufficient balance is an outcome, not an error

USAGE:
  svc := ledger.NewService(store)
  res, err := svc.Deduct(ctx, person, sickLeave, ledger.NewHours(40))
  if !res.Applied {
      // balance was short by res.Shortfall; nothing changed
  }

SEE ALSO:
  - service.go: The eight balance operations
  - errors.go: Error taxonomy
  - store.go: Persistence interface
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURS - Decimal quantity of leave hours
// =============================================================================

type Hours struct {
	Value decimal.Decimal
}

func NewHours(value float64) Hours {
	return Hours{Value: decimal.NewFromFloat(value)}
}

func HoursFromInt(value int) Hours {
	return Hours{Value: decimal.NewFromInt(int64(value))}
}

// ParseHours reads the canonical string form produced by String.
// The store uses this pair for exact round-trips.
func ParseHours(s string) (Hours, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Hours{}, err
	}
	return Hours{Value: d}, nil
}

func (h Hours) Add(o Hours) Hours        { return Hours{Value: h.Value.Add(o.Value)} }
func (h Hours) Sub(o Hours) Hours        { return Hours{Value: h.Value.Sub(o.Value)} }
func (h Hours) Neg() Hours               { return Hours{Value: h.Value.Neg()} }
func (h Hours) IsNegative() bool         { return h.Value.IsNegative() }
func (h Hours) IsZero() bool             { return h.Value.IsZero() }
func (h Hours) IsPositive() bool         { return h.Value.IsPositive() }
func (h Hours) GreaterThan(o Hours) bool { return h.Value.GreaterThan(o.Value) }
func (h Hours) LessThan(o Hours) bool    { return h.Value.LessThan(o.Value) }
func (h Hours) Equal(o Hours) bool       { return h.Value.Equal(o.Value) }
func (h Hours) Float64() float64         { f, _ := h.Value.Float64(); return f }
func (h Hours) String() string           { return h.Value.String() }

// =============================================================================
// IDENTIFIERS
// =============================================================================

// PersonID and LeaveTypeID are surrogate identifiers. They stay stable
// across renames; the human-readable names live in the roster package and
// are resolved to IDs before the engine is ever called.
type PersonID string
type LeaveTypeID string

func (id PersonID) String() string    { return string(id) }
func (id LeaveTypeID) String() string { return string(id) }

// =============================================================================
// BALANCE - Mutable available/used pair for one (person, leave type) key
// =============================================================================

type Balance struct {
	PersonID    PersonID
	LeaveTypeID LeaveTypeID
	Available   Hours
	Used        Hours
	UpdatedAt   time.Time
}

// =============================================================================
// DEDUCTION RESULT - Reported outcome of a deduction attempt
// =============================================================================

// DeductionResult reports what a Deduct call did. When Applied is false the
// balance was left untouched and Shortfall says how many hours were missing.
// Available always carries the available hours after the attempt.
type DeductionResult struct {
	Applied   bool
	Available Hours
	Shortfall Hours
}
