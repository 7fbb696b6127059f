/*
Package timeoff keeps the time-off log and the balance engine in step.

PURPOSE:
  A Record is one logged absence: who, which leave type, which days, how
  many hours, and whether those hours were actually deducted from the
  balance. Logging, editing, and deleting records drive the matching
  ledger effects; the ledger itself never looks back at this log.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: A stored time-off entry, including its ledger outcome
  - NewRecord / Changes: Input shapes for create and partial edit
  - Filter: Range and person filtering for queries
  - LogResult: What a LogTimeOff call did, including the remaining balance

RECORD-KEEPING OVER ENFORCEMENT:
  A record is created even when the balance could not cover it. The
  LedgerApplied field remembers which outcome happened, so a later
  deletion only restores hours that were really deducted.

SEE ALSO:
  - log.go: LogTimeOff / EditTimeOff / DeleteTimeOff
  - ledger/service.go: The balance engine these operations drive
*/
package timeoff

import (
	"time"

	"github.com/Stevensf718/simulation-ops-tracker/ledger"
)

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusApproved Status = "Approved"
	StatusPending  Status = "Pending"
	StatusDenied   Status = "Denied"
)

// =============================================================================
// RECORD
// =============================================================================

type RecordID string

func (id RecordID) String() string { return string(id) }

type Record struct {
	ID          RecordID
	PersonID    ledger.PersonID
	LeaveTypeID ledger.LeaveTypeID

	// StartDate and EndDate are an inclusive day range; EndDate never
	// precedes StartDate. Hours is deliberately independent of the range
	// length (partial days, split shifts).
	StartDate time.Time
	EndDate   time.Time
	Hours     ledger.Hours

	Status Status
	Notes  string

	// LedgerApplied records whether this entry's deduction was applied
	// to the balance when it was logged (or re-homed by a type change).
	LedgerApplied bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord carries the caller-supplied fields for LogTimeOff.
// An empty Status defaults to StatusApproved.
type NewRecord struct {
	PersonID    ledger.PersonID
	LeaveTypeID ledger.LeaveTypeID
	StartDate   time.Time
	EndDate     time.Time
	Hours       ledger.Hours
	Status      Status
	Notes       string
}

// Changes is a partial update; nil fields are left as stored.
type Changes struct {
	LeaveTypeID *ledger.LeaveTypeID
	StartDate   *time.Time
	EndDate     *time.Time
	Hours       *ledger.Hours
	Status      *Status
	Notes       *string
}

// Filter selects records. From/To keep any record whose own range
// overlaps [From, To]; either bound may be open.
type Filter struct {
	Person *ledger.PersonID
	From   *time.Time
	To     *time.Time
}

// =============================================================================
// LOG RESULT
// =============================================================================

// LogResult reports what LogTimeOff did. Deducted mirrors the ledger
// outcome; Available is the balance left after the attempt so callers
// can warn the user without a second lookup.
type LogResult struct {
	Record    Record
	Deducted  bool
	Available ledger.Hours
}
