/*
log.go - Time-off operations and their ledger synchronization

PURPOSE:
  Implements the one rule that keeps the log and the balance engine
  consistent: ledger effects first, record writes last. Every operation
  that changes a record drives the matching balance change before it
  touches the stored record, so a ledger failure leaves the log as it
  was.

SYNCHRONIZATION CONTRACT:
  LogTimeOff    -> Deduct(type, hours), then insert the record with the
                   outcome. The record is inserted even when the balance
                   was short; enforcement is the caller's business.
  EditTimeOff   -> if the leave type changes, Transfer the ORIGINAL
                   stored hours from the old type to the new one, then
                   apply the field changes. Changing hours alone moves
                   nothing; the original deduction stands as-is.
  DeleteTimeOff -> Restore(type, hours) only if the record's deduction
                   was applied, then delete the record. Deleting an
                   entry that never got its hours does not mint them.

COMPENSATION:
  If inserting the record fails after a successful deduction, the hours
  are restored before the error returns, so a storage fault cannot burn
  balance with no record to show for it.

SEE ALSO:
  - types.go: Record, Changes, Filter, LogResult
  - ledger/service.go: Deduct / Restore / Transfer semantics
*/
package timeoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Stevensf718/simulation-ops-tracker/ledger"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrRecordNotFound is returned when a record ID does not exist.
	ErrRecordNotFound = errors.New("time-off record not found")

	// ErrInvalidRange is returned when an end date precedes its start date.
	ErrInvalidRange = errors.New("invalid range: end before start")
)

// RecordNotFoundError carries the missing ID.
type RecordNotFoundError struct {
	ID RecordID
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("time-off record not found: %s", e.ID)
}

func (e *RecordNotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// =============================================================================
// LEAVE LEDGER - The slice of the balance engine this package drives
// =============================================================================

// LeaveLedger is the balance engine as seen from the log. Satisfied by
// *ledger.Service.
type LeaveLedger interface {
	Deduct(ctx context.Context, person ledger.PersonID, leaveType ledger.LeaveTypeID, hours ledger.Hours) (ledger.DeductionResult, error)
	Restore(ctx context.Context, person ledger.PersonID, leaveType ledger.LeaveTypeID, hours ledger.Hours) error
	Transfer(ctx context.Context, person ledger.PersonID, fromType, toType ledger.LeaveTypeID, hours ledger.Hours) error
}

// =============================================================================
// LOG - Time-off operations
// =============================================================================

type Log struct {
	store  Store
	ledger LeaveLedger
}

func NewLog(store Store, ledger LeaveLedger) *Log {
	return &Log{store: store, ledger: ledger}
}

// LogTimeOff deducts the hours and records the absence. The record is
// created whether or not the deduction applied; LogResult says which
// outcome happened and what balance remains. Only malformed input or a
// storage failure returns an error.
func (l *Log) LogTimeOff(ctx context.Context, nr NewRecord) (LogResult, error) {
	start, end := day(nr.StartDate), day(nr.EndDate)
	if end.Before(start) {
		return LogResult{}, ErrInvalidRange
	}

	status := nr.Status
	if status == "" {
		status = StatusApproved
	}

	res, err := l.ledger.Deduct(ctx, nr.PersonID, nr.LeaveTypeID, nr.Hours)
	if err != nil {
		return LogResult{}, err
	}

	now := time.Now().UTC()
	rec := Record{
		ID:            RecordID(uuid.NewString()),
		PersonID:      nr.PersonID,
		LeaveTypeID:   nr.LeaveTypeID,
		StartDate:     start,
		EndDate:       end,
		Hours:         nr.Hours,
		Status:        status,
		Notes:         nr.Notes,
		LedgerApplied: res.Applied,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := l.store.InsertRecord(ctx, rec); err != nil {
		if res.Applied {
			if rerr := l.ledger.Restore(ctx, nr.PersonID, nr.LeaveTypeID, nr.Hours); rerr != nil {
				return LogResult{}, fmt.Errorf("insert record: %v; restore after failed insert: %w", err, rerr)
			}
		}
		return LogResult{}, fmt.Errorf("insert record: %w", err)
	}

	return LogResult{Record: rec, Deducted: res.Applied, Available: res.Available}, nil
}

// EditTimeOff applies a partial update. A changed leave type transfers
// the originally stored hours to the new type before any field lands on
// the record; a simultaneously supplied hours value changes the record
// only. Returns the updated record.
func (l *Log) EditTimeOff(ctx context.Context, id RecordID, ch Changes) (Record, error) {
	rec, err := l.store.Record(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if rec == nil {
		return Record{}, &RecordNotFoundError{ID: id}
	}

	updated := *rec
	if ch.LeaveTypeID != nil {
		updated.LeaveTypeID = *ch.LeaveTypeID
	}
	if ch.StartDate != nil {
		updated.StartDate = day(*ch.StartDate)
	}
	if ch.EndDate != nil {
		updated.EndDate = day(*ch.EndDate)
	}
	if ch.Hours != nil {
		updated.Hours = *ch.Hours
	}
	if ch.Status != nil {
		updated.Status = *ch.Status
	}
	if ch.Notes != nil {
		updated.Notes = *ch.Notes
	}
	if updated.EndDate.Before(updated.StartDate) {
		return Record{}, ErrInvalidRange
	}

	if updated.LeaveTypeID != rec.LeaveTypeID {
		// The move uses the hours as they were stored, regardless of any
		// new hours value in the same edit.
		if err := l.ledger.Transfer(ctx, rec.PersonID, rec.LeaveTypeID, updated.LeaveTypeID, rec.Hours); err != nil {
			return Record{}, err
		}
		// The destination type now carries the deduction.
		updated.LedgerApplied = true
	}

	updated.UpdatedAt = time.Now().UTC()
	if err := l.store.UpdateRecord(ctx, updated); err != nil {
		return Record{}, fmt.Errorf("update record: %w", err)
	}
	return updated, nil
}

// DeleteTimeOff removes a record, first restoring its hours if its
// deduction was applied. Deleting a record that never got its hours
// leaves the balance alone.
func (l *Log) DeleteTimeOff(ctx context.Context, id RecordID) error {
	rec, err := l.store.Record(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return &RecordNotFoundError{ID: id}
	}

	if rec.LedgerApplied {
		if err := l.ledger.Restore(ctx, rec.PersonID, rec.LeaveTypeID, rec.Hours); err != nil {
			return err
		}
	}
	return l.store.DeleteRecord(ctx, id)
}

// Record returns one record by ID.
func (l *Log) Record(ctx context.Context, id RecordID) (Record, error) {
	rec, err := l.store.Record(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if rec == nil {
		return Record{}, &RecordNotFoundError{ID: id}
	}
	return *rec, nil
}

// Records returns records matching the filter, newest start date first.
func (l *Log) Records(ctx context.Context, f Filter) ([]Record, error) {
	return l.store.Records(ctx, f)
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// day drops the time-of-day part; records are day-granular.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
