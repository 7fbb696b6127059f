/*
store.go - Persistence interface for time-off records

PURPOSE:
  Record rows are plain CRUD; the interesting invariants (ledger
  ordering, restore policy) live in log.go, not here. Record() returns
  (nil, nil) for an unknown ID so the service owns the not-found error.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite store
*/
package timeoff

import "context"

type Store interface {
	// InsertRecord persists a new record.
	InsertRecord(ctx context.Context, r Record) error

	// UpdateRecord overwrites the record with r.ID.
	UpdateRecord(ctx context.Context, r Record) error

	// DeleteRecord removes the record. Deleting an absent ID is a no-op.
	DeleteRecord(ctx context.Context, id RecordID) error

	// Record returns the record, or (nil, nil) if absent.
	Record(ctx context.Context, id RecordID) (*Record, error)

	// Records returns matching records, newest start date first.
	Records(ctx context.Context, f Filter) ([]Record, error)
}
