/*
store.go - Persistence interface for balance rows

PURPOSE:
  Defines the interface between the balance engine and the database.
  Balances are mutable rows keyed by (person, leave type); the store
  reads, creates, and overwrites them. Transactional variants exist so
  a read-modify-write is a single atomic unit.

NIL MEANS ABSENT:
  Balance() returns (nil, nil) for a key that has never been touched.
  The engine treats that as a zero balance; it is not an error.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite store

SEE ALSO:
  - service.go: The only consumer of this interface
*/
package ledger

import "context"

// =============================================================================
// STORE - Balance row persistence
// =============================================================================

type Store interface {
	// Balance returns the row for the key, or (nil, nil) if absent.
	Balance(ctx context.Context, person PersonID, leaveType LeaveTypeID) (*Balance, error)

	// Balances returns all rows for a person, ordered by leave type ID.
	Balances(ctx context.Context, person PersonID) ([]Balance, error)

	// UpsertBalance creates or overwrites the row for (b.PersonID, b.LeaveTypeID).
	UpsertBalance(ctx context.Context, b Balance) error

	// EnsureBalance creates a zero row for the key if none exists.
	// Existing rows are left untouched.
	EnsureBalance(ctx context.Context, person PersonID, leaveType LeaveTypeID) error
}

// =============================================================================
// TRANSACTIONAL STORE - Atomic read-modify-write
// =============================================================================

// TxStore wraps Store with transaction support.
// Every mutation in the engine runs inside WithTx so a crashed or
// abandoned request can never leave a half-applied balance change.
type TxStore interface {
	Store

	// WithTx executes fn within a transaction.
	// If fn returns error, transaction is rolled back.
	// If fn returns nil, transaction is committed.
	WithTx(ctx context.Context, fn func(Store) error) error
}
