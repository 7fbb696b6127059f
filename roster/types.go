// Package roster maintains the person directory and the leave-type
// catalog. It owns the human-readable names; the balance engine only
// ever sees the surrogate IDs minted here, so renames never orphan a
// balance or a time-off record.
package roster

import (
	"time"

	"github.com/Stevensf718/simulation-ops-tracker/ledger"
)

type Person struct {
	ID        ledger.PersonID
	Name      string
	Role      string
	Active    bool
	CreatedAt time.Time
}

type LeaveType struct {
	ID   ledger.LeaveTypeID
	Name string

	// DefaultAnnualHours is the informational yearly baseline shown in
	// summaries. It is never a cap; balances move only through the engine.
	DefaultAnnualHours ledger.Hours

	Active    bool
	CreatedAt time.Time
}
