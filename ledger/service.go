/*
service.go - The balance operations

PURPOSE:
  Service owns every read and write of balance rows. Each (person, leave
  type) key has its own critical section so concurrent requests touching
  the same balance serialize, while requests for different balances run
  in parallel. Mutations additionally run inside a store transaction, so
  a read-modify-write commits or rolls back as one unit.

CRITICAL INVARIANTS:
  1. Deduct either applies fully or changes nothing; insufficiency is a
     reported outcome carried in DeductionResult, never an error.
  2. Transfer writes both rows in one transaction and keeps the sum of
     available+used across the two keys constant.
  3. A key that was never touched reads as a zero balance.

LOCK ORDER:
  Transfer locks both keys sorted by (person, leave type). Two transfers
  over the same pair in opposite directions therefore cannot deadlock.

SEE ALSO:
  - types.go: Hours, Balance, DeductionResult
  - timeoff/log.go: Keeps time-off records synchronized with this engine
*/
package ledger

import (
	"context"
	"sort"
	"sync"
)

// =============================================================================
// SERVICE
// =============================================================================

type Service struct {
	store TxStore

	mu    sync.Mutex
	locks map[balanceKey]*sync.Mutex
}

func NewService(store TxStore) *Service {
	return &Service{
		store: store,
		locks: make(map[balanceKey]*sync.Mutex),
	}
}

type balanceKey struct {
	person    PersonID
	leaveType LeaveTypeID
}

func (k balanceKey) less(o balanceKey) bool {
	if k.person != o.person {
		return k.person < o.person
	}
	return k.leaveType < o.leaveType
}

func (s *Service) keyLock(k balanceKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[k]
	if !ok {
		l = &sync.Mutex{}
		s.locks[k] = l
	}
	return l
}

// lock acquires the critical sections for the given keys in sorted order
// and returns the matching unlock.
func (s *Service) lock(keys ...balanceKey) func() {
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	locked := make([]*sync.Mutex, 0, len(keys))
	for i, k := range keys {
		if i > 0 && keys[i-1] == k {
			continue
		}
		l := s.keyLock(k)
		l.Lock()
		locked = append(locked, l)
	}
	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}

// current reads the row for the key, substituting a zero row when absent.
func current(ctx context.Context, st Store, person PersonID, leaveType LeaveTypeID) (Balance, error) {
	b, err := st.Balance(ctx, person, leaveType)
	if err != nil {
		return Balance{}, err
	}
	if b == nil {
		return Balance{PersonID: person, LeaveTypeID: leaveType}, nil
	}
	return *b, nil
}

// =============================================================================
// OPERATIONS
// =============================================================================

// InitializeForPerson creates a zero row for every given leave type.
// Rows that already exist are left untouched, so re-running it is safe.
// Leave types introduced later are not retroactively initialized.
func (s *Service) InitializeForPerson(ctx context.Context, person PersonID, leaveTypes []LeaveTypeID) error {
	return s.store.WithTx(ctx, func(st Store) error {
		for _, lt := range leaveTypes {
			if err := st.EnsureBalance(ctx, person, lt); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddHours applies a signed adjustment to available hours and returns the
// new available balance. Used is untouched. This is the administrative
// path: negative deltas are allowed and there is no sufficiency check.
func (s *Service) AddHours(ctx context.Context, person PersonID, leaveType LeaveTypeID, delta Hours) (Hours, error) {
	unlock := s.lock(balanceKey{person, leaveType})
	defer unlock()

	var newAvailable Hours
	err := s.store.WithTx(ctx, func(st Store) error {
		b, err := current(ctx, st, person, leaveType)
		if err != nil {
			return err
		}
		b.Available = b.Available.Add(delta)
		newAvailable = b.Available
		return st.UpsertBalance(ctx, b)
	})
	if err != nil {
		return Hours{}, err
	}
	return newAvailable, nil
}

// SetExactBalance overwrites available hours with an exact value.
// Used is untouched.
func (s *Service) SetExactBalance(ctx context.Context, person PersonID, leaveType LeaveTypeID, exact Hours) error {
	unlock := s.lock(balanceKey{person, leaveType})
	defer unlock()

	return s.store.WithTx(ctx, func(st Store) error {
		b, err := current(ctx, st, person, leaveType)
		if err != nil {
			return err
		}
		b.Available = exact
		return st.UpsertBalance(ctx, b)
	})
}

// Deduct moves hours from available to used if the balance covers them.
// If it does not, nothing changes and the result reports the shortfall.
// A key that was never touched gets its zero row created either way.
func (s *Service) Deduct(ctx context.Context, person PersonID, leaveType LeaveTypeID, hours Hours) (DeductionResult, error) {
	if hours.IsNegative() {
		return DeductionResult{}, &NegativeHoursError{Op: "deduct", Hours: hours}
	}

	unlock := s.lock(balanceKey{person, leaveType})
	defer unlock()

	var res DeductionResult
	err := s.store.WithTx(ctx, func(st Store) error {
		if err := st.EnsureBalance(ctx, person, leaveType); err != nil {
			return err
		}
		b, err := current(ctx, st, person, leaveType)
		if err != nil {
			return err
		}
		if hours.GreaterThan(b.Available) {
			res = DeductionResult{
				Applied:   false,
				Available: b.Available,
				Shortfall: hours.Sub(b.Available),
			}
			return nil
		}
		b.Available = b.Available.Sub(hours)
		b.Used = b.Used.Add(hours)
		res = DeductionResult{Applied: true, Available: b.Available}
		return st.UpsertBalance(ctx, b)
	})
	if err != nil {
		return DeductionResult{}, err
	}
	return res, nil
}

// Restore moves hours from used back to available. There is no check
// against used: restoring more than was ever deducted drives used
// negative, which corrective paths are allowed to do.
func (s *Service) Restore(ctx context.Context, person PersonID, leaveType LeaveTypeID, hours Hours) error {
	if hours.IsNegative() {
		return &NegativeHoursError{Op: "restore", Hours: hours}
	}

	unlock := s.lock(balanceKey{person, leaveType})
	defer unlock()

	return s.store.WithTx(ctx, func(st Store) error {
		b, err := current(ctx, st, person, leaveType)
		if err != nil {
			return err
		}
		b.Available = b.Available.Add(hours)
		b.Used = b.Used.Sub(hours)
		return st.UpsertBalance(ctx, b)
	})
}

// Transfer moves a deduction from one leave type to another for the same
// person: the source type gets the hours back, the destination type
// records them as used. Both rows are written in one transaction and
// neither side is checked for sufficiency.
func (s *Service) Transfer(ctx context.Context, person PersonID, fromType, toType LeaveTypeID, hours Hours) error {
	if hours.IsNegative() {
		return &NegativeHoursError{Op: "transfer", Hours: hours}
	}
	if fromType == toType {
		return ErrSameLeaveType
	}

	unlock := s.lock(balanceKey{person, fromType}, balanceKey{person, toType})
	defer unlock()

	return s.store.WithTx(ctx, func(st Store) error {
		from, err := current(ctx, st, person, fromType)
		if err != nil {
			return err
		}
		to, err := current(ctx, st, person, toType)
		if err != nil {
			return err
		}
		from.Available = from.Available.Add(hours)
		from.Used = from.Used.Sub(hours)
		to.Available = to.Available.Sub(hours)
		to.Used = to.Used.Add(hours)
		if err := st.UpsertBalance(ctx, from); err != nil {
			return err
		}
		return st.UpsertBalance(ctx, to)
	})
}

// Balance returns the row for the key. A key that was never touched
// reads as a zero balance, not an error.
func (s *Service) Balance(ctx context.Context, person PersonID, leaveType LeaveTypeID) (Balance, error) {
	return current(ctx, s.store, person, leaveType)
}

// AllBalances returns every balance row for a person, ordered by leave
// type ID. People with no rows yet get an empty slice.
func (s *Service) AllBalances(ctx context.Context, person PersonID) ([]Balance, error) {
	return s.store.Balances(ctx, person)
}
