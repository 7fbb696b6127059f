package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stevensf718/simulation-ops-tracker/ledger"
	"github.com/Stevensf718/simulation-ops-tracker/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(t *testing.T) (*ledger.Service, *sqlite.Store) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return ledger.NewService(store), store
}

// =============================================================================
// ZERO BALANCE READS
// =============================================================================

func TestService_Balance_UntouchedKey_ReadsZero(t *testing.T) {
	// GIVEN: No balance was ever written for (p-1, sick)
	// WHEN: Reading the balance
	// THEN: Zero hours on both sides, and no row is created by the read

	svc, store := newTestService(t)
	ctx := context.Background()

	b, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)

	assert.Equal(t, 0.0, b.Available.Float64())
	assert.Equal(t, 0.0, b.Used.Float64())

	row, err := store.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.Nil(t, row, "a plain read should not create a row")
}

func TestService_AllBalances_NoRows_ReturnsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	balances, err := svc.AllBalances(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Empty(t, balances)
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func TestService_InitializeForPerson_CreatesZeroRows(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.InitializeForPerson(ctx, "p-1", []ledger.LeaveTypeID{"sick", "annual", "military"})
	require.NoError(t, err)

	balances, err := svc.AllBalances(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, balances, 3)

	// Ordered by leave type ID
	assert.Equal(t, ledger.LeaveTypeID("annual"), balances[0].LeaveTypeID)
	assert.Equal(t, ledger.LeaveTypeID("military"), balances[1].LeaveTypeID)
	assert.Equal(t, ledger.LeaveTypeID("sick"), balances[2].LeaveTypeID)

	for _, b := range balances {
		assert.Equal(t, 0.0, b.Available.Float64())
		assert.Equal(t, 0.0, b.Used.Float64())
	}
}

func TestService_InitializeForPerson_DoesNotClobberExisting(t *testing.T) {
	// GIVEN: (p-1, sick) already holds 40 hours
	// WHEN: Initializing the person again
	// THEN: The existing balance survives

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHours(ctx, "p-1", "sick", ledger.NewHours(40))
	require.NoError(t, err)

	err = svc.InitializeForPerson(ctx, "p-1", []ledger.LeaveTypeID{"sick", "annual"})
	require.NoError(t, err)

	b, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.Equal(t, 40.0, b.Available.Float64(), "re-initialization must not reset balances")
}

// =============================================================================
// ADMIN ADJUSTMENTS
// =============================================================================

func TestService_AddHours_CreatesAndAccumulates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	avail, err := svc.AddHours(ctx, "p-1", "sick", ledger.NewHours(96))
	require.NoError(t, err)
	assert.Equal(t, 96.0, avail.Float64())

	avail, err = svc.AddHours(ctx, "p-1", "sick", ledger.NewHours(4))
	require.NoError(t, err)
	assert.Equal(t, 100.0, avail.Float64())

	b, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.Equal(t, 100.0, b.Available.Float64())
	assert.Equal(t, 0.0, b.Used.Float64(), "accruals never touch used")
}

func TestService_AddHours_NegativeDelta_Docks(t *testing.T) {
	// Negative deltas are the sanctioned correction path. There is no
	// floor: docking more than is available goes below zero.

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHours(ctx, "p-1", "annual", ledger.NewHours(40))
	require.NoError(t, err)

	avail, err := svc.AddHours(ctx, "p-1", "annual", ledger.NewHours(-50))
	require.NoError(t, err)
	assert.Equal(t, -10.0, avail.Float64())
}

func TestService_SetExactBalance_OverwritesAvailableOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHours(ctx, "p-1", "sick", ledger.NewHours(96))
	require.NoError(t, err)
	_, err = svc.Deduct(ctx, "p-1", "sick", ledger.NewHours(40))
	require.NoError(t, err)

	err = svc.SetExactBalance(ctx, "p-1", "sick", ledger.NewHours(80))
	require.NoError(t, err)

	b, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.Equal(t, 80.0, b.Available.Float64())
	assert.Equal(t, 40.0, b.Used.Float64(), "exact set must not touch used")
}

// =============================================================================
// DEDUCTION
// =============================================================================

func TestService_Deduct_SufficientBalance_Applies(t *testing.T) {
	// GIVEN: 96 sick hours available
	// WHEN: Deducting 40
	// THEN: Available drops to 56, used rises to 40

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHours(ctx, "p-1", "sick", ledger.NewHours(96))
	require.NoError(t, err)

	res, err := svc.Deduct(ctx, "p-1", "sick", ledger.NewHours(40))
	require.NoError(t, err)

	assert.True(t, res.Applied)
	assert.Equal(t, 56.0, res.Available.Float64())

	b, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.Equal(t, 56.0, b.Available.Float64())
	assert.Equal(t, 40.0, b.Used.Float64())
}

func TestService_Deduct_ExactBalance_Applies(t *testing.T) {
	// Requesting exactly what remains succeeds and empties the balance.

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHours(ctx, "p-1", "annual", ledger.NewHours(40))
	require.NoError(t, err)

	res, err := svc.Deduct(ctx, "p-1", "annual", ledger.NewHours(40))
	require.NoError(t, err)

	assert.True(t, res.Applied)
	assert.Equal(t, 0.0, res.Available.Float64())
}

func TestService_Deduct_Insufficient_ChangesNothing(t *testing.T) {
	// GIVEN: 16 sick hours available
	// WHEN: Deducting 40
	// THEN: Nothing changes; the result reports the 24 hour shortfall

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHours(ctx, "p-1", "sick", ledger.NewHours(16))
	require.NoError(t, err)

	res, err := svc.Deduct(ctx, "p-1", "sick", ledger.NewHours(40))
	require.NoError(t, err)

	assert.False(t, res.Applied)
	assert.Equal(t, 16.0, res.Available.Float64())
	assert.Equal(t, 24.0, res.Shortfall.Float64())

	b, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.Equal(t, 16.0, b.Available.Float64(), "failed deduction must not move available")
	assert.Equal(t, 0.0, b.Used.Float64(), "failed deduction must not move used")
}

func TestService_Deduct_MissingRow_CreatesZeroRowAndReports(t *testing.T) {
	// GIVEN: No balance row for (p-1, personal)
	// WHEN: Deducting 8 hours
	// THEN: The attempt fails against a zero balance, but the zero row now exists

	svc, store := newTestService(t)
	ctx := context.Background()

	res, err := svc.Deduct(ctx, "p-1", "personal", ledger.NewHours(8))
	require.NoError(t, err)

	assert.False(t, res.Applied)
	assert.Equal(t, 0.0, res.Available.Float64())
	assert.Equal(t, 8.0, res.Shortfall.Float64())

	row, err := store.Balance(ctx, "p-1", "personal")
	require.NoError(t, err)
	require.NotNil(t, row, "deduct should create the zero row even when it fails")
	assert.Equal(t, 0.0, row.Available.Float64())
	assert.Equal(t, 0.0, row.Used.Float64())
}

func TestService_Deduct_ZeroHours_Applies(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Deduct(context.Background(), "p-1", "sick", ledger.NewHours(0))
	require.NoError(t, err)
	assert.True(t, res.Applied, "zero hours always fit")
}

func TestService_Deduct_NegativeHours_Rejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Deduct(context.Background(), "p-1", "sick", ledger.NewHours(-4))

	require.Error(t, err)
	var negErr *ledger.NegativeHoursError
	assert.ErrorAs(t, err, &negErr)
	assert.Equal(t, "deduct", negErr.Op)
	assert.ErrorIs(t, err, ledger.ErrNegativeHours)
	assert.True(t, ledger.IsClientError(err))
}

func TestService_Deduct_FractionalHours_Exact(t *testing.T) {
	// Quarter-hour bookings must not drift the way float arithmetic would.

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHours(ctx, "p-1", "sick", ledger.NewHours(1))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		res, err := svc.Deduct(ctx, "p-1", "sick", ledger.NewHours(0.25))
		require.NoError(t, err)
		require.True(t, res.Applied)
	}

	b, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.True(t, b.Available.Equal(ledger.NewHours(0.25)), "available should be exactly 0.25, got %s", b.Available)
	assert.True(t, b.Used.Equal(ledger.NewHours(0.75)), "used should be exactly 0.75, got %s", b.Used)
}

// =============================================================================
// RESTORE
// =============================================================================

func TestService_Restore_RoundTrip(t *testing.T) {
	// Deduct then restore the same hours lands back at the start.

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHours(ctx, "p-1", "sick", ledger.NewHours(96))
	require.NoError(t, err)
	_, err = svc.Deduct(ctx, "p-1", "sick", ledger.NewHours(40))
	require.NoError(t, err)

	err = svc.Restore(ctx, "p-1", "sick", ledger.NewHours(40))
	require.NoError(t, err)

	b, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.Equal(t, 96.0, b.Available.Float64())
	assert.Equal(t, 0.0, b.Used.Float64())
}

func TestService_Restore_CanDriveUsedNegative(t *testing.T) {
	// Restore does not verify a prior deduction. Deleting a record whose
	// hours were edited afterwards can legitimately push used below zero.

	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.Restore(ctx, "p-1", "sick", ledger.NewHours(8))
	require.NoError(t, err)

	b, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.Equal(t, 8.0, b.Available.Float64())
	assert.Equal(t, -8.0, b.Used.Float64())
}

func TestService_Restore_NegativeHours_Rejected(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Restore(context.Background(), "p-1", "sick", ledger.NewHours(-1))

	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrNegativeHours)
}

// =============================================================================
// TRANSFER
// =============================================================================

func TestService_Transfer_MovesDeduction(t *testing.T) {
	// GIVEN: 40 hours were deducted from sick (96 -> 56/40), annual holds 160
	// WHEN: Transferring those 40 hours from sick to annual
	// THEN: Sick reads 96/0 again and annual reads 120/40

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHours(ctx, "p-1", "sick", ledger.NewHours(96))
	require.NoError(t, err)
	_, err = svc.AddHours(ctx, "p-1", "annual", ledger.NewHours(160))
	require.NoError(t, err)
	_, err = svc.Deduct(ctx, "p-1", "sick", ledger.NewHours(40))
	require.NoError(t, err)

	err = svc.Transfer(ctx, "p-1", "sick", "annual", ledger.NewHours(40))
	require.NoError(t, err)

	sick, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.Equal(t, 96.0, sick.Available.Float64())
	assert.Equal(t, 0.0, sick.Used.Float64())

	annual, err := svc.Balance(ctx, "p-1", "annual")
	require.NoError(t, err)
	assert.Equal(t, 120.0, annual.Available.Float64())
	assert.Equal(t, 40.0, annual.Used.Float64())

	// available+used is preserved on both sides
	assert.Equal(t, 96.0, sick.Available.Float64()+sick.Used.Float64())
	assert.Equal(t, 160.0, annual.Available.Float64()+annual.Used.Float64())
}

func TestService_Transfer_SameType_Rejected(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Transfer(context.Background(), "p-1", "sick", "sick", ledger.NewHours(8))

	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrSameLeaveType)
	assert.True(t, ledger.IsClientError(err))
}

func TestService_Transfer_NegativeHours_Rejected(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Transfer(context.Background(), "p-1", "sick", "annual", ledger.NewHours(-8))

	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrNegativeHours)
}

func TestService_Transfer_MissingRows_StartFromZero(t *testing.T) {
	// Transfers between untouched keys work against zero rows. Neither
	// side is checked for sufficiency, so the books can go negative while
	// the combined total stays balanced.

	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.Transfer(ctx, "p-1", "sick", "annual", ledger.NewHours(8))
	require.NoError(t, err)

	sick, err := svc.Balance(ctx, "p-1", "sick")
	require.NoError(t, err)
	assert.Equal(t, 8.0, sick.Available.Float64())
	assert.Equal(t, -8.0, sick.Used.Float64())

	annual, err := svc.Balance(ctx, "p-1", "annual")
	require.NoError(t, err)
	assert.Equal(t, -8.0, annual.Available.Float64())
	assert.Equal(t, 8.0, annual.Used.Float64())
}

// =============================================================================
// CONCURRENCY
// =============================================================================

func TestService_ConcurrentDeducts_Serialize(t *testing.T) {
	// Ten goroutines each deduct 10 hours from a 100 hour balance. Every
	// attempt must apply and the final balance must be exactly 0/100.

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHours(ctx, "p-1", "annual", ledger.NewHours(100))
	require.NoError(t, err)

	var wg sync.WaitGroup
	applied := make([]bool, 10)
	errs := make([]error, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Deduct(ctx, "p-1", "annual", ledger.NewHours(10))
			applied[i] = res.Applied
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		require.NoError(t, errs[i])
		assert.True(t, applied[i], "deduction %d should have applied", i)
	}

	b, err := svc.Balance(ctx, "p-1", "annual")
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.Available.Float64())
	assert.Equal(t, 100.0, b.Used.Float64())
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

func TestIsClientError_UnrelatedError_False(t *testing.T) {
	assert.False(t, ledger.IsClientError(errors.New("disk on fire")))
	assert.False(t, ledger.IsClientError(nil))
}
