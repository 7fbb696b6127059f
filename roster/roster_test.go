package roster_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stevensf718/simulation-ops-tracker/ledger"
	"github.com/Stevensf718/simulation-ops-tracker/roster"
	"github.com/Stevensf718/simulation-ops-tracker/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestRoster(t *testing.T) (*roster.Directory, *roster.Catalog, *sqlite.Store) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return roster.NewDirectory(store), roster.NewCatalog(store), store
}

// =============================================================================
// DIRECTORY
// =============================================================================

func TestDirectory_AddPerson_TrimsAndActivates(t *testing.T) {
	dir, _, _ := newTestRoster(t)
	ctx := context.Background()

	p, err := dir.AddPerson(ctx, "  Morgan Reyes  ", "Sim Tech")
	require.NoError(t, err)

	assert.Equal(t, "Morgan Reyes", p.Name)
	assert.Equal(t, "Sim Tech", p.Role)
	assert.True(t, p.Active)
	assert.NotEmpty(t, p.ID)

	found, err := dir.PersonByName(ctx, "Morgan Reyes")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
}

func TestDirectory_AddPerson_EmptyName_Rejected(t *testing.T) {
	dir, _, _ := newTestRoster(t)
	ctx := context.Background()

	_, err := dir.AddPerson(ctx, "", "")
	assert.ErrorIs(t, err, roster.ErrEmptyName)

	_, err = dir.AddPerson(ctx, "   ", "")
	assert.ErrorIs(t, err, roster.ErrEmptyName, "whitespace-only names count as empty")
}

func TestDirectory_AddPerson_DuplicateName_Rejected(t *testing.T) {
	dir, _, _ := newTestRoster(t)
	ctx := context.Background()

	_, err := dir.AddPerson(ctx, "Morgan Reyes", "Sim Tech")
	require.NoError(t, err)

	_, err = dir.AddPerson(ctx, "Morgan Reyes", "Coordinator")
	require.Error(t, err)
	assert.ErrorIs(t, err, roster.ErrDuplicateName)
}

func TestDirectory_Person_UnknownID(t *testing.T) {
	dir, _, _ := newTestRoster(t)

	_, err := dir.Person(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, roster.ErrPersonNotFound)
	assert.True(t, roster.IsNotFound(err))
}

func TestDirectory_UpdatePerson_RenameKeepsIDAndBalances(t *testing.T) {
	// GIVEN: Morgan has 40 sick hours keyed by their person ID
	// WHEN: Morgan is renamed
	// THEN: The ID survives, the old name stops resolving, the balance stays

	dir, _, store := newTestRoster(t)
	ctx := context.Background()

	p, err := dir.AddPerson(ctx, "Morgan Reyes", "Sim Tech")
	require.NoError(t, err)

	engine := ledger.NewService(store)
	_, err = engine.AddHours(ctx, p.ID, "sick", ledger.NewHours(40))
	require.NoError(t, err)

	renamed, err := dir.UpdatePerson(ctx, p.ID, "Morgan Reyes-Cruz", "Sim Tech")
	require.NoError(t, err)
	assert.Equal(t, p.ID, renamed.ID)

	_, err = dir.PersonByName(ctx, "Morgan Reyes")
	assert.True(t, roster.IsNotFound(err), "the old name should stop resolving")

	found, err := dir.PersonByName(ctx, "Morgan Reyes-Cruz")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	b, err := engine.Balance(ctx, p.ID, "sick")
	require.NoError(t, err)
	assert.Equal(t, 40.0, b.Available.Float64(), "renames must not disturb balances")
}

func TestDirectory_UpdatePerson_DuplicateName_Rejected(t *testing.T) {
	dir, _, _ := newTestRoster(t)
	ctx := context.Background()

	_, err := dir.AddPerson(ctx, "Morgan Reyes", "")
	require.NoError(t, err)
	p, err := dir.AddPerson(ctx, "Jamie Okafor", "")
	require.NoError(t, err)

	_, err = dir.UpdatePerson(ctx, p.ID, "Morgan Reyes", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, roster.ErrDuplicateName)
}

func TestDirectory_SetPersonActive_HidesFromDefaultListing(t *testing.T) {
	dir, _, _ := newTestRoster(t)
	ctx := context.Background()

	_, err := dir.AddPerson(ctx, "Morgan Reyes", "")
	require.NoError(t, err)
	p, err := dir.AddPerson(ctx, "Jamie Okafor", "")
	require.NoError(t, err)

	require.NoError(t, dir.SetPersonActive(ctx, p.ID, false))

	active, err := dir.Personnel(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Morgan Reyes", active[0].Name)

	all, err := dir.Personnel(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2, "deactivation hides, it does not delete")
}

func TestDirectory_SetPersonActive_UnknownID(t *testing.T) {
	dir, _, _ := newTestRoster(t)

	err := dir.SetPersonActive(context.Background(), "missing", false)
	assert.True(t, roster.IsNotFound(err))
}

// =============================================================================
// CATALOG
// =============================================================================

func TestCatalog_SeedDefaults_CreatesStandardTypes(t *testing.T) {
	_, cat, _ := newTestRoster(t)
	ctx := context.Background()

	require.NoError(t, cat.SeedDefaults(ctx))

	types, err := cat.LeaveTypes(ctx, true)
	require.NoError(t, err)
	require.Len(t, types, 7)

	baselines := make(map[string]float64, len(types))
	for _, lt := range types {
		baselines[lt.Name] = lt.DefaultAnnualHours.Float64()
		assert.True(t, lt.Active)
	}

	assert.Equal(t, 160.0, baselines["Annual Leave"])
	assert.Equal(t, 40.0, baselines["Community Service Leave"])
	assert.Equal(t, 80.0, baselines["Enhanced Community Service Leave"])
	assert.Equal(t, 0.0, baselines["Military Leave"])
	assert.Equal(t, 24.0, baselines["Personal Leave"])
	assert.Equal(t, 96.0, baselines["Sick Leave"])
	assert.Equal(t, 120.0, baselines["University Leave"])
}

func TestCatalog_SeedDefaults_Idempotent(t *testing.T) {
	_, cat, _ := newTestRoster(t)
	ctx := context.Background()

	require.NoError(t, cat.SeedDefaults(ctx))
	require.NoError(t, cat.SeedDefaults(ctx))

	types, err := cat.LeaveTypes(ctx, true)
	require.NoError(t, err)
	assert.Len(t, types, 7)
}

func TestCatalog_SeedDefaults_NonEmptyCatalog_Untouched(t *testing.T) {
	// Any existing entry disables the seed entirely, so a deliberately
	// customized catalog never gets the standard set mixed back in.

	_, cat, _ := newTestRoster(t)
	ctx := context.Background()

	_, err := cat.AddLeaveType(ctx, "Jury Duty", ledger.NewHours(16))
	require.NoError(t, err)

	require.NoError(t, cat.SeedDefaults(ctx))

	types, err := cat.LeaveTypes(ctx, true)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Jury Duty", types[0].Name)
}

func TestCatalog_AddLeaveType_DuplicateName_Rejected(t *testing.T) {
	_, cat, _ := newTestRoster(t)
	ctx := context.Background()

	_, err := cat.AddLeaveType(ctx, "Sick Leave", ledger.NewHours(96))
	require.NoError(t, err)

	_, err = cat.AddLeaveType(ctx, "Sick Leave", ledger.NewHours(80))
	require.Error(t, err)
	assert.ErrorIs(t, err, roster.ErrDuplicateName)
}

func TestCatalog_UpdateLeaveType_AdjustsBaseline(t *testing.T) {
	_, cat, _ := newTestRoster(t)
	ctx := context.Background()

	lt, err := cat.AddLeaveType(ctx, "Sick Leave", ledger.NewHours(96))
	require.NoError(t, err)

	updated, err := cat.UpdateLeaveType(ctx, lt.ID, "Sick Leave", ledger.NewHours(104))
	require.NoError(t, err)

	assert.Equal(t, lt.ID, updated.ID)
	assert.Equal(t, 104.0, updated.DefaultAnnualHours.Float64())
}

func TestCatalog_LeaveTypeByName_Unknown(t *testing.T) {
	_, cat, _ := newTestRoster(t)

	_, err := cat.LeaveTypeByName(context.Background(), "Sabbatical")

	require.Error(t, err)
	assert.ErrorIs(t, err, roster.ErrLeaveTypeNotFound)
	assert.True(t, roster.IsNotFound(err))
}

func TestCatalog_SetLeaveTypeActive_HidesFromDefaultListing(t *testing.T) {
	_, cat, _ := newTestRoster(t)
	ctx := context.Background()

	require.NoError(t, cat.SeedDefaults(ctx))
	lt, err := cat.LeaveTypeByName(ctx, "Military Leave")
	require.NoError(t, err)

	require.NoError(t, cat.SetLeaveTypeActive(ctx, lt.ID, false))

	active, err := cat.LeaveTypes(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 6)

	all, err := cat.LeaveTypes(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}
