/*
Package sqlite provides the SQLite-backed implementation of the storage interfaces.

PURPOSE:
  One store implements every persistence interface in the module:

    ledger.Store / ledger.TxStore:  balance rows
    timeoff.Store:                  time-off records
    roster.Store:                   personnel and leave types

  plus the read-only summary projections the reporting endpoints serve.

KEY TABLES:
  personnel:        people, unique name, soft-delete via active flag
  leave_types:      leave-type catalog, unique name, soft-delete
  leave_balances:   one row per (person, leave type); available/used hours
  time_off_records: logged absences, day-granular ranges

DATA ENCODING:
  Hours are decimal strings (TEXT) so they round-trip exactly; SQLite
  REAL would quietly turn 0.1+0.2 into 0.30000000000000004. Dates are
  YYYY-MM-DD, timestamps RFC 3339.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of WAL mode. WithTx holds
  the write lock for the whole transaction; the transaction-scoped store
  it hands to the callback runs its statements on the *sql.Tx and never
  re-enters the mutex.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/tracker.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := ledger.NewService(store)

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" for tests.

SEE ALSO:
  - ledger/store.go, timeoff/store.go, roster/store.go: Interface definitions
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Stevensf718/simulation-ops-tracker/ledger"
	"github.com/Stevensf718/simulation-ops-tracker/roster"
	"github.com/Stevensf718/simulation-ops-tracker/timeoff"
)

const (
	dateLayout = "2006-01-02"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// dbtx is satisfied by both *sql.DB and *sql.Tx so the same statement
// helpers serve plain calls and transaction-scoped ones.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- People. Names are unique and renameable; the id is forever.
	CREATE TABLE IF NOT EXISTS personnel (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		role TEXT,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_personnel_active
		ON personnel(active);

	-- Leave-type catalog. Soft-deleted, never dropped once referenced.
	CREATE TABLE IF NOT EXISTS leave_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		default_annual_hours TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	-- Balance rows. One per (person, leave type); mutated in place.
	CREATE TABLE IF NOT EXISTS leave_balances (
		person_id TEXT NOT NULL,
		leave_type_id TEXT NOT NULL,
		hours_available TEXT NOT NULL,
		hours_used TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (person_id, leave_type_id)
	);

	CREATE INDEX IF NOT EXISTS idx_balances_person
		ON leave_balances(person_id);

	-- Time-off records.
	CREATE TABLE IF NOT EXISTS time_off_records (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		leave_type_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		hours TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Approved',
		notes TEXT,
		ledger_applied INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_person
		ON time_off_records(person_id);

	-- Composite index for range-overlap queries (hot path for listings)
	CREATE INDEX IF NOT EXISTS idx_records_range
		ON time_off_records(start_date, end_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// BALANCE STORE (ledger.Store interface)
// =============================================================================

func (s *Store) Balance(ctx context.Context, person ledger.PersonID, leaveType ledger.LeaveTypeID) (*ledger.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return getBalance(ctx, s.db, person, leaveType)
}

func getBalance(ctx context.Context, db dbtx, person ledger.PersonID, leaveType ledger.LeaveTypeID) (*ledger.Balance, error) {
	var (
		b         ledger.Balance
		available string
		used      string
		updatedAt string
	)

	err := db.QueryRowContext(ctx,
		`SELECT person_id, leave_type_id, hours_available, hours_used, updated_at
		 FROM leave_balances WHERE person_id = ? AND leave_type_id = ?`,
		string(person), string(leaveType),
	).Scan(&b.PersonID, &b.LeaveTypeID, &available, &used, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query balance: %w", err)
	}

	b.Available = parseHours(available)
	b.Used = parseHours(used)
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &b, nil
}

func (s *Store) Balances(ctx context.Context, person ledger.PersonID) ([]ledger.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return getBalances(ctx, s.db, person)
}

func getBalances(ctx context.Context, db dbtx, person ledger.PersonID) ([]ledger.Balance, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT person_id, leave_type_id, hours_available, hours_used, updated_at
		 FROM leave_balances WHERE person_id = ?
		 ORDER BY leave_type_id`,
		string(person),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()

	var balances []ledger.Balance
	for rows.Next() {
		var (
			b         ledger.Balance
			available string
			used      string
			updatedAt string
		)
		if err := rows.Scan(&b.PersonID, &b.LeaveTypeID, &available, &used, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		b.Available = parseHours(available)
		b.Used = parseHours(used)
		b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

func (s *Store) UpsertBalance(ctx context.Context, b ledger.Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return upsertBalance(ctx, s.db, b)
}

func upsertBalance(ctx context.Context, db dbtx, b ledger.Balance) error {
	query := `
		INSERT INTO leave_balances (person_id, leave_type_id, hours_available, hours_used, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(person_id, leave_type_id) DO UPDATE SET
			hours_available = excluded.hours_available,
			hours_used = excluded.hours_used,
			updated_at = excluded.updated_at
	`

	_, err := db.ExecContext(ctx, query,
		string(b.PersonID),
		string(b.LeaveTypeID),
		b.Available.String(),
		b.Used.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert balance: %w", err)
	}
	return nil
}

func (s *Store) EnsureBalance(ctx context.Context, person ledger.PersonID, leaveType ledger.LeaveTypeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ensureBalance(ctx, s.db, person, leaveType)
}

func ensureBalance(ctx context.Context, db dbtx, person ledger.PersonID, leaveType ledger.LeaveTypeID) error {
	query := `
		INSERT INTO leave_balances (person_id, leave_type_id, hours_available, hours_used, updated_at)
		VALUES (?, ?, '0', '0', ?)
		ON CONFLICT(person_id, leave_type_id) DO NOTHING
	`

	_, err := db.ExecContext(ctx, query,
		string(person),
		string(leaveType),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to ensure balance: %w", err)
	}
	return nil
}

// =============================================================================
// TRANSACTIONAL STORE (ledger.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction. The store
// handed to fn runs on the transaction; reads inside fn see writes made
// earlier in the same fn.
func (s *Store) WithTx(ctx context.Context, fn func(ledger.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

// txStore is the transaction-scoped view handed to WithTx callbacks.
// It holds no mutex; WithTx already has the write lock.
type txStore struct {
	tx *sql.Tx
}

func (ts *txStore) Balance(ctx context.Context, person ledger.PersonID, leaveType ledger.LeaveTypeID) (*ledger.Balance, error) {
	return getBalance(ctx, ts.tx, person, leaveType)
}

func (ts *txStore) Balances(ctx context.Context, person ledger.PersonID) ([]ledger.Balance, error) {
	return getBalances(ctx, ts.tx, person)
}

func (ts *txStore) UpsertBalance(ctx context.Context, b ledger.Balance) error {
	return upsertBalance(ctx, ts.tx, b)
}

func (ts *txStore) EnsureBalance(ctx context.Context, person ledger.PersonID, leaveType ledger.LeaveTypeID) error {
	return ensureBalance(ctx, ts.tx, person, leaveType)
}

// =============================================================================
// PERSONNEL STORE (roster.Store interface)
// =============================================================================

func (s *Store) InsertPerson(ctx context.Context, p roster.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO personnel (id, name, role, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(p.ID), p.Name, p.Role, p.Active, p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %q", roster.ErrDuplicateName, p.Name)
		}
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

func (s *Store) UpdatePerson(ctx context.Context, p roster.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`UPDATE personnel SET name = ?, role = ?, active = ? WHERE id = ?`,
		p.Name, p.Role, p.Active, string(p.ID),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %q", roster.ErrDuplicateName, p.Name)
		}
		return fmt.Errorf("failed to update person: %w", err)
	}
	return nil
}

func (s *Store) Person(ctx context.Context, id string) (*roster.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPerson(ctx,
		`SELECT id, name, role, active, created_at FROM personnel WHERE id = ?`, id)
}

func (s *Store) PersonByName(ctx context.Context, name string) (*roster.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPerson(ctx,
		`SELECT id, name, role, active, created_at FROM personnel WHERE name = ?`, name)
}

func (s *Store) queryPerson(ctx context.Context, query string, arg any) (*roster.Person, error) {
	var (
		p         roster.Person
		role      sql.NullString
		createdAt string
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Name, &role, &p.Active, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query person: %w", err)
	}

	p.Role = role.String
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

func (s *Store) Personnel(ctx context.Context, activeOnly bool) ([]roster.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, role, active, created_at FROM personnel ORDER BY name`
	if activeOnly {
		query = `SELECT id, name, role, active, created_at FROM personnel WHERE active = 1 ORDER BY name`
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query personnel: %w", err)
	}
	defer rows.Close()

	var people []roster.Person
	for rows.Next() {
		var (
			p         roster.Person
			role      sql.NullString
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.Name, &role, &p.Active, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		p.Role = role.String
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		people = append(people, p)
	}
	return people, rows.Err()
}

// =============================================================================
// LEAVE TYPE STORE (roster.Store interface)
// =============================================================================

func (s *Store) InsertLeaveType(ctx context.Context, lt roster.LeaveType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leave_types (id, name, default_annual_hours, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(lt.ID), lt.Name, lt.DefaultAnnualHours.String(), lt.Active, lt.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %q", roster.ErrDuplicateName, lt.Name)
		}
		return fmt.Errorf("failed to insert leave type: %w", err)
	}
	return nil
}

func (s *Store) UpdateLeaveType(ctx context.Context, lt roster.LeaveType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`UPDATE leave_types SET name = ?, default_annual_hours = ?, active = ? WHERE id = ?`,
		lt.Name, lt.DefaultAnnualHours.String(), lt.Active, string(lt.ID),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %q", roster.ErrDuplicateName, lt.Name)
		}
		return fmt.Errorf("failed to update leave type: %w", err)
	}
	return nil
}

func (s *Store) LeaveType(ctx context.Context, id string) (*roster.LeaveType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryLeaveType(ctx,
		`SELECT id, name, default_annual_hours, active, created_at FROM leave_types WHERE id = ?`, id)
}

func (s *Store) LeaveTypeByName(ctx context.Context, name string) (*roster.LeaveType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryLeaveType(ctx,
		`SELECT id, name, default_annual_hours, active, created_at FROM leave_types WHERE name = ?`, name)
}

func (s *Store) queryLeaveType(ctx context.Context, query string, arg any) (*roster.LeaveType, error) {
	var (
		lt        roster.LeaveType
		hours     string
		createdAt string
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(&lt.ID, &lt.Name, &hours, &lt.Active, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query leave type: %w", err)
	}

	lt.DefaultAnnualHours = parseHours(hours)
	lt.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &lt, nil
}

func (s *Store) LeaveTypes(ctx context.Context, activeOnly bool) ([]roster.LeaveType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, default_annual_hours, active, created_at FROM leave_types ORDER BY name`
	if activeOnly {
		query = `SELECT id, name, default_annual_hours, active, created_at FROM leave_types WHERE active = 1 ORDER BY name`
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave types: %w", err)
	}
	defer rows.Close()

	var types []roster.LeaveType
	for rows.Next() {
		var (
			lt        roster.LeaveType
			hours     string
			createdAt string
		)
		if err := rows.Scan(&lt.ID, &lt.Name, &hours, &lt.Active, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		lt.DefaultAnnualHours = parseHours(hours)
		lt.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		types = append(types, lt)
	}
	return types, rows.Err()
}

func (s *Store) CountLeaveTypes(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leave_types`).Scan(&count)
	return count, err
}

// =============================================================================
// TIME-OFF RECORD STORE (timeoff.Store interface)
// =============================================================================

func (s *Store) InsertRecord(ctx context.Context, r timeoff.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO time_off_records
		(id, person_id, leave_type_id, start_date, end_date, hours, status, notes, ledger_applied, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		string(r.ID),
		string(r.PersonID),
		string(r.LeaveTypeID),
		r.StartDate.Format(dateLayout),
		r.EndDate.Format(dateLayout),
		r.Hours.String(),
		string(r.Status),
		nullString(r.Notes),
		r.LedgerApplied,
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (s *Store) UpdateRecord(ctx context.Context, r timeoff.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE time_off_records SET
			leave_type_id = ?,
			start_date = ?,
			end_date = ?,
			hours = ?,
			status = ?,
			notes = ?,
			ledger_applied = ?,
			updated_at = ?
		WHERE id = ?
	`

	_, err := s.db.ExecContext(ctx, query,
		string(r.LeaveTypeID),
		r.StartDate.Format(dateLayout),
		r.EndDate.Format(dateLayout),
		r.Hours.String(),
		string(r.Status),
		nullString(r.Notes),
		r.LedgerApplied,
		r.UpdatedAt.UTC().Format(time.RFC3339),
		string(r.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	return nil
}

func (s *Store) DeleteRecord(ctx context.Context, id timeoff.RecordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM time_off_records WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func (s *Store) Record(ctx context.Context, id timeoff.RecordID) (*timeoff.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, person_id, leave_type_id, start_date, end_date, hours, status, notes, ledger_applied, created_at, updated_at
		FROM time_off_records
		WHERE id = ?
	`

	rows, err := s.db.QueryContext(ctx, query, string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to query record: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	r, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) Records(ctx context.Context, f timeoff.Filter) ([]timeoff.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, person_id, leave_type_id, start_date, end_date, hours, status, notes, ledger_applied, created_at, updated_at
		FROM time_off_records
	`

	var (
		clauses []string
		args    []any
	)
	if f.Person != nil {
		clauses = append(clauses, "person_id = ?")
		args = append(args, string(*f.Person))
	}
	// A record overlaps [from, to] when it starts before the window ends
	// and ends after the window starts.
	if f.To != nil {
		clauses = append(clauses, "start_date <= ?")
		args = append(args, f.To.Format(dateLayout))
	}
	if f.From != nil {
		clauses = append(clauses, "end_date >= ?")
		args = append(args, f.From.Format(dateLayout))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY start_date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []timeoff.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (timeoff.Record, error) {
	var (
		r         timeoff.Record
		startDate string
		endDate   string
		hours     string
		notes     sql.NullString
		createdAt string
		updatedAt string
	)

	err := rows.Scan(
		&r.ID, &r.PersonID, &r.LeaveTypeID, &startDate, &endDate,
		&hours, &r.Status, &notes, &r.LedgerApplied, &createdAt, &updatedAt,
	)
	if err != nil {
		return r, fmt.Errorf("failed to scan record: %w", err)
	}

	r.StartDate, _ = time.Parse(dateLayout, startDate)
	r.EndDate, _ = time.Parse(dateLayout, endDate)
	r.Hours = parseHours(hours)
	r.Notes = notes.String
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return r, nil
}

// =============================================================================
// SUMMARY PROJECTIONS
// =============================================================================

// BalanceSummaryRow is one line of a person's balance report: the
// balance joined with the catalog baseline for its leave type. Types
// missing from the catalog still appear, with an empty name.
type BalanceSummaryRow struct {
	LeaveTypeID        ledger.LeaveTypeID
	LeaveTypeName      string
	DefaultAnnualHours ledger.Hours
	Available          ledger.Hours
	Used               ledger.Hours
}

// BalanceSummary returns all of a person's balances with catalog names,
// ordered by leave-type name.
func (s *Store) BalanceSummary(ctx context.Context, person ledger.PersonID) ([]BalanceSummaryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT b.leave_type_id, COALESCE(lt.name, ''), COALESCE(lt.default_annual_hours, '0'),
		       b.hours_available, b.hours_used
		FROM leave_balances b
		LEFT JOIN leave_types lt ON lt.id = b.leave_type_id
		WHERE b.person_id = ?
		ORDER BY lt.name
	`

	rows, err := s.db.QueryContext(ctx, query, string(person))
	if err != nil {
		return nil, fmt.Errorf("failed to query balance summary: %w", err)
	}
	defer rows.Close()

	var summary []BalanceSummaryRow
	for rows.Next() {
		var (
			row           BalanceSummaryRow
			defaultAnnual string
			available     string
			used          string
		)
		if err := rows.Scan(&row.LeaveTypeID, &row.LeaveTypeName, &defaultAnnual, &available, &used); err != nil {
			return nil, fmt.Errorf("failed to scan balance summary: %w", err)
		}
		row.DefaultAnnualHours = parseHours(defaultAnnual)
		row.Available = parseHours(available)
		row.Used = parseHours(used)
		summary = append(summary, row)
	}
	return summary, rows.Err()
}

// TimeOffSummaryRow aggregates a person's logged hours for one leave
// type: total hours and how many entries produced them.
type TimeOffSummaryRow struct {
	PersonID      ledger.PersonID
	PersonName    string
	LeaveTypeID   ledger.LeaveTypeID
	LeaveTypeName string
	TotalHours    ledger.Hours
	Entries       int
}

// TimeOffSummary totals logged hours per (person, leave type), optionally
// restricted to records starting in the given year. Hours are summed as
// decimals in Go; summing the TEXT column would fall back to floats.
func (s *Store) TimeOffSummary(ctx context.Context, year *int) ([]TimeOffSummaryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT r.person_id, COALESCE(p.name, ''), r.leave_type_id, COALESCE(lt.name, ''), r.hours
		FROM time_off_records r
		LEFT JOIN personnel p ON p.id = r.person_id
		LEFT JOIN leave_types lt ON lt.id = r.leave_type_id
	`

	var args []any
	if year != nil {
		query += ` WHERE strftime('%Y', r.start_date) = ?`
		args = append(args, fmt.Sprintf("%04d", *year))
	}
	query += ` ORDER BY p.name, lt.name, r.start_date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time-off summary: %w", err)
	}
	defer rows.Close()

	var (
		summary []TimeOffSummaryRow
		index   = make(map[[2]string]int)
	)
	for rows.Next() {
		var (
			personID, personName string
			typeID, typeName     string
			hours                string
		)
		if err := rows.Scan(&personID, &personName, &typeID, &typeName, &hours); err != nil {
			return nil, fmt.Errorf("failed to scan time-off summary: %w", err)
		}

		key := [2]string{personID, typeID}
		i, ok := index[key]
		if !ok {
			i = len(summary)
			index[key] = i
			summary = append(summary, TimeOffSummaryRow{
				PersonID:      ledger.PersonID(personID),
				PersonName:    personName,
				LeaveTypeID:   ledger.LeaveTypeID(typeID),
				LeaveTypeName: typeName,
			})
		}
		summary[i].TotalHours = summary[i].TotalHours.Add(parseHours(hours))
		summary[i].Entries++
	}
	return summary, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"time_off_records", "leave_balances", "leave_types", "personnel"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// parseHours reads a stored decimal string; corrupt values read as zero.
func parseHours(s string) ledger.Hours {
	h, err := ledger.ParseHours(s)
	if err != nil {
		return ledger.Hours{}
	}
	return h
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
