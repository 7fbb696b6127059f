package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Stevensf718/simulation-ops-tracker/ledger"
)

// =============================================================================
// DIRECTORY - People
// =============================================================================

type Directory struct {
	store Store
}

func NewDirectory(store Store) *Directory {
	return &Directory{store: store}
}

func (d *Directory) AddPerson(ctx context.Context, name, role string) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, ErrEmptyName
	}
	p := Person{
		ID:        ledger.PersonID(uuid.NewString()),
		Name:      name,
		Role:      strings.TrimSpace(role),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := d.store.InsertPerson(ctx, p); err != nil {
		return Person{}, err
	}
	return p, nil
}

func (d *Directory) Person(ctx context.Context, id ledger.PersonID) (Person, error) {
	p, err := d.store.Person(ctx, string(id))
	if err != nil {
		return Person{}, err
	}
	if p == nil {
		return Person{}, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	return *p, nil
}

func (d *Directory) PersonByName(ctx context.Context, name string) (Person, error) {
	p, err := d.store.PersonByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return Person{}, err
	}
	if p == nil {
		return Person{}, fmt.Errorf("%w: %q", ErrPersonNotFound, name)
	}
	return *p, nil
}

func (d *Directory) Personnel(ctx context.Context, activeOnly bool) ([]Person, error) {
	return d.store.Personnel(ctx, activeOnly)
}

// UpdatePerson renames or re-roles a person. The ID stays put, so every
// balance and record keyed on it survives the rename.
func (d *Directory) UpdatePerson(ctx context.Context, id ledger.PersonID, name, role string) (Person, error) {
	p, err := d.Person(ctx, id)
	if err != nil {
		return Person{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, ErrEmptyName
	}
	p.Name = name
	p.Role = strings.TrimSpace(role)
	if err := d.store.UpdatePerson(ctx, p); err != nil {
		return Person{}, err
	}
	return p, nil
}

// SetPersonActive soft-deletes or reinstates. Balances and records are
// never touched; an inactive person just drops out of active listings.
func (d *Directory) SetPersonActive(ctx context.Context, id ledger.PersonID, active bool) error {
	p, err := d.Person(ctx, id)
	if err != nil {
		return err
	}
	p.Active = active
	return d.store.UpdatePerson(ctx, p)
}

// =============================================================================
// CATALOG - Leave types
// =============================================================================

type Catalog struct {
	store Store
}

func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) AddLeaveType(ctx context.Context, name string, defaultAnnual ledger.Hours) (LeaveType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LeaveType{}, ErrEmptyName
	}
	lt := LeaveType{
		ID:                 ledger.LeaveTypeID(uuid.NewString()),
		Name:               name,
		DefaultAnnualHours: defaultAnnual,
		Active:             true,
		CreatedAt:          time.Now().UTC(),
	}
	if err := c.store.InsertLeaveType(ctx, lt); err != nil {
		return LeaveType{}, err
	}
	return lt, nil
}

func (c *Catalog) LeaveType(ctx context.Context, id ledger.LeaveTypeID) (LeaveType, error) {
	lt, err := c.store.LeaveType(ctx, string(id))
	if err != nil {
		return LeaveType{}, err
	}
	if lt == nil {
		return LeaveType{}, fmt.Errorf("%w: %s", ErrLeaveTypeNotFound, id)
	}
	return *lt, nil
}

func (c *Catalog) LeaveTypeByName(ctx context.Context, name string) (LeaveType, error) {
	lt, err := c.store.LeaveTypeByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return LeaveType{}, err
	}
	if lt == nil {
		return LeaveType{}, fmt.Errorf("%w: %q", ErrLeaveTypeNotFound, name)
	}
	return *lt, nil
}

func (c *Catalog) LeaveTypes(ctx context.Context, activeOnly bool) ([]LeaveType, error) {
	return c.store.LeaveTypes(ctx, activeOnly)
}

func (c *Catalog) UpdateLeaveType(ctx context.Context, id ledger.LeaveTypeID, name string, defaultAnnual ledger.Hours) (LeaveType, error) {
	lt, err := c.LeaveType(ctx, id)
	if err != nil {
		return LeaveType{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return LeaveType{}, ErrEmptyName
	}
	lt.Name = name
	lt.DefaultAnnualHours = defaultAnnual
	if err := c.store.UpdateLeaveType(ctx, lt); err != nil {
		return LeaveType{}, err
	}
	return lt, nil
}

// SetLeaveTypeActive soft-deletes or reinstates a leave type. Types are
// never hard-deleted once referenced; history keeps pointing at them.
func (c *Catalog) SetLeaveTypeActive(ctx context.Context, id ledger.LeaveTypeID, active bool) error {
	lt, err := c.LeaveType(ctx, id)
	if err != nil {
		return err
	}
	lt.Active = active
	return c.store.UpdateLeaveType(ctx, lt)
}

// SeedDefaults populates an empty catalog with the standard leave types.
// A catalog with any entry at all is left exactly as found, so the seed
// never resurrects a renamed or deactivated type.
func (c *Catalog) SeedDefaults(ctx context.Context) error {
	n, err := c.store.CountLeaveTypes(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, d := range defaultLeaveTypes {
		if _, err := c.AddLeaveType(ctx, d.name, ledger.NewHours(d.hours)); err != nil {
			return err
		}
	}
	return nil
}

var defaultLeaveTypes = []struct {
	name  string
	hours float64
}{
	{"Annual Leave", 160},
	{"Community Service Leave", 40},
	{"Enhanced Community Service Leave", 80},
	{"Military Leave", 0},
	{"Personal Leave", 24},
	{"Sick Leave", 96},
	{"University Leave", 120},
}

// =============================================================================
// ERROR TYPES
// =============================================================================

var (
	// ErrPersonNotFound is returned for an unknown person ID or name.
	ErrPersonNotFound = errors.New("person not found")

	// ErrLeaveTypeNotFound is returned for an unknown leave type ID or name.
	ErrLeaveTypeNotFound = errors.New("leave type not found")

	// ErrDuplicateName is returned when a person or leave type name is
	// already taken. Names are unique; IDs exist so they can change.
	ErrDuplicateName = errors.New("name already in use")

	// ErrEmptyName is returned when a name is blank after trimming.
	ErrEmptyName = errors.New("name must not be empty")
)

// IsNotFound returns true if the error indicates a missing person or
// leave type.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPersonNotFound) ||
		errors.Is(err, ErrLeaveTypeNotFound)
}
