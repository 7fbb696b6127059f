package roster

import "context"

// Store persists people and leave types. Lookups return (nil, nil) for
// an absent row; inserts and renames surface ErrDuplicateName when a
// name is already taken.
type Store interface {
	InsertPerson(ctx context.Context, p Person) error
	UpdatePerson(ctx context.Context, p Person) error
	Person(ctx context.Context, id string) (*Person, error)
	PersonByName(ctx context.Context, name string) (*Person, error)
	Personnel(ctx context.Context, activeOnly bool) ([]Person, error)

	InsertLeaveType(ctx context.Context, lt LeaveType) error
	UpdateLeaveType(ctx context.Context, lt LeaveType) error
	LeaveType(ctx context.Context, id string) (*LeaveType, error)
	LeaveTypeByName(ctx context.Context, name string) (*LeaveType, error)
	LeaveTypes(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	CountLeaveTypes(ctx context.Context) (int, error)
}
