/*
dto.go - API Data Transfer Objects

PURPOSE:
Request and response shapes for the HTTP API. The external interface is
name-based: clients send person and leave-type names, handlers resolve
them to IDs before touching the ledger. Responses carry both IDs and
names so callers never need a second lookup.

All hours cross the wire as float64; the engine converts to decimal at
the boundary and keeps exact arithmetic internally.

SEE ALSO:
- handlers.go: Uses these DTOs
- ledger/types.go: Domain types these mirror
*/

package api

import (
	"time"

	"github.com/Stevensf718/simulation-ops-tracker/ledger"
	"github.com/Stevensf718/simulation-ops-tracker/roster"
	"github.com/Stevensf718/simulation-ops-tracker/store/sqlite"
	"github.com/Stevensf718/simulation-ops-tracker/timeoff"
)

// =============================================================================
// PERSONNEL DTOS
// =============================================================================

// PersonDTO is the API representation of a roster member.
type PersonDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreatePersonRequest creates a roster member.
type CreatePersonRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	Role string `json:"role" validate:"max=120"`
}

// UpdatePersonRequest renames a roster member or changes their role.
type UpdatePersonRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	Role string `json:"role" validate:"max=120"`
}

// InitializeResponse reports how many balance rows were ensured for a person.
type InitializeResponse struct {
	PersonID    string `json:"person_id"`
	Initialized int    `json:"initialized"`
}

// =============================================================================
// LEAVE TYPE DTOS
// =============================================================================

// LeaveTypeDTO is the API representation of a leave category.
type LeaveTypeDTO struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	DefaultAnnualHours float64 `json:"default_annual_hours"`
	Active             bool    `json:"active"`
	CreatedAt          string  `json:"created_at,omitempty"`
}

// CreateLeaveTypeRequest creates a leave category.
type CreateLeaveTypeRequest struct {
	Name               string  `json:"name" validate:"required,min=1,max=120"`
	DefaultAnnualHours float64 `json:"default_annual_hours" validate:"gte=0"`
}

// UpdateLeaveTypeRequest renames a leave category or adjusts its baseline.
type UpdateLeaveTypeRequest struct {
	Name               string  `json:"name" validate:"required,min=1,max=120"`
	DefaultAnnualHours float64 `json:"default_annual_hours" validate:"gte=0"`
}

// =============================================================================
// BALANCE DTOS
// =============================================================================

// BalanceDTO is the API representation of one person/leave-type balance.
type BalanceDTO struct {
	PersonID    string  `json:"person_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	LeaveType   string  `json:"leave_type,omitempty"`
	Available   float64 `json:"hours_available"`
	Used        float64 `json:"hours_used"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// BalanceSummaryRowDTO is one tracked balance within a person's summary.
type BalanceSummaryRowDTO struct {
	LeaveTypeID        string  `json:"leave_type_id"`
	LeaveType          string  `json:"leave_type"`
	DefaultAnnualHours float64 `json:"default_annual_hours"`
	Available          float64 `json:"hours_available"`
	Used               float64 `json:"hours_used"`
}

// BalanceSummaryDTO is the full per-person balance report.
type BalanceSummaryDTO struct {
	PersonID string                 `json:"person_id"`
	Person   string                 `json:"person"`
	Balances []BalanceSummaryRowDTO `json:"balances"`
}

// =============================================================================
// TIME OFF DTOS
// =============================================================================

// TimeOffRecordDTO is the API representation of a logged absence.
type TimeOffRecordDTO struct {
	ID            string  `json:"id"`
	PersonID      string  `json:"person_id"`
	Person        string  `json:"person,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveType     string  `json:"leave_type,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Hours         float64 `json:"hours"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes,omitempty"`
	LedgerApplied bool    `json:"ledger_applied"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// LogTimeOffRequest logs an absence. Person and leave type are names.
type LogTimeOffRequest struct {
	Person    string  `json:"person" validate:"required"`
	LeaveType string  `json:"leave_type" validate:"required"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Hours     float64 `json:"hours" validate:"gte=0"`
	Status    string  `json:"status" validate:"omitempty,oneof=Approved Pending Denied"`
	Notes     string  `json:"notes"`
}

// LogTimeOffResponse reports the stored record and the deduction outcome.
// Deducted false means the record exists but the balance was left untouched.
type LogTimeOffResponse struct {
	Record    TimeOffRecordDTO `json:"record"`
	Deducted  bool             `json:"deducted"`
	Available float64          `json:"hours_available"`
	Warning   string           `json:"warning,omitempty"`
}

// EditTimeOffRequest updates a logged absence. Only present fields change.
type EditTimeOffRequest struct {
	LeaveType *string  `json:"leave_type,omitempty"`
	StartDate *string  `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string  `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Hours     *float64 `json:"hours,omitempty" validate:"omitempty,gte=0"`
	Status    *string  `json:"status,omitempty" validate:"omitempty,oneof=Approved Pending Denied"`
	Notes     *string  `json:"notes,omitempty"`
}

// TimeOffSummaryRowDTO is one person/leave-type aggregate in the usage report.
type TimeOffSummaryRowDTO struct {
	PersonID    string  `json:"person_id"`
	Person      string  `json:"person"`
	LeaveTypeID string  `json:"leave_type_id"`
	LeaveType   string  `json:"leave_type"`
	TotalHours  float64 `json:"total_hours"`
	Entries     int     `json:"entries"`
}

// =============================================================================
// ADMIN DTOS
// =============================================================================

// AccrualRequest grants or docks hours. Hours may be negative.
type AccrualRequest struct {
	Person    string  `json:"person" validate:"required"`
	LeaveType string  `json:"leave_type" validate:"required"`
	Hours     float64 `json:"hours"`
	Reason    string  `json:"reason,omitempty"`
}

// SetBalanceRequest overwrites the available hours with an exact value.
type SetBalanceRequest struct {
	Person    string  `json:"person" validate:"required"`
	LeaveType string  `json:"leave_type" validate:"required"`
	Hours     float64 `json:"hours"`
}

// TransferRequest moves hours between two leave types for one person.
type TransferRequest struct {
	Person   string  `json:"person" validate:"required"`
	FromType string  `json:"from_type" validate:"required"`
	ToType   string  `json:"to_type" validate:"required"`
	Hours    float64 `json:"hours" validate:"gte=0"`
}

// TransferResponse reports both balances after the move.
type TransferResponse struct {
	From BalanceDTO `json:"from"`
	To   BalanceDTO `json:"to"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toPersonDTO(p roster.Person) PersonDTO {
	return PersonDTO{
		ID:        string(p.ID),
		Name:      p.Name,
		Role:      p.Role,
		Active:    p.Active,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func toPersonDTOs(people []roster.Person) []PersonDTO {
	dtos := make([]PersonDTO, len(people))
	for i, p := range people {
		dtos[i] = toPersonDTO(p)
	}
	return dtos
}

func toLeaveTypeDTO(lt roster.LeaveType) LeaveTypeDTO {
	return LeaveTypeDTO{
		ID:                 string(lt.ID),
		Name:               lt.Name,
		DefaultAnnualHours: lt.DefaultAnnualHours.Float64(),
		Active:             lt.Active,
		CreatedAt:          lt.CreatedAt.Format(time.RFC3339),
	}
}

func toLeaveTypeDTOs(types []roster.LeaveType) []LeaveTypeDTO {
	dtos := make([]LeaveTypeDTO, len(types))
	for i, lt := range types {
		dtos[i] = toLeaveTypeDTO(lt)
	}
	return dtos
}

// toBalanceDTO converts a ledger balance. typeName may be empty when the
// caller has no catalog lookup at hand.
func toBalanceDTO(b ledger.Balance, typeName string) BalanceDTO {
	return BalanceDTO{
		PersonID:    string(b.PersonID),
		LeaveTypeID: string(b.LeaveTypeID),
		LeaveType:   typeName,
		Available:   b.Available.Float64(),
		Used:        b.Used.Float64(),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

func toBalanceSummaryDTO(p roster.Person, rows []sqlite.BalanceSummaryRow) BalanceSummaryDTO {
	out := BalanceSummaryDTO{
		PersonID: string(p.ID),
		Person:   p.Name,
		Balances: make([]BalanceSummaryRowDTO, len(rows)),
	}
	for i, row := range rows {
		out.Balances[i] = BalanceSummaryRowDTO{
			LeaveTypeID:        string(row.LeaveTypeID),
			LeaveType:          row.LeaveTypeName,
			DefaultAnnualHours: row.DefaultAnnualHours.Float64(),
			Available:          row.Available.Float64(),
			Used:               row.Used.Float64(),
		}
	}
	return out
}

// toRecordDTO converts a time off record. The name arguments may be empty.
func toRecordDTO(rec timeoff.Record, personName, typeName string) TimeOffRecordDTO {
	return TimeOffRecordDTO{
		ID:            string(rec.ID),
		PersonID:      string(rec.PersonID),
		Person:        personName,
		LeaveTypeID:   string(rec.LeaveTypeID),
		LeaveType:     typeName,
		StartDate:     rec.StartDate.Format("2006-01-02"),
		EndDate:       rec.EndDate.Format("2006-01-02"),
		Hours:         rec.Hours.Float64(),
		Status:        string(rec.Status),
		Notes:         rec.Notes,
		LedgerApplied: rec.LedgerApplied,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     rec.UpdatedAt.Format(time.RFC3339),
	}
}

func toTimeOffSummaryDTOs(rows []sqlite.TimeOffSummaryRow) []TimeOffSummaryRowDTO {
	dtos := make([]TimeOffSummaryRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = TimeOffSummaryRowDTO{
			PersonID:    string(row.PersonID),
			Person:      row.PersonName,
			LeaveTypeID: string(row.LeaveTypeID),
			LeaveType:   row.LeaveTypeName,
			TotalHours:  row.TotalHours.Float64(),
			Entries:     row.Entries,
		}
	}
	return dtos
}
