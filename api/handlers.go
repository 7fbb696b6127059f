/*
handlers.go - HTTP API handlers for the ops tracker

PURPOSE:
  Exposes the leave ledger and time-off log via REST API. Handlers stay
  thin: decode, validate, resolve person and leave-type names to IDs,
  call domain logic, translate domain errors to status codes. No balance
  arithmetic happens here.

ENDPOINTS:
  Personnel:
    GET    /api/personnel                 List roster members
    POST   /api/personnel                 Create roster member
    GET    /api/personnel/{id}            Get one member
    PUT    /api/personnel/{id}            Rename / change role
    DELETE /api/personnel/{id}            Deactivate (soft)
    POST   /api/personnel/{id}/initialize Create zero balances
    GET    /api/personnel/{id}/balances   Balance summary

  Leave types:
    GET    /api/leave-types               List leave categories
    POST   /api/leave-types               Create leave category
    PUT    /api/leave-types/{id}          Rename / adjust baseline
    DELETE /api/leave-types/{id}          Deactivate (soft)

  Time off:
    GET    /api/time-off                  List records (filterable)
    POST   /api/time-off                  Log absence + deduct
    PUT    /api/time-off/{id}             Edit record
    DELETE /api/time-off/{id}             Delete record + restore

  Reports:
    GET    /api/reports/time-off          Usage totals by person/type

  Admin:
    POST   /api/admin/accruals            Grant or dock hours
    POST   /api/admin/balances            Set exact available hours
    POST   /api/admin/transfers           Move hours between types
    POST   /api/admin/reset               Clear all data

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, bad dates, negative hours, empty names
  - 404: Unknown person, leave type, or record
  - 409: Duplicate name
  - 500: Internal errors
  Insufficient balance is NOT an error: LogTimeOff still creates the
  record and answers 200 with deducted=false and a warning.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Stevensf718/simulation-ops-tracker/ledger"
	"github.com/Stevensf718/simulation-ops-tracker/roster"
	"github.com/Stevensf718/simulation-ops-tracker/store/sqlite"
	"github.com/Stevensf718/simulation-ops-tracker/timeoff"
)

const dateLayout = "2006-01-02"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Directory *roster.Directory
	Catalog   *roster.Catalog
	Ledger    *ledger.Service
	TimeOff   *timeoff.Log
	Store     *sqlite.Store

	validate *validator.Validate
}

// NewHandler wires the domain services over the given store.
func NewHandler(store *sqlite.Store) *Handler {
	engine := ledger.NewService(store)
	return &Handler{
		Directory: roster.NewDirectory(store),
		Catalog:   roster.NewCatalog(store),
		Ledger:    engine,
		TimeOff:   timeoff.NewLog(store, engine),
		Store:     store,
		validate:  validator.New(),
	}
}

// =============================================================================
// PERSONNEL HANDLERS
// =============================================================================

// ListPersonnel returns roster members, active only unless asked otherwise.
func (h *Handler) ListPersonnel(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("include_inactive") != "true"

	people, err := h.Directory.Personnel(r.Context(), activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list personnel", err)
		return
	}

	writeJSON(w, http.StatusOK, toPersonDTOs(people))
}

// GetPerson returns a single roster member.
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id := ledger.PersonID(chi.URLParam(r, "id"))

	p, err := h.Directory.Person(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPersonDTO(p))
}

// CreatePerson adds a roster member.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !h.validateRequest(w, req) {
		return
	}

	p, err := h.Directory.AddPerson(r.Context(), req.Name, req.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPersonDTO(p))
}

// UpdatePerson renames a roster member or changes their role. Renames do
// not disturb balances or logged time off; those reference the ID.
func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id := ledger.PersonID(chi.URLParam(r, "id"))

	var req UpdatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !h.validateRequest(w, req) {
		return
	}

	p, err := h.Directory.UpdatePerson(r.Context(), id, req.Name, req.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPersonDTO(p))
}

// DeactivatePerson hides a roster member from default listings. History
// and balances are kept.
func (h *Handler) DeactivatePerson(w http.ResponseWriter, r *http.Request) {
	id := ledger.PersonID(chi.URLParam(r, "id"))

	if err := h.Directory.SetPersonActive(r.Context(), id, false); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "deactivated"})
}

// InitializePerson creates zero balance rows for every active leave type.
// Existing rows are left alone, so re-running is harmless.
func (h *Handler) InitializePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := ledger.PersonID(chi.URLParam(r, "id"))

	p, err := h.Directory.Person(ctx, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	types, err := h.Catalog.LeaveTypes(ctx, true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave types", err)
		return
	}

	ids := make([]ledger.LeaveTypeID, len(types))
	for i, lt := range types {
		ids[i] = lt.ID
	}

	if err := h.Ledger.InitializeForPerson(ctx, p.ID, ids); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to initialize balances", err)
		return
	}

	writeJSON(w, http.StatusOK, InitializeResponse{
		PersonID:    string(p.ID),
		Initialized: len(ids),
	})
}

// GetBalanceSummary returns one row per tracked balance for a person,
// annotated with the catalog's annual baseline. Initialize a person to
// get rows for every active leave type.
func (h *Handler) GetBalanceSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := ledger.PersonID(chi.URLParam(r, "id"))

	p, err := h.Directory.Person(ctx, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	rows, err := h.Store.BalanceSummary(ctx, p.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build balance summary", err)
		return
	}

	writeJSON(w, http.StatusOK, toBalanceSummaryDTO(p, rows))
}

// =============================================================================
// LEAVE TYPE HANDLERS
// =============================================================================

// ListLeaveTypes returns leave categories, active only unless asked.
func (h *Handler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("include_inactive") != "true"

	types, err := h.Catalog.LeaveTypes(r.Context(), activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave types", err)
		return
	}

	writeJSON(w, http.StatusOK, toLeaveTypeDTOs(types))
}

// CreateLeaveType adds a leave category.
func (h *Handler) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !h.validateRequest(w, req) {
		return
	}

	lt, err := h.Catalog.AddLeaveType(r.Context(), req.Name, ledger.NewHours(req.DefaultAnnualHours))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLeaveTypeDTO(lt))
}

// UpdateLeaveType renames a leave category or adjusts its baseline hours.
// The baseline is informational; changing it never rewrites balances.
func (h *Handler) UpdateLeaveType(w http.ResponseWriter, r *http.Request) {
	id := ledger.LeaveTypeID(chi.URLParam(r, "id"))

	var req UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !h.validateRequest(w, req) {
		return
	}

	lt, err := h.Catalog.UpdateLeaveType(r.Context(), id, req.Name, ledger.NewHours(req.DefaultAnnualHours))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeaveTypeDTO(lt))
}

// DeactivateLeaveType hides a leave category from default listings.
func (h *Handler) DeactivateLeaveType(w http.ResponseWriter, r *http.Request) {
	id := ledger.LeaveTypeID(chi.URLParam(r, "id"))

	if err := h.Catalog.SetLeaveTypeActive(r.Context(), id, false); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "deactivated"})
}

// =============================================================================
// TIME OFF HANDLERS
// =============================================================================

// ListTimeOff returns logged absences, newest start date first. The person
// filter takes a name. The from/to filter keeps any record whose own range
// overlaps the window.
// GET /api/time-off?person=Name&from=2025-01-01&to=2025-12-31
func (h *Handler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var f timeoff.Filter
	if name := r.URL.Query().Get("person"); name != "" {
		p, err := h.Directory.PersonByName(ctx, name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		f.Person = &p.ID
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
			return
		}
		f.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
			return
		}
		f.To = &t
	}

	records, err := h.TimeOff.Records(ctx, f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list time off", err)
		return
	}

	personNames, typeNames, err := h.nameMaps(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve names", err)
		return
	}

	dtos := make([]TimeOffRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toRecordDTO(rec, personNames[rec.PersonID], typeNames[rec.LeaveTypeID])
	}

	writeJSON(w, http.StatusOK, dtos)
}

// LogTimeOff records an absence and attempts the balance deduction. When
// the balance cannot cover the hours the record is still created, the
// response carries deducted=false and a warning, and the balance is left
// exactly as it was.
// POST /api/time-off
func (h *Handler) LogTimeOff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LogTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !h.validateRequest(w, req) {
		return
	}

	person, err := h.Directory.PersonByName(ctx, req.Person)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	leaveType, err := h.Catalog.LeaveTypeByName(ctx, req.LeaveType)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}

	res, err := h.TimeOff.LogTimeOff(ctx, timeoff.NewRecord{
		PersonID:    person.ID,
		LeaveTypeID: leaveType.ID,
		StartDate:   start,
		EndDate:     end,
		Hours:       ledger.NewHours(req.Hours),
		Status:      timeoff.Status(req.Status),
		Notes:       req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := LogTimeOffResponse{
		Record:    toRecordDTO(res.Record, person.Name, leaveType.Name),
		Deducted:  res.Deducted,
		Available: res.Available.Float64(),
	}

	status := http.StatusCreated
	if !res.Deducted {
		status = http.StatusOK
		resp.Warning = fmt.Sprintf("%s has %s %s hours available, logged %s without deducting",
			person.Name, res.Available, leaveType.Name, res.Record.Hours)
	}

	writeJSON(w, status, resp)
}

// EditTimeOff updates a logged absence. Changing the leave type moves the
// record's originally deducted hours from the old type's balance to the
// new one. Changing only the hours does not touch balances.
// PUT /api/time-off/{id}
func (h *Handler) EditTimeOff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := timeoff.RecordID(chi.URLParam(r, "id"))

	var req EditTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !h.validateRequest(w, req) {
		return
	}

	var ch timeoff.Changes
	if req.LeaveType != nil {
		lt, err := h.Catalog.LeaveTypeByName(ctx, *req.LeaveType)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		ch.LeaveTypeID = &lt.ID
	}
	if req.StartDate != nil {
		t, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
			return
		}
		ch.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
			return
		}
		ch.EndDate = &t
	}
	if req.Hours != nil {
		hrs := ledger.NewHours(*req.Hours)
		ch.Hours = &hrs
	}
	if req.Status != nil {
		st := timeoff.Status(*req.Status)
		ch.Status = &st
	}
	ch.Notes = req.Notes

	rec, err := h.TimeOff.EditTimeOff(ctx, id, ch)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.recordDTO(ctx, rec))
}

// DeleteTimeOff removes a logged absence and, if its deduction was
// applied, restores the hours to the balance.
// DELETE /api/time-off/{id}
func (h *Handler) DeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	id := timeoff.RecordID(chi.URLParam(r, "id"))

	if err := h.TimeOff.DeleteTimeOff(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetTimeOffSummary returns total hours and entry counts grouped by person
// and leave type, optionally restricted to records starting in one year.
// GET /api/reports/time-off?year=2025
func (h *Handler) GetTimeOffSummary(w http.ResponseWriter, r *http.Request) {
	var year *int
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = &y
	}

	rows, err := h.Store.TimeOffSummary(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build time off summary", err)
		return
	}

	writeJSON(w, http.StatusOK, toTimeOffSummaryDTOs(rows))
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// AddAccrual grants hours to a balance, or docks them when hours is
// negative. This is the periodic accrual path and the correction path.
// POST /api/admin/accruals
func (h *Handler) AddAccrual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AccrualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !h.validateRequest(w, req) {
		return
	}

	p, lt, err := h.resolveBalanceTarget(ctx, req.Person, req.LeaveType)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	avail, err := h.Ledger.AddHours(ctx, p.ID, lt.ID, ledger.NewHours(req.Hours))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if req.Reason != "" {
		log.Printf("Accrual for %s: %+.2f %s hours (%s), now %s available",
			p.Name, req.Hours, lt.Name, req.Reason, avail)
	}

	b, err := h.Ledger.Balance(ctx, p.ID, lt.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read balance", err)
		return
	}

	writeJSON(w, http.StatusOK, toBalanceDTO(b, lt.Name))
}

// SetBalance overwrites the available hours with an exact value. Used
// hours are untouched.
// POST /api/admin/balances
func (h *Handler) SetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SetBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !h.validateRequest(w, req) {
		return
	}

	p, lt, err := h.resolveBalanceTarget(ctx, req.Person, req.LeaveType)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.Ledger.SetExactBalance(ctx, p.ID, lt.ID, ledger.NewHours(req.Hours)); err != nil {
		writeDomainError(w, err)
		return
	}

	b, err := h.Ledger.Balance(ctx, p.ID, lt.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read balance", err)
		return
	}

	writeJSON(w, http.StatusOK, toBalanceDTO(b, lt.Name))
}

// TransferHours moves hours between two leave types for one person. The
// source gains availability back and sheds usage; the destination loses
// availability and gains usage. Combined available plus used is preserved
// on both sides.
// POST /api/admin/transfers
func (h *Handler) TransferHours(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !h.validateRequest(w, req) {
		return
	}

	p, err := h.Directory.PersonByName(ctx, req.Person)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	from, err := h.Catalog.LeaveTypeByName(ctx, req.FromType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	to, err := h.Catalog.LeaveTypeByName(ctx, req.ToType)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.Ledger.Transfer(ctx, p.ID, from.ID, to.ID, ledger.NewHours(req.Hours)); err != nil {
		writeDomainError(w, err)
		return
	}

	fb, err := h.Ledger.Balance(ctx, p.ID, from.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read balance", err)
		return
	}
	tb, err := h.Ledger.Balance(ctx, p.ID, to.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read balance", err)
		return
	}

	writeJSON(w, http.StatusOK, TransferResponse{
		From: toBalanceDTO(fb, from.Name),
		To:   toBalanceDTO(tb, to.Name),
	})
}

// ResetDatabase clears all data.
// POST /api/admin/reset
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError translates service errors into status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case roster.IsNotFound(err), errors.Is(err, timeoff.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, roster.ErrDuplicateName):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, roster.ErrEmptyName),
		errors.Is(err, timeoff.ErrInvalidRange),
		ledger.IsClientError(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

// validateRequest runs struct validation and writes the 400 itself.
// Returns false when the request was rejected.
func (h *Handler) validateRequest(w http.ResponseWriter, req any) bool {
	err := h.validate.Struct(req)
	if err == nil {
		return true
	}

	details := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", fe.Tag())
		}
	}

	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   "Request validation failed",
		Code:    "validation",
		Details: details,
	})
	return false
}

// resolveBalanceTarget looks up the person and leave type named in an
// admin request.
func (h *Handler) resolveBalanceTarget(ctx context.Context, personName, typeName string) (roster.Person, roster.LeaveType, error) {
	p, err := h.Directory.PersonByName(ctx, personName)
	if err != nil {
		return roster.Person{}, roster.LeaveType{}, err
	}
	lt, err := h.Catalog.LeaveTypeByName(ctx, typeName)
	if err != nil {
		return roster.Person{}, roster.LeaveType{}, err
	}
	return p, lt, nil
}

// nameMaps loads ID to name lookups for labeling record listings.
// Inactive entries are included so old records keep their labels.
func (h *Handler) nameMaps(ctx context.Context) (map[ledger.PersonID]string, map[ledger.LeaveTypeID]string, error) {
	people, err := h.Directory.Personnel(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	types, err := h.Catalog.LeaveTypes(ctx, false)
	if err != nil {
		return nil, nil, err
	}

	personNames := make(map[ledger.PersonID]string, len(people))
	for _, p := range people {
		personNames[p.ID] = p.Name
	}
	typeNames := make(map[ledger.LeaveTypeID]string, len(types))
	for _, lt := range types {
		typeNames[lt.ID] = lt.Name
	}
	return personNames, typeNames, nil
}

// recordDTO labels a record with person and leave-type names. Lookups are
// best effort; a missing name leaves the field empty rather than failing
// the response.
func (h *Handler) recordDTO(ctx context.Context, rec timeoff.Record) TimeOffRecordDTO {
	var personName, typeName string
	if p, err := h.Directory.Person(ctx, rec.PersonID); err == nil {
		personName = p.Name
	}
	if lt, err := h.Catalog.LeaveType(ctx, rec.LeaveTypeID); err == nil {
		typeName = lt.Name
	}
	return toRecordDTO(rec, personName, typeName)
}
