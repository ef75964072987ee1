package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/attendance"
	"go.classcore.tech/internal/school/attendance/operations"
)

// AttendanceHandler serves the attendance endpoints.
type AttendanceHandler struct {
	attendances attendance.Repository
	gate        *AuthGate

	recordUseCase  *operations.RecordAttendanceUseCase
	deleteUseCase  *operations.DeleteAttendanceUseCase
	membersUseCase *operations.ChangeMembersUseCase
}

func NewAttendanceHandler(
	attendances attendance.Repository,
	recordUseCase *operations.RecordAttendanceUseCase,
	gate *AuthGate,
	uow common.UnitOfWork,
) *AttendanceHandler {
	return &AttendanceHandler{
		attendances:    attendances,
		gate:           gate,
		recordUseCase:  recordUseCase,
		deleteUseCase:  operations.NewDeleteAttendanceUseCase(attendances, uow),
		membersUseCase: operations.NewChangeMembersUseCase(attendances, uow),
	}
}

// Routes returns the router for /api/v1/attendances.
func (h *AttendanceHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate.RequireClaim)

	r.With(h.gate.Require(authorization.ModuleAttendance, authorization.ActionFindAll)).
		Get("/", h.List)
	r.With(h.gate.Require(authorization.ModuleAttendance, authorization.ActionCreate)).
		Post("/", h.Record)
	r.With(h.gate.Require(authorization.ModuleAttendance, authorization.ActionFind)).
		Get("/{id}", h.Get)
	r.With(h.gate.Require(authorization.ModuleAttendance, authorization.ActionDelete)).
		Delete("/{id}", h.Delete)
	r.With(h.gate.Require(authorization.ModuleAttendance, authorization.ActionAdd)).
		Post("/{id}/students", h.AddStudents)
	r.With(h.gate.Require(authorization.ModuleAttendance, authorization.ActionRemove)).
		Delete("/{id}/students", h.RemoveStudents)

	return r
}

// Record handles POST /api/v1/attendances.
// @Summary Record attendance for a lesson day
// @Description Registers the present students. Rostered students missing
// @Description from the list count as absent and trigger guardian
// @Description notifications.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param request body operations.RecordAttendanceCommand true "Attendance list"
// @Success 201 {object} common.BaseDomainEvent
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already recorded for this lesson and day"
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/attendances [post]
func (h *AttendanceHandler) Record(w http.ResponseWriter, r *http.Request) {
	var cmd operations.RecordAttendanceCommand
	if uce := decodeValidated(r, attendanceSchema, authorization.ActionCreate, &cmd); uce != nil {
		WriteError(w, uce)
		return
	}

	result := h.recordUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusCreated)
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	if uce := attendanceSchema.Validate(authorization.ActionFindAll, queryPayload(r, "offset", "quantity")); uce != nil {
		WriteError(w, uce)
		return
	}

	claim := ClaimFrom(r.Context())
	offset, quantity := pagination(r)

	records, err := h.attendances.FindAll(r.Context(), claim.TenantID, offset, quantity)
	if err != nil {
		slog.Error("failed to list attendance records", "error", err)
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, records)
}

func (h *AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	claim := ClaimFrom(r.Context())

	a, err := h.attendances.FindByID(r.Context(), claim.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cmd := operations.DeleteAttendanceCommand{ID: chi.URLParam(r, "id")}
	result := h.deleteUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

func (h *AttendanceHandler) AddStudents(w http.ResponseWriter, r *http.Request) {
	var cmd operations.ChangeMembersCommand
	if uce := decodeValidatedWithID(r, attendanceSchema, authorization.ActionAdd, chi.URLParam(r, "id"), &cmd); uce != nil {
		WriteError(w, uce)
		return
	}
	cmd.ID = chi.URLParam(r, "id")

	result := h.membersUseCase.Add(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

func (h *AttendanceHandler) RemoveStudents(w http.ResponseWriter, r *http.Request) {
	var cmd operations.ChangeMembersCommand
	if uce := decodeValidatedWithID(r, attendanceSchema, authorization.ActionRemove, chi.URLParam(r, "id"), &cmd); uce != nil {
		WriteError(w, uce)
		return
	}
	cmd.ID = chi.URLParam(r, "id")

	result := h.membersUseCase.Remove(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}
