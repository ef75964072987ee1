package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/student"
	"go.classcore.tech/internal/school/student/operations"
)

// StudentHandler serves the student roster endpoints.
type StudentHandler struct {
	students student.Repository
	gate     *AuthGate

	enrollUseCase *operations.EnrollStudentUseCase
	updateUseCase *operations.UpdateStudentUseCase
	deleteUseCase *operations.DeleteStudentUseCase
}

func NewStudentHandler(students student.Repository, gate *AuthGate, uow common.UnitOfWork) *StudentHandler {
	return &StudentHandler{
		students:      students,
		gate:          gate,
		enrollUseCase: operations.NewEnrollStudentUseCase(students, uow),
		updateUseCase: operations.NewUpdateStudentUseCase(students, uow),
		deleteUseCase: operations.NewDeleteStudentUseCase(students, uow),
	}
}

// Routes returns the router for /api/v1/students.
func (h *StudentHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate.RequireClaim)

	r.With(h.gate.Require(authorization.ModuleStudent, authorization.ActionFindAll)).
		Get("/", h.List)
	r.With(h.gate.Require(authorization.ModuleStudent, authorization.ActionCreate)).
		Post("/", h.Enroll)
	r.Get("/find", h.Find)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)

	return r
}

// Enroll handles POST /api/v1/students.
// @Summary Enroll a student
// @Tags Students
// @Accept json
// @Produce json
// @Param request body operations.EnrollStudentCommand true "Student details"
// @Success 201 {object} common.BaseDomainEvent
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/students [post]
func (h *StudentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var cmd operations.EnrollStudentCommand
	if uce := decodeValidated(r, studentSchema, authorization.ActionCreate, &cmd); uce != nil {
		WriteError(w, uce)
		return
	}

	result := h.enrollUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusCreated)
}

// List handles GET /api/v1/students.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	if uce := studentSchema.Validate(authorization.ActionFindAll, queryPayload(r, "offset", "quantity")); uce != nil {
		WriteError(w, uce)
		return
	}

	claim := ClaimFrom(r.Context())
	offset, quantity := pagination(r)

	students, err := h.students.FindAll(r.Context(), claim.TenantID, offset, quantity)
	if err != nil {
		slog.Error("failed to list students", "error", err)
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, students)
}

// Find handles GET /api/v1/students/find?id=...|email=...
func (h *StudentHandler) Find(w http.ResponseWriter, r *http.Request) {
	if uce := studentSchema.Validate(authorization.ActionFind, queryPayload(r, "id", "email")); uce != nil {
		WriteError(w, uce)
		return
	}

	s, uce := h.resolve(w, r, r.URL.Query().Get("id"), r.URL.Query().Get("email"), authorization.ActionFind)
	if uce != nil || s == nil {
		if uce != nil {
			WriteError(w, uce)
		}
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

// Update handles PUT /api/v1/students.
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd operations.UpdateStudentCommand
	if uce := decodeValidated(r, studentSchema, authorization.ActionUpdate, &cmd); uce != nil {
		WriteError(w, uce)
		return
	}

	s, uce := h.resolve(w, r, cmd.ID, cmd.Email, authorization.ActionUpdate)
	if uce != nil || s == nil {
		if uce != nil {
			WriteError(w, uce)
		}
		return
	}

	result := h.updateUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

// Delete handles DELETE /api/v1/students?id=...|email=...
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if uce := studentSchema.Validate(authorization.ActionDelete, queryPayload(r, "id", "email")); uce != nil {
		WriteError(w, uce)
		return
	}

	s, uce := h.resolve(w, r, r.URL.Query().Get("id"), r.URL.Query().Get("email"), authorization.ActionDelete)
	if uce != nil || s == nil {
		if uce != nil {
			WriteError(w, uce)
		}
		return
	}

	cmd := operations.DeleteStudentCommand{ID: s.ID}
	result := h.deleteUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

// resolve loads the target student and runs the per-target policy
// decision, so a student's Self permission matches their own record.
func (h *StudentHandler) resolve(w http.ResponseWriter, r *http.Request,
	id, email string, action authorization.Action) (*student.Student, *common.UseCaseError) {

	claim := ClaimFrom(r.Context())

	var (
		s   *student.Student
		err error
	)
	if id != "" {
		s, err = h.students.FindByID(r.Context(), claim.TenantID, id)
	} else {
		s, err = h.students.FindByEmail(r.Context(), claim.TenantID, local.NormalizeEmail(email))
	}
	if err != nil {
		return nil, common.FromError(err)
	}

	dctx := &authorization.Context{TargetEmail: s.Email}
	if !h.gate.Check(w, r, authorization.ModuleStudent, action, dctx) {
		return nil, nil
	}
	return s, nil
}

// execCtxFromRequest builds the execution context from the verified
// claim. Shared by every handler in this package.
func execCtxFromRequest(r *http.Request) *common.ExecutionContext {
	claim := ClaimFrom(r.Context())
	if claim == nil {
		return common.ExecutionContextFromRequest(r, "", "")
	}
	return common.ExecutionContextFromRequest(r, claim.SubjectEmail, claim.TenantID)
}
