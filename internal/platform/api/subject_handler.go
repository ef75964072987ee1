package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/student"
	"go.classcore.tech/internal/school/subject"
	"go.classcore.tech/internal/school/subject/operations"
)

// SubjectHandler serves the subject endpoints, including student
// enrollment into subjects.
type SubjectHandler struct {
	subjects subject.Repository
	gate     *AuthGate

	createUseCase  *operations.CreateSubjectUseCase
	updateUseCase  *operations.UpdateSubjectUseCase
	deleteUseCase  *operations.DeleteSubjectUseCase
	membersUseCase *operations.ChangeMembersUseCase
}

func NewSubjectHandler(
	subjects subject.Repository,
	students student.Repository,
	gate *AuthGate,
	uow common.UnitOfWork,
) *SubjectHandler {
	return &SubjectHandler{
		subjects:       subjects,
		gate:           gate,
		createUseCase:  operations.NewCreateSubjectUseCase(subjects, uow),
		updateUseCase:  operations.NewUpdateSubjectUseCase(subjects, uow),
		deleteUseCase:  operations.NewDeleteSubjectUseCase(subjects, uow),
		membersUseCase: operations.NewChangeMembersUseCase(subjects, students, uow),
	}
}

// Routes returns the router for /api/v1/subjects.
func (h *SubjectHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate.RequireClaim)

	r.With(h.gate.Require(authorization.ModuleSubject, authorization.ActionFindAll)).
		Get("/", h.List)
	r.With(h.gate.Require(authorization.ModuleSubject, authorization.ActionCreate)).
		Post("/", h.Create)
	r.With(h.gate.Require(authorization.ModuleSubject, authorization.ActionFind)).
		Get("/{id}", h.Get)
	r.With(h.gate.Require(authorization.ModuleSubject, authorization.ActionUpdate)).
		Put("/{id}", h.Update)
	r.With(h.gate.Require(authorization.ModuleSubject, authorization.ActionDelete)).
		Delete("/{id}", h.Delete)
	r.With(h.gate.Require(authorization.ModuleSubject, authorization.ActionAdd)).
		Post("/{id}/students", h.AddStudents)
	r.With(h.gate.Require(authorization.ModuleSubject, authorization.ActionRemove)).
		Delete("/{id}/students", h.RemoveStudents)

	return r
}

func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd operations.CreateSubjectCommand
	if uce := decodeValidated(r, subjectSchema, authorization.ActionCreate, &cmd); uce != nil {
		WriteError(w, uce)
		return
	}

	result := h.createUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusCreated)
}

func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	if uce := subjectSchema.Validate(authorization.ActionFindAll, queryPayload(r, "offset", "quantity")); uce != nil {
		WriteError(w, uce)
		return
	}

	claim := ClaimFrom(r.Context())
	offset, quantity := pagination(r)

	subjects, err := h.subjects.FindAll(r.Context(), claim.TenantID, offset, quantity)
	if err != nil {
		slog.Error("failed to list subjects", "error", err)
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, subjects)
}

func (h *SubjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	claim := ClaimFrom(r.Context())

	s, err := h.subjects.FindByID(r.Context(), claim.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd operations.UpdateSubjectCommand
	if uce := decodeValidatedWithID(r, subjectSchema, authorization.ActionUpdate, chi.URLParam(r, "id"), &cmd); uce != nil {
		WriteError(w, uce)
		return
	}
	cmd.ID = chi.URLParam(r, "id")

	result := h.updateUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cmd := operations.DeleteSubjectCommand{ID: chi.URLParam(r, "id")}
	result := h.deleteUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

func (h *SubjectHandler) AddStudents(w http.ResponseWriter, r *http.Request) {
	var cmd operations.ChangeMembersCommand
	if uce := decodeValidatedWithID(r, subjectSchema, authorization.ActionAdd, chi.URLParam(r, "id"), &cmd); uce != nil {
		WriteError(w, uce)
		return
	}
	cmd.ID = chi.URLParam(r, "id")

	result := h.membersUseCase.Add(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

func (h *SubjectHandler) RemoveStudents(w http.ResponseWriter, r *http.Request) {
	var cmd operations.ChangeMembersCommand
	if uce := decodeValidatedWithID(r, subjectSchema, authorization.ActionRemove, chi.URLParam(r, "id"), &cmd); uce != nil {
		WriteError(w, uce)
		return
	}
	cmd.ID = chi.URLParam(r, "id")

	result := h.membersUseCase.Remove(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}
