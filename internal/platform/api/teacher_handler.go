package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/teacher"
	"go.classcore.tech/internal/school/teacher/operations"
)

// TeacherHandler serves the teaching staff endpoints.
type TeacherHandler struct {
	teachers teacher.Repository
	gate     *AuthGate

	createUseCase *operations.CreateTeacherUseCase
	updateUseCase *operations.UpdateTeacherUseCase
	deleteUseCase *operations.DeleteTeacherUseCase
}

func NewTeacherHandler(teachers teacher.Repository, gate *AuthGate, uow common.UnitOfWork) *TeacherHandler {
	return &TeacherHandler{
		teachers:      teachers,
		gate:          gate,
		createUseCase: operations.NewCreateTeacherUseCase(teachers, uow),
		updateUseCase: operations.NewUpdateTeacherUseCase(teachers, uow),
		deleteUseCase: operations.NewDeleteTeacherUseCase(teachers, uow),
	}
}

// Routes returns the router for /api/v1/teachers.
func (h *TeacherHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate.RequireClaim)

	r.With(h.gate.Require(authorization.ModuleTeacher, authorization.ActionFindAll)).
		Get("/", h.List)
	r.With(h.gate.Require(authorization.ModuleTeacher, authorization.ActionCreate)).
		Post("/", h.Create)
	r.Get("/find", h.Find)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)

	return r
}

func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd operations.CreateTeacherCommand
	if uce := decodeValidated(r, teacherSchema, authorization.ActionCreate, &cmd); uce != nil {
		WriteError(w, uce)
		return
	}

	result := h.createUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusCreated)
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	if uce := teacherSchema.Validate(authorization.ActionFindAll, queryPayload(r, "offset", "quantity")); uce != nil {
		WriteError(w, uce)
		return
	}

	claim := ClaimFrom(r.Context())
	offset, quantity := pagination(r)

	teachers, err := h.teachers.FindAll(r.Context(), claim.TenantID, offset, quantity)
	if err != nil {
		slog.Error("failed to list teachers", "error", err)
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, teachers)
}

func (h *TeacherHandler) Find(w http.ResponseWriter, r *http.Request) {
	if uce := teacherSchema.Validate(authorization.ActionFind, queryPayload(r, "id", "email")); uce != nil {
		WriteError(w, uce)
		return
	}

	t, uce := h.resolve(w, r, r.URL.Query().Get("id"), r.URL.Query().Get("email"), authorization.ActionFind)
	if uce != nil || t == nil {
		if uce != nil {
			WriteError(w, uce)
		}
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd operations.UpdateTeacherCommand
	if uce := decodeValidated(r, teacherSchema, authorization.ActionUpdate, &cmd); uce != nil {
		WriteError(w, uce)
		return
	}

	t, uce := h.resolve(w, r, cmd.ID, cmd.Email, authorization.ActionUpdate)
	if uce != nil || t == nil {
		if uce != nil {
			WriteError(w, uce)
		}
		return
	}

	result := h.updateUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if uce := teacherSchema.Validate(authorization.ActionDelete, queryPayload(r, "id", "email")); uce != nil {
		WriteError(w, uce)
		return
	}

	t, uce := h.resolve(w, r, r.URL.Query().Get("id"), r.URL.Query().Get("email"), authorization.ActionDelete)
	if uce != nil || t == nil {
		if uce != nil {
			WriteError(w, uce)
		}
		return
	}

	cmd := operations.DeleteTeacherCommand{ID: t.ID}
	result := h.deleteUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

func (h *TeacherHandler) resolve(w http.ResponseWriter, r *http.Request,
	id, email string, action authorization.Action) (*teacher.Teacher, *common.UseCaseError) {

	claim := ClaimFrom(r.Context())

	var (
		t   *teacher.Teacher
		err error
	)
	if id != "" {
		t, err = h.teachers.FindByID(r.Context(), claim.TenantID, id)
	} else {
		t, err = h.teachers.FindByEmail(r.Context(), claim.TenantID, local.NormalizeEmail(email))
	}
	if err != nil {
		return nil, common.FromError(err)
	}

	dctx := &authorization.Context{TargetEmail: t.Email}
	if !h.gate.Check(w, r, authorization.ModuleTeacher, action, dctx) {
		return nil, nil
	}
	return t, nil
}
