package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/lesson"
	"go.classcore.tech/internal/school/lesson/operations"
	"go.classcore.tech/internal/school/student"
	"go.classcore.tech/internal/school/subject"
	"go.classcore.tech/internal/school/teacher"
)

// LessonHandler serves the lesson scheduling endpoints.
type LessonHandler struct {
	lessons lesson.Repository
	gate    *AuthGate

	createUseCase  *operations.CreateLessonUseCase
	updateUseCase  *operations.UpdateLessonUseCase
	deleteUseCase  *operations.DeleteLessonUseCase
	membersUseCase *operations.ChangeMembersUseCase
}

func NewLessonHandler(
	lessons lesson.Repository,
	subjects subject.Repository,
	teachers teacher.Repository,
	students student.Repository,
	gate *AuthGate,
	uow common.UnitOfWork,
) *LessonHandler {
	return &LessonHandler{
		lessons:        lessons,
		gate:           gate,
		createUseCase:  operations.NewCreateLessonUseCase(lessons, subjects, teachers, uow),
		updateUseCase:  operations.NewUpdateLessonUseCase(lessons, uow),
		deleteUseCase:  operations.NewDeleteLessonUseCase(lessons, uow),
		membersUseCase: operations.NewChangeMembersUseCase(lessons, students, uow),
	}
}

// Routes returns the router for /api/v1/lessons.
func (h *LessonHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate.RequireClaim)

	r.With(h.gate.Require(authorization.ModuleLesson, authorization.ActionFindAll)).
		Get("/", h.List)
	r.With(h.gate.Require(authorization.ModuleLesson, authorization.ActionCreate)).
		Post("/", h.Create)
	r.With(h.gate.Require(authorization.ModuleLesson, authorization.ActionFind)).
		Get("/{id}", h.Get)
	r.With(h.gate.Require(authorization.ModuleLesson, authorization.ActionUpdate)).
		Put("/{id}", h.Update)
	r.With(h.gate.Require(authorization.ModuleLesson, authorization.ActionDelete)).
		Delete("/{id}", h.Delete)
	r.With(h.gate.Require(authorization.ModuleLesson, authorization.ActionAdd)).
		Post("/{id}/students", h.AddStudents)
	r.With(h.gate.Require(authorization.ModuleLesson, authorization.ActionRemove)).
		Delete("/{id}/students", h.RemoveStudents)

	return r
}

func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd operations.CreateLessonCommand
	if uce := decodeValidated(r, lessonSchema, authorization.ActionCreate, &cmd); uce != nil {
		WriteError(w, uce)
		return
	}

	result := h.createUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusCreated)
}

func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	if uce := lessonSchema.Validate(authorization.ActionFindAll, queryPayload(r, "offset", "quantity")); uce != nil {
		WriteError(w, uce)
		return
	}

	claim := ClaimFrom(r.Context())

	// Optional filter by subject for timetable views.
	if subjectID := r.URL.Query().Get("subjectId"); subjectID != "" {
		lessons, err := h.lessons.FindBySubject(r.Context(), claim.TenantID, subjectID)
		if err != nil {
			slog.Error("failed to list lessons by subject", "error", err)
			WriteError(w, common.FromError(err))
			return
		}
		WriteJSON(w, http.StatusOK, lessons)
		return
	}

	offset, quantity := pagination(r)
	lessons, err := h.lessons.FindAll(r.Context(), claim.TenantID, offset, quantity)
	if err != nil {
		slog.Error("failed to list lessons", "error", err)
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, lessons)
}

func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	claim := ClaimFrom(r.Context())

	l, err := h.lessons.FindByID(r.Context(), claim.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, l)
}

func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd operations.UpdateLessonCommand
	if uce := decodeValidatedWithID(r, lessonSchema, authorization.ActionUpdate, chi.URLParam(r, "id"), &cmd); uce != nil {
		WriteError(w, uce)
		return
	}
	cmd.ID = chi.URLParam(r, "id")

	result := h.updateUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

func (h *LessonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cmd := operations.DeleteLessonCommand{ID: chi.URLParam(r, "id")}
	result := h.deleteUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

func (h *LessonHandler) AddStudents(w http.ResponseWriter, r *http.Request) {
	var cmd operations.ChangeMembersCommand
	if uce := decodeValidatedWithID(r, lessonSchema, authorization.ActionAdd, chi.URLParam(r, "id"), &cmd); uce != nil {
		WriteError(w, uce)
		return
	}
	cmd.ID = chi.URLParam(r, "id")

	result := h.membersUseCase.Add(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

func (h *LessonHandler) RemoveStudents(w http.ResponseWriter, r *http.Request) {
	var cmd operations.ChangeMembersCommand
	if uce := decodeValidatedWithID(r, lessonSchema, authorization.ActionRemove, chi.URLParam(r, "id"), &cmd); uce != nil {
		WriteError(w, uce)
		return
	}
	cmd.ID = chi.URLParam(r, "id")

	result := h.membersUseCase.Remove(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}
