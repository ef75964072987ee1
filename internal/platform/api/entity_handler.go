package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/platform/validation"
)

// EntityHandler serves the catalogue modules that share the plain
// list/get/create/update/delete shape: administrators, workers,
// curriculums, schedules, events, evaluations and notes. Each instance
// plugs in its module, schema and a handful of closures over the
// concrete entity type.
type EntityHandler struct {
	module authorization.Module
	schema validation.Schema
	gate   *AuthGate
	uow    common.UnitOfWork
	logger *slog.Logger

	// list and get read from the module's repository.
	list func(ctx context.Context, tenantID string, offset, quantity int64) (any, error)
	get  func(ctx context.Context, tenantID, id string) (common.Aggregate, error)

	// listByStudent is set only for modules filterable by student.
	listByStudent func(ctx context.Context, tenantID, studentID string) (any, error)

	// build assembles a new aggregate from a validated payload.
	build func(execCtx *common.ExecutionContext, payload map[string]any) common.Aggregate

	// apply mutates the aggregate with the validated update data and
	// returns the names of the fields it changed.
	apply func(aggregate common.Aggregate, data map[string]any) []string

	// onWrite runs after every committed write. The schedule module
	// uses it to drop stale cache entries.
	onWrite func(ctx context.Context, tenantID, id string)
}

// Routes returns the module's router. Every action is gated at the
// router level; none of these modules carries self-scoped permissions.
func (h *EntityHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate.RequireClaim)

	r.With(h.gate.Require(h.module, authorization.ActionFindAll)).
		Get("/", h.List)
	r.With(h.gate.Require(h.module, authorization.ActionCreate)).
		Post("/", h.Create)
	r.With(h.gate.Require(h.module, authorization.ActionFind)).
		Get("/{id}", h.Get)
	r.With(h.gate.Require(h.module, authorization.ActionUpdate)).
		Put("/{id}", h.Update)
	r.With(h.gate.Require(h.module, authorization.ActionDelete)).
		Delete("/{id}", h.Delete)

	return r
}

func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, uce := decodePayload(r, h.schema, authorization.ActionCreate)
	if uce != nil {
		WriteError(w, uce)
		return
	}

	execCtx := execCtxFromRequest(r)
	aggregate := h.build(execCtx, payload)

	event := events.NewEntityEvent(execCtx, string(h.module), "created", aggregate.AggregateID(), aggregate)
	result := h.uow.Commit(r.Context(), aggregate, event, payload)
	if result.IsSuccess() && h.onWrite != nil {
		h.onWrite(r.Context(), execCtx.TenantID, aggregate.AggregateID())
	}
	WriteResult(w, result, http.StatusCreated)
}

func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	if uce := h.schema.Validate(authorization.ActionFindAll, queryPayload(r, "offset", "quantity")); uce != nil {
		WriteError(w, uce)
		return
	}

	claim := ClaimFrom(r.Context())

	if studentID := r.URL.Query().Get("studentId"); studentID != "" && h.listByStudent != nil {
		entities, err := h.listByStudent(r.Context(), claim.TenantID, studentID)
		if err != nil {
			h.logger.Error("failed to list by student", "module", h.module, "error", err)
			WriteError(w, common.FromError(err))
			return
		}
		WriteJSON(w, http.StatusOK, entities)
		return
	}

	offset, quantity := pagination(r)
	entities, err := h.list(r.Context(), claim.TenantID, offset, quantity)
	if err != nil {
		h.logger.Error("failed to list entities", "module", h.module, "error", err)
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, entities)
}

func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	claim := ClaimFrom(r.Context())

	aggregate, err := h.get(r.Context(), claim.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, aggregate)
}

func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payload, uce := decodePayloadWithID(r, h.schema, authorization.ActionUpdate, id)
	if uce != nil {
		WriteError(w, uce)
		return
	}

	claim := ClaimFrom(r.Context())
	aggregate, err := h.get(r.Context(), claim.TenantID, id)
	if err != nil {
		WriteError(w, common.FromError(err))
		return
	}

	data, _ := payload[h.schema.UpdateObject].(map[string]any)
	updated := h.apply(aggregate, data)
	if len(updated) == 0 {
		WriteError(w, common.BadRequestError(common.ErrCodeNoUpdatable,
			"No updatable field provided", nil))
		return
	}

	execCtx := execCtxFromRequest(r)
	event := events.NewEntityEvent(execCtx, string(h.module), "updated", id, aggregate)
	result := h.uow.Commit(r.Context(), aggregate, event, payload)
	if result.IsSuccess() && h.onWrite != nil {
		h.onWrite(r.Context(), execCtx.TenantID, id)
	}
	WriteResult(w, result, http.StatusOK)
}

func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	claim := ClaimFrom(r.Context())
	aggregate, err := h.get(r.Context(), claim.TenantID, id)
	if err != nil {
		WriteError(w, common.FromError(err))
		return
	}

	execCtx := execCtxFromRequest(r)
	event := events.NewEntityEvent(execCtx, string(h.module), "deleted", id, nil)
	result := h.uow.CommitDelete(r.Context(), aggregate, event, map[string]any{"id": id})
	if result.IsSuccess() && h.onWrite != nil {
		h.onWrite(r.Context(), execCtx.TenantID, id)
	}
	WriteResult(w, result, http.StatusOK)
}
