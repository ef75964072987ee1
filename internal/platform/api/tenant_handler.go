package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/tenant"
)

// TenantHandler serves the school profile of the caller's own tenant.
// Only the tenant owner reaches these routes; the policy matrix has no
// tenant entries for the other roles.
type TenantHandler struct {
	tenants tenant.Repository
	gate    *AuthGate
	uow     common.UnitOfWork
}

func NewTenantHandler(tenants tenant.Repository, gate *AuthGate, uow common.UnitOfWork) *TenantHandler {
	return &TenantHandler{tenants: tenants, gate: gate, uow: uow}
}

// Routes returns the router for /api/v1/tenant.
func (h *TenantHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate.RequireClaim)
	r.Use(h.gate.RequireRole(authorization.RoleTenantOwner))

	r.Get("/", h.Show)
	r.Put("/", h.Update)

	return r
}

// Show handles GET /api/v1/tenant.
// @Summary Show the caller's school
// @Tags Tenant
// @Produce json
// @Success 200 {object} tenant.Tenant
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tenant [get]
func (h *TenantHandler) Show(w http.ResponseWriter, r *http.Request) {
	claim := ClaimFrom(r.Context())

	t, err := h.tenants.FindByID(r.Context(), claim.TenantID)
	if err != nil {
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

// Update handles PUT /api/v1/tenant. The target is always the caller's
// own tenant, so no identity is read from the payload.
// @Summary Update the caller's school
// @Tags Tenant
// @Accept json
// @Produce json
// @Success 200 {object} common.BaseDomainEvent
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tenant [put]
func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	claim := ClaimFrom(r.Context())

	payload, uce := decodePayloadWithID(r, tenantSchema, authorization.ActionUpdate, claim.TenantID)
	if uce != nil {
		WriteError(w, uce)
		return
	}

	t, err := h.tenants.FindByID(r.Context(), claim.TenantID)
	if err != nil {
		WriteError(w, common.FromError(err))
		return
	}

	data, _ := payload[tenantSchema.UpdateObject].(map[string]any)
	var updated []string
	if name, ok := data["name"].(string); ok && name != "" {
		t.Name = name
		updated = append(updated, "name")
	}
	if address, ok := data["address"].(string); ok && address != "" {
		t.Address = address
		updated = append(updated, "address")
	}
	if phone, ok := data["phone"].(string); ok && phone != "" {
		t.Phone = phone
		updated = append(updated, "phone")
	}
	if len(updated) == 0 {
		WriteError(w, common.BadRequestError(common.ErrCodeNoUpdatable,
			"No updatable field provided", nil))
		return
	}
	t.UpdatedAt = time.Now().UTC()

	execCtx := execCtxFromRequest(r)
	event := events.NewEntityEvent(execCtx, "tenant", "updated", t.ID, updated)
	result := h.uow.Commit(r.Context(), t, event, payload)
	WriteResult(w, result, http.StatusOK)
}
