package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/auth/token"
	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/account"
	"go.classcore.tech/internal/school/account/operations"
)

// AuthHandler serves the authentication module: credentials, sessions
// and account management.
type AuthHandler struct {
	accounts account.Repository
	codec    *token.Codec
	gate     *AuthGate

	registerUseCase *operations.RegisterAccountUseCase
	loginUseCase    *operations.LoginUseCase
	updateUseCase   *operations.UpdateAccountUseCase
	deleteUseCase   *operations.DeleteAccountUseCase
}

func NewAuthHandler(
	accounts account.Repository,
	passwords *local.PasswordService,
	codec *token.Codec,
	gate *AuthGate,
	uow common.UnitOfWork,
) *AuthHandler {
	return &AuthHandler{
		accounts:        accounts,
		codec:           codec,
		gate:            gate,
		registerUseCase: operations.NewRegisterAccountUseCase(accounts, passwords, uow),
		loginUseCase:    operations.NewLoginUseCase(accounts, passwords, codec),
		updateUseCase:   operations.NewUpdateAccountUseCase(accounts, passwords, uow),
		deleteUseCase:   operations.NewDeleteAccountUseCase(accounts, uow),
	}
}

// Routes returns the router for /api/auth.
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.gate.OptionalClaim).Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.With(h.gate.RequireClaim).Get("/me", h.Me)

	return r
}

// AccountRoutes returns the router for /api/v1/accounts. Every route
// requires a verified claim; the per-operation decision happens in the
// handler once the target account is known.
func (h *AuthHandler) AccountRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate.RequireClaim)

	r.With(h.gate.Require(authorization.ModuleAuthentication, authorization.ActionFindAll)).
		Get("/", h.List)
	r.Get("/find", h.Find)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)

	return r
}

// Register handles POST /api/auth/register.
// @Summary Register an account
// @Description Creates an account. An anonymous request may only register
// @Description a tenant-owner, which provisions a new school.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body operations.RegisterAccountCommand true "Account details"
// @Success 201 {object} common.BaseDomainEvent
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd operations.RegisterAccountCommand
	if uce := decodeValidated(r, authSchema, authorization.ActionCreate, &cmd); uce != nil {
		WriteError(w, uce)
		return
	}

	dctx := &authorization.Context{TargetRole: authorization.Role(cmd.Role)}
	if !h.gate.Check(w, r, authorization.ModuleAuthentication, authorization.ActionCreate, dctx) {
		return
	}

	execCtx := execCtxFromRequest(r)
	result := h.registerUseCase.Execute(r.Context(), cmd, execCtx)
	WriteResult(w, result, http.StatusCreated)
}

// Login handles POST /api/auth/login.
// @Summary Log in
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body operations.LoginCommand true "Credentials"
// @Success 200 {object} operations.LoginResult
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd operations.LoginCommand
	if err := decodeValidated(r, authSchema, authorization.ActionFind, &cmd); err != nil {
		// Login identifies by email only; reuse the identity rule.
		WriteError(w, err)
		return
	}

	result, uce := h.loginUseCase.Execute(r.Context(), cmd)
	if uce != nil {
		WriteError(w, uce)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// Refresh handles POST /api/auth/refresh. The credential to refresh is
// the bearer token itself; a failed verification fails the refresh.
// @Summary Refresh a token
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	raw := bearerToken(r)
	if raw == "" {
		writeStatusError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	refreshed, err := h.codec.Refresh(raw)
	if err != nil {
		h.gate.writeVerifyError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"token": refreshed})
}

// Me handles GET /api/auth/me.
// @Summary Current account
// @Tags Authentication
// @Produce json
// @Success 200 {object} account.Public
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claim := ClaimFrom(r.Context())

	a, err := h.accounts.FindByTenantEmail(r.Context(), claim.TenantID, claim.SubjectEmail)
	if err != nil {
		WriteError(w, common.FromError(err))
		return
	}
	WriteJSON(w, http.StatusOK, a.ToPublic())
}

// List handles GET /api/v1/accounts.
func (h *AuthHandler) List(w http.ResponseWriter, r *http.Request) {
	if uce := authSchema.Validate(authorization.ActionFindAll, queryPayload(r, "offset", "quantity")); uce != nil {
		WriteError(w, uce)
		return
	}

	claim := ClaimFrom(r.Context())
	offset, quantity := pagination(r)

	accounts, err := h.accounts.FindAll(r.Context(), claim.TenantID, offset, quantity)
	if err != nil {
		slog.Error("failed to list accounts", "error", err)
		WriteError(w, common.FromError(err))
		return
	}

	public := make([]account.Public, 0, len(accounts))
	for _, a := range accounts {
		public = append(public, a.ToPublic())
	}
	WriteJSON(w, http.StatusOK, public)
}

// Find handles GET /api/v1/accounts/find?id=...|email=...
func (h *AuthHandler) Find(w http.ResponseWriter, r *http.Request) {
	if uce := authSchema.Validate(authorization.ActionFind, queryPayload(r, "id", "email")); uce != nil {
		WriteError(w, uce)
		return
	}

	a, uce := h.resolve(w, r, r.URL.Query().Get("id"), r.URL.Query().Get("email"), authorization.ActionFind)
	if uce != nil || a == nil {
		if uce != nil {
			WriteError(w, uce)
		}
		return
	}
	WriteJSON(w, http.StatusOK, a.ToPublic())
}

// Update handles PUT /api/v1/accounts.
func (h *AuthHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd operations.UpdateAccountCommand
	if uce := decodeValidated(r, authSchema, authorization.ActionUpdate, &cmd); uce != nil {
		WriteError(w, uce)
		return
	}

	a, uce := h.resolve(w, r, cmd.ID, cmd.Email, authorization.ActionUpdate)
	if uce != nil || a == nil {
		if uce != nil {
			WriteError(w, uce)
		}
		return
	}

	result := h.updateUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

// Delete handles DELETE /api/v1/accounts?id=...|email=...
func (h *AuthHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if uce := authSchema.Validate(authorization.ActionDelete, queryPayload(r, "id", "email")); uce != nil {
		WriteError(w, uce)
		return
	}

	a, uce := h.resolve(w, r, r.URL.Query().Get("id"), r.URL.Query().Get("email"), authorization.ActionDelete)
	if uce != nil || a == nil {
		if uce != nil {
			WriteError(w, uce)
		}
		return
	}

	cmd := operations.DeleteAccountCommand{ID: a.ID}
	result := h.deleteUseCase.Execute(r.Context(), cmd, execCtxFromRequest(r))
	WriteResult(w, result, http.StatusOK)
}

// resolve loads the target account and runs the per-target policy
// decision. Returns (nil, nil) when the gate already wrote a denial.
func (h *AuthHandler) resolve(w http.ResponseWriter, r *http.Request,
	id, email string, action authorization.Action) (*account.Account, *common.UseCaseError) {

	claim := ClaimFrom(r.Context())

	var (
		a   *account.Account
		err error
	)
	if id != "" {
		a, err = h.accounts.FindByID(r.Context(), claim.TenantID, id)
	} else {
		a, err = h.accounts.FindByTenantEmail(r.Context(), claim.TenantID, local.NormalizeEmail(email))
	}
	if err != nil {
		return nil, common.FromError(err)
	}

	dctx := &authorization.Context{TargetEmail: a.Email, TargetRole: a.Role}
	if !h.gate.Check(w, r, authorization.ModuleAuthentication, action, dctx) {
		return nil, nil
	}
	return a, nil
}
