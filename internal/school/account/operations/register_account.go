// Package operations contains the account use cases. Mutations go
// through the unit of work; login is read-only and returns plain values.
package operations

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"go.classcore.tech/internal/common/repository"
	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/account"
	"go.classcore.tech/internal/school/tenant"
)

// RegisterAccountCommand carries the data to create an account. When the
// role is tenant-owner the command bootstraps a new school: SchoolName is
// required and a tenant is provisioned together with the account.
type RegisterAccountCommand struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	SchoolName string `json:"schoolName,omitempty"`
}

// ToAuditJSON redacts the password from the audit trail.
func (c RegisterAccountCommand) ToAuditJSON() string {
	redacted := c
	redacted.Password = "[REDACTED]"
	data, err := json.Marshal(redacted)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// RegisterAccountUseCase creates accounts, provisioning a tenant when the
// account is a tenant owner.
type RegisterAccountUseCase struct {
	accounts   account.Repository
	passwords  *local.PasswordService
	unitOfWork common.UnitOfWork
}

func NewRegisterAccountUseCase(
	accounts account.Repository,
	passwords *local.PasswordService,
	uow common.UnitOfWork,
) *RegisterAccountUseCase {
	return &RegisterAccountUseCase{
		accounts:   accounts,
		passwords:  passwords,
		unitOfWork: uow,
	}
}

// Execute registers an account. For non-owner roles the tenant comes
// from the execution context, never from the payload.
func (uc *RegisterAccountUseCase) Execute(
	ctx context.Context,
	cmd RegisterAccountCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	role, err := authorization.ParseRole(cmd.Role)
	if err != nil {
		return common.Failure[common.DomainEvent](
			common.ValidationError(common.ErrCodeInvalidRole,
				"Unknown role: "+cmd.Role, map[string]any{"role": cmd.Role}))
	}

	if err := uc.passwords.CheckStrength(cmd.Password); err != nil {
		return common.Failure[common.DomainEvent](
			common.ValidationError("WEAK_PASSWORD",
				"Password does not meet strength requirements", nil))
	}

	email := local.NormalizeEmail(cmd.Email)
	existing, err := uc.accounts.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}
	if existing != nil {
		return common.Failure[common.DomainEvent](
			common.ConflictError(common.ErrCodeDuplicateEmail,
				"An account with this email already exists",
				map[string]any{"email": email}))
	}

	hash, err := uc.passwords.Hash(cmd.Password)
	if err != nil {
		return common.Failure[common.DomainEvent](
			common.InternalError("HASH_FAILED", "Failed to hash password", nil))
	}

	if role == authorization.RoleTenantOwner {
		return uc.provisionTenant(ctx, cmd, email, hash, execCtx)
	}

	if execCtx.TenantID == "" {
		return common.Failure[common.DomainEvent](
			common.UnauthorizedError(common.ErrCodeUnauthorized,
				"Authentication required to register this role", nil))
	}

	a := &account.Account{
		ID:           uuid.NewString(),
		TenantID:     execCtx.TenantID,
		Name:         cmd.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	event := events.NewAccountRegistered(execCtx, a.ID, a.Email, a.Role)
	return uc.unitOfWork.Commit(ctx, a, event, cmd)
}

// provisionTenant creates the school and its owner account atomically.
func (uc *RegisterAccountUseCase) provisionTenant(
	ctx context.Context,
	cmd RegisterAccountCommand,
	email, hash string,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	if cmd.SchoolName == "" {
		return common.Failure[common.DomainEvent](
			common.BadRequestError(common.ErrCodeRequired,
				"Field \"schoolName\" is required for tenant owners",
				map[string]any{"field": "schoolName"}))
	}

	t := &tenant.Tenant{
		ID:         uuid.NewString(),
		Name:       cmd.SchoolName,
		OwnerEmail: email,
	}
	owner := &account.Account{
		ID:           uuid.NewString(),
		TenantID:     t.ID,
		Name:         cmd.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         authorization.RoleTenantOwner,
	}

	// The execution context predates the tenant; stamp the new ID so the
	// event is scoped correctly.
	execCtx.TenantID = t.ID

	event := events.NewTenantProvisioned(execCtx, t.ID, t.Name, email)
	return uc.unitOfWork.CommitAll(ctx, []common.Aggregate{t, owner}, event, cmd)
}
