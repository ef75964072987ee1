package operations

import (
	"context"

	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/account"
)

// DeleteAccountCommand removes an account identified by id or email.
type DeleteAccountCommand struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

// DeleteAccountUseCase removes accounts. The policy engine has already
// established that the caller may delete the target; the use case only
// enforces the structural invariant that an owner account cannot be
// deleted while it owns the tenant.
type DeleteAccountUseCase struct {
	accounts   account.Repository
	unitOfWork common.UnitOfWork
}

func NewDeleteAccountUseCase(accounts account.Repository, uow common.UnitOfWork) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{accounts: accounts, unitOfWork: uow}
}

func (uc *DeleteAccountUseCase) Execute(
	ctx context.Context,
	cmd DeleteAccountCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	a, uce := findAccount(ctx, uc.accounts, execCtx.TenantID, cmd.ID, cmd.Email)
	if uce != nil {
		return common.Failure[common.DomainEvent](uce)
	}

	if a.IsTenantOwner() {
		return common.Failure[common.DomainEvent](
			common.ConflictError(common.ErrCodeInvalidState,
				"The tenant owner account cannot be deleted", nil))
	}

	event := events.NewAccountDeleted(execCtx, a.ID, a.Email)
	return uc.unitOfWork.CommitDelete(ctx, a, event, cmd)
}

// findAccount resolves an account by id or email within the tenant.
func findAccount(
	ctx context.Context,
	accounts account.Repository,
	tenantID, id, email string,
) (*account.Account, *common.UseCaseError) {
	var (
		a   *account.Account
		err error
	)
	if id != "" {
		a, err = accounts.FindByID(ctx, tenantID, id)
	} else {
		a, err = accounts.FindByTenantEmail(ctx, tenantID, local.NormalizeEmail(email))
	}
	if err != nil {
		return nil, common.FromError(err)
	}
	return a, nil
}
