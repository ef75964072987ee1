package operations

import (
	"context"
	"encoding/json"

	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/account"
)

// UpdateAccountCommand updates profile fields on an account identified by
// id or email. Updatable fields ride in DataToUpdate.
type UpdateAccountCommand struct {
	ID           string         `json:"id,omitempty"`
	Email        string         `json:"email,omitempty"`
	DataToUpdate map[string]any `json:"dataToUpdate"`
}

// ToAuditJSON redacts a password change from the audit trail.
func (c UpdateAccountCommand) ToAuditJSON() string {
	redacted := UpdateAccountCommand{ID: c.ID, Email: c.Email, DataToUpdate: map[string]any{}}
	for k, v := range c.DataToUpdate {
		if k == "password" {
			redacted.DataToUpdate[k] = "[REDACTED]"
			continue
		}
		redacted.DataToUpdate[k] = v
	}
	data, err := json.Marshal(redacted)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// UpdateAccountUseCase applies profile updates.
type UpdateAccountUseCase struct {
	accounts   account.Repository
	passwords  *local.PasswordService
	unitOfWork common.UnitOfWork
}

func NewUpdateAccountUseCase(
	accounts account.Repository,
	passwords *local.PasswordService,
	uow common.UnitOfWork,
) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{accounts: accounts, passwords: passwords, unitOfWork: uow}
}

func (uc *UpdateAccountUseCase) Execute(
	ctx context.Context,
	cmd UpdateAccountCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	a, uce := findAccount(ctx, uc.accounts, execCtx.TenantID, cmd.ID, cmd.Email)
	if uce != nil {
		return common.Failure[common.DomainEvent](uce)
	}

	var updated []string
	for field, value := range cmd.DataToUpdate {
		switch field {
		case "name":
			if name, ok := value.(string); ok && name != "" {
				a.Name = name
				updated = append(updated, "name")
			}
		case "password":
			password, ok := value.(string)
			if !ok {
				continue
			}
			if err := uc.passwords.CheckStrength(password); err != nil {
				return common.Failure[common.DomainEvent](
					common.ValidationError("WEAK_PASSWORD",
						"Password does not meet strength requirements", nil))
			}
			hash, err := uc.passwords.Hash(password)
			if err != nil {
				return common.Failure[common.DomainEvent](
					common.InternalError("HASH_FAILED", "Failed to hash password", nil))
			}
			a.PasswordHash = hash
			updated = append(updated, "password")
		}
	}

	if len(updated) == 0 {
		return common.Failure[common.DomainEvent](
			common.BadRequestError(common.ErrCodeNoUpdatable,
				"no updatable field provided", nil))
	}

	event := events.NewAccountUpdated(execCtx, a.ID, updated)
	return uc.unitOfWork.Commit(ctx, a, event, cmd)
}
