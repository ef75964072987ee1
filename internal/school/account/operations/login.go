package operations

import (
	"context"
	"errors"

	"go.classcore.tech/internal/common/repository"
	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/auth/token"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/account"
)

// LoginCommand carries login credentials.
type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the successful login response.
type LoginResult struct {
	Token   string         `json:"token"`
	Account account.Public `json:"account"`
}

// LoginUseCase verifies credentials and issues a signed claim. Read-only:
// it does not touch the unit of work.
type LoginUseCase struct {
	accounts  account.Repository
	passwords *local.PasswordService
	codec     *token.Codec
}

func NewLoginUseCase(accounts account.Repository, passwords *local.PasswordService, codec *token.Codec) *LoginUseCase {
	return &LoginUseCase{accounts: accounts, passwords: passwords, codec: codec}
}

// Execute returns a signed token for valid credentials. Unknown email and
// wrong password produce the same error so the endpoint does not leak
// which accounts exist.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, *common.UseCaseError) {
	email := local.NormalizeEmail(cmd.Email)

	a, err := uc.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, common.FromError(err)
	}

	if err := uc.passwords.Verify(cmd.Password, a.PasswordHash); err != nil {
		return nil, invalidCredentials()
	}

	signed, err := uc.codec.Generate(a.Email, a.TenantID, a.Role)
	if err != nil {
		return nil, common.InternalError("TOKEN_FAILED", "Failed to issue token", nil)
	}

	return &LoginResult{Token: signed, Account: a.ToPublic()}, nil
}

func invalidCredentials() *common.UseCaseError {
	return common.UnauthorizedError(common.ErrCodeInvalidCredentials,
		"Invalid email or password", nil)
}
