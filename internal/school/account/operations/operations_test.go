package operations

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"go.classcore.tech/internal/common/repository"
	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/auth/token"
	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/account"
)

// fakeAccountRepo is an in-memory repository keyed by email.
type fakeAccountRepo struct {
	byEmail map[string]*account.Account
}

func newFakeAccountRepo(accounts ...*account.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{byEmail: map[string]*account.Account{}}
	for _, a := range accounts {
		repo.byEmail[a.Email] = a
	}
	return repo
}

func (r *fakeAccountRepo) FindAll(_ context.Context, tenantID string, _, _ int64) ([]*account.Account, error) {
	var out []*account.Account
	for _, a := range r.byEmail {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, tenantID, id string) (*account.Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id && a.TenantID == tenantID {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) FindByTenantEmail(_ context.Context, tenantID, email string) (*account.Account, error) {
	if a, ok := r.byEmail[email]; ok && a.TenantID == tenantID {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*account.Account, error) {
	if a, ok := r.byEmail[email]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) Insert(_ context.Context, a *account.Account) error {
	if _, ok := r.byEmail[a.Email]; ok {
		return repository.ErrDuplicateKey
	}
	r.byEmail[a.Email] = a
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, a *account.Account) error {
	r.byEmail[a.Email] = a
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, tenantID, id string) error {
	for email, a := range r.byEmail {
		if a.ID == id && a.TenantID == tenantID {
			delete(r.byEmail, email)
			return nil
		}
	}
	return repository.ErrNotFound
}

func fastPasswords() *local.PasswordService {
	return local.NewPasswordServiceWithCost(bcrypt.MinCost)
}

func testCodec(t *testing.T) *token.Codec {
	t.Helper()
	keys := token.NewKeyManager()
	if err := keys.Initialize("", ""); err != nil {
		t.Fatalf("KeyManager.Initialize() failed: %v", err)
	}
	return token.NewCodec(keys, "classcore-test", 0)
}

func seedAccount(t *testing.T, email, password, tenantID string, role authorization.Role) *account.Account {
	t.Helper()
	hash, err := fastPasswords().Hash(password)
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}
	return &account.Account{
		ID:           "a-" + email,
		TenantID:     tenantID,
		Name:         "Seeded",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	uc := NewRegisterAccountUseCase(newFakeAccountRepo(), fastPasswords(), nil)

	result := uc.Execute(context.Background(), RegisterAccountCommand{
		Name: "Ana", Email: "ana@school.example", Password: "Str0ngPass!", Role: "janitor",
	}, common.NewExecutionContext("", "t1"))

	if result.IsSuccess() {
		t.Fatal("Execute() accepted an unknown role")
	}
	if result.Error().Kind != common.ErrorKindValidation {
		t.Errorf("Kind = %v, want Validation", result.Error().Kind)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	uc := NewRegisterAccountUseCase(newFakeAccountRepo(), fastPasswords(), nil)

	result := uc.Execute(context.Background(), RegisterAccountCommand{
		Name: "Ana", Email: "ana@school.example", Password: "weak", Role: "student",
	}, common.NewExecutionContext("", "t1"))

	if result.IsSuccess() {
		t.Fatal("Execute() accepted a weak password")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	existing := seedAccount(t, "ana@school.example", "Str0ngPass!", "t1", authorization.RoleStudent)
	uc := NewRegisterAccountUseCase(newFakeAccountRepo(existing), fastPasswords(), nil)

	result := uc.Execute(context.Background(), RegisterAccountCommand{
		Name: "Other Ana", Email: "Ana@School.Example", Password: "Str0ngPass!", Role: "teacher",
	}, common.NewExecutionContext("owner@school.example", "t1"))

	if result.IsSuccess() {
		t.Fatal("Execute() accepted a duplicate email")
	}
	if result.Error().Kind != common.ErrorKindConflict {
		t.Errorf("Kind = %v, want Conflict", result.Error().Kind)
	}
}

func TestRegisterOwnerRequiresSchoolName(t *testing.T) {
	uc := NewRegisterAccountUseCase(newFakeAccountRepo(), fastPasswords(), nil)

	result := uc.Execute(context.Background(), RegisterAccountCommand{
		Name: "Maria", Email: "maria@school.example", Password: "Str0ngPass!", Role: "tenant-owner",
	}, common.NewExecutionContext("", ""))

	if result.IsSuccess() {
		t.Fatal("Execute() provisioned a tenant without a school name")
	}
	if result.Error().Code != common.ErrCodeRequired {
		t.Errorf("Code = %q, want %q", result.Error().Code, common.ErrCodeRequired)
	}
}

func TestRegisterNonOwnerRequiresTenant(t *testing.T) {
	uc := NewRegisterAccountUseCase(newFakeAccountRepo(), fastPasswords(), nil)

	result := uc.Execute(context.Background(), RegisterAccountCommand{
		Name: "Ana", Email: "ana@school.example", Password: "Str0ngPass!", Role: "student",
	}, common.NewExecutionContext("", ""))

	if result.IsSuccess() {
		t.Fatal("Execute() created an account without a tenant")
	}
	if result.Error().Kind != common.ErrorKindUnauthorized {
		t.Errorf("Kind = %v, want Unauthorized", result.Error().Kind)
	}
}

func TestLogin(t *testing.T) {
	seeded := seedAccount(t, "maria@school.example", "Str0ngPass!", "t1", authorization.RoleTeacher)
	uc := NewLoginUseCase(newFakeAccountRepo(seeded), fastPasswords(), testCodec(t))

	result, uce := uc.Execute(context.Background(), LoginCommand{
		Email: "Maria@School.Example ", Password: "Str0ngPass!",
	})
	if uce != nil {
		t.Fatalf("Execute() failed: %v", uce)
	}
	if result.Token == "" {
		t.Error("login returned an empty token")
	}
	if result.Account.Role != authorization.RoleTeacher {
		t.Errorf("Role = %q, want teacher", result.Account.Role)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	seeded := seedAccount(t, "maria@school.example", "Str0ngPass!", "t1", authorization.RoleTeacher)
	uc := NewLoginUseCase(newFakeAccountRepo(seeded), fastPasswords(), testCodec(t))

	cases := []struct {
		name string
		cmd  LoginCommand
	}{
		{"unknown email", LoginCommand{Email: "ghost@school.example", Password: "Str0ngPass!"}},
		{"wrong password", LoginCommand{Email: "maria@school.example", Password: "WrongPass1!"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, uce := uc.Execute(context.Background(), tc.cmd)
			if uce == nil {
				t.Fatal("Execute() accepted bad credentials")
			}
			if uce.Kind != common.ErrorKindUnauthorized {
				t.Errorf("Kind = %v, want Unauthorized", uce.Kind)
			}
			// Same code either way, no account-existence oracle.
			if uce.Code != common.ErrCodeInvalidCredentials {
				t.Errorf("Code = %q, want %q", uce.Code, common.ErrCodeInvalidCredentials)
			}
		})
	}
}

func TestDeleteProtectsTenantOwner(t *testing.T) {
	owner := seedAccount(t, "owner@school.example", "Str0ngPass!", "t1", authorization.RoleTenantOwner)
	uc := NewDeleteAccountUseCase(newFakeAccountRepo(owner), nil)

	result := uc.Execute(context.Background(), DeleteAccountCommand{
		Email: "owner@school.example",
	}, common.NewExecutionContext("admin@school.example", "t1"))

	if result.IsSuccess() {
		t.Fatal("Execute() deleted the tenant owner")
	}
	if result.Error().Kind != common.ErrorKindConflict {
		t.Errorf("Kind = %v, want Conflict", result.Error().Kind)
	}
}

func TestUpdateRequiresUpdatableField(t *testing.T) {
	seeded := seedAccount(t, "ana@school.example", "Str0ngPass!", "t1", authorization.RoleStudent)
	uc := NewUpdateAccountUseCase(newFakeAccountRepo(seeded), fastPasswords(), nil)

	result := uc.Execute(context.Background(), UpdateAccountCommand{
		Email:        "ana@school.example",
		DataToUpdate: map[string]any{"shoeSize": 42},
	}, common.NewExecutionContext("ana@school.example", "t1"))

	if result.IsSuccess() {
		t.Fatal("Execute() accepted an update with no updatable fields")
	}
	if result.Error().Code != common.ErrCodeNoUpdatable {
		t.Errorf("Code = %q, want %q", result.Error().Code, common.ErrCodeNoUpdatable)
	}
}
