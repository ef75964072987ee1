package account

import "context"

// Repository defines account data access. Every method except
// FindByEmail is tenant-scoped; FindByEmail backs login, which happens
// before any tenant is known, and emails are unique across tenants.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Account, error)
	FindByID(ctx context.Context, tenantID, id string) (*Account, error)
	FindByTenantEmail(ctx context.Context, tenantID, email string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Insert(ctx context.Context, a *Account) error
	Update(ctx context.Context, a *Account) error
	Delete(ctx context.Context, tenantID, id string) error
}
