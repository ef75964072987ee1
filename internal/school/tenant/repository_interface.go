package tenant

import "context"

// Repository defines tenant data access. Tenants are the scoping root,
// so lookups take the tenant's own ID rather than a scoping parameter.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Tenant, error)
	Insert(ctx context.Context, t *Tenant) error
	Update(ctx context.Context, t *Tenant) error
	Delete(ctx context.Context, id string) error
}
