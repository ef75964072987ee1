package teacher

import "context"

// Repository is the persistence port for teachers, scoped to a tenant.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Teacher, error)
	FindByID(ctx context.Context, tenantID, id string) (*Teacher, error)
	FindByEmail(ctx context.Context, tenantID, email string) (*Teacher, error)
	Insert(ctx context.Context, t *Teacher) error
	Update(ctx context.Context, t *Teacher) error
	Delete(ctx context.Context, tenantID, id string) error
}
