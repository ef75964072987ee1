package subject

import "context"

// Repository is the persistence port for subjects, scoped to a tenant.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Subject, error)
	FindByID(ctx context.Context, tenantID, id string) (*Subject, error)
	Insert(ctx context.Context, s *Subject) error
	Update(ctx context.Context, s *Subject) error
	Delete(ctx context.Context, tenantID, id string) error
}
