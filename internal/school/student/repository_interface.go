package student

import "context"

// Repository is the persistence port for students. All reads and writes
// are scoped to a tenant.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Student, error)
	FindByID(ctx context.Context, tenantID, id string) (*Student, error)
	FindByEmail(ctx context.Context, tenantID, email string) (*Student, error)
	Insert(ctx context.Context, s *Student) error
	Update(ctx context.Context, s *Student) error
	Delete(ctx context.Context, tenantID, id string) error
}
