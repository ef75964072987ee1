package lesson

import "context"

// Repository is the persistence port for lessons, scoped to a tenant.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Lesson, error)
	FindByID(ctx context.Context, tenantID, id string) (*Lesson, error)
	FindBySubject(ctx context.Context, tenantID, subjectID string) ([]*Lesson, error)
	Insert(ctx context.Context, l *Lesson) error
	Update(ctx context.Context, l *Lesson) error
	Delete(ctx context.Context, tenantID, id string) error
}
