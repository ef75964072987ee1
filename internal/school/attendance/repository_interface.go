package attendance

import "context"

// Repository is the persistence port for attendance records, scoped to a
// tenant.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Attendance, error)
	FindByID(ctx context.Context, tenantID, id string) (*Attendance, error)
	FindByLessonDay(ctx context.Context, tenantID, lessonID, day string) (*Attendance, error)
	Insert(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, tenantID, id string) error
}
