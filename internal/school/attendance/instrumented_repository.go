package attendance

import (
	"context"

	"go.classcore.tech/internal/common/repository"
)

type InstrumentedRepository struct {
	inner Repository
}

func NewInstrumentedRepository(inner Repository) *InstrumentedRepository {
	return &InstrumentedRepository{inner: inner}
}

func (r *InstrumentedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Attendance, error) {
	return repository.Instrument(ctx, collectionName, "FindAll", func() ([]*Attendance, error) {
		return r.inner.FindAll(ctx, tenantID, offset, quantity)
	})
}

func (r *InstrumentedRepository) FindByID(ctx context.Context, tenantID, id string) (*Attendance, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Attendance, error) {
		return r.inner.FindByID(ctx, tenantID, id)
	})
}

func (r *InstrumentedRepository) FindByLessonDay(ctx context.Context, tenantID, lessonID, day string) (*Attendance, error) {
	return repository.Instrument(ctx, collectionName, "FindByLessonDay", func() (*Attendance, error) {
		return r.inner.FindByLessonDay(ctx, tenantID, lessonID, day)
	})
}

func (r *InstrumentedRepository) Insert(ctx context.Context, a *Attendance) error {
	return repository.InstrumentVoid(ctx, collectionName, "Insert", func() error {
		return r.inner.Insert(ctx, a)
	})
}

func (r *InstrumentedRepository) Update(ctx context.Context, a *Attendance) error {
	return repository.InstrumentVoid(ctx, collectionName, "Update", func() error {
		return r.inner.Update(ctx, a)
	})
}

func (r *InstrumentedRepository) Delete(ctx context.Context, tenantID, id string) error {
	return repository.InstrumentVoid(ctx, collectionName, "Delete", func() error {
		return r.inner.Delete(ctx, tenantID, id)
	})
}
