package student

import (
	"context"

	"go.classcore.tech/internal/common/repository"
)

// InstrumentedRepository records latency and outcome metrics around a
// Repository.
type InstrumentedRepository struct {
	inner Repository
}

func NewInstrumentedRepository(inner Repository) *InstrumentedRepository {
	return &InstrumentedRepository{inner: inner}
}

func (r *InstrumentedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Student, error) {
	return repository.Instrument(ctx, collectionName, "FindAll", func() ([]*Student, error) {
		return r.inner.FindAll(ctx, tenantID, offset, quantity)
	})
}

func (r *InstrumentedRepository) FindByID(ctx context.Context, tenantID, id string) (*Student, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Student, error) {
		return r.inner.FindByID(ctx, tenantID, id)
	})
}

func (r *InstrumentedRepository) FindByEmail(ctx context.Context, tenantID, email string) (*Student, error) {
	return repository.Instrument(ctx, collectionName, "FindByEmail", func() (*Student, error) {
		return r.inner.FindByEmail(ctx, tenantID, email)
	})
}

func (r *InstrumentedRepository) Insert(ctx context.Context, s *Student) error {
	return repository.InstrumentVoid(ctx, collectionName, "Insert", func() error {
		return r.inner.Insert(ctx, s)
	})
}

func (r *InstrumentedRepository) Update(ctx context.Context, s *Student) error {
	return repository.InstrumentVoid(ctx, collectionName, "Update", func() error {
		return r.inner.Update(ctx, s)
	})
}

func (r *InstrumentedRepository) Delete(ctx context.Context, tenantID, id string) error {
	return repository.InstrumentVoid(ctx, collectionName, "Delete", func() error {
		return r.inner.Delete(ctx, tenantID, id)
	})
}
