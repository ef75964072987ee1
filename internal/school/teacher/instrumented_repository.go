package teacher

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

func (r *InstrumentedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Teacher, error) {
	return repository.Instrument(ctx, collectionName, "FindAll", func() ([]*Teacher, error) {
		return r.inner.FindAll(ctx, tenantID, offset, quantity)
	})
}

func (r *InstrumentedRepository) FindByID(ctx context.Context, tenantID, id string) (*Teacher, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Teacher, error) {
		return r.inner.FindByID(ctx, tenantID, id)
	})
}

func (r *InstrumentedRepository) FindByEmail(ctx context.Context, tenantID, email string) (*Teacher, error) {
	return repository.Instrument(ctx, collectionName, "FindByEmail", func() (*Teacher, error) {
		return r.inner.FindByEmail(ctx, tenantID, email)
	})
}

func (r *InstrumentedRepository) Insert(ctx context.Context, t *Teacher) error {
	return repository.InstrumentVoid(ctx, collectionName, "Insert", func() error {
		return r.inner.Insert(ctx, t)
	})
}

func (r *InstrumentedRepository) Update(ctx context.Context, t *Teacher) error {
	return repository.InstrumentVoid(ctx, collectionName, "Update", func() error {
		return r.inner.Update(ctx, t)
	})
}

func (r *InstrumentedRepository) Delete(ctx context.Context, tenantID, id string) error {
	return repository.InstrumentVoid(ctx, collectionName, "Delete", func() error {
		return r.inner.Delete(ctx, tenantID, id)
	})
}
