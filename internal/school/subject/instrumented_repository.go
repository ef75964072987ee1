package subject

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

func (r *InstrumentedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Subject, error) {
	return repository.Instrument(ctx, collectionName, "FindAll", func() ([]*Subject, error) {
		return r.inner.FindAll(ctx, tenantID, offset, quantity)
	})
}

func (r *InstrumentedRepository) FindByID(ctx context.Context, tenantID, id string) (*Subject, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Subject, error) {
		return r.inner.FindByID(ctx, tenantID, id)
	})
}

func (r *InstrumentedRepository) Insert(ctx context.Context, s *Subject) error {
	return repository.InstrumentVoid(ctx, collectionName, "Insert", func() error {
		return r.inner.Insert(ctx, s)
	})
}

func (r *InstrumentedRepository) Update(ctx context.Context, s *Subject) error {
	return repository.InstrumentVoid(ctx, collectionName, "Update", func() error {
		return r.inner.Update(ctx, s)
	})
}

func (r *InstrumentedRepository) Delete(ctx context.Context, tenantID, id string) error {
	return repository.InstrumentVoid(ctx, collectionName, "Delete", func() error {
		return r.inner.Delete(ctx, tenantID, id)
	})
}
