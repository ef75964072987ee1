package account

import (
	"context"

	"go.classcore.tech/internal/common/repository"
)

const collectionName = "accounts"

type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Account, error) {
	return repository.Instrument(ctx, collectionName, "FindAll", func() ([]*Account, error) {
		return r.inner.FindAll(ctx, tenantID, offset, quantity)
	})
}

func (r *instrumentedRepository) FindByID(ctx context.Context, tenantID, id string) (*Account, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Account, error) {
		return r.inner.FindByID(ctx, tenantID, id)
	})
}

func (r *instrumentedRepository) FindByTenantEmail(ctx context.Context, tenantID, email string) (*Account, error) {
	return repository.Instrument(ctx, collectionName, "FindByTenantEmail", func() (*Account, error) {
		return r.inner.FindByTenantEmail(ctx, tenantID, email)
	})
}

func (r *instrumentedRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return repository.Instrument(ctx, collectionName, "FindByEmail", func() (*Account, error) {
		return r.inner.FindByEmail(ctx, email)
	})
}

func (r *instrumentedRepository) Insert(ctx context.Context, a *Account) error {
	return repository.InstrumentVoid(ctx, collectionName, "Insert", func() error {
		return r.inner.Insert(ctx, a)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, a *Account) error {
	return repository.InstrumentVoid(ctx, collectionName, "Update", func() error {
		return r.inner.Update(ctx, a)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, tenantID, id string) error {
	return repository.InstrumentVoid(ctx, collectionName, "Delete", func() error {
		return r.inner.Delete(ctx, tenantID, id)
	})
}
