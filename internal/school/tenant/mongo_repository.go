package tenant

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"go.classcore.tech/internal/common/repository"
)

const collectionName = "tenants"

type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates the tenant repository with instrumentation.
func NewRepository(db *mongo.Database) Repository {
	return &instrumentedRepository{inner: &mongoRepository{
		collection: db.Collection(collectionName),
	}}
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *mongoRepository) Insert(ctx context.Context, t *Tenant) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, t)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateKey
	}
	return err
}

func (r *mongoRepository) Update(ctx context.Context, t *Tenant) error {
	t.UpdatedAt = time.Now()
	result, err := r.collection.UpdateByID(ctx, t.ID, bson.M{"$set": t})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// instrumentedRepository wraps the mongo repository with metrics.
type instrumentedRepository struct {
	inner Repository
}

func (r *instrumentedRepository) FindByID(ctx context.Context, id string) (*Tenant, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Tenant, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *instrumentedRepository) Insert(ctx context.Context, t *Tenant) error {
	return repository.InstrumentVoid(ctx, collectionName, "Insert", func() error {
		return r.inner.Insert(ctx, t)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, t *Tenant) error {
	return repository.InstrumentVoid(ctx, collectionName, "Update", func() error {
		return r.inner.Update(ctx, t)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, id string) error {
	return repository.InstrumentVoid(ctx, collectionName, "Delete", func() error {
		return r.inner.Delete(ctx, id)
	})
}
