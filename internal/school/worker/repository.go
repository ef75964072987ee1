package worker

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/repository"
)

const collectionName = "workers"

// Repository is the read port for workers. Writes go through the unit
// of work.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Worker, error)
	FindByID(ctx context.Context, tenantID, id string) (*Worker, error)
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

func (r *MongoRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Worker, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(offset).
		SetLimit(quantity)

	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workers []*Worker
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, tenantID, id string) (*Worker, error) {
	var w Worker
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "tenantId": tenantID}).Decode(&w)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

type InstrumentedRepository struct {
	inner Repository
}

func NewInstrumentedRepository(inner Repository) *InstrumentedRepository {
	return &InstrumentedRepository{inner: inner}
}

func (r *InstrumentedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Worker, error) {
	return repository.Instrument(ctx, collectionName, "FindAll", func() ([]*Worker, error) {
		return r.inner.FindAll(ctx, tenantID, offset, quantity)
	})
}

func (r *InstrumentedRepository) FindByID(ctx context.Context, tenantID, id string) (*Worker, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Worker, error) {
		return r.inner.FindByID(ctx, tenantID, id)
	})
}
