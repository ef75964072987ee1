package event

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/repository"
)

const collectionName = "events"

// Repository is the read port for calendar events. Writes go through
// the unit of work.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Event, error)
	FindByID(ctx context.Context, tenantID, id string) (*Event, error)
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

func (r *MongoRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "day", Value: 1}}).
		SetSkip(offset).
		SetLimit(quantity)

	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, tenantID, id string) (*Event, error) {
	var e Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "tenantId": tenantID}).Decode(&e)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

type InstrumentedRepository struct {
	inner Repository
}

func NewInstrumentedRepository(inner Repository) *InstrumentedRepository {
	return &InstrumentedRepository{inner: inner}
}

func (r *InstrumentedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Event, error) {
	return repository.Instrument(ctx, collectionName, "FindAll", func() ([]*Event, error) {
		return r.inner.FindAll(ctx, tenantID, offset, quantity)
	})
}

func (r *InstrumentedRepository) FindByID(ctx context.Context, tenantID, id string) (*Event, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Event, error) {
		return r.inner.FindByID(ctx, tenantID, id)
	})
}
