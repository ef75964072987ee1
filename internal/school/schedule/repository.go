package schedule

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/repository"
)

const collectionName = "schedules"

// Repository is the read port for schedules. Writes go through the unit
// of work; Invalidate lets the write path drop stale cache entries.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Schedule, error)
	FindByID(ctx context.Context, tenantID, id string) (*Schedule, error)
	Invalidate(ctx context.Context, tenantID, id string)
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

func (r *MongoRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Schedule, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "term", Value: -1}, {Key: "name", Value: 1}}).
		SetSkip(offset).
		SetLimit(quantity)

	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []*Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, tenantID, id string) (*Schedule, error) {
	var s Schedule
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "tenantId": tenantID}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Invalidate is a no-op at the persistence layer.
func (r *MongoRepository) Invalidate(context.Context, string, string) {}

type InstrumentedRepository struct {
	inner Repository
}

func NewInstrumentedRepository(inner Repository) *InstrumentedRepository {
	return &InstrumentedRepository{inner: inner}
}

func (r *InstrumentedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Schedule, error) {
	return repository.Instrument(ctx, collectionName, "FindAll", func() ([]*Schedule, error) {
		return r.inner.FindAll(ctx, tenantID, offset, quantity)
	})
}

func (r *InstrumentedRepository) FindByID(ctx context.Context, tenantID, id string) (*Schedule, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Schedule, error) {
		return r.inner.FindByID(ctx, tenantID, id)
	})
}

func (r *InstrumentedRepository) Invalidate(ctx context.Context, tenantID, id string) {
	r.inner.Invalidate(ctx, tenantID, id)
}
