package administrator

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/repository"
)

const collectionName = "administrators"

// Repository is the read port for administrators. Writes go through the
// unit of work.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Administrator, error)
	FindByID(ctx context.Context, tenantID, id string) (*Administrator, error)
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

func (r *MongoRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Administrator, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(offset).
		SetLimit(quantity)

	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var administrators []*Administrator
	if err := cursor.All(ctx, &administrators); err != nil {
		return nil, err
	}
	return administrators, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, tenantID, id string) (*Administrator, error) {
	var a Administrator
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "tenantId": tenantID}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

type InstrumentedRepository struct {
	inner Repository
}

func NewInstrumentedRepository(inner Repository) *InstrumentedRepository {
	return &InstrumentedRepository{inner: inner}
}

func (r *InstrumentedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Administrator, error) {
	return repository.Instrument(ctx, collectionName, "FindAll", func() ([]*Administrator, error) {
		return r.inner.FindAll(ctx, tenantID, offset, quantity)
	})
}

func (r *InstrumentedRepository) FindByID(ctx context.Context, tenantID, id string) (*Administrator, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Administrator, error) {
		return r.inner.FindByID(ctx, tenantID, id)
	})
}
