package evaluation

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/repository"
)

const collectionName = "evaluations"

// Repository is the read port for evaluations. Writes go through the
// unit of work. FindByStudent backs the self-scoped student view.
type Repository interface {
	FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Evaluation, error)
	FindByID(ctx context.Context, tenantID, id string) (*Evaluation, error)
	FindByStudent(ctx context.Context, tenantID, studentID string) ([]*Evaluation, error)
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

func (r *MongoRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Evaluation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(quantity)
	return r.findMany(ctx, bson.M{"tenantId": tenantID}, opts)
}

func (r *MongoRepository) FindByStudent(ctx context.Context, tenantID, studentID string) ([]*Evaluation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findMany(ctx, bson.M{"tenantId": tenantID, "studentId": studentID}, opts)
}

func (r *MongoRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Evaluation, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var evaluations []*Evaluation
	if err := cursor.All(ctx, &evaluations); err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, tenantID, id string) (*Evaluation, error) {
	var e Evaluation
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

func (r *InstrumentedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Evaluation, error) {
	return repository.Instrument(ctx, collectionName, "FindAll", func() ([]*Evaluation, error) {
		return r.inner.FindAll(ctx, tenantID, offset, quantity)
	})
}

func (r *InstrumentedRepository) FindByID(ctx context.Context, tenantID, id string) (*Evaluation, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Evaluation, error) {
		return r.inner.FindByID(ctx, tenantID, id)
	})
}

func (r *InstrumentedRepository) FindByStudent(ctx context.Context, tenantID, studentID string) ([]*Evaluation, error) {
	return repository.Instrument(ctx, collectionName, "FindByStudent", func() ([]*Evaluation, error) {
		return r.inner.FindByStudent(ctx, tenantID, studentID)
	})
}
