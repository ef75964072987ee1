package lesson

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/repository"
)

const collectionName = "lessons"

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

func (r *MongoRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Lesson, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "startsAt", Value: 1}}).
		SetSkip(offset).
		SetLimit(quantity)
	return r.findMany(ctx, bson.M{"tenantId": tenantID}, opts)
}

func (r *MongoRepository) FindBySubject(ctx context.Context, tenantID, subjectID string) ([]*Lesson, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}})
	return r.findMany(ctx, bson.M{"tenantId": tenantID, "subjectId": subjectID}, opts)
}

func (r *MongoRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Lesson, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lessons []*Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, tenantID, id string) (*Lesson, error) {
	var l Lesson
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "tenantId": tenantID}).Decode(&l)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *MongoRepository) Insert(ctx context.Context, l *Lesson) error {
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.StudentIDs == nil {
		l.StudentIDs = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, l); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, l *Lesson) error {
	l.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": l.ID, "tenantId": l.TenantID}, l)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "tenantId": tenantID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
