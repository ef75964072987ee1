package student

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/repository"
)

const collectionName = "students"

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

func (r *MongoRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Student, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(offset).
		SetLimit(quantity)

	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []*Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, tenantID, id string) (*Student, error) {
	return r.findOne(ctx, bson.M{"_id": id, "tenantId": tenantID})
}

func (r *MongoRepository) FindByEmail(ctx context.Context, tenantID, email string) (*Student, error) {
	return r.findOne(ctx, bson.M{"email": email, "tenantId": tenantID})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*Student, error) {
	var s Student
	if err := r.collection.FindOne(ctx, filter).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *MongoRepository) Insert(ctx context.Context, s *Student) error {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, s *Student) error {
	s.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": s.ID, "tenantId": s.TenantID}, s)
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
