package attendance

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/repository"
)

const collectionName = "attendances"

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

func (r *MongoRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Attendance, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "day", Value: -1}}).
		SetSkip(offset).
		SetLimit(quantity)

	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*Attendance
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, tenantID, id string) (*Attendance, error) {
	return r.findOne(ctx, bson.M{"_id": id, "tenantId": tenantID})
}

func (r *MongoRepository) FindByLessonDay(ctx context.Context, tenantID, lessonID, day string) (*Attendance, error) {
	return r.findOne(ctx, bson.M{"lessonId": lessonID, "day": day, "tenantId": tenantID})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*Attendance, error) {
	var a Attendance
	if err := r.collection.FindOne(ctx, filter).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *MongoRepository) Insert(ctx context.Context, a *Attendance) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.StudentIDs == nil {
		a.StudentIDs = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, a *Attendance) error {
	a.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": a.ID, "tenantId": a.TenantID}, a)
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
