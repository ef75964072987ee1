package account

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/repository"
)

type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates the account repository with instrumentation.
func NewRepository(db *mongo.Database) Repository {
	return newInstrumentedRepository(&mongoRepository{
		collection: db.Collection("accounts"),
	})
}

func (r *mongoRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Account, error) {
	opts := options.Find().SetSort(bson.M{"email": 1}).SetSkip(offset)
	if quantity > 0 {
		opts.SetLimit(quantity)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []*Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, tenantID, id string) (*Account, error) {
	return r.findOne(ctx, bson.M{"_id": id, "tenantId": tenantID})
}

func (r *mongoRepository) FindByTenantEmail(ctx context.Context, tenantID, email string) (*Account, error) {
	return r.findOne(ctx, bson.M{"email": email, "tenantId": tenantID})
}

// FindByEmail looks up across tenants; login has no tenant context yet.
func (r *mongoRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*Account, error) {
	var a Account
	err := r.collection.FindOne(ctx, filter).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *mongoRepository) Insert(ctx context.Context, a *Account) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateKey
	}
	return err
}

func (r *mongoRepository) Update(ctx context.Context, a *Account) error {
	a.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": a.ID, "tenantId": a.TenantID},
		bson.M{"$set": a})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "tenantId": tenantID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
