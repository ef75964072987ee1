//go:build integration

// Integration tests for the MongoDB-backed student repository.
// Requires Docker.
package student

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/repository"
)

// startMongo starts a MongoDB container and returns a connected database.
func startMongo(ctx context.Context, t *testing.T) *mongo.Database {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	t.Cleanup(func() { container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get endpoint: %v", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://"+endpoint))
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { client.Disconnect(ctx) })

	return client.Database("classcore_test")
}

func TestMongoRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	db := startMongo(ctx, t)
	repo := NewMongoRepository(db)

	// Same unique index the startup initializer creates.
	_, err := db.Collection("students").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("Failed to create index: %v", err)
	}

	ana := &Student{
		ID:        "0c4b1c3e-9a6b-4c7d-8f2e-1a5b6c7d8e9f",
		TenantID:  "tenant-1",
		Name:      "Ana",
		Email:     "ana@school.example",
		Classroom: "5B",
	}
	if err := repo.Insert(ctx, ana); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if ana.CreatedAt.IsZero() || ana.UpdatedAt.IsZero() {
		t.Error("Insert should stamp CreatedAt and UpdatedAt")
	}

	t.Run("FindByID", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "tenant-1", ana.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if got.Email != ana.Email {
			t.Errorf("expected email %s, got %s", ana.Email, got.Email)
		}
	})

	t.Run("FindByEmail", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "tenant-1", ana.Email)
		if err != nil {
			t.Fatalf("FindByEmail failed: %v", err)
		}
		if got.ID != ana.ID {
			t.Errorf("expected id %s, got %s", ana.ID, got.ID)
		}
	})

	t.Run("TenantIsolation", func(t *testing.T) {
		if _, err := repo.FindByID(ctx, "tenant-2", ana.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound across tenants, got %v", err)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := &Student{
			ID:       "7d2e9f1a-3b4c-4d5e-8a6b-0c1d2e3f4a5b",
			TenantID: "tenant-1",
			Name:     "Ana Clone",
			Email:    "ana@school.example",
		}
		if err := repo.Insert(ctx, dup); !errors.Is(err, repository.ErrDuplicateKey) {
			t.Errorf("expected ErrDuplicateKey, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		ana.Classroom = "6A"
		if err := repo.Update(ctx, ana); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		got, err := repo.FindByID(ctx, "tenant-1", ana.ID)
		if err != nil {
			t.Fatalf("FindByID after update failed: %v", err)
		}
		if got.Classroom != "6A" {
			t.Errorf("expected classroom 6A, got %s", got.Classroom)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, "tenant-1", ana.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := repo.FindByID(ctx, "tenant-1", ana.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, "tenant-1", ana.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}
