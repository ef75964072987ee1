package mongo

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexDefinition defines a MongoDB index.
type IndexDefinition struct {
	Collection string
	Keys       bson.D
	Options    *options.IndexOptions
}

// IndexInitializer creates indexes on startup.
type IndexInitializer struct {
	client *Client
}

func NewIndexInitializer(client *Client) *IndexInitializer {
	return &IndexInitializer{client: client}
}

// Initialize creates all required indexes.
func (i *IndexInitializer) Initialize(ctx context.Context) error {
	indexes := i.getIndexDefinitions()

	for _, idx := range indexes {
		if err := i.createIndex(ctx, idx); err != nil {
			slog.Warn("Failed to create index (may already exist)",
				"error", err,
				"collection", idx.Collection)
		}
	}

	slog.Info("Index initialization complete", "count", len(indexes))
	return nil
}

func (i *IndexInitializer) createIndex(ctx context.Context, idx IndexDefinition) error {
	collection := i.client.Collection(idx.Collection)

	indexModel := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: idx.Options,
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}

func (i *IndexInitializer) getIndexDefinitions() []IndexDefinition {
	return []IndexDefinition{
		// accounts: email lookup is the login path, unique per tenant
		{
			Collection: "accounts",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "email", Value: 1}},
			Options:    options.Index().SetUnique(true),
		},
		{
			Collection: "accounts",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "role", Value: 1}},
		},

		// tenants
		{
			Collection: "tenants",
			Keys:       bson.D{{Key: "name", Value: 1}},
		},

		// students
		{
			Collection: "students",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "email", Value: 1}},
			Options:    options.Index().SetUnique(true),
		},
		{
			Collection: "students",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "classroom", Value: 1}},
		},

		// teachers
		{
			Collection: "teachers",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "email", Value: 1}},
			Options:    options.Index().SetUnique(true),
		},

		// subjects
		{
			Collection: "subjects",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "name", Value: 1}},
		},

		// lessons: timetable queries scan by subject and start time
		{
			Collection: "lessons",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "subjectId", Value: 1}, {Key: "startsAt", Value: 1}},
		},
		{
			Collection: "lessons",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "teacherId", Value: 1}},
		},

		// attendances: one record per lesson and day
		{
			Collection: "attendances",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "lessonId", Value: 1}, {Key: "day", Value: 1}},
			Options:    options.Index().SetUnique(true),
		},

		// administrators and workers
		{
			Collection: "administrators",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "name", Value: 1}},
		},
		{
			Collection: "workers",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "name", Value: 1}},
		},

		// curriculums and schedules
		{
			Collection: "curriculums",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "year", Value: 1}},
		},
		{
			Collection: "schedules",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "term", Value: 1}},
		},

		// calendar events
		{
			Collection: "events",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "day", Value: 1}},
		},

		// evaluations and notes: report cards read per student
		{
			Collection: "evaluations",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "studentId", Value: 1}},
		},
		{
			Collection: "notes",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "studentId", Value: 1}},
		},

		// domain_events: replay per aggregate, expire after 90 days
		{
			Collection: "domain_events",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "subject", Value: 1}},
		},
		{
			Collection: "domain_events",
			Keys:       bson.D{{Key: "time", Value: 1}},
			Options:    options.Index().SetExpireAfterSeconds(int32(90 * 24 * time.Hour / time.Second)),
		},

		// audit_logs
		{
			Collection: "audit_logs",
			Keys:       bson.D{{Key: "tenantId", Value: 1}, {Key: "principalEmail", Value: 1}},
		},
		{
			Collection: "audit_logs",
			Keys:       bson.D{{Key: "performedAt", Value: -1}},
		},
	}
}
