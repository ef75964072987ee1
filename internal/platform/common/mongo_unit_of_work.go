package common

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.classcore.tech/internal/common/tsid"
)

const (
	eventsCollection = "domain_events"
	auditCollection  = "audit_logs"
)

// MongoUnitOfWork implements UnitOfWork on MongoDB transactions. The
// aggregate write, the event record, and the audit entry commit or roll
// back together.
type MongoUnitOfWork struct {
	client *mongo.Client
	db     *mongo.Database

	// published is called after a successful commit, outside the
	// transaction. Best effort: a broker outage never fails the commit.
	published func(event DomainEvent)
}

// NewMongoUnitOfWork creates a MongoDB-backed UnitOfWork. The onPublish
// hook may be nil.
func NewMongoUnitOfWork(client *mongo.Client, db *mongo.Database, onPublish func(DomainEvent)) *MongoUnitOfWork {
	return &MongoUnitOfWork{client: client, db: db, published: onPublish}
}

// Commit upserts the aggregate with its domain event atomically.
func (uow *MongoUnitOfWork) Commit(
	ctx context.Context,
	aggregate Aggregate,
	event DomainEvent,
	command any,
) Result[DomainEvent] {
	return uow.run(ctx, event, command, func(sessCtx mongo.SessionContext) error {
		return uow.persistAggregate(sessCtx, aggregate)
	})
}

// CommitDelete removes the aggregate with its domain event atomically.
func (uow *MongoUnitOfWork) CommitDelete(
	ctx context.Context,
	aggregate Aggregate,
	event DomainEvent,
	command any,
) Result[DomainEvent] {
	return uow.run(ctx, event, command, func(sessCtx mongo.SessionContext) error {
		collection := uow.db.Collection(aggregate.CollectionName())
		_, err := collection.DeleteOne(sessCtx, bson.M{"_id": aggregate.AggregateID()})
		return err
	})
}

// CommitAll upserts several aggregates under one domain event.
func (uow *MongoUnitOfWork) CommitAll(
	ctx context.Context,
	aggregates []Aggregate,
	event DomainEvent,
	command any,
) Result[DomainEvent] {
	return uow.run(ctx, event, command, func(sessCtx mongo.SessionContext) error {
		for i, aggregate := range aggregates {
			if err := uow.persistAggregate(sessCtx, aggregate); err != nil {
				return fmt.Errorf("persist aggregate %d: %w", i, err)
			}
		}
		return nil
	})
}

// run executes the mutation plus the event and audit writes in one
// transaction, then fires the publish hook.
func (uow *MongoUnitOfWork) run(
	ctx context.Context,
	event DomainEvent,
	command any,
	mutate func(mongo.SessionContext) error,
) Result[DomainEvent] {
	session, err := uow.client.StartSession()
	if err != nil {
		return Failure[DomainEvent](InternalError(
			ErrCodeCommitFailed,
			"Failed to start session: "+err.Error(),
			nil,
		))
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		if err := mutate(sessCtx); err != nil {
			return nil, err
		}
		if err := uow.createEvent(sessCtx, event); err != nil {
			return nil, fmt.Errorf("create event: %w", err)
		}
		if err := uow.createAuditLog(sessCtx, event, command); err != nil {
			return nil, fmt.Errorf("create audit log: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		if uce := FromError(err); uce.Kind != ErrorKindInternal {
			return Failure[DomainEvent](uce)
		}
		return Failure[DomainEvent](InternalError(
			ErrCodeCommitFailed,
			"Transaction failed: "+err.Error(),
			nil,
		))
	}

	if uow.published != nil {
		uow.published(event)
	}

	// The only success path: commit went through.
	return newSuccess[DomainEvent](event)
}

func (uow *MongoUnitOfWork) persistAggregate(ctx mongo.SessionContext, aggregate Aggregate) error {
	collection := uow.db.Collection(aggregate.CollectionName())
	_, err := collection.ReplaceOne(
		ctx,
		bson.M{"_id": aggregate.AggregateID()},
		aggregate,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (uow *MongoUnitOfWork) createEvent(ctx mongo.SessionContext, event DomainEvent) error {
	collection := uow.db.Collection(eventsCollection)
	_, err := collection.InsertOne(ctx, ToPersistedEvent(event))
	return err
}

func (uow *MongoUnitOfWork) createAuditLog(ctx mongo.SessionContext, event DomainEvent, command any) error {
	var operationJSON string
	if auditable, ok := command.(Auditable); ok {
		operationJSON = auditable.ToAuditJSON()
	} else if bytes, err := json.Marshal(command); err == nil {
		operationJSON = string(bytes)
	} else {
		operationJSON = "{}"
	}

	auditLog := bson.M{
		"_id":            tsid.Generate(),
		"module":         moduleFromSubject(event.Subject()),
		"subject":        event.Subject(),
		"operation":      operationName(command),
		"operationJson":  operationJSON,
		"principalEmail": event.PrincipalEmail(),
		"tenantId":       event.TenantID(),
		"correlationId":  event.CorrelationID(),
		"performedAt":    time.Now(),
	}

	collection := uow.db.Collection(auditCollection)
	_, err := collection.InsertOne(ctx, auditLog)
	return err
}

// operationName derives the audit operation label from the command type.
// "*operations.CreateStudentCommand" -> "CreateStudent".
func operationName(command any) string {
	t := reflect.TypeOf(command)
	if t == nil {
		return "Unknown"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return strings.TrimSuffix(t.Name(), "Command")
}
