package common

import "context"

// UnitOfWork is the contract for atomic mutations. Within a single
// database transaction it persists the aggregate, records the domain
// event, and writes the audit entry.
//
// It is also the ONLY way to produce a successful Result: the success
// constructor is unexported, so a use case that skips the unit of work
// cannot claim success. Read-only operations return plain values and do
// not go through here.
type UnitOfWork interface {
	// Commit upserts the aggregate and records the event and audit entry.
	// The command is serialized into the audit entry; commands carrying
	// secrets implement Auditable to redact them.
	Commit(ctx context.Context, aggregate Aggregate, event DomainEvent, command any) Result[DomainEvent]

	// CommitDelete removes the aggregate and records the event and audit
	// entry in the same transaction.
	CommitDelete(ctx context.Context, aggregate Aggregate, event DomainEvent, command any) Result[DomainEvent]

	// CommitAll upserts several aggregates under one event, for
	// operations that touch more than one document (tenant provisioning
	// creates the tenant and its owner account together).
	CommitAll(ctx context.Context, aggregates []Aggregate, event DomainEvent, command any) Result[DomainEvent]
}

// Aggregate is implemented by every persistable entity.
type Aggregate interface {
	// AggregateID returns the entity's unique identifier.
	AggregateID() string

	// CollectionName returns the MongoDB collection the entity lives in.
	CollectionName() string
}

// Auditable lets a command customize its audit serialization, typically
// to redact passwords.
type Auditable interface {
	ToAuditJSON() string
}
