package common

import (
	"encoding/json"
	"strings"
	"time"

	"go.classcore.tech/internal/common/tsid"
)

// DomainEvent is implemented by every school domain event. Events are
// immutable facts persisted alongside the aggregate and published to the
// broker after commit.
type DomainEvent interface {
	// EventID returns the unique TSID of this event.
	EventID() string

	// EventType returns the dotted type code, which doubles as the
	// broker subject. Example: "classcore.student.created".
	EventType() string

	// Source identifies the producing system.
	Source() string

	// Subject returns the qualified aggregate identifier.
	// Format: {module}.{id}. Example: "student.5f9b2c4e-...".
	Subject() string

	// Time returns when the event occurred.
	Time() time.Time

	// CorrelationID ties the event to the request that produced it.
	CorrelationID() string

	// ExecutionID groups all records from one use case execution.
	ExecutionID() string

	// TenantID scopes the event to one school.
	TenantID() string

	// PrincipalEmail identifies who performed the action.
	PrincipalEmail() string

	// ToDataJSON serializes the event-specific payload.
	ToDataJSON() string
}

// BaseDomainEvent provides the DomainEvent plumbing for embedding in
// concrete event types.
type BaseDomainEvent struct {
	ID          string    `json:"eventId" bson:"_id"`
	Type        string    `json:"eventType" bson:"type"`
	Src         string    `json:"source" bson:"source"`
	Subj        string    `json:"subject" bson:"subject"`
	Timestamp   time.Time `json:"time" bson:"time"`
	Correlation string    `json:"correlationId" bson:"correlationId"`
	Execution   string    `json:"executionId" bson:"executionId"`
	Tenant      string    `json:"tenantId" bson:"tenantId"`
	Principal   string    `json:"principalEmail" bson:"principalEmail"`
}

// NewBaseDomainEvent populates an event header from the execution
// context.
func NewBaseDomainEvent(ctx *ExecutionContext, eventType, subject string) BaseDomainEvent {
	return BaseDomainEvent{
		ID:          tsid.Generate(),
		Type:        eventType,
		Src:         "classcore:school",
		Subj:        subject,
		Timestamp:   time.Now(),
		Correlation: ctx.CorrelationID,
		Execution:   ctx.ExecutionID,
		Tenant:      ctx.TenantID,
		Principal:   ctx.PrincipalEmail,
	}
}

func (e BaseDomainEvent) EventID() string        { return e.ID }
func (e BaseDomainEvent) EventType() string      { return e.Type }
func (e BaseDomainEvent) Source() string         { return e.Src }
func (e BaseDomainEvent) Subject() string        { return e.Subj }
func (e BaseDomainEvent) Time() time.Time        { return e.Timestamp }
func (e BaseDomainEvent) CorrelationID() string  { return e.Correlation }
func (e BaseDomainEvent) ExecutionID() string    { return e.Execution }
func (e BaseDomainEvent) TenantID() string       { return e.Tenant }
func (e BaseDomainEvent) PrincipalEmail() string { return e.Principal }

// ToDataJSON returns an empty object; concrete events override it.
func (e BaseDomainEvent) ToDataJSON() string {
	return "{}"
}

// PersistedEvent is the storage shape of a domain event.
type PersistedEvent struct {
	ID             string    `bson:"_id" json:"id"`
	Type           string    `bson:"type" json:"type"`
	Source         string    `bson:"source" json:"source"`
	Subject        string    `bson:"subject" json:"subject"`
	Time           time.Time `bson:"time" json:"time"`
	Data           string    `bson:"data" json:"data"`
	CorrelationID  string    `bson:"correlationId" json:"correlationId"`
	ExecutionID    string    `bson:"executionId" json:"executionId"`
	TenantID       string    `bson:"tenantId" json:"tenantId"`
	PrincipalEmail string    `bson:"principalEmail" json:"principalEmail"`
	Module         string    `bson:"module" json:"module"`
}

// ToPersistedEvent converts a DomainEvent for storage.
func ToPersistedEvent(event DomainEvent) *PersistedEvent {
	return &PersistedEvent{
		ID:             event.EventID(),
		Type:           event.EventType(),
		Source:         event.Source(),
		Subject:        event.Subject(),
		Time:           event.Time(),
		Data:           event.ToDataJSON(),
		CorrelationID:  event.CorrelationID(),
		ExecutionID:    event.ExecutionID(),
		TenantID:       event.TenantID(),
		PrincipalEmail: event.PrincipalEmail(),
		Module:         moduleFromSubject(event.Subject()),
	}
}

// moduleFromSubject extracts the module segment of a subject.
// "student.5f9b..." -> "student".
func moduleFromSubject(subject string) string {
	if i := strings.IndexByte(subject, '.'); i > 0 {
		return subject[:i]
	}
	return subject
}

// MarshalDataJSON serializes an event payload, degrading to an empty
// object on marshal failure.
func MarshalDataJSON(data any) string {
	bytes, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(bytes)
}
