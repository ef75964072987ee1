// Package event holds school calendar events.
package event

import "time"

type Event struct {
	ID          string    `bson:"_id" json:"id"`
	TenantID    string    `bson:"tenantId" json:"tenantId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	Day         string    `bson:"day" json:"day"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (e *Event) AggregateID() string { return e.ID }

func (e *Event) CollectionName() string { return "events" }
