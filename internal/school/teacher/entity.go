// Package teacher holds the teaching staff records for a school.
package teacher

import "time"

type Teacher struct {
	ID        string    `bson:"_id" json:"id"`
	TenantID  string    `bson:"tenantId" json:"tenantId"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Specialty string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (t *Teacher) AggregateID() string { return t.ID }

func (t *Teacher) CollectionName() string { return "teachers" }
