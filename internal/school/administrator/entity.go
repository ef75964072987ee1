// Package administrator holds the administrative staff records.
package administrator

import "time"

type Administrator struct {
	ID        string    `bson:"_id" json:"id"`
	TenantID  string    `bson:"tenantId" json:"tenantId"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Title     string    `bson:"title,omitempty" json:"title,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (a *Administrator) AggregateID() string { return a.ID }

func (a *Administrator) CollectionName() string { return "administrators" }
