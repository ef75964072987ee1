// Package tenant implements the school tenant module. A tenant is one
// school; every other record in the system hangs off a tenant ID.
package tenant

import "time"

// Tenant is a school. Collection: tenants
type Tenant struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Address    string    `bson:"address,omitempty" json:"address,omitempty"`
	Phone      string    `bson:"phone,omitempty" json:"phone,omitempty"`
	OwnerEmail string    `bson:"ownerEmail" json:"ownerEmail"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (t *Tenant) AggregateID() string {
	return t.ID
}

func (t *Tenant) CollectionName() string {
	return "tenants"
}
