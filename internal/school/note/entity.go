// Package note holds free-form remarks teachers attach to students.
package note

import "time"

type Note struct {
	ID          string    `bson:"_id" json:"id"`
	TenantID    string    `bson:"tenantId" json:"tenantId"`
	StudentID   string    `bson:"studentId" json:"studentId"`
	AuthorEmail string    `bson:"authorEmail" json:"authorEmail"`
	Body        string    `bson:"body" json:"body"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (n *Note) AggregateID() string { return n.ID }

func (n *Note) CollectionName() string { return "notes" }
