// Package worker holds the non-teaching staff records.
package worker

import "time"

type Worker struct {
	ID        string    `bson:"_id" json:"id"`
	TenantID  string    `bson:"tenantId" json:"tenantId"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Position  string    `bson:"position,omitempty" json:"position,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (w *Worker) AggregateID() string { return w.ID }

func (w *Worker) CollectionName() string { return "workers" }
