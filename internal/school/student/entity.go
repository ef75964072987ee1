// Package student holds the student roster for a school.
package student

import "time"

type Student struct {
	ID            string    `bson:"_id" json:"id"`
	TenantID      string    `bson:"tenantId" json:"tenantId"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	Classroom     string    `bson:"classroom,omitempty" json:"classroom,omitempty"`
	GuardianPhone string    `bson:"guardianPhone,omitempty" json:"guardianPhone,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (s *Student) AggregateID() string { return s.ID }

func (s *Student) CollectionName() string { return "students" }
