// Package evaluation holds graded assessments of students.
package evaluation

import "time"

type Evaluation struct {
	ID        string    `bson:"_id" json:"id"`
	TenantID  string    `bson:"tenantId" json:"tenantId"`
	StudentID string    `bson:"studentId" json:"studentId"`
	SubjectID string    `bson:"subjectId" json:"subjectId"`
	Period    string    `bson:"period" json:"period"`
	Score     float64   `bson:"score" json:"score"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (e *Evaluation) AggregateID() string { return e.ID }

func (e *Evaluation) CollectionName() string { return "evaluations" }
