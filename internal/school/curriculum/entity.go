// Package curriculum groups subjects into a study plan for a year.
package curriculum

import "time"

type Curriculum struct {
	ID         string    `bson:"_id" json:"id"`
	TenantID   string    `bson:"tenantId" json:"tenantId"`
	Name       string    `bson:"name" json:"name"`
	Year       int       `bson:"year" json:"year"`
	SubjectIDs []string  `bson:"subjectIds" json:"subjectIds"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (c *Curriculum) AggregateID() string { return c.ID }

func (c *Curriculum) CollectionName() string { return "curriculums" }
