// Package schedule groups lessons into a published timetable for a
// term. Schedules are read far more often than they change, so reads go
// through a cache.
package schedule

import "time"

type Schedule struct {
	ID        string    `bson:"_id" json:"id"`
	TenantID  string    `bson:"tenantId" json:"tenantId"`
	Name      string    `bson:"name" json:"name"`
	Term      string    `bson:"term" json:"term"`
	LessonIDs []string  `bson:"lessonIds" json:"lessonIds"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (s *Schedule) AggregateID() string { return s.ID }

func (s *Schedule) CollectionName() string { return "schedules" }
