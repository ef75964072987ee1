// Package lesson models scheduled lessons: a subject taught by a
// teacher to a list of students at a given time.
package lesson

import "time"

type Lesson struct {
	ID         string    `bson:"_id" json:"id"`
	TenantID   string    `bson:"tenantId" json:"tenantId"`
	SubjectID  string    `bson:"subjectId" json:"subjectId"`
	TeacherID  string    `bson:"teacherId" json:"teacherId"`
	StudentIDs []string  `bson:"studentIds" json:"studentIds"`
	Room       string    `bson:"room,omitempty" json:"room,omitempty"`
	StartsAt   time.Time `bson:"startsAt" json:"startsAt"`
	EndsAt     time.Time `bson:"endsAt" json:"endsAt"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (l *Lesson) AggregateID() string { return l.ID }

func (l *Lesson) CollectionName() string { return "lessons" }

// AddStudents appends ids not already on the lesson and returns the ones
// actually added.
func (l *Lesson) AddStudents(ids []string) []string {
	present := make(map[string]struct{}, len(l.StudentIDs))
	for _, id := range l.StudentIDs {
		present[id] = struct{}{}
	}

	var added []string
	for _, id := range ids {
		if _, ok := present[id]; ok {
			continue
		}
		present[id] = struct{}{}
		l.StudentIDs = append(l.StudentIDs, id)
		added = append(added, id)
	}
	return added
}

// RemoveStudents drops ids from the lesson and returns the ones that
// were actually present.
func (l *Lesson) RemoveStudents(ids []string) []string {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	var kept, removed []string
	for _, id := range l.StudentIDs {
		if _, ok := drop[id]; ok {
			removed = append(removed, id)
			continue
		}
		kept = append(kept, id)
	}
	l.StudentIDs = kept
	return removed
}
