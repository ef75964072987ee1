// Package attendance records which students were present at a lesson on
// a given day.
package attendance

import "time"

type Attendance struct {
	ID         string    `bson:"_id" json:"id"`
	TenantID   string    `bson:"tenantId" json:"tenantId"`
	LessonID   string    `bson:"lessonId" json:"lessonId"`
	Day        string    `bson:"day" json:"day"`
	StudentIDs []string  `bson:"studentIds" json:"studentIds"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (a *Attendance) AggregateID() string { return a.ID }

func (a *Attendance) CollectionName() string { return "attendances" }

// AddStudents marks additional students present and returns the ids that
// were actually added.
func (a *Attendance) AddStudents(ids []string) []string {
	present := make(map[string]struct{}, len(a.StudentIDs))
	for _, id := range a.StudentIDs {
		present[id] = struct{}{}
	}

	var added []string
	for _, id := range ids {
		if _, ok := present[id]; ok {
			continue
		}
		present[id] = struct{}{}
		a.StudentIDs = append(a.StudentIDs, id)
		added = append(added, id)
	}
	return added
}

// RemoveStudents unmarks students and returns the ids that were actually
// present.
func (a *Attendance) RemoveStudents(ids []string) []string {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	var kept, removed []string
	for _, id := range a.StudentIDs {
		if _, ok := drop[id]; ok {
			removed = append(removed, id)
			continue
		}
		kept = append(kept, id)
	}
	a.StudentIDs = kept
	return removed
}
