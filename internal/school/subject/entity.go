// Package subject models the subjects taught at a school and their
// enrolled students.
package subject

import "time"

type Subject struct {
	ID         string    `bson:"_id" json:"id"`
	TenantID   string    `bson:"tenantId" json:"tenantId"`
	Name       string    `bson:"name" json:"name"`
	TeacherID  string    `bson:"teacherId,omitempty" json:"teacherId,omitempty"`
	StudentIDs []string  `bson:"studentIds" json:"studentIds"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (s *Subject) AggregateID() string { return s.ID }

func (s *Subject) CollectionName() string { return "subjects" }

// AddStudents appends the given ids, skipping ones already enrolled.
// It returns the ids that were actually added.
func (s *Subject) AddStudents(ids []string) []string {
	enrolled := make(map[string]struct{}, len(s.StudentIDs))
	for _, id := range s.StudentIDs {
		enrolled[id] = struct{}{}
	}

	var added []string
	for _, id := range ids {
		if _, ok := enrolled[id]; ok {
			continue
		}
		enrolled[id] = struct{}{}
		s.StudentIDs = append(s.StudentIDs, id)
		added = append(added, id)
	}
	return added
}

// RemoveStudents drops the given ids and returns the ones that were
// actually enrolled.
func (s *Subject) RemoveStudents(ids []string) []string {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	var kept []string
	var removed []string
	for _, id := range s.StudentIDs {
		if _, ok := drop[id]; ok {
			removed = append(removed, id)
			continue
		}
		kept = append(kept, id)
	}
	s.StudentIDs = kept
	return removed
}
