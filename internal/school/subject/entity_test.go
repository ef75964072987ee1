package subject

import (
	"reflect"
	"testing"
)

func TestAddStudentsSkipsEnrolled(t *testing.T) {
	s := &Subject{ID: "sub-1", StudentIDs: []string{"a", "b"}}

	added := s.AddStudents([]string{"b", "c", "c", "d"})

	if !reflect.DeepEqual(added, []string{"c", "d"}) {
		t.Errorf("added = %v, want [c d]", added)
	}
	if !reflect.DeepEqual(s.StudentIDs, []string{"a", "b", "c", "d"}) {
		t.Errorf("StudentIDs = %v, want [a b c d]", s.StudentIDs)
	}
}

func TestRemoveStudentsIgnoresUnknown(t *testing.T) {
	s := &Subject{ID: "sub-1", StudentIDs: []string{"a", "b", "c"}}

	removed := s.RemoveStudents([]string{"b", "x"})

	if !reflect.DeepEqual(removed, []string{"b"}) {
		t.Errorf("removed = %v, want [b]", removed)
	}
	if !reflect.DeepEqual(s.StudentIDs, []string{"a", "c"}) {
		t.Errorf("StudentIDs = %v, want [a c]", s.StudentIDs)
	}
}
