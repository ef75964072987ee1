package events

import (
	"go.classcore.tech/internal/platform/common"
)

// StudentEnrolled is emitted when a student record is created.
type StudentEnrolled struct {
	common.BaseDomainEvent `bson:",inline"`
	StudentID              string `json:"studentId"`
	Email                  string `json:"email"`
	Classroom              string `json:"classroom"`
}

func NewStudentEnrolled(ctx *common.ExecutionContext, studentID, email, classroom string) *StudentEnrolled {
	return &StudentEnrolled{
		BaseDomainEvent: newBase(ctx, EventTypeStudentEnrolled, "student", studentID),
		StudentID:       studentID,
		Email:           email,
		Classroom:       classroom,
	}
}

func (e *StudentEnrolled) ToDataJSON() string {
	return common.MarshalDataJSON(map[string]any{
		"studentId": e.StudentID,
		"email":     e.Email,
		"classroom": e.Classroom,
	})
}

// MembersChanged is emitted by add/remove operations on aggregates that
// hold student member lists (subject, lesson, attendance).
type MembersChanged struct {
	common.BaseDomainEvent `bson:",inline"`
	AggregateID            string   `json:"aggregateId"`
	Members                []string `json:"members"`
	Added                  bool     `json:"added"`
}

func NewMembersChanged(ctx *common.ExecutionContext, eventType, module, aggregateID string, members []string, added bool) *MembersChanged {
	return &MembersChanged{
		BaseDomainEvent: newBase(ctx, eventType, module, aggregateID),
		AggregateID:     aggregateID,
		Members:         members,
		Added:           added,
	}
}

func (e *MembersChanged) ToDataJSON() string {
	return common.MarshalDataJSON(map[string]any{
		"aggregateId": e.AggregateID,
		"members":     e.Members,
		"added":       e.Added,
	})
}

// AttendanceRecorded is emitted when an attendance list is registered for
// a lesson day.
type AttendanceRecorded struct {
	common.BaseDomainEvent `bson:",inline"`
	AttendanceID           string `json:"attendanceId"`
	LessonID               string `json:"lessonId"`
	Day                    string `json:"day"`
	StudentCount           int    `json:"studentCount"`
}

func NewAttendanceRecorded(ctx *common.ExecutionContext, attendanceID, lessonID, day string, studentCount int) *AttendanceRecorded {
	return &AttendanceRecorded{
		BaseDomainEvent: newBase(ctx, EventTypeAttendanceRecorded, "attendance", attendanceID),
		AttendanceID:    attendanceID,
		LessonID:        lessonID,
		Day:             day,
		StudentCount:    studentCount,
	}
}

func (e *AttendanceRecorded) ToDataJSON() string {
	return common.MarshalDataJSON(map[string]any{
		"attendanceId": e.AttendanceID,
		"lessonId":     e.LessonID,
		"day":          e.Day,
		"studentCount": e.StudentCount,
	})
}
