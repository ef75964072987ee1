// Package events defines the domain events emitted by the school modules
// and the broker publisher that forwards them after commit.
package events

import (
	"fmt"

	"go.classcore.tech/internal/platform/common"
)

// Event type codes follow the format: classcore.{module}.{action}.
// The type code doubles as the broker subject.
const (
	EventTypeTenantProvisioned = "classcore.tenant.provisioned"
	EventTypeTenantUpdated     = "classcore.tenant.updated"
	EventTypeTenantDeleted     = "classcore.tenant.deleted"

	EventTypeAccountRegistered = "classcore.authentication.registered"
	EventTypeAccountUpdated    = "classcore.authentication.updated"
	EventTypeAccountDeleted    = "classcore.authentication.deleted"

	EventTypeStudentEnrolled = "classcore.student.enrolled"
	EventTypeStudentUpdated  = "classcore.student.updated"
	EventTypeStudentDeleted  = "classcore.student.deleted"

	EventTypeTeacherCreated = "classcore.teacher.created"
	EventTypeTeacherUpdated = "classcore.teacher.updated"
	EventTypeTeacherDeleted = "classcore.teacher.deleted"

	EventTypeSubjectCreated         = "classcore.subject.created"
	EventTypeSubjectUpdated         = "classcore.subject.updated"
	EventTypeSubjectDeleted         = "classcore.subject.deleted"
	EventTypeSubjectStudentsAdded   = "classcore.subject.students-added"
	EventTypeSubjectStudentsRemoved = "classcore.subject.students-removed"

	EventTypeLessonCreated         = "classcore.lesson.created"
	EventTypeLessonUpdated         = "classcore.lesson.updated"
	EventTypeLessonDeleted         = "classcore.lesson.deleted"
	EventTypeLessonStudentsAdded   = "classcore.lesson.students-added"
	EventTypeLessonStudentsRemoved = "classcore.lesson.students-removed"

	EventTypeAttendanceRecorded        = "classcore.attendance.recorded"
	EventTypeAttendanceUpdated         = "classcore.attendance.updated"
	EventTypeAttendanceDeleted         = "classcore.attendance.deleted"
	EventTypeAttendanceStudentsAdded   = "classcore.attendance.students-added"
	EventTypeAttendanceStudentsRemoved = "classcore.attendance.students-removed"
)

// subject builds the qualified aggregate identifier.
// Format: {module}.{id}.
func subject(module, id string) string {
	return fmt.Sprintf("%s.%s", module, id)
}

func newBase(ctx *common.ExecutionContext, eventType, module, id string) common.BaseDomainEvent {
	return common.NewBaseDomainEvent(ctx, eventType, subject(module, id))
}

// NewEntityEvent builds a generic event for the condensed modules that do
// not carry a module-specific payload beyond the entity snapshot.
func NewEntityEvent(ctx *common.ExecutionContext, module, action, id string, snapshot any) *EntityEvent {
	return &EntityEvent{
		BaseDomainEvent: newBase(ctx, fmt.Sprintf("classcore.%s.%s", module, action), module, id),
		EntityID:        id,
		Snapshot:        snapshot,
	}
}

// EntityEvent is the generic created/updated/deleted event used by the
// condensed modules (curriculum, schedule, event, evaluation, note,
// administrator, worker).
type EntityEvent struct {
	common.BaseDomainEvent `bson:",inline"`
	EntityID               string `json:"entityId"`
	Snapshot               any    `json:"snapshot,omitempty"`
}

func (e *EntityEvent) ToDataJSON() string {
	return common.MarshalDataJSON(map[string]any{
		"entityId": e.EntityID,
		"snapshot": e.Snapshot,
	})
}
