// Package operations contains the lesson use cases.
package operations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/lesson"
	"go.classcore.tech/internal/school/subject"
	"go.classcore.tech/internal/school/teacher"
)

type CreateLessonCommand struct {
	SubjectID string    `json:"subjectId"`
	TeacherID string    `json:"teacherId"`
	Room      string    `json:"room,omitempty"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
}

// CreateLessonUseCase schedules a lesson. The referenced subject and
// teacher must exist in the tenant.
type CreateLessonUseCase struct {
	lessons    lesson.Repository
	subjects   subject.Repository
	teachers   teacher.Repository
	unitOfWork common.UnitOfWork
}

func NewCreateLessonUseCase(
	lessons lesson.Repository,
	subjects subject.Repository,
	teachers teacher.Repository,
	uow common.UnitOfWork,
) *CreateLessonUseCase {
	return &CreateLessonUseCase{
		lessons:    lessons,
		subjects:   subjects,
		teachers:   teachers,
		unitOfWork: uow,
	}
}

func (uc *CreateLessonUseCase) Execute(
	ctx context.Context,
	cmd CreateLessonCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	if !cmd.EndsAt.IsZero() && !cmd.EndsAt.After(cmd.StartsAt) {
		return common.Failure[common.DomainEvent](
			common.ValidationError(common.ErrCodeInvalidFormat,
				"Lesson must end after it starts", nil))
	}

	if _, err := uc.subjects.FindByID(ctx, execCtx.TenantID, cmd.SubjectID); err != nil {
		return common.Failure[common.DomainEvent](
			common.NotFoundError(common.ErrCodeEntityNotFound,
				"Subject not found: "+cmd.SubjectID, nil))
	}
	if _, err := uc.teachers.FindByID(ctx, execCtx.TenantID, cmd.TeacherID); err != nil {
		return common.Failure[common.DomainEvent](
			common.NotFoundError(common.ErrCodeEntityNotFound,
				"Teacher not found: "+cmd.TeacherID, nil))
	}

	l := &lesson.Lesson{
		ID:         uuid.NewString(),
		TenantID:   execCtx.TenantID,
		SubjectID:  cmd.SubjectID,
		TeacherID:  cmd.TeacherID,
		StudentIDs: []string{},
		Room:       cmd.Room,
		StartsAt:   cmd.StartsAt,
		EndsAt:     cmd.EndsAt,
	}

	event := events.NewEntityEvent(execCtx, "lesson", "created", l.ID, cmd)
	return uc.unitOfWork.Commit(ctx, l, event, cmd)
}
