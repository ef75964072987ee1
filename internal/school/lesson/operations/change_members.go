package operations

import (
	"context"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/lesson"
	"go.classcore.tech/internal/school/student"
)

// ChangeMembersCommand adds or removes students on a lesson.
type ChangeMembersCommand struct {
	ID         string   `json:"id"`
	StudentIDs []string `json:"studentIds"`
}

type ChangeMembersUseCase struct {
	lessons    lesson.Repository
	students   student.Repository
	unitOfWork common.UnitOfWork
}

func NewChangeMembersUseCase(
	lessons lesson.Repository,
	students student.Repository,
	uow common.UnitOfWork,
) *ChangeMembersUseCase {
	return &ChangeMembersUseCase{lessons: lessons, students: students, unitOfWork: uow}
}

func (uc *ChangeMembersUseCase) Add(
	ctx context.Context,
	cmd ChangeMembersCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	l, err := uc.lessons.FindByID(ctx, execCtx.TenantID, cmd.ID)
	if err != nil {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}

	for _, studentID := range cmd.StudentIDs {
		if _, err := uc.students.FindByID(ctx, execCtx.TenantID, studentID); err != nil {
			return common.Failure[common.DomainEvent](
				common.NotFoundError(common.ErrCodeEntityNotFound,
					"Student not found: "+studentID,
					map[string]any{"studentId": studentID}))
		}
	}

	added := l.AddStudents(cmd.StudentIDs)
	event := events.NewMembersChanged(execCtx,
		events.EventTypeLessonStudentsAdded, "lesson", l.ID, added, true)
	return uc.unitOfWork.Commit(ctx, l, event, cmd)
}

func (uc *ChangeMembersUseCase) Remove(
	ctx context.Context,
	cmd ChangeMembersCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	l, err := uc.lessons.FindByID(ctx, execCtx.TenantID, cmd.ID)
	if err != nil {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}

	removed := l.RemoveStudents(cmd.StudentIDs)
	event := events.NewMembersChanged(execCtx,
		events.EventTypeLessonStudentsRemoved, "lesson", l.ID, removed, false)
	return uc.unitOfWork.Commit(ctx, l, event, cmd)
}
