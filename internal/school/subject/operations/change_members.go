package operations

import (
	"context"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/student"
	"go.classcore.tech/internal/school/subject"
)

// ChangeMembersCommand adds or removes students on a subject.
type ChangeMembersCommand struct {
	ID         string   `json:"id"`
	StudentIDs []string `json:"studentIds"`
}

// ChangeMembersUseCase handles the add and remove membership operations.
// Additions verify that every student exists in the tenant before the
// subject is committed; removals of ids that are not enrolled are a
// no-op rather than an error.
type ChangeMembersUseCase struct {
	subjects   subject.Repository
	students   student.Repository
	unitOfWork common.UnitOfWork
}

func NewChangeMembersUseCase(
	subjects subject.Repository,
	students student.Repository,
	uow common.UnitOfWork,
) *ChangeMembersUseCase {
	return &ChangeMembersUseCase{subjects: subjects, students: students, unitOfWork: uow}
}

func (uc *ChangeMembersUseCase) Add(
	ctx context.Context,
	cmd ChangeMembersCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	s, err := uc.subjects.FindByID(ctx, execCtx.TenantID, cmd.ID)
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

	added := s.AddStudents(cmd.StudentIDs)
	event := events.NewMembersChanged(execCtx,
		events.EventTypeSubjectStudentsAdded, "subject", s.ID, added, true)
	return uc.unitOfWork.Commit(ctx, s, event, cmd)
}

func (uc *ChangeMembersUseCase) Remove(
	ctx context.Context,
	cmd ChangeMembersCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	s, err := uc.subjects.FindByID(ctx, execCtx.TenantID, cmd.ID)
	if err != nil {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}

	removed := s.RemoveStudents(cmd.StudentIDs)
	event := events.NewMembersChanged(execCtx,
		events.EventTypeSubjectStudentsRemoved, "subject", s.ID, removed, false)
	return uc.unitOfWork.Commit(ctx, s, event, cmd)
}
