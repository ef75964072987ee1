package operations

import (
	"context"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/teacher"
)

type DeleteTeacherCommand struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

type DeleteTeacherUseCase struct {
	teachers   teacher.Repository
	unitOfWork common.UnitOfWork
}

func NewDeleteTeacherUseCase(teachers teacher.Repository, uow common.UnitOfWork) *DeleteTeacherUseCase {
	return &DeleteTeacherUseCase{teachers: teachers, unitOfWork: uow}
}

func (uc *DeleteTeacherUseCase) Execute(
	ctx context.Context,
	cmd DeleteTeacherCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	t, uce := findTeacher(ctx, uc.teachers, execCtx.TenantID, cmd.ID, cmd.Email)
	if uce != nil {
		return common.Failure[common.DomainEvent](uce)
	}

	event := events.NewEntityEvent(execCtx, "teacher", "deleted", t.ID, nil)
	return uc.unitOfWork.CommitDelete(ctx, t, event, cmd)
}
