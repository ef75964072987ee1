package operations

import (
	"context"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/subject"
)

type DeleteSubjectCommand struct {
	ID string `json:"id"`
}

type DeleteSubjectUseCase struct {
	subjects   subject.Repository
	unitOfWork common.UnitOfWork
}

func NewDeleteSubjectUseCase(subjects subject.Repository, uow common.UnitOfWork) *DeleteSubjectUseCase {
	return &DeleteSubjectUseCase{subjects: subjects, unitOfWork: uow}
}

func (uc *DeleteSubjectUseCase) Execute(
	ctx context.Context,
	cmd DeleteSubjectCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	s, err := uc.subjects.FindByID(ctx, execCtx.TenantID, cmd.ID)
	if err != nil {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}

	event := events.NewEntityEvent(execCtx, "subject", "deleted", s.ID, nil)
	return uc.unitOfWork.CommitDelete(ctx, s, event, cmd)
}
