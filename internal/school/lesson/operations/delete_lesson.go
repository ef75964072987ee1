package operations

import (
	"context"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/lesson"
)

type DeleteLessonCommand struct {
	ID string `json:"id"`
}

type DeleteLessonUseCase struct {
	lessons    lesson.Repository
	unitOfWork common.UnitOfWork
}

func NewDeleteLessonUseCase(lessons lesson.Repository, uow common.UnitOfWork) *DeleteLessonUseCase {
	return &DeleteLessonUseCase{lessons: lessons, unitOfWork: uow}
}

func (uc *DeleteLessonUseCase) Execute(
	ctx context.Context,
	cmd DeleteLessonCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	l, err := uc.lessons.FindByID(ctx, execCtx.TenantID, cmd.ID)
	if err != nil {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}

	event := events.NewEntityEvent(execCtx, "lesson", "deleted", l.ID, nil)
	return uc.unitOfWork.CommitDelete(ctx, l, event, cmd)
}
