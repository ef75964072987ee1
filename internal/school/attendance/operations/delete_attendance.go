package operations

import (
	"context"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/attendance"
)

type DeleteAttendanceCommand struct {
	ID string `json:"id"`
}

type DeleteAttendanceUseCase struct {
	attendances attendance.Repository
	unitOfWork  common.UnitOfWork
}

func NewDeleteAttendanceUseCase(attendances attendance.Repository, uow common.UnitOfWork) *DeleteAttendanceUseCase {
	return &DeleteAttendanceUseCase{attendances: attendances, unitOfWork: uow}
}

func (uc *DeleteAttendanceUseCase) Execute(
	ctx context.Context,
	cmd DeleteAttendanceCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	a, err := uc.attendances.FindByID(ctx, execCtx.TenantID, cmd.ID)
	if err != nil {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}

	event := events.NewEntityEvent(execCtx, "attendance", "deleted", a.ID, nil)
	return uc.unitOfWork.CommitDelete(ctx, a, event, cmd)
}
