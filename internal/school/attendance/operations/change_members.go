package operations

import (
	"context"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/attendance"
)

// ChangeMembersCommand corrects an attendance list after the fact.
type ChangeMembersCommand struct {
	ID         string   `json:"id"`
	StudentIDs []string `json:"studentIds"`
}

type ChangeMembersUseCase struct {
	attendances attendance.Repository
	unitOfWork  common.UnitOfWork
}

func NewChangeMembersUseCase(attendances attendance.Repository, uow common.UnitOfWork) *ChangeMembersUseCase {
	return &ChangeMembersUseCase{attendances: attendances, unitOfWork: uow}
}

func (uc *ChangeMembersUseCase) Add(
	ctx context.Context,
	cmd ChangeMembersCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	a, err := uc.attendances.FindByID(ctx, execCtx.TenantID, cmd.ID)
	if err != nil {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}

	added := a.AddStudents(cmd.StudentIDs)
	event := events.NewMembersChanged(execCtx,
		events.EventTypeAttendanceStudentsAdded, "attendance", a.ID, added, true)
	return uc.unitOfWork.Commit(ctx, a, event, cmd)
}

func (uc *ChangeMembersUseCase) Remove(
	ctx context.Context,
	cmd ChangeMembersCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	a, err := uc.attendances.FindByID(ctx, execCtx.TenantID, cmd.ID)
	if err != nil {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}

	removed := a.RemoveStudents(cmd.StudentIDs)
	event := events.NewMembersChanged(execCtx,
		events.EventTypeAttendanceStudentsRemoved, "attendance", a.ID, removed, false)
	return uc.unitOfWork.Commit(ctx, a, event, cmd)
}
