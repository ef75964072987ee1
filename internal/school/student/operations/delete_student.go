package operations

import (
	"context"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/student"
)

type DeleteStudentCommand struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

type DeleteStudentUseCase struct {
	students   student.Repository
	unitOfWork common.UnitOfWork
}

func NewDeleteStudentUseCase(students student.Repository, uow common.UnitOfWork) *DeleteStudentUseCase {
	return &DeleteStudentUseCase{students: students, unitOfWork: uow}
}

func (uc *DeleteStudentUseCase) Execute(
	ctx context.Context,
	cmd DeleteStudentCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	s, uce := findStudent(ctx, uc.students, execCtx.TenantID, cmd.ID, cmd.Email)
	if uce != nil {
		return common.Failure[common.DomainEvent](uce)
	}

	event := events.NewEntityEvent(execCtx, "student", "deleted", s.ID, nil)
	return uc.unitOfWork.CommitDelete(ctx, s, event, cmd)
}
