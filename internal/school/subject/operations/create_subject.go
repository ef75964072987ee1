// Package operations contains the subject use cases, including the
// membership operations that enroll students into a subject.
package operations

import (
	"context"

	"github.com/google/uuid"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/subject"
)

type CreateSubjectCommand struct {
	Name      string `json:"name"`
	TeacherID string `json:"teacherId,omitempty"`
}

type CreateSubjectUseCase struct {
	subjects   subject.Repository
	unitOfWork common.UnitOfWork
}

func NewCreateSubjectUseCase(subjects subject.Repository, uow common.UnitOfWork) *CreateSubjectUseCase {
	return &CreateSubjectUseCase{subjects: subjects, unitOfWork: uow}
}

func (uc *CreateSubjectUseCase) Execute(
	ctx context.Context,
	cmd CreateSubjectCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	s := &subject.Subject{
		ID:         uuid.NewString(),
		TenantID:   execCtx.TenantID,
		Name:       cmd.Name,
		TeacherID:  cmd.TeacherID,
		StudentIDs: []string{},
	}

	event := events.NewEntityEvent(execCtx, "subject", "created", s.ID, cmd)
	return uc.unitOfWork.Commit(ctx, s, event, cmd)
}
