// Package operations contains the teacher use cases.
package operations

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"go.classcore.tech/internal/common/repository"
	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/teacher"
)

type CreateTeacherCommand struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty,omitempty"`
}

type CreateTeacherUseCase struct {
	teachers   teacher.Repository
	unitOfWork common.UnitOfWork
}

func NewCreateTeacherUseCase(teachers teacher.Repository, uow common.UnitOfWork) *CreateTeacherUseCase {
	return &CreateTeacherUseCase{teachers: teachers, unitOfWork: uow}
}

func (uc *CreateTeacherUseCase) Execute(
	ctx context.Context,
	cmd CreateTeacherCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	email := local.NormalizeEmail(cmd.Email)

	existing, err := uc.teachers.FindByEmail(ctx, execCtx.TenantID, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}
	if existing != nil {
		return common.Failure[common.DomainEvent](
			common.ConflictError(common.ErrCodeDuplicateEmail,
				"A teacher with this email already exists",
				map[string]any{"email": email}))
	}

	t := &teacher.Teacher{
		ID:        uuid.NewString(),
		TenantID:  execCtx.TenantID,
		Name:      cmd.Name,
		Email:     email,
		Specialty: cmd.Specialty,
	}

	event := events.NewEntityEvent(execCtx, "teacher", "created", t.ID, cmd)
	return uc.unitOfWork.Commit(ctx, t, event, cmd)
}
