// Package operations contains the student use cases.
package operations

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"go.classcore.tech/internal/common/repository"
	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/student"
)

type EnrollStudentCommand struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Classroom     string `json:"classroom,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
}

// EnrollStudentUseCase adds a student to the roster.
type EnrollStudentUseCase struct {
	students   student.Repository
	unitOfWork common.UnitOfWork
}

func NewEnrollStudentUseCase(students student.Repository, uow common.UnitOfWork) *EnrollStudentUseCase {
	return &EnrollStudentUseCase{students: students, unitOfWork: uow}
}

func (uc *EnrollStudentUseCase) Execute(
	ctx context.Context,
	cmd EnrollStudentCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	email := local.NormalizeEmail(cmd.Email)

	existing, err := uc.students.FindByEmail(ctx, execCtx.TenantID, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}
	if existing != nil {
		return common.Failure[common.DomainEvent](
			common.ConflictError(common.ErrCodeDuplicateEmail,
				"A student with this email already exists",
				map[string]any{"email": email}))
	}

	s := &student.Student{
		ID:            uuid.NewString(),
		TenantID:      execCtx.TenantID,
		Name:          cmd.Name,
		Email:         email,
		Classroom:     cmd.Classroom,
		GuardianPhone: cmd.GuardianPhone,
	}

	event := events.NewStudentEnrolled(execCtx, s.ID, s.Email, s.Classroom)
	return uc.unitOfWork.Commit(ctx, s, event, cmd)
}
