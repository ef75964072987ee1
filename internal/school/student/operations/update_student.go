package operations

import (
	"context"

	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/student"
)

type UpdateStudentCommand struct {
	ID           string         `json:"id,omitempty"`
	Email        string         `json:"email,omitempty"`
	DataToUpdate map[string]any `json:"dataToUpdate"`
}

type UpdateStudentUseCase struct {
	students   student.Repository
	unitOfWork common.UnitOfWork
}

func NewUpdateStudentUseCase(students student.Repository, uow common.UnitOfWork) *UpdateStudentUseCase {
	return &UpdateStudentUseCase{students: students, unitOfWork: uow}
}

func (uc *UpdateStudentUseCase) Execute(
	ctx context.Context,
	cmd UpdateStudentCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	s, uce := findStudent(ctx, uc.students, execCtx.TenantID, cmd.ID, cmd.Email)
	if uce != nil {
		return common.Failure[common.DomainEvent](uce)
	}

	var updated []string
	for field, value := range cmd.DataToUpdate {
		text, ok := value.(string)
		if !ok {
			continue
		}
		switch field {
		case "name":
			if text != "" {
				s.Name = text
				updated = append(updated, "name")
			}
		case "classroom":
			s.Classroom = text
			updated = append(updated, "classroom")
		case "guardianPhone":
			s.GuardianPhone = text
			updated = append(updated, "guardianPhone")
		}
	}

	if len(updated) == 0 {
		return common.Failure[common.DomainEvent](
			common.BadRequestError(common.ErrCodeNoUpdatable,
				"no updatable field provided", nil))
	}

	event := events.NewEntityEvent(execCtx, "student", "updated", s.ID, updated)
	return uc.unitOfWork.Commit(ctx, s, event, cmd)
}

// findStudent resolves a student by id or email within the tenant.
func findStudent(
	ctx context.Context,
	students student.Repository,
	tenantID, id, email string,
) (*student.Student, *common.UseCaseError) {
	var (
		s   *student.Student
		err error
	)
	if id != "" {
		s, err = students.FindByID(ctx, tenantID, id)
	} else {
		s, err = students.FindByEmail(ctx, tenantID, local.NormalizeEmail(email))
	}
	if err != nil {
		return nil, common.FromError(err)
	}
	return s, nil
}
