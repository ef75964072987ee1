package operations

import (
	"context"

	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/teacher"
)

type UpdateTeacherCommand struct {
	ID           string         `json:"id,omitempty"`
	Email        string         `json:"email,omitempty"`
	DataToUpdate map[string]any `json:"dataToUpdate"`
}

type UpdateTeacherUseCase struct {
	teachers   teacher.Repository
	unitOfWork common.UnitOfWork
}

func NewUpdateTeacherUseCase(teachers teacher.Repository, uow common.UnitOfWork) *UpdateTeacherUseCase {
	return &UpdateTeacherUseCase{teachers: teachers, unitOfWork: uow}
}

func (uc *UpdateTeacherUseCase) Execute(
	ctx context.Context,
	cmd UpdateTeacherCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	t, uce := findTeacher(ctx, uc.teachers, execCtx.TenantID, cmd.ID, cmd.Email)
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
				t.Name = text
				updated = append(updated, "name")
			}
		case "specialty":
			t.Specialty = text
			updated = append(updated, "specialty")
		}
	}

	if len(updated) == 0 {
		return common.Failure[common.DomainEvent](
			common.BadRequestError(common.ErrCodeNoUpdatable,
				"no updatable field provided", nil))
	}

	event := events.NewEntityEvent(execCtx, "teacher", "updated", t.ID, updated)
	return uc.unitOfWork.Commit(ctx, t, event, cmd)
}

func findTeacher(
	ctx context.Context,
	teachers teacher.Repository,
	tenantID, id, email string,
) (*teacher.Teacher, *common.UseCaseError) {
	var (
		t   *teacher.Teacher
		err error
	)
	if id != "" {
		t, err = teachers.FindByID(ctx, tenantID, id)
	} else {
		t, err = teachers.FindByEmail(ctx, tenantID, local.NormalizeEmail(email))
	}
	if err != nil {
		return nil, common.FromError(err)
	}
	return t, nil
}
