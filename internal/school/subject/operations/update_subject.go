package operations

import (
	"context"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/subject"
)

type UpdateSubjectCommand struct {
	ID           string         `json:"id"`
	DataToUpdate map[string]any `json:"dataToUpdate"`
}

type UpdateSubjectUseCase struct {
	subjects   subject.Repository
	unitOfWork common.UnitOfWork
}

func NewUpdateSubjectUseCase(subjects subject.Repository, uow common.UnitOfWork) *UpdateSubjectUseCase {
	return &UpdateSubjectUseCase{subjects: subjects, unitOfWork: uow}
}

func (uc *UpdateSubjectUseCase) Execute(
	ctx context.Context,
	cmd UpdateSubjectCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	s, err := uc.subjects.FindByID(ctx, execCtx.TenantID, cmd.ID)
	if err != nil {
		return common.Failure[common.DomainEvent](common.FromError(err))
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
		case "teacherId":
			s.TeacherID = text
			updated = append(updated, "teacherId")
		}
	}

	if len(updated) == 0 {
		return common.Failure[common.DomainEvent](
			common.BadRequestError(common.ErrCodeNoUpdatable,
				"no updatable field provided", nil))
	}

	event := events.NewEntityEvent(execCtx, "subject", "updated", s.ID, updated)
	return uc.unitOfWork.Commit(ctx, s, event, cmd)
}
