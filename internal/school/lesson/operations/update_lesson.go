package operations

import (
	"context"
	"time"

	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/lesson"
)

type UpdateLessonCommand struct {
	ID           string         `json:"id"`
	DataToUpdate map[string]any `json:"dataToUpdate"`
}

type UpdateLessonUseCase struct {
	lessons    lesson.Repository
	unitOfWork common.UnitOfWork
}

func NewUpdateLessonUseCase(lessons lesson.Repository, uow common.UnitOfWork) *UpdateLessonUseCase {
	return &UpdateLessonUseCase{lessons: lessons, unitOfWork: uow}
}

func (uc *UpdateLessonUseCase) Execute(
	ctx context.Context,
	cmd UpdateLessonCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	l, err := uc.lessons.FindByID(ctx, execCtx.TenantID, cmd.ID)
	if err != nil {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}

	var updated []string
	for field, value := range cmd.DataToUpdate {
		switch field {
		case "room":
			if room, ok := value.(string); ok {
				l.Room = room
				updated = append(updated, "room")
			}
		case "teacherId":
			if teacherID, ok := value.(string); ok && teacherID != "" {
				l.TeacherID = teacherID
				updated = append(updated, "teacherId")
			}
		case "startsAt":
			if at, ok := parseTime(value); ok {
				l.StartsAt = at
				updated = append(updated, "startsAt")
			}
		case "endsAt":
			if at, ok := parseTime(value); ok {
				l.EndsAt = at
				updated = append(updated, "endsAt")
			}
		}
	}

	if len(updated) == 0 {
		return common.Failure[common.DomainEvent](
			common.BadRequestError(common.ErrCodeNoUpdatable,
				"no updatable field provided", nil))
	}

	if !l.EndsAt.IsZero() && !l.EndsAt.After(l.StartsAt) {
		return common.Failure[common.DomainEvent](
			common.ValidationError(common.ErrCodeInvalidFormat,
				"Lesson must end after it starts", nil))
	}

	event := events.NewEntityEvent(execCtx, "lesson", "updated", l.ID, updated)
	return uc.unitOfWork.Commit(ctx, l, event, cmd)
}

// parseTime accepts RFC 3339 strings, the shape timestamps take after a
// JSON round trip.
func parseTime(value any) (time.Time, bool) {
	text, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}
