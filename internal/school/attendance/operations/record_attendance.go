// Package operations contains the attendance use cases. Recording an
// attendance list also drives the guardian absence notifications.
package operations

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go.classcore.tech/internal/common/repository"
	"go.classcore.tech/internal/notify"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/attendance"
	"go.classcore.tech/internal/school/lesson"
	"go.classcore.tech/internal/school/student"
)

const dayLayout = "2006-01-02"

type RecordAttendanceCommand struct {
	LessonID   string   `json:"lessonId"`
	Day        string   `json:"day"`
	StudentIDs []string `json:"studentIds"`
}

// RecordAttendanceUseCase registers which students attended a lesson on
// a day. Students on the lesson roster but missing from the list are
// treated as absent and their guardians are notified after commit,
// best effort.
type RecordAttendanceUseCase struct {
	attendances attendance.Repository
	lessons     lesson.Repository
	students    student.Repository
	notifier    *notify.Notifier
	unitOfWork  common.UnitOfWork
	logger      *slog.Logger
}

func NewRecordAttendanceUseCase(
	attendances attendance.Repository,
	lessons lesson.Repository,
	students student.Repository,
	notifier *notify.Notifier,
	uow common.UnitOfWork,
	logger *slog.Logger,
) *RecordAttendanceUseCase {
	return &RecordAttendanceUseCase{
		attendances: attendances,
		lessons:     lessons,
		students:    students,
		notifier:    notifier,
		unitOfWork:  uow,
		logger:      logger,
	}
}

func (uc *RecordAttendanceUseCase) Execute(
	ctx context.Context,
	cmd RecordAttendanceCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	if _, err := time.Parse(dayLayout, cmd.Day); err != nil {
		return common.Failure[common.DomainEvent](
			common.ValidationError(common.ErrCodeInvalidFormat,
				"Field \"day\" must be a date in YYYY-MM-DD format",
				map[string]any{"day": cmd.Day}))
	}

	l, err := uc.lessons.FindByID(ctx, execCtx.TenantID, cmd.LessonID)
	if err != nil {
		return common.Failure[common.DomainEvent](
			common.NotFoundError(common.ErrCodeEntityNotFound,
				"Lesson not found: "+cmd.LessonID, nil))
	}

	existing, err := uc.attendances.FindByLessonDay(ctx, execCtx.TenantID, cmd.LessonID, cmd.Day)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return common.Failure[common.DomainEvent](common.FromError(err))
	}
	if existing != nil {
		return common.Failure[common.DomainEvent](
			common.ConflictError(common.ErrCodeAlreadyExists,
				"Attendance already recorded for this lesson and day",
				map[string]any{"lessonId": cmd.LessonID, "day": cmd.Day}))
	}

	a := &attendance.Attendance{
		ID:         uuid.NewString(),
		TenantID:   execCtx.TenantID,
		LessonID:   cmd.LessonID,
		Day:        cmd.Day,
		StudentIDs: cmd.StudentIDs,
	}

	event := events.NewAttendanceRecorded(execCtx, a.ID, a.LessonID, a.Day, len(a.StudentIDs))
	result := uc.unitOfWork.Commit(ctx, a, event, cmd)
	if result.IsFailure() {
		return result
	}

	uc.notifyAbsences(ctx, l, a, execCtx)
	return result
}

// notifyAbsences messages the guardian of every rostered student missing
// from the attendance list. Failures are logged, never surfaced.
func (uc *RecordAttendanceUseCase) notifyAbsences(
	ctx context.Context,
	l *lesson.Lesson,
	a *attendance.Attendance,
	execCtx *common.ExecutionContext,
) {
	if uc.notifier == nil {
		return
	}

	present := make(map[string]struct{}, len(a.StudentIDs))
	for _, id := range a.StudentIDs {
		present[id] = struct{}{}
	}

	for _, studentID := range l.StudentIDs {
		if _, ok := present[studentID]; ok {
			continue
		}

		s, err := uc.students.FindByID(ctx, execCtx.TenantID, studentID)
		if err != nil || s.GuardianPhone == "" {
			continue
		}

		uce := uc.notifier.Notify(ctx, notify.Message{
			StudentEmail:  s.Email,
			GuardianPhone: s.GuardianPhone,
			Kind:          notify.KindAbsence,
			Body:          s.Name + " was absent on " + a.Day,
			TenantID:      execCtx.TenantID,
		})
		if uce != nil {
			uc.logger.Warn("guardian absence notification failed",
				"studentId", studentID,
				"day", a.Day,
				"error", uce.Message)
		}
	}
}
