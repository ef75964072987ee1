package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/administrator"
	"go.classcore.tech/internal/school/curriculum"
	"go.classcore.tech/internal/school/evaluation"
	"go.classcore.tech/internal/school/event"
	"go.classcore.tech/internal/school/note"
	"go.classcore.tech/internal/school/schedule"
	"go.classcore.tech/internal/school/worker"
)

// The catalogue constructors below bind one EntityHandler per simple
// module. Payload values arrive as decoded JSON, so numbers are
// float64 and arrays are []any.

func stringField(payload map[string]any, key string) (string, bool) {
	v, ok := payload[key].(string)
	return v, ok
}

func floatField(payload map[string]any, key string) (float64, bool) {
	v, ok := payload[key].(float64)
	return v, ok
}

func stringsField(payload map[string]any, key string) ([]string, bool) {
	raw, ok := payload[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func NewAdministratorHandler(administrators administrator.Repository, gate *AuthGate, uow common.UnitOfWork, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{
		module: authorization.ModuleAdministrator,
		schema: administratorSchema,
		gate:   gate,
		uow:    uow,
		logger: logger,
		list: func(ctx context.Context, tenantID string, offset, quantity int64) (any, error) {
			return administrators.FindAll(ctx, tenantID, offset, quantity)
		},
		get: func(ctx context.Context, tenantID, id string) (common.Aggregate, error) {
			return administrators.FindByID(ctx, tenantID, id)
		},
		build: func(execCtx *common.ExecutionContext, payload map[string]any) common.Aggregate {
			now := time.Now().UTC()
			a := &administrator.Administrator{
				ID:        uuid.NewString(),
				TenantID:  execCtx.TenantID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			a.Name, _ = stringField(payload, "name")
			a.Email, _ = stringField(payload, "email")
			a.Title, _ = stringField(payload, "title")
			return a
		},
		apply: func(aggregate common.Aggregate, data map[string]any) []string {
			a := aggregate.(*administrator.Administrator)
			var updated []string
			if v, ok := stringField(data, "name"); ok {
				a.Name = v
				updated = append(updated, "name")
			}
			if v, ok := stringField(data, "title"); ok {
				a.Title = v
				updated = append(updated, "title")
			}
			if len(updated) > 0 {
				a.UpdatedAt = time.Now().UTC()
			}
			return updated
		},
	}
}

func NewWorkerHandler(workers worker.Repository, gate *AuthGate, uow common.UnitOfWork, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{
		module: authorization.ModuleWorker,
		schema: workerSchema,
		gate:   gate,
		uow:    uow,
		logger: logger,
		list: func(ctx context.Context, tenantID string, offset, quantity int64) (any, error) {
			return workers.FindAll(ctx, tenantID, offset, quantity)
		},
		get: func(ctx context.Context, tenantID, id string) (common.Aggregate, error) {
			return workers.FindByID(ctx, tenantID, id)
		},
		build: func(execCtx *common.ExecutionContext, payload map[string]any) common.Aggregate {
			now := time.Now().UTC()
			w := &worker.Worker{
				ID:        uuid.NewString(),
				TenantID:  execCtx.TenantID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			w.Name, _ = stringField(payload, "name")
			w.Email, _ = stringField(payload, "email")
			w.Position, _ = stringField(payload, "position")
			return w
		},
		apply: func(aggregate common.Aggregate, data map[string]any) []string {
			w := aggregate.(*worker.Worker)
			var updated []string
			if v, ok := stringField(data, "name"); ok {
				w.Name = v
				updated = append(updated, "name")
			}
			if v, ok := stringField(data, "position"); ok {
				w.Position = v
				updated = append(updated, "position")
			}
			if len(updated) > 0 {
				w.UpdatedAt = time.Now().UTC()
			}
			return updated
		},
	}
}

func NewCurriculumHandler(curriculums curriculum.Repository, gate *AuthGate, uow common.UnitOfWork, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{
		module: authorization.ModuleCurriculum,
		schema: curriculumSchema,
		gate:   gate,
		uow:    uow,
		logger: logger,
		list: func(ctx context.Context, tenantID string, offset, quantity int64) (any, error) {
			return curriculums.FindAll(ctx, tenantID, offset, quantity)
		},
		get: func(ctx context.Context, tenantID, id string) (common.Aggregate, error) {
			return curriculums.FindByID(ctx, tenantID, id)
		},
		build: func(execCtx *common.ExecutionContext, payload map[string]any) common.Aggregate {
			now := time.Now().UTC()
			c := &curriculum.Curriculum{
				ID:         uuid.NewString(),
				TenantID:   execCtx.TenantID,
				SubjectIDs: []string{},
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			c.Name, _ = stringField(payload, "name")
			if year, ok := floatField(payload, "year"); ok {
				c.Year = int(year)
			}
			if ids, ok := stringsField(payload, "subjectIds"); ok {
				c.SubjectIDs = ids
			}
			return c
		},
		apply: func(aggregate common.Aggregate, data map[string]any) []string {
			c := aggregate.(*curriculum.Curriculum)
			var updated []string
			if v, ok := stringField(data, "name"); ok {
				c.Name = v
				updated = append(updated, "name")
			}
			if v, ok := floatField(data, "year"); ok {
				c.Year = int(v)
				updated = append(updated, "year")
			}
			if ids, ok := stringsField(data, "subjectIds"); ok {
				c.SubjectIDs = ids
				updated = append(updated, "subjectIds")
			}
			if len(updated) > 0 {
				c.UpdatedAt = time.Now().UTC()
			}
			return updated
		},
	}
}

func NewScheduleHandler(schedules schedule.Repository, gate *AuthGate, uow common.UnitOfWork, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{
		module: authorization.ModuleSchedule,
		schema: scheduleSchema,
		gate:   gate,
		uow:    uow,
		logger: logger,
		list: func(ctx context.Context, tenantID string, offset, quantity int64) (any, error) {
			return schedules.FindAll(ctx, tenantID, offset, quantity)
		},
		get: func(ctx context.Context, tenantID, id string) (common.Aggregate, error) {
			return schedules.FindByID(ctx, tenantID, id)
		},
		build: func(execCtx *common.ExecutionContext, payload map[string]any) common.Aggregate {
			now := time.Now().UTC()
			s := &schedule.Schedule{
				ID:        uuid.NewString(),
				TenantID:  execCtx.TenantID,
				LessonIDs: []string{},
				CreatedAt: now,
				UpdatedAt: now,
			}
			s.Name, _ = stringField(payload, "name")
			s.Term, _ = stringField(payload, "term")
			if ids, ok := stringsField(payload, "lessonIds"); ok {
				s.LessonIDs = ids
			}
			return s
		},
		apply: func(aggregate common.Aggregate, data map[string]any) []string {
			s := aggregate.(*schedule.Schedule)
			var updated []string
			if v, ok := stringField(data, "name"); ok {
				s.Name = v
				updated = append(updated, "name")
			}
			if v, ok := stringField(data, "term"); ok {
				s.Term = v
				updated = append(updated, "term")
			}
			if ids, ok := stringsField(data, "lessonIds"); ok {
				s.LessonIDs = ids
				updated = append(updated, "lessonIds")
			}
			if len(updated) > 0 {
				s.UpdatedAt = time.Now().UTC()
			}
			return updated
		},
		// Cached reads must not outlive a write.
		onWrite: func(ctx context.Context, tenantID, id string) {
			schedules.Invalidate(ctx, tenantID, id)
		},
	}
}

func NewEventHandler(calendarEvents event.Repository, gate *AuthGate, uow common.UnitOfWork, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{
		module: authorization.ModuleEvent,
		schema: eventSchema,
		gate:   gate,
		uow:    uow,
		logger: logger,
		list: func(ctx context.Context, tenantID string, offset, quantity int64) (any, error) {
			return calendarEvents.FindAll(ctx, tenantID, offset, quantity)
		},
		get: func(ctx context.Context, tenantID, id string) (common.Aggregate, error) {
			return calendarEvents.FindByID(ctx, tenantID, id)
		},
		build: func(execCtx *common.ExecutionContext, payload map[string]any) common.Aggregate {
			now := time.Now().UTC()
			e := &event.Event{
				ID:        uuid.NewString(),
				TenantID:  execCtx.TenantID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			e.Title, _ = stringField(payload, "title")
			e.Description, _ = stringField(payload, "description")
			e.Location, _ = stringField(payload, "location")
			e.Day, _ = stringField(payload, "day")
			return e
		},
		apply: func(aggregate common.Aggregate, data map[string]any) []string {
			e := aggregate.(*event.Event)
			var updated []string
			if v, ok := stringField(data, "title"); ok {
				e.Title = v
				updated = append(updated, "title")
			}
			if v, ok := stringField(data, "description"); ok {
				e.Description = v
				updated = append(updated, "description")
			}
			if v, ok := stringField(data, "location"); ok {
				e.Location = v
				updated = append(updated, "location")
			}
			if v, ok := stringField(data, "day"); ok {
				e.Day = v
				updated = append(updated, "day")
			}
			if len(updated) > 0 {
				e.UpdatedAt = time.Now().UTC()
			}
			return updated
		},
	}
}

func NewEvaluationHandler(evaluations evaluation.Repository, gate *AuthGate, uow common.UnitOfWork, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{
		module: authorization.ModuleEvaluation,
		schema: evaluationSchema,
		gate:   gate,
		uow:    uow,
		logger: logger,
		list: func(ctx context.Context, tenantID string, offset, quantity int64) (any, error) {
			return evaluations.FindAll(ctx, tenantID, offset, quantity)
		},
		get: func(ctx context.Context, tenantID, id string) (common.Aggregate, error) {
			return evaluations.FindByID(ctx, tenantID, id)
		},
		listByStudent: func(ctx context.Context, tenantID, studentID string) (any, error) {
			return evaluations.FindByStudent(ctx, tenantID, studentID)
		},
		build: func(execCtx *common.ExecutionContext, payload map[string]any) common.Aggregate {
			now := time.Now().UTC()
			e := &evaluation.Evaluation{
				ID:        uuid.NewString(),
				TenantID:  execCtx.TenantID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			e.StudentID, _ = stringField(payload, "studentId")
			e.SubjectID, _ = stringField(payload, "subjectId")
			e.Period, _ = stringField(payload, "period")
			e.Score, _ = floatField(payload, "score")
			return e
		},
		apply: func(aggregate common.Aggregate, data map[string]any) []string {
			e := aggregate.(*evaluation.Evaluation)
			var updated []string
			if v, ok := floatField(data, "score"); ok {
				e.Score = v
				updated = append(updated, "score")
			}
			if v, ok := stringField(data, "comment"); ok {
				e.Comment = v
				updated = append(updated, "comment")
			}
			if v, ok := stringField(data, "period"); ok {
				e.Period = v
				updated = append(updated, "period")
			}
			if len(updated) > 0 {
				e.UpdatedAt = time.Now().UTC()
			}
			return updated
		},
	}
}

func NewNoteHandler(notes note.Repository, gate *AuthGate, uow common.UnitOfWork, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{
		module: authorization.ModuleNote,
		schema: noteSchema,
		gate:   gate,
		uow:    uow,
		logger: logger,
		list: func(ctx context.Context, tenantID string, offset, quantity int64) (any, error) {
			return notes.FindAll(ctx, tenantID, offset, quantity)
		},
		get: func(ctx context.Context, tenantID, id string) (common.Aggregate, error) {
			return notes.FindByID(ctx, tenantID, id)
		},
		listByStudent: func(ctx context.Context, tenantID, studentID string) (any, error) {
			return notes.FindByStudent(ctx, tenantID, studentID)
		},
		build: func(execCtx *common.ExecutionContext, payload map[string]any) common.Aggregate {
			now := time.Now().UTC()
			n := &note.Note{
				ID:          uuid.NewString(),
				TenantID:    execCtx.TenantID,
				AuthorEmail: execCtx.PrincipalEmail,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			n.StudentID, _ = stringField(payload, "studentId")
			n.Body, _ = stringField(payload, "body")
			return n
		},
		apply: func(aggregate common.Aggregate, data map[string]any) []string {
			n := aggregate.(*note.Note)
			var updated []string
			if v, ok := stringField(data, "body"); ok {
				n.Body = v
				updated = append(updated, "body")
			}
			if len(updated) > 0 {
				n.UpdatedAt = time.Now().UTC()
			}
			return updated
		},
	}
}
