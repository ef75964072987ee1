package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"go.classcore.tech/internal/common/health"
	"go.classcore.tech/internal/notify"
	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/auth/token"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/account"
	"go.classcore.tech/internal/school/administrator"
	"go.classcore.tech/internal/school/attendance"
	attendanceops "go.classcore.tech/internal/school/attendance/operations"
	"go.classcore.tech/internal/school/curriculum"
	"go.classcore.tech/internal/school/evaluation"
	"go.classcore.tech/internal/school/event"
	"go.classcore.tech/internal/school/lesson"
	"go.classcore.tech/internal/school/note"
	"go.classcore.tech/internal/school/schedule"
	"go.classcore.tech/internal/school/student"
	"go.classcore.tech/internal/school/subject"
	"go.classcore.tech/internal/school/teacher"
	"go.classcore.tech/internal/school/tenant"
	"go.classcore.tech/internal/school/worker"
)

// Deps carries everything the HTTP surface needs. Repositories are the
// read ports; writes flow through the unit of work.
type Deps struct {
	Logger     *slog.Logger
	Gate       *AuthGate
	Codec      *token.Codec
	Passwords  *local.PasswordService
	UnitOfWork common.UnitOfWork

	Accounts       account.Repository
	Tenants        tenant.Repository
	Students       student.Repository
	Teachers       teacher.Repository
	Subjects       subject.Repository
	Lessons        lesson.Repository
	Attendances    attendance.Repository
	Administrators administrator.Repository
	Workers        worker.Repository
	Curriculums    curriculum.Repository
	Schedules      schedule.Repository
	Events         event.Repository
	Evaluations    evaluation.Repository
	Notes          note.Repository

	// Notifier is nil when guardian notifications are disabled.
	Notifier *notify.Notifier

	Health      *health.Checker
	CORSOrigins []string
}

// NewRouter assembles the full HTTP surface: middleware stack, health
// and metrics endpoints, swagger, and every module router.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(common.TracingMiddleware)
	r.Use(common.RequestLoggingMiddleware(deps.Logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Correlation-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", deps.Health.HandleHealth)
	r.Get("/health/live", deps.Health.HandleLive)
	r.Get("/health/ready", deps.Health.HandleReady)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	authHandler := NewAuthHandler(deps.Accounts, deps.Passwords, deps.Codec, deps.Gate, deps.UnitOfWork)
	recordAttendance := attendanceops.NewRecordAttendanceUseCase(
		deps.Attendances, deps.Lessons, deps.Students, deps.Notifier, deps.UnitOfWork, deps.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())

		r.Route("/v1", func(r chi.Router) {
			r.Mount("/accounts", authHandler.AccountRoutes())
			r.Mount("/tenant", NewTenantHandler(deps.Tenants, deps.Gate, deps.UnitOfWork).Routes())
			r.Mount("/students", NewStudentHandler(deps.Students, deps.Gate, deps.UnitOfWork).Routes())
			r.Mount("/teachers", NewTeacherHandler(deps.Teachers, deps.Gate, deps.UnitOfWork).Routes())
			r.Mount("/subjects", NewSubjectHandler(deps.Subjects, deps.Students, deps.Gate, deps.UnitOfWork).Routes())
			r.Mount("/lessons", NewLessonHandler(deps.Lessons, deps.Subjects, deps.Teachers, deps.Students, deps.Gate, deps.UnitOfWork).Routes())
			r.Mount("/attendances", NewAttendanceHandler(deps.Attendances, recordAttendance, deps.Gate, deps.UnitOfWork).Routes())

			r.Mount("/administrators", NewAdministratorHandler(deps.Administrators, deps.Gate, deps.UnitOfWork, deps.Logger).Routes())
			r.Mount("/workers", NewWorkerHandler(deps.Workers, deps.Gate, deps.UnitOfWork, deps.Logger).Routes())
			r.Mount("/curriculums", NewCurriculumHandler(deps.Curriculums, deps.Gate, deps.UnitOfWork, deps.Logger).Routes())
			r.Mount("/schedules", NewScheduleHandler(deps.Schedules, deps.Gate, deps.UnitOfWork, deps.Logger).Routes())
			r.Mount("/events", NewEventHandler(deps.Events, deps.Gate, deps.UnitOfWork, deps.Logger).Routes())
			r.Mount("/evaluations", NewEvaluationHandler(deps.Evaluations, deps.Gate, deps.UnitOfWork, deps.Logger).Routes())
			r.Mount("/notes", NewNoteHandler(deps.Notes, deps.Gate, deps.UnitOfWork, deps.Logger).Routes())
		})
	})

	return r
}
