// ClassCore API
//
// Multi-tenant school administration backend.
//
//	@title			ClassCore API
//	@version		1.0
//	@description	School administration backend with per-tenant role-based access control.
//
//	@contact.name	ClassCore Support
//	@contact.url	https://classcore.tech/support
//	@contact.email	support@classcore.tech
//
//	@license.name	Proprietary
//	@license.url	https://classcore.tech/license
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT bearer credential. Format: "Bearer {token}"

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "go.classcore.tech/docs" // Swagger docs

	"go.classcore.tech/internal/common/health"
	classmongo "go.classcore.tech/internal/common/mongo"
	"go.classcore.tech/internal/common/secrets"
	"go.classcore.tech/internal/config"
	"go.classcore.tech/internal/notify"
	"go.classcore.tech/internal/platform/api"
	"go.classcore.tech/internal/platform/auth/local"
	"go.classcore.tech/internal/platform/auth/token"
	"go.classcore.tech/internal/platform/authorization/school"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/events"
	"go.classcore.tech/internal/school/account"
	"go.classcore.tech/internal/school/administrator"
	"go.classcore.tech/internal/school/attendance"
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

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cfg, err := config.LoadWithFile()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if cfg.DevMode {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	slog.Info("Starting ClassCore",
		"version", version,
		"build_time", buildTime)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Secrets override file and environment configuration.
	secretProvider, err := secrets.NewProvider(nil)
	if err != nil {
		slog.Error("Failed to create secrets provider", "error", err)
		os.Exit(1)
	}
	slog.Info("Secrets provider initialized", "provider", secretProvider.Name())

	if uri, err := secretProvider.Get(ctx, secrets.KeyMongoURI); err == nil {
		cfg.MongoDB.URI = uri
	} else if !errors.Is(err, secrets.ErrSecretNotFound) {
		slog.Error("Failed to resolve MongoDB URI secret", "error", err)
		os.Exit(1)
	}

	mongoClient, err := classmongo.Connect(ctx, cfg.MongoDB)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	if err := classmongo.NewIndexInitializer(mongoClient).Initialize(ctx); err != nil {
		slog.Warn("Index initialization incomplete", "error", err)
	}

	healthChecker := health.NewChecker()
	healthChecker.AddReadinessCheck(health.MongoDBCheck(func() error {
		return mongoClient.Ping(ctx)
	}))

	// Token codec. Without configured key paths an ephemeral pair is
	// generated, which is acceptable in development only.
	if cfg.Auth.PrivateKeyPath == "" && !cfg.DevMode {
		slog.Warn("No signing key paths configured; tokens will not survive a restart")
	}
	keys := token.NewKeyManager()
	if err := keys.Initialize(cfg.Auth.PrivateKeyPath, cfg.Auth.PublicKeyPath); err != nil {
		slog.Error("Failed to initialize signing keys", "error", err)
		os.Exit(1)
	}
	codec := token.NewCodec(keys, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	// Policy engine. Panics on an invalid matrix, which is a programming
	// error caught at startup.
	engine := school.NewEngine(logger)

	// Event publishing is best effort; the store keeps every event.
	var publish func(common.DomainEvent)
	if cfg.NATS.Enabled {
		publisher, err := events.Connect(cfg.NATS.URL, logger)
		if err != nil {
			slog.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		publish = publisher.Publish
		healthChecker.AddReadinessCheck(health.NATSCheck(publisher.IsConnected))
		slog.Info("Connected to NATS", "url", cfg.NATS.URL)
	} else {
		slog.Info("Event publishing disabled")
	}

	db := mongoClient.Database()
	uow := common.NewMongoUnitOfWork(mongoClient.Raw(), db, publish)

	// Schedule reads go through Redis when enabled.
	var schedules schedule.Repository = schedule.NewInstrumentedRepository(schedule.NewMongoRepository(db))
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		healthChecker.AddReadinessCheck(health.RedisCheck(func() error {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer pingCancel()
			return redisClient.Ping(pingCtx).Err()
		}))
		schedules = schedule.NewCachedRepository(schedules, redisClient, cfg.Redis.ScheduleTTL, logger)
		slog.Info("Schedule cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.ScheduleTTL)
	}

	// Guardian webhook notifier, fed by the attendance module.
	var notifier *notify.Notifier
	if cfg.Notify.Enabled {
		webhookToken, err := secretProvider.Get(ctx, secrets.KeyGuardianWebhook)
		if err != nil && !errors.Is(err, secrets.ErrSecretNotFound) {
			slog.Error("Failed to resolve guardian webhook secret", "error", err)
			os.Exit(1)
		}
		notifier = notify.NewNotifier(cfg.Notify.GuardianWebhookURL, webhookToken, cfg.Notify.Timeout, logger)
		slog.Info("Guardian notifications enabled")
	}

	gate := api.NewAuthGate(codec, engine, logger)

	router := api.NewRouter(api.Deps{
		Logger:     logger,
		Gate:       gate,
		Codec:      codec,
		Passwords:  local.NewPasswordService(),
		UnitOfWork: uow,

		Accounts:       account.NewRepository(db),
		Tenants:        tenant.NewRepository(db),
		Students:       student.NewInstrumentedRepository(student.NewMongoRepository(db)),
		Teachers:       teacher.NewInstrumentedRepository(teacher.NewMongoRepository(db)),
		Subjects:       subject.NewInstrumentedRepository(subject.NewMongoRepository(db)),
		Lessons:        lesson.NewInstrumentedRepository(lesson.NewMongoRepository(db)),
		Attendances:    attendance.NewInstrumentedRepository(attendance.NewMongoRepository(db)),
		Administrators: administrator.NewInstrumentedRepository(administrator.NewMongoRepository(db)),
		Workers:        worker.NewInstrumentedRepository(worker.NewMongoRepository(db)),
		Curriculums:    curriculum.NewInstrumentedRepository(curriculum.NewMongoRepository(db)),
		Schedules:      schedules,
		Events:         event.NewInstrumentedRepository(event.NewMongoRepository(db)),
		Evaluations:    evaluation.NewInstrumentedRepository(evaluation.NewMongoRepository(db)),
		Notes:          note.NewInstrumentedRepository(note.NewMongoRepository(db)),

		Notifier:    notifier,
		Health:      healthChecker,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("Shutting down", "signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}

	slog.Info("ClassCore stopped")
}
