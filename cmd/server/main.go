package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/noctura/backend/api/handler"
	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/internal/config"
	"github.com/noctura/backend/internal/infrastructure/monitor"
	pgInfra "github.com/noctura/backend/internal/infrastructure/postgres"
	redisInfra "github.com/noctura/backend/internal/infrastructure/redis"
	"github.com/noctura/backend/internal/middleware"
	"github.com/noctura/backend/internal/router"
	"github.com/noctura/backend/internal/services/lifecycle"
	"github.com/noctura/backend/pkg/httpcontext"
	"github.com/noctura/backend/pkg/logger"
	"github.com/noctura/backend/repository/postgres"
	redisRepo "github.com/noctura/backend/repository/redis"
	authUC "github.com/noctura/backend/usecase/auth"
	bedtimeUC "github.com/noctura/backend/usecase/bedtime"
	"github.com/noctura/backend/usecase/board"
	commentUC "github.com/noctura/backend/usecase/comment"
	habitUC "github.com/noctura/backend/usecase/habit"
	nightUC "github.com/noctura/backend/usecase/night"
	profileUC "github.com/noctura/backend/usecase/profile"
	reminderUC "github.com/noctura/backend/usecase/reminder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	todoRepo := postgres.NewTaskRepository(pool, postgres.TodoTable)
	kanbanRepo := postgres.NewTaskRepository(pool, postgres.KanbanTable)
	habitRepo := postgres.NewHabitRepository(pool)
	nightRepo := postgres.NewNightEntryRepository(pool)
	reminderRepo := postgres.NewReminderRepository(pool)
	bedtimeRepo := postgres.NewBedtimeRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	authUseCase := authUC.New(userRepo, sessionRepo, authUC.Config{
		Secret: cfg.Auth.Secret,
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.SessionTTL,
	}, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)

	todoEngine := board.New(board.Config{
		Kind:          "todo",
		Statuses:      domain.TodoStatuses,
		GroupByStatus: false,
		AllowDueDate:  true,
	}, todoRepo, zapLogger)
	kanbanEngine := board.New(board.Config{
		Kind:          "kanban",
		Statuses:      domain.KanbanStatuses,
		GroupByStatus: true,
		AllowDueDate:  false,
	}, kanbanRepo, zapLogger)

	commentUseCase := commentUC.New(kanbanRepo, zapLogger)
	habitUseCase := habitUC.New(habitRepo, zapLogger)
	nightUseCase := nightUC.New(nightRepo, zapLogger)
	reminderUseCase := reminderUC.New(reminderRepo, zapLogger)
	bedtimeUseCase := bedtimeUC.New(bedtimeRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, profileUseCase, ctxAdapter, zapLogger),
		Todo:     apiHandler.NewBoardHandler(todoEngine, ctxAdapter, zapLogger),
		Kanban:   apiHandler.NewBoardHandler(kanbanEngine, ctxAdapter, zapLogger),
		Comment:  apiHandler.NewCommentHandler(commentUseCase, ctxAdapter, zapLogger),
		Habit:    apiHandler.NewHabitHandler(habitUseCase, ctxAdapter, zapLogger),
		Night:    apiHandler.NewNightHandler(nightUseCase, ctxAdapter, zapLogger),
		Reminder: apiHandler.NewReminderHandler(reminderUseCase, ctxAdapter, zapLogger),
		Bedtime:  apiHandler.NewBedtimeHandler(bedtimeUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.Auth.Secret, authUseCase, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
