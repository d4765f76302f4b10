package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	httptransport "github.com/tohally/academy-web/internal/api/http"
	"github.com/tohally/academy-web/internal/api/http/handlers"
	"github.com/tohally/academy-web/internal/auth"
	"github.com/tohally/academy-web/internal/config"
	"github.com/tohally/academy-web/internal/events"
	"github.com/tohally/academy-web/internal/flash"
	"github.com/tohally/academy-web/internal/observability"
	"github.com/tohally/academy-web/internal/persistence"
	"github.com/tohally/academy-web/internal/repository"
	"github.com/tohally/academy-web/internal/service"
	"github.com/tohally/academy-web/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var flashes flash.Store
	if redis.Available(ctx) {
		flashes = flash.NewRedisStore(redis.Client)
	} else {
		logger.Warn("redis unavailable; flash notifications held in memory")
		flashes = flash.NewMemoryStore()
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(userRepo, cfg.Auth.BcryptCost)
	studentService := service.NewStudentService(studentRepo, dispatcher)
	intakeService := service.NewIntakeService(studentRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	if err := service.EnsureAdmin(ctx, authService, cfg.Admin, logger); err != nil {
		logger.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	sessions := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL())
	sessionMiddleware := auth.NewSessionMiddleware(sessions, userRepo, flashes)

	app := fiber.New(fiber.Config{
		Views: html.New(cfg.App.TemplatesDir, ".html"),
	})

	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	pagesHandler := handlers.NewPagesHandler(flashes)
	authHandler := handlers.NewAuthHandler(authService, sessions, flashes)
	intakeHandler := handlers.NewIntakeHandler(intakeService, flashes)
	studentsHandler := handlers.NewStudentsHandler(studentService, flashes)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   healthHandler,
		Pages:    pagesHandler,
		Auth:     authHandler,
		Intake:   intakeHandler,
		Students: studentsHandler,
		Sessions: sessionMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
