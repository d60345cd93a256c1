package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/caminhar/clinic-api/internal/api/http"
	"github.com/caminhar/clinic-api/internal/api/http/handlers"
	"github.com/caminhar/clinic-api/internal/auth"
	"github.com/caminhar/clinic-api/internal/config"
	"github.com/caminhar/clinic-api/internal/events"
	"github.com/caminhar/clinic-api/internal/observability"
	"github.com/caminhar/clinic-api/internal/persistence"
	"github.com/caminhar/clinic-api/internal/repository"
	"github.com/caminhar/clinic-api/internal/service"
	"github.com/caminhar/clinic-api/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	patientRepo := repository.NewPatientRepository(pool)
	consultationRepo := repository.NewConsultationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	patientService := service.NewPatientService(patientRepo, dispatcher)
	consultationService := service.NewConsultationService(consultationRepo, dispatcher)
	dashboardService := service.NewDashboardService(patientRepo, consultationRepo, redis, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, logger)
	policy := auth.NewAccessPolicy(auth.DefaultRules())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.CORS)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Patients:       handlers.NewPatientsHandler(patientService),
		Consultations:  handlers.NewConsultationsHandler(consultationService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware: authMiddleware,
		Policy:         policy,
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
