package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tracker-service/internal/api/http"
	"github.com/spec-kit/tracker-service/internal/api/http/handlers"
	"github.com/spec-kit/tracker-service/internal/auth"
	"github.com/spec-kit/tracker-service/internal/config"
	"github.com/spec-kit/tracker-service/internal/events"
	"github.com/spec-kit/tracker-service/internal/observability"
	"github.com/spec-kit/tracker-service/internal/persistence"
	"github.com/spec-kit/tracker-service/internal/repository"
	"github.com/spec-kit/tracker-service/internal/service"
	"github.com/spec-kit/tracker-service/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	slaRepo := repository.NewSlaRepository(pool)

	slaService := service.NewSlaService(service.SlaDependencies{
		SlaRepo:    slaRepo,
		TicketRepo: ticketRepo,
		Cache:      redis,
		Logger:     logger,
		Metrics:    metrics,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Sla:        slaService,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authService := service.NewAuthService(cfg.Auth, userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger)
	notificationService.RegisterHandlers()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Sla:            handlers.NewSlaHandler(slaService),
		AuthMiddleware: authMiddleware,
	})

	if cfg.Worker.EscalationEnabled {
		escalation := worker.NewEscalationWorker(ticketRepo, redis, dispatcher, logger, cfg.Worker.EscalationInterval())
		escalation.Start(ctx)
	}

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
