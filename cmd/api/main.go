package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/prodline/workorder-tracker/internal/access"
	httptransport "github.com/prodline/workorder-tracker/internal/api/http"
	"github.com/prodline/workorder-tracker/internal/api/http/handlers"
	"github.com/prodline/workorder-tracker/internal/config"
	"github.com/prodline/workorder-tracker/internal/events"
	"github.com/prodline/workorder-tracker/internal/identity"
	"github.com/prodline/workorder-tracker/internal/observability"
	"github.com/prodline/workorder-tracker/internal/persistence"
	"github.com/prodline/workorder-tracker/internal/repository"
	"github.com/prodline/workorder-tracker/internal/service"
	"github.com/prodline/workorder-tracker/internal/storage"
	"github.com/prodline/workorder-tracker/internal/upload"
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
	ticketRepo := repository.NewTicketRepository(pool)
	workOrderRepo := repository.NewWorkOrderRepository(pool)
	areaRepo := repository.NewAreaRepository(pool)

	var verifier identity.Verifier
	switch cfg.Identity.Mode {
	case config.VerifyModeRemote:
		verifier = identity.NewRemoteVerifier(cfg.Identity.VerifyURL, cfg.Identity.ServiceKey, cfg.Identity.HTTPTimeout(), userRepo)
	default:
		verifier = identity.NewLocalVerifier(cfg.Identity.JWTSecret, userRepo)
	}
	guard := access.NewGuard(verifier, ticketRepo, logger)

	dispatcher := events.NewInMemoryDispatcher()
	relay := events.NewRedisRelay(redis.Client, cfg.Redis.EventsChannel, logger)
	relay.RegisterHandlers(dispatcher)

	objectStore := storage.NewBucketClient(cfg.Storage.BaseURL, cfg.Storage.Bucket, cfg.Storage.ServiceKey)
	pipeline := upload.NewPipeline(objectStore, logger, upload.Options{
		MaxBatchSize:     cfg.Storage.MaxBatchSize,
		MaxFileSizeBytes: cfg.Storage.MaxFileSizeBytes,
		PutTimeout:       cfg.Storage.PutTimeout(),
	})

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:    ticketRepo,
		WorkOrderRepo: workOrderRepo,
		AreaRepo:      areaRepo,
		Dispatcher:    dispatcher,
	})
	workOrderService := service.NewWorkOrderService(workOrderRepo, ticketRepo, dispatcher)
	areaService := service.NewAreaService(areaRepo)
	userService := service.NewUserService(userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:    handlers.NewTicketsHandler(guard, ticketService, pipeline),
		WorkOrders: handlers.NewWorkOrdersHandler(guard, workOrderService),
		Areas:      handlers.NewAreasHandler(guard, areaService),
		Users:      handlers.NewUsersHandler(guard, userService),
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
