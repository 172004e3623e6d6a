package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumenbank/credit-approval/internal/application/usecase"
	"github.com/lumenbank/credit-approval/internal/domain/service"
	"github.com/lumenbank/credit-approval/internal/infrastructure/config"
	"github.com/lumenbank/credit-approval/internal/infrastructure/messaging"
	pgRepo "github.com/lumenbank/credit-approval/internal/infrastructure/persistence/postgres"
	"github.com/lumenbank/credit-approval/internal/presentation/rest"
	"github.com/lumenbank/credit-approval/pkg/auth"
	pkgkafka "github.com/lumenbank/credit-approval/pkg/kafka"
	"github.com/lumenbank/credit-approval/pkg/observability"
	pkgpostgres "github.com/lumenbank/credit-approval/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	})
	logger.Info("starting credit-approval API", "http_port", cfg.HTTPPort)

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(pgCfg.DSN(),
		"file://internal/infrastructure/persistence/postgres/migrations"); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	// Infrastructure adapters.
	customerRepo := pgRepo.NewCustomerRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)

	producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer producer.Close()
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.Kafka.EventsTopic, logger)

	metrics, metricsHandler := observability.NewMetrics()

	// Domain services and use cases.
	scoreEngine := service.NewScoreEngine()
	policy := service.NewPolicy()
	guard := service.NewAffordabilityGuard()

	registerUC := usecase.NewRegisterCustomerUseCase(customerRepo, publisher)
	createLoanUC := usecase.NewCreateLoanUseCase(customerRepo, loanRepo, publisher, scoreEngine, policy, guard)
	checkEligibilityUC := usecase.NewCheckEligibilityUseCase(customerRepo, loanRepo, publisher, scoreEngine, policy)
	getLoanUC := usecase.NewGetLoanUseCase(customerRepo, loanRepo)
	listLoansUC := usecase.NewListCustomerLoansUseCase(customerRepo, loanRepo)

	// Optional admin surface: only wired when a JWT secret is configured.
	var jwtSvc *auth.JWTService
	if cfg.JWTSecret != "" {
		jwtSvc, err = auth.NewJWTService(cfg.JWTSecret, cfg.ServiceName, 1*time.Hour)
		if err != nil {
			logger.Error("failed to initialize JWT service", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("JWT_SECRET not set, admin ingest trigger disabled")
	}

	router := rest.NewRouter(rest.RouterDeps{
		Customers:      rest.NewCustomerHandler(registerUC),
		Loans:          rest.NewLoanHandler(createLoanUC, checkEligibilityUC, getLoanUC, listLoansUC, metrics),
		Health:         rest.NewHealthHandler(pool),
		Ingest:         rest.NewIngestHandler(producer, cfg.Kafka.IngestTopic, logger),
		Metrics:        metrics,
		MetricsHandler: metricsHandler,
		JWT:            jwtSvc,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-approval API stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
