package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumenbank/credit-approval/internal/infrastructure/config"
	"github.com/lumenbank/credit-approval/internal/infrastructure/ingest"
	"github.com/lumenbank/credit-approval/internal/infrastructure/messaging"
	pgRepo "github.com/lumenbank/credit-approval/internal/infrastructure/persistence/postgres"
	pkgkafka "github.com/lumenbank/credit-approval/pkg/kafka"
	"github.com/lumenbank/credit-approval/pkg/observability"
	pkgpostgres "github.com/lumenbank/credit-approval/pkg/postgres"
)

// ingestd runs portfolio ingestion out of band: it consumes ingestion
// requests from Kafka, or with -once performs a single batch and exits.
func main() {
	once := flag.Bool("once", false, "run a single ingestion batch and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	})
	logger.Info("starting ingestion worker",
		"customer_file", cfg.Ingest.CustomerFile,
		"loan_file", cfg.Ingest.LoanFile,
		"once", *once,
	)

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

	producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer producer.Close()
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.Kafka.EventsTopic, logger)

	metrics, _ := observability.NewMetrics()

	ingestor := ingest.NewIngestor(
		pgRepo.NewCustomerRepo(pool),
		pgRepo.NewLoanRepo(pool),
		publisher,
		metrics,
		logger,
	)

	if *once {
		if _, err := ingestor.Run(ctx, cfg.Ingest.CustomerFile, cfg.Ingest.LoanFile); err != nil {
			logger.Error("ingestion batch failed", "error", err)
			os.Exit(1)
		}
		return
	}

	consumer := pkgkafka.NewConsumer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers}, cfg.Kafka.IngestTopic, "credit-ingestd")
	defer consumer.Close()

	for {
		msg, err := consumer.Fetch(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				logger.Info("ingestion worker stopped")
				return
			}
			logger.Error("failed to fetch ingestion request", "error", err)
			continue
		}

		var req ingest.Request
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			logger.Warn("dropping malformed ingestion request", "error", err)
			continue
		}

		logger.Info("ingestion request received", "request_id", req.RequestID)
		if _, err := ingestor.Run(ctx, cfg.Ingest.CustomerFile, cfg.Ingest.LoanFile); err != nil {
			// Per-batch failures do not stop the worker.
			logger.Error("ingestion batch failed", "request_id", req.RequestID, "error", err)
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
