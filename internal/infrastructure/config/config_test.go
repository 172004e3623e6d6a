package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenbank/credit-approval/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr())
	assert.Equal(t, "credit_approval", cfg.DB.Name)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "credit-events", cfg.Kafka.EventsTopic)
	assert.Equal(t, "credit-ingest-requests", cfg.Kafka.IngestTopic)
	assert.Equal(t, filepath.Join("./data", "customer_data.xlsx"), cfg.Ingest.CustomerFile)
	assert.Equal(t, "credit-approval", cfg.ServiceName)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("KAFKA_BROKERS", "kafka.internal:9092")
	t.Setenv("CUSTOMER_DATA_FILE", "/srv/import/customers.xlsx")
	t.Setenv("JWT_SECRET", "hunter2")

	cfg := config.Load()

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 15432, cfg.DB.Port)
	assert.Equal(t, []string{"kafka.internal:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "/srv/import/customers.xlsx", cfg.Ingest.CustomerFile)
	assert.Equal(t, "hunter2", cfg.JWTSecret)
}

func TestLoadIgnoresBadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	cfg := config.Load()
	assert.Equal(t, 8080, cfg.HTTPPort)
}
