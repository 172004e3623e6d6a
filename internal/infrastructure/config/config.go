package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers     []string
	EventsTopic string
	IngestTopic string
}

type IngestConfig struct {
	DataDir      string
	CustomerFile string
	LoanFile     string
}

type Config struct {
	HTTPPort    int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Ingest      IngestConfig
	JWTSecret   string
	ServiceName string
}

func Load() Config {
	dataDir := getEnv("DATA_DIR", "./data")
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "credit"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "credit_approval"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:     []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			EventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "credit-events"),
			IngestTopic: getEnv("KAFKA_INGEST_TOPIC", "credit-ingest-requests"),
		},
		Ingest: IngestConfig{
			DataDir:      dataDir,
			CustomerFile: getEnv("CUSTOMER_DATA_FILE", filepath.Join(dataDir, "customer_data.xlsx")),
			LoanFile:     getEnv("LOAN_DATA_FILE", filepath.Join(dataDir, "loan_data.xlsx")),
		},
		JWTSecret:   getEnv("JWT_SECRET", ""),
		ServiceName: "credit-approval",
	}
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
