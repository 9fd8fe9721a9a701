package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Kafka    KafkaConfig
	Catalog  CatalogConfig
	JWT      JWTConfig
	LogLevel string
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8083)
}

type MongoDBConfig struct {
	URI      string
	Database string
}

type KafkaConfig struct {
	Brokers []string // host:port через запятую
	Topic   string   // события COMMENT_CREATED и COMMENT_DELETED
}

// CatalogConfig - Catalog Service для проверки существования игры
type CatalogConfig struct {
	URL     string
	Timeout time.Duration
}

type JWTConfig struct {
	Secret string // должен совпадать с ключом сервиса идентификации
}

func Load() (*Config, error) {
	if err := godotenv.Load(getEnv("ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	catalogTimeout, err := time.ParseDuration(getEnv("CATALOG_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_TIMEOUT value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8083"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "comments_service"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "comment_events"),
		},
		Catalog: CatalogConfig{
			URL:     getEnv("CATALOG_URL", "http://localhost:8081"),
			Timeout: catalogTimeout,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
