package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки Orders Service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	MongoDB  MongoDBConfig
	Payment  PaymentConfig
	JWT      JWTConfig
	LogLevel string
}

type ServerConfig struct {
	Host string
	Port string // по умолчанию 8082
}

// DatabaseConfig - PostgreSQL, общий с каталогом (таблица games)
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoDBConfig - заказы старого магазина
type MongoDBConfig struct {
	URI      string
	Database string
}

// PaymentConfig - платежный шлюз
type PaymentConfig struct {
	URL        string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

type JWTConfig struct {
	Secret string
}

func Load() (*Config, error) {
	if err := godotenv.Load(getEnv("ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("PAYMENT_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_TIMEOUT value: %w", err)
	}
	retryWait, err := time.ParseDuration(getEnv("PAYMENT_RETRY_WAIT", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_RETRY_WAIT value: %w", err)
	}
	retryCount, err := strconv.Atoi(getEnv("PAYMENT_RETRY_COUNT", "3"))
	if err != nil || retryCount < 0 {
		return nil, fmt.Errorf("invalid PAYMENT_RETRY_COUNT value %q", getEnv("PAYMENT_RETRY_COUNT", ""))
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8082"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "gamestore"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "northwind"),
		},
		Payment: PaymentConfig{
			URL:        getEnv("PAYMENT_URL", "http://localhost:8090"),
			Timeout:    timeout,
			RetryCount: retryCount,
			RetryWait:  retryWait,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
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
