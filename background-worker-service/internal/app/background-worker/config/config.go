package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config настройки Background Worker Service
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	MongoDB      MongoDBConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	CronSchedule CronScheduleConfig
	LogLevel     string
}

// ServerConfig - health и metrics
type ServerConfig struct {
	Port string
}

// DatabaseConfig - PostgreSQL каталога, таблица games
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoDBConfig - база Comments Service, только чтение
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig - отметки обработанных событий
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	EventTTL time.Duration // сколько помнить event id
}

type KafkaConfig struct {
	Brokers  []string
	Topic    string // comment_events
	GroupID  string
	MinBytes int
	MaxBytes int
}

type CronScheduleConfig struct {
	Reconcile string // пересчет comment_count, 5 полей cron
}

func Load() (*Config, error) {
	if err := godotenv.Load(getEnv("ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	eventTTL, err := time.ParseDuration(getEnv("REDIS_EVENT_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_EVENT_TTL value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8084"),
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
			Database: getEnv("MONGODB_DATABASE", "comments_service"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 2),
			EventTTL: eventTTL,
		},
		Kafka: KafkaConfig{
			Brokers:  strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:    getEnv("KAFKA_TOPIC", "comment_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "background-worker-group"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		CronSchedule: CronScheduleConfig{
			Reconcile: getEnv("CRON_RECONCILE", "*/15 * * * *"),
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

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt возвращает значение по умолчанию, если переменная не число
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
