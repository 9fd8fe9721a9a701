package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config содержит все настройки Catalog Service:
// HTTP сервер, PostgreSQL, Redis и проверка JWT
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	LogLevel string
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string
	Port string // по умолчанию 8081
}

// DatabaseConfig - настройки подключения к PostgreSQL.
// Таблица games общая с Orders Service.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string // disable/require/verify-full
}

// RedisConfig - кеш списков жанров, платформ и издателей
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int // 0-15
}

type JWTConfig struct {
	Secret string // должен совпадать с секретом сервиса идентификации
}

// Load загружает конфигурацию из переменных окружения.
// Если есть .env (или файл из ENV_FILE), его значения подхватываются первыми.
func Load() (*Config, error) {
	if err := godotenv.Load(getEnv("ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8081"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "gamestore"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// DSN строка подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
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
