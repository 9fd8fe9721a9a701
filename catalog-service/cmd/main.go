package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gamestore/catalog-service/internal/app/catalog/config"
	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/handler"
	"gamestore/catalog-service/internal/app/catalog/pipeline"
	"gamestore/catalog-service/internal/app/catalog/repository"
	"gamestore/catalog-service/internal/app/catalog/service"
	"gamestore/catalog-service/internal/app/catalog/util"
	"gamestore/pkg/auth"
	"gamestore/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("catalog-service", cfg.LogLevel)

	if logstashAddr := os.Getenv("LOGSTASH_ADDR"); logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "catalog-service", cfg.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	// === POSTGRESQL ===
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.AutoMigrate(&entity.Publisher{}, &entity.Genre{}, &entity.Platform{}, &entity.Game{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	// === REDIS ===
	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	// === РЕПОЗИТОРИИ И СЕРВИСЫ ===
	gameRepo := repository.NewGameRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	platformRepo := repository.NewPlatformRepository(db)
	publisherRepo := repository.NewPublisherRepository(db)

	gameService := service.NewGameService(gameRepo, genreRepo, platformRepo, publisherRepo, pipeline.New(time.Now))
	genreService := service.NewGenreService(genreRepo, redisClient)
	platformService := service.NewPlatformService(platformRepo, redisClient)
	publisherService := service.NewPublisherService(publisherRepo, gameRepo, redisClient)

	// === HTTP ===
	authMiddleware := auth.NewMiddleware(cfg.JWT.Secret)
	router := handler.SetupRoutes(
		handler.NewGameHandler(gameService),
		handler.NewReferenceHandler(genreService, platformService, publisherService, gameService),
		authMiddleware,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Catalog Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Catalog Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Catalog Service stopped gracefully")
}

// connectDB подключается к PostgreSQL через gorm, 10 попыток с паузой 3с
// на случай, когда контейнер базы еще не готов
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr == nil {
				if err = sqlDB.Ping(); err == nil {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			} else {
				err = sqlErr
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
