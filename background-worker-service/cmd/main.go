package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamestore/background-worker-service/internal/app/background-worker/config"
	"gamestore/background-worker-service/internal/app/background-worker/handler"
	"gamestore/background-worker-service/internal/app/background-worker/processor"
	"gamestore/background-worker-service/internal/app/background-worker/repository"
	"gamestore/background-worker-service/internal/app/background-worker/service"
	"gamestore/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("background-worker", cfg.LogLevel)

	if logstashAddr := os.Getenv("LOGSTASH_ADDR"); logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "background-worker", cfg.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === POSTGRESQL (каталог) ===
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().Str("database", cfg.Database.DBName).Msg("Connected to PostgreSQL")

	// === MONGODB (комментарии) ===
	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer disconnectCancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().Str("database", cfg.MongoDB.Database).Msg("Connected to MongoDB")

	// === REDIS ===
	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	commentCountSvc := service.NewCommentCountService(
		repository.NewGameRepository(db),
		repository.NewEventRepository(redisClient, cfg.Redis.EventTTL),
		repository.NewCommentCountRepository(mongoClient.Database(cfg.MongoDB.Database)),
	)

	// === KAFKA ===
	kafkaConsumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		commentCountSvc,
	)
	kafkaConsumer.Start(ctx)

	// === CRON ===
	cronScheduler := processor.NewCronScheduler(commentCountSvc)
	if err := cronScheduler.Start(ctx, cfg.CronSchedule.Reconcile); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.CronSchedule.Reconcile).Msg("Failed to start cron scheduler")
	}

	// === HEALTH & METRICS ===
	mux := http.NewServeMux()
	handler.NewHealthCheckHandler(db, redisClient, mongoClient).RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("Starting health and metrics server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Str("schedule", cfg.CronSchedule.Reconcile).
		Msg("Background Worker Service is running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Background Worker Service...")

	cronScheduler.Stop()
	cancel()
	kafkaConsumer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server forced to shutdown")
	}

	logger.Info().Msg("Background Worker Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if err = sqlDB.Ping(); err == nil {
				sqlDB.SetMaxOpenConns(10)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			}
		}
		logger.Warn().Int("attempt", i+1).Err(err).Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		client, err = tryConnectMongo(clientOptions)
		if err == nil {
			return client, nil
		}
		logger.Warn().Int("attempt", i+1).Err(err).Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func tryConnectMongo(clientOptions *options.ClientOptions) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	var err error
	for i := 0; i < 10; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		logger.Warn().Int("attempt", i+1).Err(err).Msg("Failed to connect to Redis, retrying...")
		time.Sleep(3 * time.Second)
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after 10 attempts: %w", err)
}
