package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gamestore/comments-service/internal/app/comments/config"
	"gamestore/comments-service/internal/app/comments/handler"
	http2 "gamestore/comments-service/internal/app/comments/infrastructure/http"
	"gamestore/comments-service/internal/app/comments/infrastructure/messaging"
	"gamestore/comments-service/internal/app/comments/moderation"
	"gamestore/comments-service/internal/app/comments/repository"
	"gamestore/comments-service/internal/app/comments/service"
	"gamestore/pkg/auth"
	"gamestore/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("comments-service", cfg.LogLevel)

	if logstashAddr := os.Getenv("LOGSTASH_ADDR"); logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "comments-service", cfg.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Msg("Connected to MongoDB")

	commentRepo := repository.NewCommentRepository(mongoClient.Database(cfg.MongoDB.Database))
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := commentRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn().Err(err).Msg("Failed to create comment indexes")
	}
	indexCancel()

	kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	catalogClient := http2.NewCatalogClient(cfg.Catalog.URL, cfg.Catalog.Timeout)

	// баны живут до перезапуска процесса
	commentService := service.NewCommentService(
		commentRepo,
		moderation.NewBanRegistry(time.Now),
		catalogClient,
		kafkaProducer,
		time.Now,
	)

	authMiddleware := auth.NewMiddleware(cfg.JWT.Secret)
	router := handler.SetupRoutes(handler.NewCommentHandler(commentService), authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Comments Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Comments Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Comments Service stopped gracefully")
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

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
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
