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
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gamestore/orders-service/internal/app/orders/config"
	"gamestore/orders-service/internal/app/orders/entity"
	"gamestore/orders-service/internal/app/orders/handler"
	http2 "gamestore/orders-service/internal/app/orders/infrastructure/http"
	"gamestore/orders-service/internal/app/orders/repository"
	"gamestore/orders-service/internal/app/orders/service"
	"gamestore/pkg/auth"
	"gamestore/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("orders-service", cfg.LogLevel)

	if logstashAddr := os.Getenv("LOGSTASH_ADDR"); logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "orders-service", cfg.LogLevel); err != nil {
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
	// games мигрирует каталог
	if err := db.AutoMigrate(&entity.Order{}, &entity.OrderGame{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	// === MONGODB ===
	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to disconnect MongoDB")
		}
	}()
	logger.Info().Str("database", cfg.MongoDB.Database).Msg("Connected to MongoDB")

	paymentClient := http2.NewPaymentClient(http2.PaymentClientOptions{
		BaseURL:    cfg.Payment.URL,
		Timeout:    cfg.Payment.Timeout,
		RetryCount: cfg.Payment.RetryCount,
		RetryWait:  cfg.Payment.RetryWait,
	})
	logger.Info().
		Str("url", cfg.Payment.URL).
		Int("retry_count", cfg.Payment.RetryCount).
		Msg("Initialized payment gateway client")

	// === СЕРВИСЫ ===
	orderService := service.NewOrderService(
		repository.NewRepositories(db),
		repository.NewUnitOfWork(db),
		paymentClient,
		time.Now,
	)
	orderFacade := service.NewOrderFacade(
		orderService,
		repository.NewLegacyOrderRepository(mongoClient.Database(cfg.MongoDB.Database)),
	)

	// === HTTP ===
	authMiddleware := auth.NewMiddleware(cfg.JWT.Secret)
	router := handler.SetupRoutes(handler.NewOrderHandler(orderService, orderFacade), authMiddleware)

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
			Msg("Starting Orders Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Orders Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Orders Service stopped gracefully")
}

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
			if sqlErr != nil {
				err = sqlErr
			} else if err = sqlDB.Ping(); err == nil {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
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
