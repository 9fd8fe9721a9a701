package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Check проверка одной зависимости
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthCheckHandler struct {
	checks []Check
}

// NewHealthCheckHandler проверяет PostgreSQL каталога, Redis и MongoDB комментариев
func NewHealthCheckHandler(db *gorm.DB, redisClient *redis.Client, mongoClient *mongo.Client) *HealthCheckHandler {
	return NewHealthCheckHandlerWithChecks(
		Check{Name: "database", Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}},
		Check{Name: "redis", Ping: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
		Check{Name: "mongodb", Ping: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		}},
	)
}

func NewHealthCheckHandlerWithChecks(checks ...Check) *HealthCheckHandler {
	return &HealthCheckHandler{checks: checks}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

func (h *HealthCheckHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Checks:    make(map[string]string, len(h.checks)),
		Timestamp: time.Now(),
	}
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			response.Checks[check.Name] = "unhealthy: " + err.Error()
			response.Status = "unhealthy"
			continue
		}
		response.Checks[check.Name] = "healthy"
	}

	w.Header().Set("Content-Type", "application/json")
	if response.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(response)
}

func (h *HealthCheckHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			http.Error(w, check.Name+" not ready", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (h *HealthCheckHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}

func (h *HealthCheckHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/health/readiness", h.Readiness)
	mux.HandleFunc("/health/liveness", h.Liveness)
}
