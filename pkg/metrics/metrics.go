package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP метрики (общие для всех сервисов)
// =============================================================================

// HttpRequestsTotal - счётчик HTTP запросов
// Labels: service, method, route, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "route", "status"},
)

// HttpRequestDuration - время ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "route"},
)

var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Хранилища
// =============================================================================

// DbQueryDuration - время выполнения запросов к PostgreSQL
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key"},
)

var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaConsumeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_consume_duration_seconds",
		Help:    "Duration of Kafka message processing",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// =============================================================================
// Бизнес метрики магазина
// =============================================================================

// --- Catalog Service ---

// CatalogGameViews - просмотры игр (каталог и карточка игры)
var CatalogGameViews = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_game_views_total",
		Help: "Total number of game views counted by the catalog",
	},
	[]string{"source"}, // list, key, id
)

// CatalogQueryResults - размер страницы выдачи каталога
var CatalogQueryResults = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "catalog_query_results",
		Help:    "Number of games returned per catalog query",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 500},
	},
)

// --- Orders Service ---

var CartGamesAdded = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orders_cart_games_added_total",
		Help: "Total number of add-to-cart attempts",
	},
	[]string{"status"}, // success, out_of_stock, failed
)

var OrderStatusTransitions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orders_status_transitions_total",
		Help: "Total number of order status transitions",
	},
	[]string{"from", "to"},
)

var PaymentAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orders_payment_attempts_total",
		Help: "Total number of payment gateway calls",
	},
	[]string{"method", "result"}, // result: approved, declined, error
)

// --- Comments Service ---

var CommentsCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "comments_created_total",
		Help: "Total number of comments created",
	},
	[]string{"action"}, // comment, reply, quote
)

var CommentsDeleted = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "comments_deleted_total",
		Help: "Total number of tombstoned comments",
	},
)

var UsersBanned = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "comments_users_banned_total",
		Help: "Total number of bans issued",
	},
	[]string{"duration"},
)

// --- Background Worker ---

var WorkerCommentCountUpdates = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_comment_count_updates_total",
		Help: "Total number of comment count updates applied by worker",
	},
	[]string{"source", "status"}, // source: event, reconcile; status: success, skipped, failed
)

var WorkerReconcileDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "worker_comment_reconcile_duration_seconds",
		Help:    "Duration of comment count reconciliation",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	},
)
