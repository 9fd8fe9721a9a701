package metrics

import (
	"time"
)

func RecordCacheHit(service, key string) {
	RedisCacheHits.WithLabelValues(service, key).Inc()
}

func RecordCacheMiss(service, key string) {
	RedisCacheMisses.WithLabelValues(service, key).Inc()
}

func RecordRedisError(service, operation string) {
	RedisErrors.WithLabelValues(service, operation).Inc()
}

// KafkaProduceTimer замеряет отправку одного сообщения
type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{service: service, topic: topic, start: time.Now()}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	RecordKafkaError(kt.service, kt.topic, "produce")
}

func RecordKafkaMessageConsumed(service, topic, group string, processing time.Duration) {
	KafkaMessagesConsumed.WithLabelValues(service, topic, group).Inc()
	KafkaConsumeDuration.WithLabelValues(service, topic).Observe(processing.Seconds())
}

func RecordKafkaError(service, topic, operation string) {
	KafkaErrors.WithLabelValues(service, topic, operation).Inc()
}

// DbTimer замеряет длительность одного запроса к БД
type DbTimer struct {
	service   string
	operation string
	table     string
	start     time.Time
}

func NewDbTimer(service, operation, table string) *DbTimer {
	return &DbTimer{service: service, operation: operation, table: table, start: time.Now()}
}

// Done фиксирует длительность и ошибку, если она есть
func (dt *DbTimer) Done(err error) {
	DbQueryDuration.WithLabelValues(dt.service, dt.operation, dt.table).Observe(time.Since(dt.start).Seconds())
	if err != nil {
		DbErrors.WithLabelValues(dt.service, dt.operation).Inc()
	}
}
