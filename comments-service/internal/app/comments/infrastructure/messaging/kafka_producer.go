package messaging

import (
	"context"
	"fmt"
	"time"

	"gamestore/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const serviceName = "comments-service"

// KafkaProducer публикует события комментариев; ключ сообщения - ключ игры,
// так события одной игры попадают в одну партицию
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	timer := metrics.NewKafkaProduceTimer(serviceName, p.topic)

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	timer.Success()
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
