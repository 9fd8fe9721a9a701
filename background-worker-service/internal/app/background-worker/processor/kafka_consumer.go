package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gamestore/background-worker-service/internal/app/background-worker/entity"
	"gamestore/background-worker-service/internal/app/background-worker/service"
	"gamestore/pkg/logger"
	"gamestore/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const serviceName = "background-worker"

// KafkaConsumer читает события топика comment_events
type KafkaConsumer struct {
	reader     *kafka.Reader
	topic      string
	groupID    string
	commentSvc service.CommentCountServiceInterface
	stopChan   chan struct{}
	doneChan   chan struct{}
}

func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	commentSvc service.CommentCountServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: minBytes,
		MaxBytes: maxBytes,
		// пропущенное за время простоя доберет Reconcile
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:     reader,
		topic:      topic,
		groupID:    groupID,
		commentSvc: commentSvc,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}
}

// Start запускает чтение в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().Str("topic", c.topic).Str("group", c.groupID).Msg("Starting Kafka consumer")
	go c.consume(ctx)
}

func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	if err := c.reader.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close Kafka reader")
	}
	logger.Info().Msg("Kafka consumer stopped")
}

func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				logger.Error().Err(err).Msg("Error fetching message")
				metrics.RecordKafkaError(serviceName, c.topic, "fetch")
				time.Sleep(time.Second)
				continue
			}

			start := time.Now()
			if err := c.processMessage(ctx, message); err != nil {
				// offset не коммитим, сообщение придет повторно
				logger.Error().
					Err(err).
					Int64("offset", message.Offset).
					Int("partition", message.Partition).
					Msg("Error processing message")
				metrics.RecordKafkaError(serviceName, c.topic, "process")
				continue
			}
			metrics.RecordKafkaMessageConsumed(serviceName, c.topic, c.groupID, time.Since(start))

			if err := c.reader.CommitMessages(ctx, message); err != nil {
				logger.Error().Err(err).Msg("Error committing message")
				metrics.RecordKafkaError(serviceName, c.topic, "commit")
			}
		}
	}
}

func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.CommentEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal comment event: %w", err)
	}

	logger.Debug().
		Str("event_type", event.EventType).
		Str("event_id", event.EventID).
		Str("game_key", event.GameKey).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received comment event")

	if err := c.commentSvc.ProcessCommentEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to process comment event: %w", err)
	}
	return nil
}

func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
