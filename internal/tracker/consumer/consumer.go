package consumer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"pump-radar/internal/tracker/config"
)

// KafkaConsumer is the lifecycle every topic consumer exposes.
type KafkaConsumer interface {
	Run(ctx context.Context)
	Stop() error
	ID() string
}

// MessageHandler decouples message handling from the read loop.
type MessageHandler interface {
	HandleMessage(msg kafka.Message)
}

type Consumer struct {
	logger      *zap.Logger
	kafkaReader *kafka.Reader
}

func NewConsumer(conf config.KafkaConfig, logger *zap.Logger, topic string) *Consumer {
	return &Consumer{
		logger:      logger,
		kafkaReader: newKafkaReader(conf, topic),
	}
}

// Start launches the read loop in its own goroutine.
func (c *Consumer) Start(ctx context.Context, handler MessageHandler) {
	go c.run(ctx, handler)
}

func (c *Consumer) run(ctx context.Context, handler MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Warn("closing Kafka consumer...")
			_ = c.kafkaReader.Close()
			return
		default:
		}

		ctxWithTimeout, cancel := context.WithTimeout(ctx, 2*time.Second)
		msg, err := c.kafkaReader.ReadMessage(ctxWithTimeout)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				c.logger.Debug("Kafka read idle")
			} else {
				c.logger.Warn("❌ Kafka read error", zap.Error(err))
			}
			continue
		}

		handler.HandleMessage(msg)
	}
}

func (c *Consumer) Stop() error {
	return c.kafkaReader.Close()
}

func newKafkaReader(conf config.KafkaConfig, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:                strings.Split(conf.Brokers, ","),
		Topic:                  topic,
		GroupID:                conf.GroupID,
		StartOffset:            kafka.LastOffset,
		CommitInterval:         5 * time.Second,
		QueueCapacity:          2000,
		MinBytes:               1024,
		MaxBytes:               10e6,
		ReadBatchTimeout:       500 * time.Millisecond,
		PartitionWatchInterval: 5 * time.Second,
	})
}
