package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/IBM/sarama"
	"github.com/nikolayk812/shop-pricing/internal/config"
	"github.com/nikolayk812/shop-pricing/internal/domain"
	"go.uber.org/zap"
)

const HeaderEventType = "x-event-type"

type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewProducer(cfg config.Kafka, logger *zap.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are empty")
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("sarama.NewSyncProducer: %w", err)
	}

	return NewProducerWithClient(producer, cfg.Topic, logger), nil
}

func NewProducerWithClient(producer sarama.SyncProducer, topic string, logger *zap.Logger) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   logger.With(zap.String("component", "kafka-producer"), zap.String("topic", topic)),
	}
}

func newSaramaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	return config
}

// Publish stops at the first failed send; events before it are already delivered.
func (p *Producer) Publish(ctx context.Context, events []domain.Event) error {
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.newMessage(event)
		if err != nil {
			return fmt.Errorf("newMessage: %w", err)
		}

		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			p.logger.Error("failed to send event",
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_id", event.AggregateID()),
				zap.Error(err))
			return fmt.Errorf("producer.SendMessage: %w", err)
		}

		p.logger.Debug("event sent",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID()),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
	}

	return nil
}

func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("producer.Close: %w", err)
	}
	return nil
}

type envelope struct {
	EventType string       `json:"event_type"`
	Payload   domain.Event `json:"payload"`
}

func (p *Producer) newMessage(event domain.Event) (*sarama.ProducerMessage, error) {
	if event == nil {
		return nil, fmt.Errorf("event is nil")
	}

	data, err := json.Marshal(envelope{EventType: event.EventType(), Payload: event})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.AggregateID()),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventType), Value: []byte(event.EventType())},
		},
		Timestamp: event.OccurredAt(),
	}, nil
}
