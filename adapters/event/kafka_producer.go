package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-studio/internal/application/service"
	"github.com/khoahotran/cv-studio/internal/config"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

const DefaultExportTopic = "cv.exports"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ExportEventsWriter messageWriter
	log                logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}
	topic := cfg.Kafka.ExportTopic
	if topic == "" {
		topic = DefaultExportTopic
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.String("topic", topic))
	return &KafkaProducerClient{ExportEventsWriter: writer, log: log}, nil
}

// PublishExportEvent keys messages by owner so one owner's exports stay ordered.
func (c *KafkaProducerClient) PublishExportEvent(ctx context.Context, event service.ExportEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode export event: %w", err)
	}
	err = c.ExportEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OwnerID.String()),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish export event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ExportEventsWriter != nil {
		if err := c.ExportEventsWriter.Close(); err != nil {
			c.log.Error("Failed to close Kafka producer", err)
		}
	}
	c.log.Info("Closed Kafka Producers")
}

// DecodeExportEvent parses a message written by PublishExportEvent.
func DecodeExportEvent(msg kafka.Message) (service.ExportEvent, error) {
	var event service.ExportEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return event, fmt.Errorf("decode export event: %w", err)
	}
	return event, nil
}
