package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"log/slog"

	"github.com/IBM/sarama"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	eventsPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/events"
)

// Producer отправляет события жизненного цикла заказа в Kafka.
// Реализует интерфейс events.IProducer
type Producer struct {
	producer sarama.SyncProducer
	cfg      *Config
	log      *slog.Logger
}

// NewProducer создаёт новый Kafka producer
func NewProducer(cfg *Config, log *slog.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	// Настройка безопасности (если указано)
	if cfg.SecurityProtocol == "SASL_SSL" || cfg.SecurityProtocol == "SASL_PLAINTEXT" {
		config.Net.SASL.Enable = true
		config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		if cfg.SASLMechanism == "SCRAM-SHA-256" {
			config.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
		}
		config.Net.SASL.User = cfg.SASLUsername
		config.Net.SASL.Password = cfg.SASLPassword
		if cfg.SecurityProtocol == "SASL_SSL" {
			config.Net.TLS.Enable = true
		}
	}

	producer, err := sarama.NewSyncProducer(cfg.GetBrokers(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer created",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
	)

	return &Producer{
		producer: producer,
		cfg:      cfg,
		log:      log,
	}, nil
}

// SendOrderEvent публикует событие заказа.
// Ключ сообщения — user_id, чтобы события одного продавца шли в одну партицию
func (p *Producer) SendOrderEvent(ctx context.Context, event *domain.OrderEvent) error {
	valueBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("event_type"),
			Value: []byte(string(event.Type)),
		},
	}
	if event.ProductID != "" {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("product_id"),
			Value: []byte(event.ProductID),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.cfg.Topic,
		Key:     sarama.StringEncoder(event.UserID),
		Value:   sarama.ByteEncoder(valueBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Debug("kafka send failed",
			"error", err,
			"topic", p.cfg.Topic,
			"event_type", event.Type,
		)
		return fmt.Errorf("kafka send failed [topic=%s, event=%s]: %w",
			p.cfg.Topic, event.Type, err)
	}

	p.log.Debug("order event sent to kafka",
		"topic", p.cfg.Topic,
		"partition", partition,
		"offset", offset,
		"event_type", event.Type,
		"user_id", event.UserID,
	)
	return nil
}

// Close закрывает producer
func (p *Producer) Close() error {
	return p.producer.Close()
}

// NoopProducer заглушка, когда Kafka выключена конфигом
type NoopProducer struct {
	log *slog.Logger
}

// NewNoopProducer создаёт отключённый producer событий
func NewNoopProducer(log *slog.Logger) eventsPort.IProducer {
	return &NoopProducer{log: log}
}

func (p *NoopProducer) SendOrderEvent(_ context.Context, event *domain.OrderEvent) error {
	p.log.Debug("kafka disabled, order event dropped", "event_type", event.Type)
	return nil
}

func (p *NoopProducer) Close() error { return nil }
