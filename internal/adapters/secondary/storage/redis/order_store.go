package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	checkoutPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/checkout"
)

const (
	orderKeyPrefix = "order_meta:"
	opTimeout      = 3 * time.Second
)

// OrderStore хранилище метаданных заказа в Redis.
// Переживает рестарт процесса: записи лежат под order_meta:{payload}
// в JSON с TTL, Keys возвращает payload'ы через SCAN.
type OrderStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewOrderStore создаёт Redis-хранилище метаданных заказа
func NewOrderStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) checkoutPort.IOrderStore {
	return &OrderStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Put сохраняет метаданные по payload, перезаписывая прежние
func (s *OrderStore) Put(payload string, meta *domain.OrderMeta) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := json.Marshal(meta)
	if err != nil {
		s.logger.Error("order store: marshal failed", "payload", payload, "error", err)
		return
	}

	if err := s.client.Set(ctx, orderKeyPrefix+payload, data, s.ttl).Err(); err != nil {
		s.logger.Error("order store: set failed", "payload", payload, "error", err)
	}
}

// Get возвращает копию метаданных по payload
func (s *OrderStore) Get(payload string) (*domain.OrderMeta, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, orderKeyPrefix+payload).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		s.logger.Error("order store: get failed", "payload", payload, "error", err)
		return nil, false
	}

	var meta domain.OrderMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		s.logger.Error("order store: unmarshal failed", "payload", payload, "error", err)
		return nil, false
	}
	return &meta, true
}

// Remove удаляет метаданные; отсутствие ключа — no-op
func (s *OrderStore) Remove(payload string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, orderKeyPrefix+payload).Err(); err != nil {
		s.logger.Error("order store: delete failed", "payload", payload, "error", err)
	}
}

// Keys возвращает payload'ы всех сохранённых заказов
func (s *OrderStore) Keys() []string {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var payloads []string
	iter := s.client.Scan(ctx, 0, orderKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		payloads = append(payloads, iter.Val()[len(orderKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		s.logger.Error("order store: scan failed", "error", err)
	}
	return payloads
}

// Ping проверяет доступность Redis
func (s *OrderStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close закрывает подключение
func (s *OrderStore) Close() error {
	return s.client.Close()
}
