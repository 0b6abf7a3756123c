package inmemory

import (
	"sync"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	checkoutPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/checkout"
)

// OrderStore in-memory хранилище метаданных заказа по payload.
// Живёт в пределах процесса, записи удаляются только явно (очистку брошенных
// заказов делает sweeper). Для устойчивости к рестартам есть Redis-вариант.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.OrderMeta // payload -> метаданные
}

// NewOrderStore создаёт in-memory хранилище заказов
func NewOrderStore() checkoutPort.IOrderStore {
	return &OrderStore{
		orders: make(map[string]*domain.OrderMeta),
	}
}

// Put безусловно перезаписывает метаданные по payload
func (s *OrderStore) Put(payload string, meta *domain.OrderMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[payload] = meta
}

// Get возвращает копию метаданных, чтобы вызывающий не мутировал хранилище
func (s *OrderStore) Get(payload string) (*domain.OrderMeta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.orders[payload]
	if !ok {
		return nil, false
	}
	cp := *meta
	return &cp, true
}

// Remove удаляет запись; отсутствие ключа — no-op
func (s *OrderStore) Remove(payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, payload)
}

// Keys возвращает все payload'ы (для sweeper'а)
func (s *OrderStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.orders))
	for k := range s.orders {
		keys = append(keys, k)
	}
	return keys
}
