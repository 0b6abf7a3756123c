package inmemory

import (
	"sync"
	"time"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	checkoutPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/checkout"
)

// InvoiceTracker in-memory учёт живых invoice.
// Держит два индекса: по payload и по (chat_id, raw_key), чтобы Register мог
// вытеснить прежнюю попытку того же логического заказа за O(1).
type InvoiceTracker struct {
	mu        sync.Mutex
	byPayload map[string]*domain.InvoiceRecord
	byRawKey  map[rawKeyIndex]*domain.InvoiceRecord
	byChat    map[int64]map[string]*domain.InvoiceRecord // chat_id -> payload -> запись
}

type rawKeyIndex struct {
	chatID int64
	rawKey string
}

// NewInvoiceTracker создаёт in-memory трекер invoice
func NewInvoiceTracker() checkoutPort.IInvoiceTracker {
	return &InvoiceTracker{
		byPayload: make(map[string]*domain.InvoiceRecord),
		byRawKey:  make(map[rawKeyIndex]*domain.InvoiceRecord),
		byChat:    make(map[int64]map[string]*domain.InvoiceRecord),
	}
}

// Register ставит запись на учёт. Прежняя живая запись с тем же
// (chat_id, raw_key) снимается с учёта и возвращается вызывающему —
// отзыв её сообщения остаётся за вызывающим.
func (t *InvoiceTracker) Register(rec *domain.InvoiceRecord) *domain.InvoiceRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := rawKeyIndex{chatID: rec.ChatID, rawKey: rec.RawKey}
	superseded := t.byRawKey[idx]
	if superseded != nil {
		t.removeLocked(superseded.Payload)
	}

	t.byPayload[rec.Payload] = rec
	t.byRawKey[idx] = rec
	chatRecs, ok := t.byChat[rec.ChatID]
	if !ok {
		chatRecs = make(map[string]*domain.InvoiceRecord)
		t.byChat[rec.ChatID] = chatRecs
	}
	chatRecs[rec.Payload] = rec

	return superseded
}

// Lookup ищет запись по payload
func (t *InvoiceTracker) Lookup(payload string) (*domain.InvoiceRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.byPayload[payload]
	return rec, ok
}

// Remove снимает запись с учёта; отсутствие — no-op
func (t *InvoiceTracker) Remove(payload string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(payload)
}

func (t *InvoiceTracker) removeLocked(payload string) {
	rec, ok := t.byPayload[payload]
	if !ok {
		return
	}
	delete(t.byPayload, payload)
	delete(t.byRawKey, rawKeyIndex{chatID: rec.ChatID, rawKey: rec.RawKey})
	if chatRecs, ok := t.byChat[rec.ChatID]; ok {
		delete(chatRecs, payload)
		if len(chatRecs) == 0 {
			delete(t.byChat, rec.ChatID)
		}
	}
}

// TakeByChat атомарно извлекает все записи чата и снимает их с учёта
func (t *InvoiceTracker) TakeByChat(chatID int64) []*domain.InvoiceRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	chatRecs, ok := t.byChat[chatID]
	if !ok {
		return nil
	}

	taken := make([]*domain.InvoiceRecord, 0, len(chatRecs))
	for payload, rec := range chatRecs {
		taken = append(taken, rec)
		delete(t.byPayload, payload)
		delete(t.byRawKey, rawKeyIndex{chatID: chatID, rawKey: rec.RawKey})
	}
	delete(t.byChat, chatID)

	return taken
}

// Expired возвращает записи старше ttl, не снимая их с учёта
func (t *InvoiceTracker) Expired(ttl time.Duration) []*domain.InvoiceRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	var expired []*domain.InvoiceRecord
	for _, rec := range t.byPayload {
		if rec.Age(now) > ttl {
			expired = append(expired, rec)
		}
	}
	return expired
}
