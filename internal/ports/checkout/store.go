package checkout

import (
	"time"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

// IOrderStore хранилище метаданных заказа по payload.
// Все операции last-writer-wins, TTL и персистентность — забота реализации
// (in-memory или Redis).
type IOrderStore interface {
	Put(payload string, meta *domain.OrderMeta)
	Get(payload string) (*domain.OrderMeta, bool)
	Remove(payload string) // идемпотентно, отсутствие ключа — no-op
	Keys() []string
}

// IInvoiceTracker учёт живых (отправленных, но не подтверждённых) invoice.
// Инвариант реализации: не больше одной живой записи на (chat_id, raw_key) —
// Register вытесняет предыдущую запись с тем же raw_key и возвращает её.
type IInvoiceTracker interface {
	Register(rec *domain.InvoiceRecord) *domain.InvoiceRecord
	Lookup(payload string) (*domain.InvoiceRecord, bool)
	Remove(payload string)

	// TakeByChat атомарно извлекает (и снимает с учёта) все записи чата —
	// используется перед выставлением нового invoice
	TakeByChat(chatID int64) []*domain.InvoiceRecord

	// Expired возвращает записи старше ttl, не снимая их с учёта
	Expired(ttl time.Duration) []*domain.InvoiceRecord
}
