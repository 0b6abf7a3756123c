package domain

import "time"

// OrderEventType тип события жизненного цикла заказа
type OrderEventType string

const (
	OrderEventPaid   OrderEventType = "order_paid"     // оплата подтверждена, выкладка запланирована
	OrderEventPosted OrderEventType = "product_posted" // товар опубликован в канале
)

// OrderEvent событие для downstream-учёта (биллинг, сверка).
// Отправляется best-effort: неудачная отправка логируется и не ломает пайплайн.
type OrderEvent struct {
	Type        OrderEventType `json:"type"`
	Payload     string         `json:"payload,omitempty"` // payload оплаченного invoice
	ProductID   string         `json:"product_id,omitempty"`
	UserID      string         `json:"user_id,omitempty"`
	Price       float64        `json:"price,omitempty"`
	ScheduledAt time.Time      `json:"scheduled_at,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}
