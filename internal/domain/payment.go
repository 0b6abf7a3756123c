package domain

import "time"

// RemotePaymentStatus статус платежа на стороне провайдера (ЮKassa)
type RemotePaymentStatus string

const (
	RemotePaymentStatusPending           RemotePaymentStatus = "pending"
	RemotePaymentStatusWaitingForCapture RemotePaymentStatus = "waiting_for_capture"
	RemotePaymentStatusSucceeded         RemotePaymentStatus = "succeeded"
	RemotePaymentStatusCanceled          RemotePaymentStatus = "canceled"
)

// IsTerminal true для статусов, после которых платёж уже не изменится
func (s RemotePaymentStatus) IsTerminal() bool {
	switch s {
	case RemotePaymentStatusSucceeded, RemotePaymentStatusCanceled:
		return true
	default:
		return false
	}
}

// IsSettling true для незавершённых статусов — платёж ещё может
// подтвердиться или отвалиться
func (s RemotePaymentStatus) IsSettling() bool {
	return s == RemotePaymentStatusPending || s == RemotePaymentStatusWaitingForCapture
}

// RemotePayment read-only запись о платеже у провайдера.
// Система никогда не создаёт такие записи — только читает и отменяет.
type RemotePayment struct {
	ID        string
	Status    RemotePaymentStatus
	CreatedAt time.Time
	Metadata  map[string]string
}

// InvoiceRecord учётная запись отправленного, но не подтверждённого invoice.
// Инвариант: на пару (chat_id, raw_key) существует не больше одной живой записи.
type InvoiceRecord struct {
	ChatID            int64
	MessageID         int64     // для отзыва invoice (удаления сообщения)
	Payload           string    // одноразовый токен попытки оплаты
	RawKey            string    // логический ключ заказа, стабилен между попытками
	CreatedAt         time.Time
	ProviderPaymentID string // id платежа у провайдера, если клиент его передал
	ReceiptData       string // непрозрачные provider_data для чека
}

// Age возраст записи относительно переданного момента
func (r *InvoiceRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}
