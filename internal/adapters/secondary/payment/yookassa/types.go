package yookassa

import "time"

// paymentResponse объект платежа из API ЮKassa
// Документация: https://yookassa.ru/developers/api#payment_object
type paymentResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"` // pending, waiting_for_capture, succeeded, canceled
	Paid      bool              `json:"paid"`
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata"`
	Amount    struct {
		Value    string `json:"value"`
		Currency string `json:"currency"`
	} `json:"amount"`
}

// errorResponse тело ошибки от API ЮKassa
type errorResponse struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	Description string `json:"description"`
}
