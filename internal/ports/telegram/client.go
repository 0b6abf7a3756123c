package telegram

import "context"

// LabeledPrice позиция в invoice, сумма в минимальных единицах валюты (копейках)
type LabeledPrice struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// SendInvoiceInput параметры отправки invoice пользователю
type SendInvoiceInput struct {
	ChatID        int64
	Title         string
	Description   string
	Payload       string // одноразовый токен, вернётся в pre_checkout_query и successful_payment
	ProviderToken string
	Currency      string
	Prices        []LabeledPrice
	ProviderData  string // непрозрачные данные чека для провайдера
	NeedName      bool
	NeedPhone     bool
}

// IClient интерфейс транспорта сообщений (Telegram Bot API).
// Use case зависит только от него и не знает деталей реализации.
type IClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) (int64, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int64) error
	SendInvoice(ctx context.Context, in SendInvoiceInput) (int64, error)
	AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage *string) error

	// Публикация в канал: chat указывается юзернеймом вида "@channel"
	SendChannelMessage(ctx context.Context, channel string, text string) (int64, error)
	SendChannelPhoto(ctx context.Context, channel string, photoURL string, caption string) (int64, error)
}
