package domain

// дока - https://core.telegram.org/bots/api

// Update - входящее обновление от Telegram Bot API
type Update struct {
	UpdateID         int64             `json:"update_id"`
	Message          *Message          `json:"message,omitempty"`
	PreCheckoutQuery *PreCheckoutQuery `json:"pre_checkout_query,omitempty"`
	// Другие типы обновлений (edited_message, callback_query и т.д.)
	// добавляются по мере необходимости
}

// Message - сообщение от Telegram Bot API
type Message struct {
	MessageID         int64              `json:"message_id"`
	From              *TelegramUser      `json:"from,omitempty"`
	Chat              *Chat              `json:"chat"`
	Date              int64              `json:"date"` // Unix timestamp
	Text              *string            `json:"text,omitempty"`
	Entities          []Entity           `json:"entities,omitempty"`
	Contact           *Contact           `json:"contact,omitempty"`
	WebAppData        *WebAppData        `json:"web_app_data,omitempty"`
	SuccessfulPayment *SuccessfulPayment `json:"successful_payment,omitempty"`
}

// TelegramUser - пользователь Telegram (не domain.User)
type TelegramUser struct {
	ID           int64   `json:"id"`
	IsBot        bool    `json:"is_bot"`
	FirstName    string  `json:"first_name"`
	LastName     *string `json:"last_name,omitempty"`
	Username     *string `json:"username,omitempty"`
	LanguageCode *string `json:"language_code,omitempty"`
}

// Chat - чат в Telegram
type Chat struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"` // "private", "group", "supergroup", "channel"
	Title     *string `json:"title,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// Entity - сущность в сообщении (команда, упоминание и т.д.)
type Entity struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"` // смещение в UTF-16 кодовых единицах
	Length int    `json:"length"`
}

// Contact - контакт, которым поделился пользователь
type Contact struct {
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	UserID      int64  `json:"user_id,omitempty"`
}

// WebAppData - данные, отправленные из Telegram Web App
type WebAppData struct {
	Data       string `json:"data"` // JSON-строка, сформированная мини-приложением
	ButtonText string `json:"button_text"`
}

// PreCheckoutQuery - предоплатная проверка от Telegram.
// Требует синхронного ответа answerPreCheckoutQuery в пределах таймаута API.
type PreCheckoutQuery struct {
	ID             string        `json:"id"`
	From           *TelegramUser `json:"from,omitempty"`
	Currency       string        `json:"currency"`
	TotalAmount    int64         `json:"total_amount"` // в минимальных единицах валюты
	InvoicePayload string        `json:"invoice_payload"`
}

// SuccessfulPayment - уведомление об успешной оплате invoice
type SuccessfulPayment struct {
	Currency                string `json:"currency"`
	TotalAmount             int64  `json:"total_amount"`
	InvoicePayload          string `json:"invoice_payload"`
	TelegramPaymentChargeID string `json:"telegram_payment_charge_id"`
	ProviderPaymentChargeID string `json:"provider_payment_charge_id"`
}
