package telegram

import (
	"context"

	telegramPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/telegram"
)

// SendInvoiceRequest запрос на отправку invoice
// Документация: https://core.telegram.org/bots/api#sendinvoice
type SendInvoiceRequest struct {
	ChatID          int64                      `json:"chat_id"`
	Title           string                     `json:"title"`
	Description     string                     `json:"description"`
	Payload         string                     `json:"payload"` // уникальный payload для идентификации платежа
	ProviderToken   string                     `json:"provider_token,omitempty"`
	Currency        string                     `json:"currency"`
	Prices          []telegramPort.LabeledPrice `json:"prices"`
	ProviderData    string                     `json:"provider_data,omitempty"` // данные чека для провайдера
	NeedName        bool                       `json:"need_name,omitempty"`
	NeedPhoneNumber bool                       `json:"need_phone_number,omitempty"`
}

// SendInvoice отправляет invoice пользователю и возвращает message_id
func (c *Client) SendInvoice(ctx context.Context, in telegramPort.SendInvoiceInput) (int64, error) {
	req := SendInvoiceRequest{
		ChatID:          in.ChatID,
		Title:           in.Title,
		Description:     in.Description,
		Payload:         in.Payload,
		ProviderToken:   in.ProviderToken,
		Currency:        in.Currency,
		Prices:          in.Prices,
		ProviderData:    in.ProviderData,
		NeedName:        in.NeedName,
		NeedPhoneNumber: in.NeedPhone,
	}

	var result messageResult
	if err := c.callAPI(ctx, "sendInvoice", req, &result); err != nil {
		c.log.Error("failed to send invoice",
			"error", err,
			"chat_id", in.ChatID,
			"payload", in.Payload,
		)
		return 0, err
	}

	c.log.Debug("invoice sent successfully",
		"chat_id", in.ChatID,
		"message_id", result.MessageID,
		"payload", in.Payload,
	)
	return result.MessageID, nil
}

// AnswerPreCheckoutQueryRequest запрос на ответ pre_checkout_query
type AnswerPreCheckoutQueryRequest struct {
	PreCheckoutQueryID string  `json:"pre_checkout_query_id"`
	OK                 bool    `json:"ok"`
	ErrorMessage       *string `json:"error_message,omitempty"` // обязателен при ok=false
}

// AnswerPreCheckoutQuery подтверждает или отклоняет платёж.
// Телеграм ждёт ответ не дольше 10 секунд, иначе платёж отклоняется сам
func (c *Client) AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage *string) error {
	req := AnswerPreCheckoutQueryRequest{
		PreCheckoutQueryID: queryID,
		OK:                 ok,
		ErrorMessage:       errorMessage,
	}

	if err := c.callAPI(ctx, "answerPreCheckoutQuery", req, nil); err != nil {
		c.log.Error("failed to answer pre_checkout_query",
			"error", err,
			"query_id", queryID,
			"ok", ok,
		)
		return err
	}

	c.log.Debug("pre_checkout_query answered successfully",
		"query_id", queryID,
		"ok", ok,
	)
	return nil
}
