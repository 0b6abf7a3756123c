package telegram

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/service"
)

// webAppPayload данные, которые мини-приложение присылает через sendData.
// Формат общий для двух действий: parse_product и create_order.
type webAppPayload struct {
	Action            string            `json:"action"`
	URL               string            `json:"url,omitempty"`
	Payload           string            `json:"payload,omitempty"` // логический ключ заказа
	Amount            float64           `json:"amount,omitempty"`  // стоимость размещения в рублях
	Metadata          map[string]string `json:"metadata,omitempty"`
	YookassaPaymentID string            `json:"yookassa_payment_id,omitempty"`
}

// handleWebAppData обрабатывает данные мини-приложения
func (s *Service) handleWebAppData(ctx context.Context, chatID int64, from *domain.TelegramUser, data *domain.WebAppData, updateID int64) error {
	var payload webAppPayload
	if err := json.Unmarshal([]byte(data.Data), &payload); err != nil {
		s.Log.Warn("failed to parse web app data",
			"error", err,
			"update_id", updateID,
			"chat_id", chatID,
		)
		_, sendErr := s.TelegramClient.SendMessage(ctx, chatID, "Не удалось обработать данные приложения. Попробуйте ещё раз.")
		return sendErr
	}

	switch payload.Action {
	case "parse_product":
		return s.handleProductLink(ctx, chatID, payload.URL, updateID)
	case "create_order":
		return s.handleCreateOrder(ctx, chatID, from, &payload, updateID)
	default:
		s.Log.Warn("unknown web app action", "action", payload.Action, "update_id", updateID)
		return nil
	}
}

// handleCreateOrder собирает заказ из данных мини-приложения и запускает оплату
func (s *Service) handleCreateOrder(ctx context.Context, chatID int64, from *domain.TelegramUser, payload *webAppPayload, updateID int64) error {
	meta := domain.OrderMetaFromFlatMap(payload.Metadata)
	if meta.UserID == "" {
		meta.UserID = fmt.Sprintf("%d", from.ID)
	}

	in := service.CreateOrderInput{
		ChatID:            chatID,
		RawKey:            payload.Payload,
		Amount:            payload.Amount,
		Meta:              *meta,
		ProviderPaymentID: payload.YookassaPaymentID,
	}

	invoicePayload, err := s.Checkout.CreateInvoice(ctx, in)
	if err != nil {
		if domain.IsBusinessError(err) {
			s.Log.Warn("order rejected",
				"reason", err.Error(),
				"chat_id", chatID,
				"update_id", updateID,
			)
			_, sendErr := s.TelegramClient.SendMessage(ctx, chatID,
				"Не удалось оформить заказ: проверьте данные товара и попробуйте снова.")
			return sendErr
		}
		s.Log.Error("failed to create invoice",
			"error", err,
			"chat_id", chatID,
			"update_id", updateID,
		)
		_, sendErr := s.TelegramClient.SendMessage(ctx, chatID, "Не удалось выставить счёт. Попробуйте ещё раз чуть позже.")
		if sendErr != nil {
			s.Log.Warn("failed to notify user about invoice error", "error", sendErr, "chat_id", chatID)
		}
		return err
	}

	s.Log.Info("invoice issued",
		"chat_id", chatID,
		"payload", invoicePayload,
		"update_id", updateID,
	)
	return nil
}
