package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/service"
	telegramPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/telegram"
)

// CreateInvoice выставляет invoice на размещение товара.
// Прежние живые invoice чата отзываются, клиентский payment id проверяется
// у провайдера, метаданные заказа сохраняются по новому payload.
// При сбое транспорта состояние не меняется: ни трекер, ни хранилище
// метаданных не видят неотправленный invoice.
func (s *Service) CreateInvoice(ctx context.Context, in service.CreateOrderInput) (string, error) {
	lock := s.chatLock(in.ChatID)
	lock.Lock()
	defer lock.Unlock()

	if err := in.Meta.Validate(); err != nil {
		s.Log.Warn("invoice rejected: invalid order metadata",
			"chat_id", in.ChatID,
			"error", err)
		return "", domain.WrapBusinessError(err)
	}

	s.retractChatInvoices(ctx, in.ChatID)

	payload := NewPayload(in.RawKey)

	meta := in.Meta
	meta.ProviderPaymentID = s.resolveClientPaymentID(ctx, in.ProviderPaymentID)

	receiptData := s.buildReceiptData(&meta, in.Amount)

	messageID, err := s.TelegramClient.SendInvoice(ctx, telegramPort.SendInvoiceInput{
		ChatID:        in.ChatID,
		Title:         meta.Name,
		Description:   invoiceDescription(&meta),
		Payload:       payload,
		ProviderToken: s.cfg.ProviderToken,
		Currency:      s.cfg.Currency,
		Prices: []telegramPort.LabeledPrice{
			{
				Label:  meta.Name,
				Amount: rubToKopecks(in.Amount),
			},
		},
		ProviderData: receiptData,
		NeedName:     true,
		NeedPhone:    true,
	})
	if err != nil {
		s.Log.Error("failed to send invoice",
			"error", err,
			"chat_id", in.ChatID,
			"raw_key", in.RawKey)
		return "", fmt.Errorf("failed to send invoice: %w", err)
	}

	rec := &domain.InvoiceRecord{
		ChatID:            in.ChatID,
		MessageID:         messageID,
		Payload:           payload,
		RawKey:            in.RawKey,
		CreatedAt:         time.Now(),
		ProviderPaymentID: meta.ProviderPaymentID,
		ReceiptData:       receiptData,
	}

	// TakeByChat выше уже снял записи чата, но между отправкой и регистрацией
	// мьютекс не отпускался, поэтому вытеснения здесь быть не должно.
	// Если запись всё же вытеснена, убираем её следы
	if superseded := s.Tracker.Register(rec); superseded != nil {
		s.cleanupInvoice(ctx, superseded)
	}

	s.Orders.Put(payload, &meta)

	s.Log.Info("invoice sent",
		"chat_id", in.ChatID,
		"message_id", messageID,
		"payload", payload,
		"amount", in.Amount)

	return payload, nil
}

// retractChatInvoices отзывает все живые invoice чата: сообщения удаляются
// best-effort, известные незавершённые платежи отменяются у провайдера,
// метаданные выбрасываются
func (s *Service) retractChatInvoices(ctx context.Context, chatID int64) {
	for _, rec := range s.Tracker.TakeByChat(chatID) {
		s.cleanupInvoice(ctx, rec)
	}
}

// cleanupInvoice убирает следы вытесненного invoice
func (s *Service) cleanupInvoice(ctx context.Context, rec *domain.InvoiceRecord) {
	if err := s.TelegramClient.DeleteMessage(ctx, rec.ChatID, rec.MessageID); err != nil {
		// Сообщение могло быть удалено пользователем, не эскалируем
		s.Log.Warn("failed to delete superseded invoice message",
			"error", err,
			"chat_id", rec.ChatID,
			"message_id", rec.MessageID)
	}

	if rec.ProviderPaymentID != "" {
		statusCode, body := s.Verifier.Cancel(ctx, rec.ProviderPaymentID)
		s.Log.Info("superseded invoice payment cancel attempted",
			"payment_id", rec.ProviderPaymentID,
			"status_code", statusCode,
			"response", body)
	}

	s.Orders.Remove(rec.Payload)

	s.Log.Debug("invoice retracted",
		"chat_id", rec.ChatID,
		"payload", rec.Payload)
}

// resolveClientPaymentID решает судьбу клиентского payment id.
// Клиенту нельзя верить на слово: id принимается только если провайдер
// подтверждает, что платёж уже завершён успешно. Незавершённый платёж
// старше порога свежести отменяется, чтобы две попытки оплаты не
// закрылись одновременно; более молодой просто отбрасывается —
// параллельный поток ещё может его довести.
func (s *Service) resolveClientPaymentID(ctx context.Context, paymentID string) string {
	if paymentID == "" {
		return ""
	}

	remote, ok := s.Verifier.Fetch(ctx, paymentID)
	if !ok {
		s.Log.Warn("client payment id not resolvable, discarding", "payment_id", paymentID)
		return ""
	}

	if remote.Status == domain.RemotePaymentStatusSucceeded {
		s.Log.Info("client payment id already succeeded, retaining",
			"payment_id", paymentID)
		return paymentID
	}

	if remote.Status.IsSettling() {
		age := time.Since(remote.CreatedAt)
		if age > s.cfg.PaymentFreshness {
			statusCode, body := s.Verifier.Cancel(ctx, paymentID)
			s.Log.Info("stale client payment cancelled",
				"payment_id", paymentID,
				"age", age,
				"status_code", statusCode,
				"response", body)
		} else {
			s.Log.Debug("client payment id too fresh, discarding",
				"payment_id", paymentID,
				"age", age)
		}
	}

	return ""
}

// buildReceiptData собирает provider_data с чеком для провайдера
func (s *Service) buildReceiptData(meta *domain.OrderMeta, amount float64) string {
	receipt := map[string]any{
		"receipt": map[string]any{
			"items": []map[string]any{
				{
					"description": meta.Name,
					"quantity":    "1",
					"amount": map[string]string{
						"value":    fmt.Sprintf("%.2f", amount),
						"currency": s.cfg.Currency,
					},
					"vat_code": 1,
				},
			},
		},
	}

	data, err := json.Marshal(receipt)
	if err != nil {
		s.Log.Error("failed to marshal receipt data", "error", err)
		return ""
	}
	return string(data)
}

func invoiceDescription(meta *domain.OrderMeta) string {
	if meta.Description != "" {
		return meta.Description
	}
	return fmt.Sprintf("Размещение товара в канале %s", meta.ScheduledAt.Format("02.01.2006 15:04"))
}

func rubToKopecks(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
