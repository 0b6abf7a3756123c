package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

// Тексты отказов pre_checkout, видны пользователю в платёжной форме
const (
	preCheckoutNotFoundMsg = "Счёт не найден или устарел. Начните оплату заново."
	preCheckoutExpiredMsg  = "Счёт просрочен. Начните оплату заново."
)

// HandlePreCheckout отвечает на pre_checkout_query.
// Подтверждаются только invoice, выставленные этим процессом и не старше
// срока жизни; всё остальное отклоняется без попыток fuzzy-матчинга.
// Отказ по неизвестному или просроченному payload — это штатный исход,
// а не ошибка обработчика.
func (s *Service) HandlePreCheckout(ctx context.Context, query *domain.PreCheckoutQuery) error {
	rec, ok := s.Tracker.Lookup(query.InvoicePayload)
	if !ok {
		s.Log.Warn("pre_checkout rejected: unknown payload",
			"query_id", query.ID,
			"payload", query.InvoicePayload)
		return s.reject(ctx, query.ID, preCheckoutNotFoundMsg)
	}

	if rec.Age(time.Now()) > s.cfg.InvoiceTTL {
		s.Log.Warn("pre_checkout rejected: invoice expired",
			"query_id", query.ID,
			"payload", query.InvoicePayload,
			"age", rec.Age(time.Now()))
		s.Tracker.Remove(rec.Payload)
		s.Orders.Remove(rec.Payload)
		return s.reject(ctx, query.ID, preCheckoutExpiredMsg)
	}

	if err := s.TelegramClient.AnswerPreCheckoutQuery(ctx, query.ID, true, nil); err != nil {
		return fmt.Errorf("failed to confirm pre_checkout: %w", err)
	}

	s.Log.Info("pre_checkout confirmed",
		"query_id", query.ID,
		"payload", query.InvoicePayload,
		"chat_id", rec.ChatID)

	// Если провайдер так и не получит подтверждение от транспорта, платёж
	// зависнет в pending. Через паузу проверяем и отменяем его
	if rec.ProviderPaymentID != "" {
		s.scheduleStaleCheck(rec.ProviderPaymentID, rec.ChatID)
	}

	return nil
}

func (s *Service) reject(ctx context.Context, queryID string, reason string) error {
	if err := s.TelegramClient.AnswerPreCheckoutQuery(ctx, queryID, false, &reason); err != nil {
		return fmt.Errorf("failed to reject pre_checkout: %w", err)
	}
	return nil
}
