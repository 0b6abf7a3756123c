package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

const (
	paymentAcceptedMsgTpl = "Оплата получена! Товар «%s» будет опубликован %s."
	supportEscalationMsg  = "Оплата прошла, но заказ не удалось оформить. Обратитесь в поддержку — мы всё исправим."
)

// HandleSuccessfulPayment финализирует оплаченный заказ: разрешает
// канонические метаданные через провайдера (локальная копия — только
// фолбэк), валидирует их и передаёт заказ в выкладку.
// Деньги на этом этапе уже списаны, поэтому любой сбой эскалируется
// пользователю и в поддержку, а не проглатывается.
func (s *Service) HandleSuccessfulPayment(ctx context.Context, chatID int64, payment *domain.SuccessfulPayment) error {
	payload := payment.InvoicePayload

	rec, tracked := s.Tracker.Lookup(payload)

	// Платёж закрылся, отложенная отмена больше не нужна
	if tracked {
		s.cancelStaleCheck(rec.ProviderPaymentID)
	}
	s.cancelStaleCheck(payment.ProviderPaymentChargeID)

	var localPaymentID string
	if tracked {
		localPaymentID = rec.ProviderPaymentID
	}

	meta := s.resolveMeta(ctx, payload, localPaymentID, payment.ProviderPaymentChargeID)
	if meta == nil {
		return s.escalate(ctx, chatID, payload, payment,
			fmt.Errorf("no metadata resolvable for paid order"))
	}

	if err := meta.Validate(); err != nil {
		return s.escalate(ctx, chatID, payload, payment, err)
	}

	productID, err := s.Planner.ScheduleProduct(ctx, meta)
	if err != nil {
		return s.escalate(ctx, chatID, payload, payment,
			fmt.Errorf("publish hand-off failed: %w", err))
	}

	// Payload потреблён успешной оплатой и больше никогда не матчится
	s.Orders.Remove(payload)
	s.Tracker.Remove(payload)

	s.Log.Info("order fulfilled",
		"payload", payload,
		"product_id", productID,
		"user_id", meta.UserID,
		"scheduled_at", meta.ScheduledAt)

	s.emitPaidEvent(ctx, payload, productID.String(), meta)

	confirmation := fmt.Sprintf(paymentAcceptedMsgTpl, meta.Name, meta.ScheduledAt.Format("02.01.2006 15:04"))
	if _, err := s.TelegramClient.SendMessage(ctx, chatID, confirmation); err != nil {
		s.Log.Warn("failed to send payment confirmation",
			"error", err,
			"chat_id", chatID)
	}

	return nil
}

// resolveMeta собирает канонические метаданные заказа.
// Провайдер авторитетнее локального кэша: сперва пробуем payment id,
// сохранённый при выставлении invoice, затем charge id из события оплаты,
// и только потом локально сохранённые метаданные
func (s *Service) resolveMeta(ctx context.Context, payload string, paymentIDs ...string) *domain.OrderMeta {
	for _, id := range paymentIDs {
		if id == "" {
			continue
		}
		remote, ok := s.Verifier.Fetch(ctx, id)
		if !ok || len(remote.Metadata) == 0 {
			continue
		}
		meta := domain.OrderMetaFromFlatMap(remote.Metadata)
		meta.ProviderPaymentID = id
		s.Log.Debug("order metadata resolved from provider",
			"payload", payload,
			"payment_id", id)
		return meta
	}

	if meta, ok := s.Orders.Get(payload); ok {
		s.Log.Debug("order metadata resolved from local store", "payload", payload)
		return meta
	}

	return nil
}

// escalate обрабатывает сбой после списания денег: пользователь направляется
// в поддержку, инцидент с полным контекстом уходит в чат поддержки
func (s *Service) escalate(ctx context.Context, chatID int64, payload string, payment *domain.SuccessfulPayment, cause error) error {
	s.Log.Error("post-capture fulfillment failed",
		"error", cause,
		"chat_id", chatID,
		"payload", payload,
		"provider_charge_id", payment.ProviderPaymentChargeID,
		"telegram_charge_id", payment.TelegramPaymentChargeID,
		"amount", payment.TotalAmount)

	if _, err := s.TelegramClient.SendMessage(ctx, chatID, supportEscalationMsg); err != nil {
		s.Log.Error("failed to notify user about fulfillment failure",
			"error", err,
			"chat_id", chatID)
	}

	if s.AlerterService != nil {
		alert := fmt.Sprintf(
			"⚠️ Оплата без оформления заказа\nchat_id: %d\npayload: %s\ncharge_id: %s\nпричина: %v",
			chatID, payload, payment.ProviderPaymentChargeID, cause)
		if err := s.AlerterService.SendAlert(ctx, alert); err != nil {
			s.Log.Error("failed to send support alert", "error", err)
		}
	}

	return domain.WrapBusinessError(fmt.Errorf("post-capture fulfillment failed [payload=%s]: %w", payload, cause))
}

// emitPaidEvent best-effort отправка события оплаты в шину
func (s *Service) emitPaidEvent(ctx context.Context, payload string, productID string, meta *domain.OrderMeta) {
	if s.Events == nil {
		return
	}

	event := &domain.OrderEvent{
		Type:        domain.OrderEventPaid,
		Payload:     payload,
		ProductID:   productID,
		UserID:      meta.UserID,
		Price:       meta.Price,
		ScheduledAt: meta.ScheduledAt,
		OccurredAt:  time.Now(),
	}
	if err := s.Events.SendOrderEvent(ctx, event); err != nil {
		s.Log.Warn("failed to emit order paid event", "error", err)
	}
}
