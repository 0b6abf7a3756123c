package checkout

import (
	"context"
	"time"
)

const stalePaymentVoidedMsg = "Платёж не был завершён и отменён. Попробуйте оплатить заново."

// scheduleStaleCheck ставит отложенную проверку зависшего платежа.
// Повторная постановка по тому же payment id заменяет таймер.
// Успешное подтверждение оплаты снимает таймер через cancelStaleCheck,
// поэтому по оплаченному заказу проверка не срабатывает.
func (s *Service) scheduleStaleCheck(paymentID string, chatID int64) {
	s.staleMu.Lock()
	defer s.staleMu.Unlock()

	if prev, ok := s.staleTimers[paymentID]; ok {
		prev.Stop()
	}

	s.staleTimers[paymentID] = time.AfterFunc(s.cfg.StaleCheckDelay, func() {
		s.staleMu.Lock()
		delete(s.staleTimers, paymentID)
		s.staleMu.Unlock()

		s.runStaleCheck(paymentID, chatID)
	})

	s.Log.Debug("stale payment check scheduled",
		"payment_id", paymentID,
		"chat_id", chatID,
		"delay", s.cfg.StaleCheckDelay)
}

// cancelStaleCheck снимает отложенную проверку; отсутствие таймера — no-op
func (s *Service) cancelStaleCheck(paymentID string) {
	if paymentID == "" {
		return
	}

	s.staleMu.Lock()
	defer s.staleMu.Unlock()

	if timer, ok := s.staleTimers[paymentID]; ok {
		timer.Stop()
		delete(s.staleTimers, paymentID)
		s.Log.Debug("stale payment check cancelled", "payment_id", paymentID)
	}
}

// runStaleCheck проверяет платёж после паузы: если он всё ещё не завершён,
// отменяет его у провайдера и сообщает пользователю. Неудачная отмена
// (платёж успел завершиться) — штатный исход, только логируется
func (s *Service) runStaleCheck(paymentID string, chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	remote, ok := s.Verifier.Fetch(ctx, paymentID)
	if !ok {
		s.Log.Warn("stale check: payment not resolvable", "payment_id", paymentID)
		return
	}

	if !remote.Status.IsSettling() {
		s.Log.Debug("stale check: payment already settled",
			"payment_id", paymentID,
			"status", remote.Status)
		return
	}

	statusCode, body := s.Verifier.Cancel(ctx, paymentID)
	s.Log.Info("stale payment cancelled",
		"payment_id", paymentID,
		"chat_id", chatID,
		"status_code", statusCode,
		"response", body)

	if _, err := s.TelegramClient.SendMessage(ctx, chatID, stalePaymentVoidedMsg); err != nil {
		s.Log.Warn("failed to notify user about voided payment",
			"error", err,
			"chat_id", chatID)
	}
}

// pendingStaleChecks количество невыполненных отложенных проверок
func (s *Service) pendingStaleChecks() int {
	s.staleMu.Lock()
	defer s.staleMu.Unlock()
	return len(s.staleTimers)
}
