package checkout

import "context"

// SweepExpired отзывает просроченные invoice и выбрасывает осиротевшие
// метаданные заказов. Вызывается периодическим фоновым джобом: без этого
// брошенные заказы копятся в памяти процесса бессрочно.
// Возвращает количество убранных записей.
func (s *Service) SweepExpired(ctx context.Context) int {
	removed := 0

	for _, rec := range s.Tracker.Expired(s.cfg.InvoiceTTL) {
		s.Tracker.Remove(rec.Payload)
		s.cleanupInvoice(ctx, rec)
		removed++
	}

	// Метаданные без живой записи в трекере уже никогда не понадобятся:
	// оплата по ним либо завершилась, либо не начнётся
	for _, payload := range s.Orders.Keys() {
		if _, ok := s.Tracker.Lookup(payload); !ok {
			s.Orders.Remove(payload)
			removed++
		}
	}

	if removed > 0 {
		s.Log.Info("expired checkout state swept", "removed", removed)
	}
	return removed
}
