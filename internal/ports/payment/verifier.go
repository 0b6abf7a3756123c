package payment

import (
	"context"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

// IVerifier интерфейс для проверки платежей у провайдера (ЮKassa).
// Fetch никогда не возвращает ошибку наверх: любой сбой (сеть, креды,
// не-200 статус) сигнализируется отсутствием записи (ok=false).
type IVerifier interface {
	Fetch(ctx context.Context, paymentID string) (*domain.RemotePayment, bool)

	// Cancel best-effort отмена платежа; результат — статус-код и тело ответа,
	// а не ошибка: неудачная отмена не должна валить вызывающий поток
	Cancel(ctx context.Context, paymentID string) (int, string)
}
