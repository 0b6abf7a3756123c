package service

import (
	"context"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

// CreateOrderInput заказ, пришедший из мини-приложения или HTTP API.
// RawKey — логический ключ заказа, стабильный между повторными попытками
// оплаты; payload для каждой попытки генерируется заново.
type CreateOrderInput struct {
	ChatID            int64
	RawKey            string
	Amount            float64 // стоимость размещения в рублях
	Meta              domain.OrderMeta
	ProviderPaymentID string // id прежнего платежа ЮKassa, если клиент его прислал
}

// ICheckoutService интерфейс пайплайна оплаты и сверки.
// Три точки входа соответствуют трём событиям транспорта: запрос invoice,
// pre_checkout_query и successful_payment.
type ICheckoutService interface {
	CreateInvoice(ctx context.Context, in CreateOrderInput) (payload string, err error)
	HandlePreCheckout(ctx context.Context, query *domain.PreCheckoutQuery) error
	HandleSuccessfulPayment(ctx context.Context, chatID int64, payment *domain.SuccessfulPayment) error
}
