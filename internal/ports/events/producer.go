package events

import (
	"context"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

// IProducer интерфейс отправки событий жизненного цикла заказа
type IProducer interface {
	SendOrderEvent(ctx context.Context, event *domain.OrderEvent) error
	Close() error
}
