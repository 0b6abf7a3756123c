package service

import (
	"context"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	"github.com/google/uuid"
)

// IPublishPlanner интерфейс передачи оплаченного заказа в выкладку:
// создаёт товар и регистрирует job публикации на запланированное время
type IPublishPlanner interface {
	ScheduleProduct(ctx context.Context, meta *domain.OrderMeta) (uuid.UUID, error)
}
