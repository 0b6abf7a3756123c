package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

// publishJobID имя job публикации, стабильно для товара: повторная
// регистрация заменяет job, а не дублирует
func publishJobID(productID uuid.UUID) string {
	return fmt.Sprintf("publish_%s", productID)
}

// ScheduleProduct создаёт товар из оплаченного заказа и регистрирует
// job публикации на запланированное время.
// Вызывается пайплайном оплаты после подтверждения платежа
func (s *Service) ScheduleProduct(ctx context.Context, meta *domain.OrderMeta) (uuid.UUID, error) {
	product := &domain.Product{
		ID:          uuid.New(),
		UserID:      meta.UserID,
		URL:         meta.URL,
		Name:        meta.Name,
		Description: meta.Description,
		ImageURL:    meta.ImageURL,
		Price:       meta.Price,
		Category:    meta.Category,
		Status:      domain.ProductStatusPending,
		ScheduledAt: meta.ScheduledAt,
		CreatedAt:   time.Now(),
	}

	if err := s.ProductRepo.Create(ctx, product); err != nil {
		return uuid.Nil, fmt.Errorf("failed to persist product: %w", err)
	}

	s.schedulePublish(product.ID, product.ScheduledAt)

	s.Log.Info("product scheduled for publish",
		"product_id", product.ID,
		"user_id", product.UserID,
		"scheduled_at", product.ScheduledAt)

	return product.ID, nil
}

// RestorePending восстанавливает расписание публикаций после рестарта:
// все pending-товары из БД заново получают job на своё время.
// Просроченные публикуются сразу — деньги за них уже получены
func (s *Service) RestorePending(ctx context.Context) error {
	products, err := s.ProductRepo.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore pending products: %w", err)
	}

	for _, product := range products {
		s.schedulePublish(product.ID, product.ScheduledAt)
	}

	s.Log.Info("pending publish jobs restored", "count", len(products))
	return nil
}

func (s *Service) schedulePublish(productID uuid.UUID, runAt time.Time) {
	s.Scheduler.Schedule(publishJobID(productID), runAt, func(ctx context.Context) {
		if err := s.PublishProduct(ctx, productID); err != nil {
			s.Log.Error("publish job failed",
				"error", err,
				"product_id", productID)
		}
	})
}
