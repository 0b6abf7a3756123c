package publisher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

// PublishProduct публикует товар в канал и переводит его в posted.
// Срабатывает из job публикации в запланированное время
func (s *Service) PublishProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.ProductRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load product for publish: %w", err)
	}

	if product.Status != domain.ProductStatusPending {
		s.Log.Warn("publish skipped: product is not pending",
			"product_id", productID,
			"status", product.Status)
		return nil
	}

	caption := buildCaption(product)
	imageURL := s.mirrorImage(ctx, product)

	if imageURL != "" {
		_, err = s.TelegramClient.SendChannelPhoto(ctx, s.cfg.Channel, imageURL, caption)
	} else {
		_, err = s.TelegramClient.SendChannelMessage(ctx, s.cfg.Channel, caption)
	}
	if err != nil {
		s.markFailed(ctx, product, err)
		return fmt.Errorf("failed to post product to channel: %w", err)
	}

	if err := s.ProductRepo.UpdateStatus(ctx, productID, domain.ProductStatusPosted); err != nil {
		// Пост вышел, а статус не записался: без алерта товар опубликуется
		// повторно после рестарта
		s.Log.Error("product posted but status update failed",
			"error", err,
			"product_id", productID)
		s.alert(ctx, fmt.Sprintf("⚠️ Товар %s опубликован, но статус не обновлён: %v", productID, err))
		return fmt.Errorf("failed to mark product posted: %w", err)
	}

	s.Log.Info("product published",
		"product_id", productID,
		"channel", s.cfg.Channel)

	s.emitPostedEvent(ctx, product)
	return nil
}

// mirrorImage переносит картинку товара с CDN маркетплейса в своё S3.
// CDN не гарантирует время жизни ссылок, поэтому пост ссылается на копию.
// Любой сбой не блокирует публикацию: возвращается исходная ссылка
func (s *Service) mirrorImage(ctx context.Context, product *domain.Product) string {
	if product.ImageURL == "" {
		return ""
	}
	if s.ImageStorage == nil {
		return product.ImageURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, product.ImageURL, nil)
	if err != nil {
		s.Log.Warn("image mirror: failed to create request",
			"error", err,
			"product_id", product.ID)
		return product.ImageURL
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.Log.Warn("image mirror: download failed",
			"error", err,
			"product_id", product.ID,
			"image_url", product.ImageURL)
		return product.ImageURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.Log.Warn("image mirror: non-200 status",
			"status_code", resp.StatusCode,
			"product_id", product.ID)
		return product.ImageURL
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/webp"
	}

	key := fmt.Sprintf("products/%s%s", product.ID, imageExt(product.ImageURL))
	stored, err := s.ImageStorage.StoreImage(ctx, key, resp.Body, resp.ContentLength, contentType)
	if err != nil {
		s.Log.Warn("image mirror: store failed",
			"error", err,
			"product_id", product.ID)
		return product.ImageURL
	}

	s.Log.Debug("image mirrored",
		"product_id", product.ID,
		"key", key)
	return stored
}

func imageExt(url string) string {
	if idx := strings.LastIndex(url, "."); idx != -1 && len(url)-idx <= 6 {
		return url[idx:]
	}
	return ".webp"
}

// buildCaption собирает текст поста для канала
func buildCaption(product *domain.Product) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b>\n", product.Name))
	if product.Description != "" {
		b.WriteString(fmt.Sprintf("%s\n", product.Description))
	}
	if product.Price > 0 {
		b.WriteString(fmt.Sprintf("\nЦена: %.0f ₽\n", product.Price))
	}
	b.WriteString(fmt.Sprintf("\n<a href=\"%s\">Смотреть на Wildberries</a>", product.URL))
	return b.String()
}

func (s *Service) markFailed(ctx context.Context, product *domain.Product, cause error) {
	if err := s.ProductRepo.UpdateStatus(ctx, product.ID, domain.ProductStatusFailed); err != nil {
		s.Log.Error("failed to mark product failed",
			"error", err,
			"product_id", product.ID)
	}
	s.alert(ctx, fmt.Sprintf(
		"⚠️ Публикация не удалась\nproduct_id: %s\nuser_id: %s\nпричина: %v",
		product.ID, product.UserID, cause))
}

func (s *Service) alert(ctx context.Context, message string) {
	if s.AlerterService == nil {
		return
	}
	if err := s.AlerterService.SendAlert(ctx, message); err != nil {
		s.Log.Warn("failed to send publish alert", "error", err)
	}
}

// emitPostedEvent best-effort отправка события публикации в шину
func (s *Service) emitPostedEvent(ctx context.Context, product *domain.Product) {
	if s.Events == nil {
		return
	}

	event := &domain.OrderEvent{
		Type:        domain.OrderEventPosted,
		ProductID:   product.ID.String(),
		UserID:      product.UserID,
		Price:       product.Price,
		ScheduledAt: product.ScheduledAt,
		OccurredAt:  time.Now(),
	}
	if err := s.Events.SendOrderEvent(ctx, event); err != nil {
		s.Log.Warn("failed to emit product posted event", "error", err)
	}
}
