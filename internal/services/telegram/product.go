package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

// handleProductLink парсит карточку товара по ссылке и отвечает пользователю
func (s *Service) handleProductLink(ctx context.Context, chatID int64, url string, updateID int64) error {
	product, err := s.Scraper.Parse(ctx, url)
	if err != nil {
		// только ошибки контекста, сетевые неудачи приходят как Success=false
		return fmt.Errorf("failed to parse product: %w", err)
	}

	if !product.Success {
		s.Log.Warn("product parse failed",
			"url", url,
			"reason", product.Error,
			"update_id", updateID,
		)
		_, sendErr := s.TelegramClient.SendMessage(ctx, chatID,
			"Не удалось получить карточку товара. Проверьте ссылку и попробуйте ещё раз.")
		return sendErr
	}

	_, err = s.TelegramClient.SendMessage(ctx, chatID, formatProductCard(product))
	return err
}

// formatProductCard собирает HTML-сообщение с карточкой товара
func formatProductCard(p *domain.ParsedProduct) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<b>%s</b>\n", p.Name))
	if p.Brand != "" {
		sb.WriteString(fmt.Sprintf("Бренд: %s\n", p.Brand))
	}
	if p.Supplier != "" {
		sb.WriteString(fmt.Sprintf("Продавец: %s\n", p.Supplier))
	}
	sb.WriteString(fmt.Sprintf("Артикул: %s\n", p.Articul))

	if p.Price > 0 {
		if p.Discount > 0 && p.BasicPrice > p.Price {
			sb.WriteString(fmt.Sprintf("Цена: <b>%.0f ₽</b> <s>%.0f ₽</s> (−%d%%)\n", p.Price, p.BasicPrice, p.Discount))
		} else {
			sb.WriteString(fmt.Sprintf("Цена: <b>%.0f ₽</b>\n", p.Price))
		}
	}

	if p.Rating > 0 {
		sb.WriteString(fmt.Sprintf("Рейтинг: %.1f ⭐ (%d отзывов)\n", p.Rating, p.Feedbacks))
	}

	if p.Description != "" {
		sb.WriteString("\n" + truncateDescription(p.Description, 500) + "\n")
	}

	sb.WriteString(fmt.Sprintf("\n<a href=\"%s\">Открыть на Wildberries</a>", p.URL))

	return sb.String()
}

func truncateDescription(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
