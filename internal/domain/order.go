package domain

import (
	"fmt"
	"strconv"
	"time"
)

// OrderMeta метаданные заказа на размещение товара.
// Создаются при выставлении invoice, хранятся по payload и никогда не
// мутируются — только перезаписываются целиком или удаляются.
type OrderMeta struct {
	UserID            string    `json:"user_id"`        // tg_id пользователя
	URL               string    `json:"url"`            // ссылка на карточку товара
	Name              string    `json:"name"`           // название товара
	Description       string    `json:"description"`    // краткое описание
	ImageURL          string    `json:"image_url"`      // картинка для поста
	Price             float64   `json:"price"`          // цена в рублях
	ScheduledAt       time.Time `json:"scheduled_at"`   // время публикации в канале
	Category          string    `json:"category"`       // категория канала
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"` // id платежа в ЮKassa (если известен)
}

// Validate проверяет обязательные поля перед передачей заказа в выкладку.
// Неполные метаданные после оплаты — это эскалация в поддержку, поэтому
// ошибка перечисляет все отсутствующие поля сразу.
func (m *OrderMeta) Validate() error {
	var missing []string
	if m.UserID == "" {
		missing = append(missing, "user_id")
	}
	if m.URL == "" {
		missing = append(missing, "url")
	}
	if m.Name == "" {
		missing = append(missing, "name")
	}
	if m.ScheduledAt.IsZero() {
		missing = append(missing, "scheduled_at")
	}
	if len(missing) > 0 {
		return fmt.Errorf("order metadata is missing required fields: %v", missing)
	}
	return nil
}

// ToFlatMap сериализует метаданные в плоскую строковую map —
// формат metadata, который принимает платёжный провайдер.
func (m *OrderMeta) ToFlatMap() map[string]string {
	out := map[string]string{
		"user_id":     m.UserID,
		"url":         m.URL,
		"name":        m.Name,
		"description": m.Description,
		"image_url":   m.ImageURL,
		"price":       strconv.FormatFloat(m.Price, 'f', -1, 64),
		"category":    m.Category,
	}
	if !m.ScheduledAt.IsZero() {
		out["scheduled_date"] = m.ScheduledAt.Format(time.RFC3339)
	}
	return out
}

// OrderMetaFromFlatMap восстанавливает метаданные из плоской map провайдера.
// Непарсящиеся price/scheduled_date не считаются фатальными здесь —
// обязательность полей проверяет Validate на границе пайплайна.
func OrderMetaFromFlatMap(raw map[string]string) *OrderMeta {
	meta := &OrderMeta{
		UserID:      raw["user_id"],
		URL:         raw["url"],
		Name:        raw["name"],
		Description: raw["description"],
		ImageURL:    raw["image_url"],
		Category:    raw["category"],
	}
	if meta.UserID == "" {
		meta.UserID = raw["tg_id"]
	}
	if v := raw["price"]; v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			meta.Price = price
		}
	}
	if v := raw["scheduled_date"]; v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			meta.ScheduledAt = ts
		}
	}
	return meta
}
