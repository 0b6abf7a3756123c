package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus статус товара в очереди на выкладку
type ProductStatus string

const (
	ProductStatusPending ProductStatus = "pending" // ожидает выкладки
	ProductStatusPosted  ProductStatus = "posted"  // опубликован в канале
	ProductStatusFailed  ProductStatus = "failed"  // публикация не удалась
)

// Product оплаченный товар, запланированный к публикации в канале
type Product struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	UserID      string        `json:"user_id" db:"user_id"` // tg_id владельца
	URL         string        `json:"url" db:"url"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	ImageURL    string        `json:"image_url" db:"image_url"`
	Price       float64       `json:"price" db:"price"`
	Category    string        `json:"category" db:"category"`
	Status      ProductStatus `json:"status" db:"status"`
	ScheduledAt time.Time     `json:"scheduled_at" db:"scheduled_at"`
	PostedAt    *time.Time    `json:"posted_at,omitempty" db:"posted_at"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// ParsedProduct результат парсинга карточки товара с маркетплейса.
// Success=false означает, что карточку получить не удалось — подробности в Error.
type ParsedProduct struct {
	Success         bool              `json:"success"`
	Error           string            `json:"error,omitempty"`
	Articul         string            `json:"articul,omitempty"`
	URL             string            `json:"url,omitempty"`
	Name            string            `json:"name,omitempty"`
	Brand           string            `json:"brand,omitempty"`
	Supplier        string            `json:"supplier,omitempty"`
	Description     string            `json:"description,omitempty"`
	Price           float64           `json:"price,omitempty"`
	BasicPrice      float64           `json:"basic_price,omitempty"`
	Discount        int               `json:"discount,omitempty"`
	Rating          float64           `json:"rating,omitempty"`
	Feedbacks       int               `json:"feedbacks,omitempty"`
	ImageURL        string            `json:"image_url,omitempty"`
	Characteristics map[string]string `json:"characteristics,omitempty"`
}
