package domain

import (
	"time"

	"github.com/google/uuid"
)

// User зарегистрированный пользователь бота (продавец)
type User struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	TgID      string     `json:"tg_id" db:"tg_id"`
	Name      string     `json:"name" db:"name"`
	Phone     string     `json:"phone" db:"phone"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	LastSeen  *time.Time `json:"last_seen,omitempty" db:"last_seen"`
}
