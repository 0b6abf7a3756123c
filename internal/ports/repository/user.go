package repository

import (
	"context"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

// IUserRepo интерфейс для работы с пользователями в БД
type IUserRepo interface {
	Create(ctx context.Context, user *domain.User) error
	GetByTgID(ctx context.Context, tgID string) (*domain.User, error)
	Exists(ctx context.Context, tgID string) (bool, error)
	TouchLastSeen(ctx context.Context, tgID string) error
}
