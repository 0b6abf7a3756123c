package repository

import (
	"context"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	"github.com/google/uuid"
)

// IProductRepo интерфейс для работы с товарами в БД
type IProductRepo interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListByUser(ctx context.Context, tgID string) ([]domain.Product, error)
	ListPending(ctx context.Context) ([]domain.Product, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProductStatus) error
}
