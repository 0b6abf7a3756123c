package productRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ports "github.com/Hikinamuri/wb-sellers-backend/internal/ports/repository"

	"log/slog"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/persistence"
	"github.com/google/uuid"
)

type productColumns struct {
	TableName   string
	ID          string
	UserID      string
	URL         string
	Name        string
	Description string
	ImageURL    string
	Price       string
	Category    string
	Status      string
	ScheduledAt string
	PostedAt    string
	CreatedAt   string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns productColumns
}

// New создаёт новый репозиторий для работы с товарами
func New(db persistence.Persistence, log *slog.Logger) ports.IProductRepo {
	cols := productColumns{
		TableName:   "products",
		ID:          "id",
		UserID:      "user_id",
		URL:         "url",
		Name:        "name",
		Description: "description",
		ImageURL:    "image_url",
		Price:       "price",
		Category:    "category",
		Status:      "status",
		ScheduledAt: "scheduled_at",
		PostedAt:    "posted_at",
		CreatedAt:   "created_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.URL,
		r.columns.Name,
		r.columns.Description,
		r.columns.ImageURL,
		r.columns.Price,
		r.columns.Category,
		r.columns.Status,
		r.columns.ScheduledAt,
		r.columns.PostedAt,
		r.columns.CreatedAt)
}

// Create создаёт запись товара
func (r *Repository) Create(ctx context.Context, product *domain.Product) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		product.ID,
		product.UserID,
		product.URL,
		product.Name,
		product.Description,
		product.ImageURL,
		product.Price,
		product.Category,
		product.Status,
		product.ScheduledAt,
		product.PostedAt,
		product.CreatedAt)
	if err != nil {
		r.Log.Error("failed to create product",
			"error", err,
			"product_id", product.ID,
			"user_id", product.UserID)
		return fmt.Errorf("failed to create product: %w", err)
	}
	r.Log.Debug("product created successfully",
		"product_id", product.ID,
		"user_id", product.UserID,
		"scheduled_at", product.ScheduledAt)
	return nil
}

// GetByID получает товар по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("product not found", "product_id", id)
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		r.Log.Error("failed to get product by id",
			"error", err,
			"product_id", id)
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}
	return &product, nil
}

// ListByUser получает товары пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, tgID string) ([]domain.Product, error) {
	var products []domain.Product
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.CreatedAt)
	err := r.db.Select(ctx, &products, query, tgID)
	if err != nil {
		r.Log.Error("failed to list products by user",
			"error", err,
			"user_id", tgID)
		return nil, fmt.Errorf("failed to list products by user: %w", err)
	}
	return products, nil
}

// ListPending получает товары, ожидающие публикации.
// Используется на старте для восстановления расписания
func (r *Repository) ListPending(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.Status,
		r.columns.ScheduledAt)
	err := r.db.Select(ctx, &products, query, domain.ProductStatusPending)
	if err != nil {
		r.Log.Error("failed to list pending products", "error", err)
		return nil, fmt.Errorf("failed to list pending products: %w", err)
	}
	return products, nil
}

// UpdateStatus переводит товар в новый статус.
// При переходе в posted проставляется posted_at
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProductStatus) error {
	var query string
	if status == domain.ProductStatusPosted {
		query = fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
			r.columns.TableName,
			r.columns.Status,
			r.columns.PostedAt,
			r.columns.ID)
	} else {
		query = fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
			r.columns.TableName,
			r.columns.Status,
			r.columns.ID)
	}

	rowsAffected, err := r.db.ExecWithResult(ctx, query, status, id)
	if err != nil {
		r.Log.Error("failed to update product status",
			"error", err,
			"product_id", id,
			"status", status)
		return fmt.Errorf("failed to update product status: %w", err)
	}
	if rowsAffected == 0 {
		r.Log.Warn("product not found for status update", "product_id", id)
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	r.Log.Debug("product status updated",
		"product_id", id,
		"status", status)
	return nil
}
