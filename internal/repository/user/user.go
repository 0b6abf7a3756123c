package userRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ports "github.com/Hikinamuri/wb-sellers-backend/internal/ports/repository"

	"log/slog"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/persistence"
)

type userColumns struct {
	TableName string
	ID        string
	TgID      string
	Name      string
	Phone     string
	CreatedAt string
	UpdatedAt string
	LastSeen  string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns userColumns
}

// New создаёт новый репозиторий для работы с пользователями
func New(db persistence.Persistence, log *slog.Logger) ports.IUserRepo {
	cols := userColumns{
		TableName: "users",
		ID:        "id",
		TgID:      "tg_id",
		Name:      "name",
		Phone:     "phone",
		CreatedAt: "created_at",
		UpdatedAt: "updated_at",
		LastSeen:  "last_seen",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.TgID,
		r.columns.Name,
		r.columns.Phone,
		r.columns.CreatedAt,
		r.columns.UpdatedAt,
		r.columns.LastSeen)
}

// Create создаёт нового пользователя
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		user.ID,
		user.TgID,
		user.Name,
		user.Phone,
		user.CreatedAt,
		user.UpdatedAt,
		user.LastSeen)
	if err != nil {
		r.Log.Error("failed to create user",
			"error", err,
			"tg_id", user.TgID,
			"user_id", user.ID)
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.Log.Debug("user created successfully",
		"id", user.ID,
		"tg_id", user.TgID)
	return nil
}

// GetByTgID получает пользователя по Telegram ID
func (r *Repository) GetByTgID(ctx context.Context, tgID string) (*domain.User, error) {
	var user domain.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.TgID)
	err := r.db.Get(ctx, &user, query, tgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("user not found", "tg_id", tgID)
			return nil, fmt.Errorf("user %s: %w", tgID, domain.ErrNotFound)
		}
		r.Log.Error("failed to get user by tg id",
			"error", err,
			"tg_id", tgID)
		return nil, fmt.Errorf("failed to get user by tg id: %w", err)
	}
	return &user, nil
}

// Exists проверяет, зарегистрирован ли пользователь
func (r *Repository) Exists(ctx context.Context, tgID string) (bool, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		r.columns.TableName,
		r.columns.TgID)
	err := r.db.Get(ctx, &count, query, tgID)
	if err != nil {
		r.Log.Error("failed to check user existence",
			"error", err,
			"tg_id", tgID)
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

// TouchLastSeen обновляет время последней активности пользователя
func (r *Repository) TouchLastSeen(ctx context.Context, tgID string) error {
	now := time.Now()
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		r.columns.TableName,
		r.columns.LastSeen,
		r.columns.UpdatedAt,
		r.columns.TgID)
	rowsAffected, err := r.db.ExecWithResult(ctx, query, now, now, tgID)
	if err != nil {
		r.Log.Error("failed to update last seen",
			"error", err,
			"tg_id", tgID)
		return fmt.Errorf("failed to update last seen: %w", err)
	}
	if rowsAffected == 0 {
		r.Log.Warn("user not found for last seen update", "tg_id", tgID)
		return fmt.Errorf("user %s: %w", tgID, domain.ErrNotFound)
	}
	return nil
}
