package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/repository"
)

type Controller struct {
	UserRepo repository.IUserRepo
	Log      *slog.Logger
}

func New(userRepo repository.IUserRepo, log *slog.Logger) *Controller {
	return &Controller{
		UserRepo: userRepo,
		Log:      log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/users/register", c.register)
		api.GET("/users/:tg_id", c.getUser)
	}
}

// RegisterUserRequest регистрация продавца из мини-приложения
type RegisterUserRequest struct {
	TgID  string `json:"tg_id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// register создаёт пользователя, повторная регистрация не ошибка
func (c *Controller) register(ctx *gin.Context) {
	var req RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind register request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	existing, err := c.UserRepo.GetByTgID(ctx.Request.Context(), req.TgID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.Log.Error("failed to look up user", "error", err, "tg_id", req.TgID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		return
	}

	if existing != nil {
		ctx.JSON(http.StatusOK, gin.H{"user": existing, "created": false})
		return
	}

	user := &domain.User{
		ID:    uuid.New(),
		TgID:  req.TgID,
		Name:  req.Name,
		Phone: req.Phone,
	}
	if err := c.UserRepo.Create(ctx.Request.Context(), user); err != nil {
		c.Log.Error("failed to create user", "error", err, "tg_id", req.TgID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		return
	}

	c.Log.Info("user registered via api", "tg_id", req.TgID, "user_id", user.ID)
	ctx.JSON(http.StatusCreated, gin.H{"user": user, "created": true})
}

func (c *Controller) getUser(ctx *gin.Context) {
	tgID := ctx.Param("tg_id")

	user, err := c.UserRepo.GetByTgID(ctx.Request.Context(), tgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.Log.Error("failed to get user", "error", err, "tg_id", tgID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}
