package healthcheckController

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Pinger проверка живости зависимого хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckController struct {
	db    *sqlx.DB
	redis Pinger
	log   *slog.Logger
}

func New(db *sqlx.DB, redis Pinger, log *slog.Logger) *HealthCheckController {
	return &HealthCheckController{
		db:    db,
		redis: redis,
		log:   log,
	}
}

func (c *HealthCheckController) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"status":  "ok",
		"service": "wb-sellers-backend",
	})
}

// ready проверка готовности (проверяет подключение к БД и Redis)
func (c *HealthCheckController) ready(ctx *gin.Context) {
	if err := c.db.Ping(); err != nil {
		c.log.Error("Database not ready", "error", err)
		ctx.JSON(503, gin.H{
			"status": "not ready",
			"error":  "database unavailable",
		})
		return
	}

	if c.redis != nil {
		if err := c.redis.Ping(ctx.Request.Context()); err != nil {
			c.log.Error("Redis not ready", "error", err)
			ctx.JSON(503, gin.H{
				"status": "not ready",
				"error":  "redis unavailable",
			})
			return
		}
	}

	ctx.JSON(200, gin.H{
		"status": "ready",
	})
}
