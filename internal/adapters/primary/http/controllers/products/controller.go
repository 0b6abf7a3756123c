package products

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/repository"
	scraperPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/scraper"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/service"
)

type Controller struct {
	Scraper     scraperPort.IScraper
	ProductRepo repository.IProductRepo
	Planner     service.IPublishPlanner
	Log         *slog.Logger
}

func New(scraper scraperPort.IScraper, productRepo repository.IProductRepo, planner service.IPublishPlanner, log *slog.Logger) *Controller {
	return &Controller{
		Scraper:     scraper,
		ProductRepo: productRepo,
		Planner:     planner,
		Log:         log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/products/parse", c.parseProduct)
		api.POST("/products", c.addProduct)
		api.GET("/users/:tg_id/products", c.listUserProducts)
	}
}

// ParseProductRequest запрос на парсинг карточки товара
type ParseProductRequest struct {
	URL string `json:"url" binding:"required"`
}

// parseProduct парсит карточку товара для предпросмотра в мини-приложении.
// Неуспех парсинга — это 200 с success=false, 5xx только при сбое сервиса
func (c *Controller) parseProduct(ctx *gin.Context) {
	var req ParseProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind parse product request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	product, err := c.Scraper.Parse(ctx.Request.Context(), req.URL)
	if err != nil {
		c.Log.Error("failed to parse product", "error", err, "url", req.URL)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse product"})
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// AddProductRequest запрос на постановку товара в выкладку напрямую,
// минуя пайплайн оплаты. Путь для поддержки: заказы, по которым деньги
// получены, а автоматическая передача не прошла
type AddProductRequest struct {
	UserID      string    `json:"user_id" binding:"required"`
	URL         string    `json:"url" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// addProduct создаёт товар и регистрирует job публикации
func (c *Controller) addProduct(ctx *gin.Context) {
	var req AddProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind add product request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	meta := &domain.OrderMeta{
		UserID:      req.UserID,
		URL:         req.URL,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Category:    req.Category,
		ScheduledAt: req.ScheduledAt,
	}
	if err := meta.Validate(); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	productID, err := c.Planner.ScheduleProduct(ctx.Request.Context(), meta)
	if err != nil {
		c.Log.Error("failed to schedule product", "error", err, "user_id", req.UserID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to schedule product"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"product_id": productID})
}

// listUserProducts возвращает товары пользователя вместе со статусами выкладки
func (c *Controller) listUserProducts(ctx *gin.Context) {
	tgID := ctx.Param("tg_id")
	if tgID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "tg_id is required"})
		return
	}

	list, err := c.ProductRepo.ListByUser(ctx.Request.Context(), tgID)
	if err != nil {
		c.Log.Error("failed to list user products", "error", err, "tg_id", tgID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": list})
}
