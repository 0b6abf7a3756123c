package orders

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/service"
)

type Controller struct {
	Checkout service.ICheckoutService
	Log      *slog.Logger
}

func New(checkout service.ICheckoutService, log *slog.Logger) *Controller {
	return &Controller{
		Checkout: checkout,
		Log:      log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/orders", c.createOrder)
}

// CreateOrderRequest запрос мини-приложения на выставление счёта.
// payload - логический ключ заказа, metadata - плоская map в формате провайдера
type CreateOrderRequest struct {
	ChatID            int64             `json:"chat_id" binding:"required"`
	Payload           string            `json:"payload"`
	Amount            float64           `json:"amount" binding:"required"`
	Metadata          map[string]string `json:"metadata" binding:"required"`
	YookassaPaymentID string            `json:"yookassa_payment_id,omitempty"`
}

// CreateOrderResponse ответ с payload выставленного счёта
type CreateOrderResponse struct {
	Success bool   `json:"success"`
	Payload string `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (c *Controller) createOrder(ctx *gin.Context) {
	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind create order request", "error", err)
		ctx.JSON(http.StatusBadRequest, CreateOrderResponse{
			Success: false,
			Error:   "invalid request",
		})
		return
	}

	meta := domain.OrderMetaFromFlatMap(req.Metadata)

	in := service.CreateOrderInput{
		ChatID:            req.ChatID,
		RawKey:            req.Payload,
		Amount:            req.Amount,
		Meta:              *meta,
		ProviderPaymentID: req.YookassaPaymentID,
	}

	payload, err := c.Checkout.CreateInvoice(ctx.Request.Context(), in)
	if err != nil {
		if domain.IsBusinessError(err) {
			ctx.JSON(http.StatusUnprocessableEntity, CreateOrderResponse{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		c.Log.Error("failed to create invoice",
			"error", err,
			"chat_id", req.ChatID,
		)
		ctx.JSON(http.StatusInternalServerError, CreateOrderResponse{
			Success: false,
			Error:   "failed to create invoice",
		})
		return
	}

	ctx.JSON(http.StatusOK, CreateOrderResponse{
		Success: true,
		Payload: payload,
	})
}
