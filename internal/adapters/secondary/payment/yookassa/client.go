package yookassa

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	paymentPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/payment"
)

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client клиент API ЮKassa.
// Реализует интерфейс payment.IVerifier: сбои сигнализируются отсутствием
// записи, а не ошибкой, поэтому вызывающий поток решает сам, что делать
// с недоступным провайдером
type Client struct {
	cfg        *Config
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient создаёт клиент API ЮKassa
func NewClient(cfg *Config, log *slog.Logger) paymentPort.IVerifier {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *Client) buildURL(parts ...string) string {
	baseURL := strings.TrimSuffix(c.cfg.BaseURL, "/")
	return baseURL + "/" + strings.Join(parts, "/")
}

// Fetch запрашивает платёж у провайдера.
// Любой сбой (сеть, креды, не-200, битый JSON) возвращается как ok=false
func (c *Client) Fetch(ctx context.Context, paymentID string) (*domain.RemotePayment, bool) {
	url := c.buildURL("payments", paymentID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Error("yookassa: failed to create request", "error", err, "payment_id", paymentID)
		return nil, false
	}
	httpReq.SetBasicAuth(c.cfg.ShopID, c.cfg.SecretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug("yookassa: request failed", "error", err, "payment_id", paymentID)
		return nil, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("yookassa: failed to read response body",
			"error", err,
			"payment_id", paymentID,
			"status_code", resp.StatusCode,
		)
		return nil, false
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("yookassa: non-200 status",
			"payment_id", paymentID,
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(body), 200),
		)
		return nil, false
	}

	var payment paymentResponse
	if err := json.Unmarshal(body, &payment); err != nil {
		c.log.Error("yookassa: failed to unmarshal payment",
			"error", err,
			"payment_id", paymentID,
			"body_preview", truncateString(string(body), 200),
		)
		return nil, false
	}

	return &domain.RemotePayment{
		ID:        payment.ID,
		Status:    domain.RemotePaymentStatus(payment.Status),
		CreatedAt: payment.CreatedAt,
		Metadata:  payment.Metadata,
	}, true
}

// Cancel отменяет платёж best-effort и возвращает статус-код и тело ответа.
// Документация: https://yookassa.ru/developers/api#cancel_payment
func (c *Client) Cancel(ctx context.Context, paymentID string) (int, string) {
	url := c.buildURL("payments", paymentID, "cancel")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString("{}"))
	if err != nil {
		c.log.Error("yookassa: failed to create cancel request", "error", err, "payment_id", paymentID)
		return 0, err.Error()
	}
	httpReq.SetBasicAuth(c.cfg.ShopID, c.cfg.SecretKey)
	httpReq.Header.Set("Content-Type", "application/json")
	// Провайдер требует Idempotence-Key на все POST-запросы
	httpReq.Header.Set("Idempotence-Key", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug("yookassa: cancel request failed", "error", err, "payment_id", paymentID)
		return 0, err.Error()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("yookassa: failed to read cancel response body",
			"error", err,
			"payment_id", paymentID,
			"status_code", resp.StatusCode,
		)
		return resp.StatusCode, ""
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Description != "" {
			c.log.Debug("yookassa: cancel rejected",
				"payment_id", paymentID,
				"status_code", resp.StatusCode,
				"code", apiErr.Code,
				"description", apiErr.Description,
			)
			return resp.StatusCode, apiErr.Description
		}
	}

	return resp.StatusCode, truncateString(string(body), 500)
}
