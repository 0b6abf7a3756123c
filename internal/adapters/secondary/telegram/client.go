package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"log/slog"
)

const (
	telegramAPIBaseURL = "https://api.telegram.org/bot"
	apiTimeout         = 30 * time.Second
)

// APIResponse базовая структура ответа от Telegram API
type APIResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// Client клиент для работы с Telegram Bot API.
// Реализует интерфейс telegram.IClient
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *slog.Logger
}

// NewClient создаёт новый клиент для Telegram Bot API
func NewClient(token string, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: apiTimeout,
		},
		baseURL: telegramAPIBaseURL + token,
		log:     log,
	}
}

// callAPI выполняет POST-запрос к методу Bot API и декодирует result в out (если задан)
func (c *Client) callAPI(ctx context.Context, method string, reqBody any, out any) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("telegram marshal failed [%s]: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("telegram create request failed [%s]: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("telegram request failed [%s]: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram read body failed [%s, status=%d]: %w", method, resp.StatusCode, err)
	}

	var envelope struct {
		APIResponse
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.log.Error("failed to unmarshal telegram response",
			"method", method,
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(body), 200),
		)
		return fmt.Errorf("telegram unmarshal failed [%s, status=%d]: %w", method, resp.StatusCode, err)
	}

	if !envelope.OK {
		c.log.Debug("telegram API error",
			"method", method,
			"error_code", envelope.ErrorCode,
			"description", envelope.Description,
		)
		return fmt.Errorf("telegram API error [%s, code=%d]: %s", method, envelope.ErrorCode, envelope.Description)
	}

	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("telegram unmarshal result failed [%s]: %w", method, err)
		}
	}
	return nil
}

// messageResult общий result методов, возвращающих Message
type messageResult struct {
	MessageID int64 `json:"message_id"`
	Chat      struct {
		ID int64 `json:"id"`
	} `json:"chat"`
	Date int64 `json:"date"`
}

// SendMessage отправляет текстовое сообщение и возвращает message_id
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (int64, error) {
	req := struct {
		ChatID    int64  `json:"chat_id"`
		Text      string `json:"text"`
		ParseMode string `json:"parse_mode,omitempty"`
	}{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	var result messageResult
	if err := c.callAPI(ctx, "sendMessage", req, &result); err != nil {
		c.log.Error("failed to send message", "error", err, "chat_id", chatID)
		return 0, err
	}

	c.log.Debug("message sent successfully",
		"chat_id", chatID,
		"message_id", result.MessageID,
	)
	return result.MessageID, nil
}

// DeleteMessage удаляет сообщение из чата.
// Телеграм отвечает ошибкой, если сообщение уже удалено или старше 48 часов
func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int64) error {
	req := struct {
		ChatID    int64 `json:"chat_id"`
		MessageID int64 `json:"message_id"`
	}{
		ChatID:    chatID,
		MessageID: messageID,
	}

	if err := c.callAPI(ctx, "deleteMessage", req, nil); err != nil {
		c.log.Debug("failed to delete message",
			"error", err,
			"chat_id", chatID,
			"message_id", messageID,
		)
		return err
	}
	return nil
}

// SendChannelMessage публикует текст в канал, channel в формате "@name"
func (c *Client) SendChannelMessage(ctx context.Context, channel string, text string) (int64, error) {
	req := struct {
		ChatID    string `json:"chat_id"`
		Text      string `json:"text"`
		ParseMode string `json:"parse_mode,omitempty"`
	}{
		ChatID:    channel,
		Text:      text,
		ParseMode: "HTML",
	}

	var result messageResult
	if err := c.callAPI(ctx, "sendMessage", req, &result); err != nil {
		c.log.Error("failed to send channel message", "error", err, "channel", channel)
		return 0, err
	}
	return result.MessageID, nil
}

// SendChannelPhoto публикует фото по URL с подписью в канал
func (c *Client) SendChannelPhoto(ctx context.Context, channel string, photoURL string, caption string) (int64, error) {
	req := struct {
		ChatID    string `json:"chat_id"`
		Photo     string `json:"photo"`
		Caption   string `json:"caption,omitempty"`
		ParseMode string `json:"parse_mode,omitempty"`
	}{
		ChatID:    channel,
		Photo:     photoURL,
		Caption:   caption,
		ParseMode: "HTML",
	}

	var result messageResult
	if err := c.callAPI(ctx, "sendPhoto", req, &result); err != nil {
		c.log.Error("failed to send channel photo",
			"error", err,
			"channel", channel,
			"photo_url", photoURL,
		)
		return 0, err
	}
	return result.MessageID, nil
}

// GetMe получает информацию о боте (используется как проверка токена на старте)
func (c *Client) GetMe(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/getMe", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("getMe failed",
			"status_code", resp.StatusCode,
			"body", string(body),
		)
		return fmt.Errorf("getMe failed with status %d", resp.StatusCode)
	}

	c.log.Info("bot info retrieved successfully")
	return nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
