package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

const (
	supportButtonText = "🆘 Поддержка"

	notRegisteredMsg = "Чтобы пользоваться ботом, поделитесь номером телефона через кнопку «Поделиться контактом» в меню."
	unknownTextMsg   = "Пришлите ссылку на товар Wildberries или откройте мини-приложение, чтобы оформить размещение."
)

// HandleUpdate основной метод для обработки всех типов обновлений
func (s *Service) HandleUpdate(ctx context.Context, update *domain.Update) error {
	if update == nil {
		return fmt.Errorf("update is nil")
	}

	if update.PreCheckoutQuery != nil {
		return s.Checkout.HandlePreCheckout(ctx, update.PreCheckoutQuery)
	}

	if update.Message != nil {
		return s.HandleMessage(ctx, update.Message, update.UpdateID)
	}

	return nil
}

// HandleMessage обрабатывает входящее сообщение - роутинг в usecase
func (s *Service) HandleMessage(ctx context.Context, message *domain.Message, updateID int64) error {
	if message == nil {
		return fmt.Errorf("message is nil")
	}

	if message.From == nil || message.From.IsBot {
		s.Log.Debug("ignoring message from bot", "update_id", updateID)
		return nil
	}

	if message.Chat != nil && message.Chat.Type != "private" {
		s.Log.Warn("ignoring message from group/chat",
			"update_id", updateID,
			"chat_type", message.Chat.Type,
			"chat_id", message.Chat.ID,
		)
		return nil
	}

	chatID := message.Chat.ID

	if message.SuccessfulPayment != nil {
		return s.Checkout.HandleSuccessfulPayment(ctx, chatID, message.SuccessfulPayment)
	}

	if message.Contact != nil {
		return s.handleContact(ctx, chatID, message.From, message.Contact, updateID)
	}

	if message.WebAppData != nil {
		return s.handleWebAppData(ctx, chatID, message.From, message.WebAppData, updateID)
	}

	if message.Text != nil {
		return s.routeTextMessage(ctx, chatID, message.From, *message.Text, updateID)
	}

	return nil
}

// routeTextMessage роутит команду/текст
func (s *Service) routeTextMessage(ctx context.Context, chatID int64, from *domain.TelegramUser, text string, updateID int64) error {
	trimmed := strings.TrimSpace(text)

	switch {
	case IsCommand(trimmed):
		command := ParseCommand(trimmed)
		return s.handleCommand(ctx, chatID, from, command, updateID)
	case trimmed == supportButtonText:
		return s.sendSupport(ctx, chatID)
	case looksLikeProductLink(trimmed):
		return s.handleProductLink(ctx, chatID, trimmed, updateID)
	default:
		_, err := s.TelegramClient.SendMessage(ctx, chatID, unknownTextMsg)
		return err
	}
}

func (s *Service) handleCommand(ctx context.Context, chatID int64, from *domain.TelegramUser, command string, updateID int64) error {
	switch command {
	case "start":
		return s.handleStart(ctx, chatID, from, updateID)
	case "help", "support":
		return s.sendSupport(ctx, chatID)
	default:
		s.Log.Debug("unknown command", "command", command, "update_id", updateID)
		_, err := s.TelegramClient.SendMessage(ctx, chatID, unknownTextMsg)
		return err
	}
}

// handleStart приветствие зависит от того, зарегистрирован ли пользователь
func (s *Service) handleStart(ctx context.Context, chatID int64, from *domain.TelegramUser, updateID int64) error {
	tgID := fmt.Sprintf("%d", from.ID)

	registered, err := s.UserRepo.Exists(ctx, tgID)
	if err != nil {
		s.Log.Error("failed to check user registration",
			"error", err,
			"tg_id", tgID,
			"update_id", updateID,
		)
		return fmt.Errorf("failed to check user registration: %w", err)
	}

	if !registered {
		_, err = s.TelegramClient.SendMessage(ctx, chatID,
			fmt.Sprintf("Привет, %s! 👋\n\n%s", from.FirstName, notRegisteredMsg))
		return err
	}

	if err := s.UserRepo.TouchLastSeen(ctx, tgID); err != nil {
		s.Log.Warn("failed to touch last_seen", "error", err, "tg_id", tgID)
	}

	greeting := fmt.Sprintf(
		"С возвращением, %s! 👋\n\nПришлите ссылку на товар Wildberries, чтобы посмотреть карточку, или откройте мини-приложение для оформления размещения.",
		from.FirstName,
	)
	_, err = s.TelegramClient.SendMessage(ctx, chatID, greeting)
	return err
}

func (s *Service) sendSupport(ctx context.Context, chatID int64) error {
	text := fmt.Sprintf("По любым вопросам пишите: %s", s.cfg.SupportContact)
	_, err := s.TelegramClient.SendMessage(ctx, chatID, text)
	return err
}

// IsCommand проверяет, что текст начинается с /
func IsCommand(text string) bool {
	return strings.HasPrefix(text, "/")
}

// ParseCommand выделяет имя команды без / и аргументов.
// "/start@my_bot foo" -> "start"
func ParseCommand(text string) string {
	command := strings.TrimPrefix(strings.Fields(text)[0], "/")
	if at := strings.Index(command, "@"); at != -1 {
		command = command[:at]
	}
	return strings.ToLower(command)
}

func looksLikeProductLink(text string) bool {
	return strings.Contains(text, "wildberries.ru") || strings.Contains(text, "wb.ru")
}
