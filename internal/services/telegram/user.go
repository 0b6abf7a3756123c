package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

const registeredMsg = "Спасибо! Вы зарегистрированы ✅\n\nТеперь пришлите ссылку на товар Wildberries или откройте мини-приложение, чтобы оформить размещение."

// handleContact регистрирует пользователя по присланному контакту.
// Повторный контакт от уже зарегистрированного пользователя не ошибка.
func (s *Service) handleContact(ctx context.Context, chatID int64, from *domain.TelegramUser, contact *domain.Contact, updateID int64) error {
	if contact.UserID != 0 && contact.UserID != from.ID {
		s.Log.Warn("contact belongs to another user, ignoring",
			"tg_id", from.ID,
			"contact_user_id", contact.UserID,
			"update_id", updateID,
		)
		_, err := s.TelegramClient.SendMessage(ctx, chatID, "Пожалуйста, поделитесь своим собственным контактом.")
		return err
	}

	tgID := fmt.Sprintf("%d", from.ID)

	existing, err := s.UserRepo.GetByTgID(ctx, tgID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if existing == nil {
		user := &domain.User{
			ID:    uuid.New(),
			TgID:  tgID,
			Name:  displayName(from),
			Phone: normalizePhone(contact.PhoneNumber),
		}
		if err := s.UserRepo.Create(ctx, user); err != nil {
			s.Log.Error("failed to create user",
				"error", err,
				"tg_id", tgID,
				"update_id", updateID,
			)
			return fmt.Errorf("failed to create user: %w", err)
		}
		s.Log.Info("user registered", "tg_id", tgID, "user_id", user.ID)
	}

	_, err = s.TelegramClient.SendMessage(ctx, chatID, registeredMsg)
	return err
}

func displayName(from *domain.TelegramUser) string {
	name := from.FirstName
	if from.LastName != nil && *from.LastName != "" {
		name = name + " " + *from.LastName
	}
	return name
}

// normalizePhone приводит номер к виду +7XXXXXXXXXX
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return phone
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	return phone
}
