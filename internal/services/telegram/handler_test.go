package telegram

import (
	"context"
	"io"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	svc      *Service
	checkout *fakeCheckout
	users    *fakeUserRepo
	scraper  *fakeScraper
	tg       *fakeClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	checkout := &fakeCheckout{}
	users := newFakeUserRepo()
	scraper := &fakeScraper{}
	tg := &fakeClient{}

	svc := New(checkout, users, scraper, tg, Config{SupportContact: "@support"}, testLogger())
	return &testEnv{svc: svc, checkout: checkout, users: users, scraper: scraper, tg: tg}
}

func strPtr(s string) *string { return &s }

func privateMessage(userID int64, text string) *domain.Message {
	return &domain.Message{
		MessageID: 1,
		From:      &domain.TelegramUser{ID: userID, FirstName: "Анна"},
		Chat:      &domain.Chat{ID: userID, Type: "private"},
		Text:      strPtr(text),
	}
}

func TestHandleUpdate_RoutesPreCheckout(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.HandleUpdate(context.Background(), &domain.Update{
		UpdateID:         1,
		PreCheckoutQuery: &domain.PreCheckoutQuery{ID: "q1", InvoicePayload: "p1"},
	})
	require.NoError(t, err)
	require.Len(t, env.checkout.preCheckouts, 1)
	assert.Equal(t, "p1", env.checkout.preCheckouts[0].InvoicePayload)
}

func TestHandleMessage_IgnoresBots(t *testing.T) {
	env := newTestEnv(t)

	msg := privateMessage(7, "/start")
	msg.From.IsBot = true

	require.NoError(t, env.svc.HandleMessage(context.Background(), msg, 1))
	assert.Empty(t, env.tg.messages)
}

func TestHandleMessage_IgnoresGroupChats(t *testing.T) {
	env := newTestEnv(t)

	msg := privateMessage(7, "/start")
	msg.Chat.Type = "supergroup"

	require.NoError(t, env.svc.HandleMessage(context.Background(), msg, 1))
	assert.Empty(t, env.tg.messages)
}

func TestHandleMessage_RoutesSuccessfulPayment(t *testing.T) {
	env := newTestEnv(t)

	msg := &domain.Message{
		From: &domain.TelegramUser{ID: 7, FirstName: "Анна"},
		Chat: &domain.Chat{ID: 7, Type: "private"},
		SuccessfulPayment: &domain.SuccessfulPayment{
			InvoicePayload: "p1",
			TotalAmount:    250000,
		},
	}

	require.NoError(t, env.svc.HandleMessage(context.Background(), msg, 1))
	require.Len(t, env.checkout.payments, 1)
	assert.Equal(t, "p1", env.checkout.payments[0].InvoicePayload)
}

func TestHandleMessage_ContactRegistersUser(t *testing.T) {
	env := newTestEnv(t)

	msg := &domain.Message{
		From:    &domain.TelegramUser{ID: 7, FirstName: "Анна"},
		Chat:    &domain.Chat{ID: 7, Type: "private"},
		Contact: &domain.Contact{PhoneNumber: "79990001122", UserID: 7},
	}

	require.NoError(t, env.svc.HandleMessage(context.Background(), msg, 1))

	user, err := env.users.GetByTgID(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "+79990001122", user.Phone)
	assert.Contains(t, env.tg.lastMessage(), "зарегистрированы")
}

func TestHandleMessage_ForeignContactRejected(t *testing.T) {
	env := newTestEnv(t)

	msg := &domain.Message{
		From:    &domain.TelegramUser{ID: 7, FirstName: "Анна"},
		Chat:    &domain.Chat{ID: 7, Type: "private"},
		Contact: &domain.Contact{PhoneNumber: "79990001122", UserID: 8},
	}

	require.NoError(t, env.svc.HandleMessage(context.Background(), msg, 1))

	_, err := env.users.GetByTgID(context.Background(), "7")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStart_UnregisteredAsksForContact(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.svc.HandleMessage(context.Background(), privateMessage(7, "/start"), 1))
	assert.Contains(t, env.tg.lastMessage(), "Поделиться контактом")
}

func TestStart_RegisteredGetsGreeting(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.users.Create(context.Background(), &domain.User{TgID: "7", Name: "Анна"}))

	require.NoError(t, env.svc.HandleMessage(context.Background(), privateMessage(7, "/start"), 1))
	assert.Contains(t, env.tg.lastMessage(), "С возвращением")
}

func TestProductLink_RepliesWithCard(t *testing.T) {
	env := newTestEnv(t)
	env.scraper.product = &domain.ParsedProduct{
		Success: true,
		Articul: "149751046",
		Name:    "Кроссовки",
		Price:   2500,
		URL:     "https://www.wildberries.ru/catalog/149751046/detail.aspx",
	}

	msg := privateMessage(7, "https://www.wildberries.ru/catalog/149751046/detail.aspx")
	require.NoError(t, env.svc.HandleMessage(context.Background(), msg, 1))

	assert.Equal(t, 1, env.scraper.calls)
	assert.Contains(t, env.tg.lastMessage(), "Кроссовки")
	assert.Contains(t, env.tg.lastMessage(), "149751046")
}

func TestProductLink_ParseFailure(t *testing.T) {
	env := newTestEnv(t)

	msg := privateMessage(7, "https://www.wildberries.ru/catalog/bad/link")
	require.NoError(t, env.svc.HandleMessage(context.Background(), msg, 1))
	assert.Contains(t, env.tg.lastMessage(), "Не удалось получить карточку")
}

func TestWebAppData_CreateOrder(t *testing.T) {
	env := newTestEnv(t)

	msg := &domain.Message{
		From: &domain.TelegramUser{ID: 7, FirstName: "Анна"},
		Chat: &domain.Chat{ID: 7, Type: "private"},
		WebAppData: &domain.WebAppData{
			Data: `{
				"action": "create_order",
				"payload": "order_42",
				"amount": 499,
				"yookassa_payment_id": "pay-1",
				"metadata": {
					"user_id": "7",
					"url": "https://www.wildberries.ru/catalog/149751046/detail.aspx",
					"name": "Кроссовки",
					"price": "2500",
					"scheduled_date": "2026-09-10T12:00:00Z"
				}
			}`,
		},
	}

	require.NoError(t, env.svc.HandleMessage(context.Background(), msg, 1))

	require.Len(t, env.checkout.createInputs, 1)
	in := env.checkout.createInputs[0]
	assert.Equal(t, int64(7), in.ChatID)
	assert.Equal(t, "order_42", in.RawKey)
	assert.Equal(t, 499.0, in.Amount)
	assert.Equal(t, "pay-1", in.ProviderPaymentID)
	assert.Equal(t, "Кроссовки", in.Meta.Name)
	assert.Equal(t, 2500.0, in.Meta.Price)
}

func TestWebAppData_MalformedJSON(t *testing.T) {
	env := newTestEnv(t)

	msg := &domain.Message{
		From:       &domain.TelegramUser{ID: 7, FirstName: "Анна"},
		Chat:       &domain.Chat{ID: 7, Type: "private"},
		WebAppData: &domain.WebAppData{Data: "{not json"},
	}

	require.NoError(t, env.svc.HandleMessage(context.Background(), msg, 1))
	assert.Empty(t, env.checkout.createInputs)
	assert.Contains(t, env.tg.lastMessage(), "Не удалось обработать")
}

func TestParseCommand(t *testing.T) {
	assert.Equal(t, "start", ParseCommand("/start"))
	assert.Equal(t, "start", ParseCommand("/start@my_bot с аргументом"))
	assert.Equal(t, "help", ParseCommand("/HELP"))
	assert.True(t, IsCommand("/start"))
	assert.False(t, IsCommand("привет"))
}
