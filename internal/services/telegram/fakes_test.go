package telegram

import (
	"context"
	"sync"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/service"
	telegramPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/telegram"
)

// fakeCheckout записывает вызовы пайплайна оплаты
type fakeCheckout struct {
	mu sync.Mutex

	createInvoiceErr error

	createInputs []service.CreateOrderInput
	preCheckouts []*domain.PreCheckoutQuery
	payments     []*domain.SuccessfulPayment
}

func (f *fakeCheckout) CreateInvoice(ctx context.Context, in service.CreateOrderInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createInvoiceErr != nil {
		return "", f.createInvoiceErr
	}
	f.createInputs = append(f.createInputs, in)
	return in.RawKey + "_payload", nil
}

func (f *fakeCheckout) HandlePreCheckout(ctx context.Context, query *domain.PreCheckoutQuery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.preCheckouts = append(f.preCheckouts, query)
	return nil
}

func (f *fakeCheckout) HandleSuccessfulPayment(ctx context.Context, chatID int64, payment *domain.SuccessfulPayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, payment)
	return nil
}

// fakeUserRepo in-memory пользователи по tg_id
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.TgID] = user
	return nil
}

func (r *fakeUserRepo) GetByTgID(ctx context.Context, tgID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) Exists(ctx context.Context, tgID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[tgID]
	return ok, nil
}

func (r *fakeUserRepo) TouchLastSeen(ctx context.Context, tgID string) error {
	return nil
}

// fakeScraper отдаёт заранее заданный результат парсинга
type fakeScraper struct {
	product *domain.ParsedProduct
	calls   int
}

func (f *fakeScraper) Parse(ctx context.Context, url string) (*domain.ParsedProduct, error) {
	f.calls++
	if f.product != nil {
		return f.product, nil
	}
	return &domain.ParsedProduct{Success: false, Error: "нет данных", URL: url}, nil
}

// fakeClient записывает отправленные сообщения
type fakeClient struct {
	mu       sync.Mutex
	messages []string
}

func (c *fakeClient) SendMessage(ctx context.Context, chatID int64, text string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, text)
	return int64(len(c.messages)), nil
}

func (c *fakeClient) DeleteMessage(ctx context.Context, chatID int64, messageID int64) error {
	return nil
}

func (c *fakeClient) SendInvoice(ctx context.Context, in telegramPort.SendInvoiceInput) (int64, error) {
	return 1, nil
}

func (c *fakeClient) AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage *string) error {
	return nil
}

func (c *fakeClient) SendChannelMessage(ctx context.Context, channel string, text string) (int64, error) {
	return 1, nil
}

func (c *fakeClient) SendChannelPhoto(ctx context.Context, channel string, photoURL string, caption string) (int64, error) {
	return 1, nil
}

func (c *fakeClient) lastMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[len(c.messages)-1]
}
