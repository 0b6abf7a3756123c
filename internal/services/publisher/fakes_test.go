package publisher

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	telegramPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/telegram"
)

// fakeProductRepo in-memory репозиторий товаров
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product

	createErr       error
	updateStatusErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*domain.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *product
	return &cp, nil
}

func (r *fakeProductRepo) ListByUser(ctx context.Context, tgID string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		if p.UserID == tgID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListPending(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		if p.Status == domain.ProductStatusPending {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProductStatus) error {
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	product.Status = status
	return nil
}

func (r *fakeProductRepo) statusOf(id uuid.UUID) domain.ProductStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		return p.Status
	}
	return ""
}

// fakeScheduler запоминает регистрации job-ов, ничего не запускает
type fakeScheduler struct {
	mu   sync.Mutex
	jobs map[string]time.Time
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{jobs: make(map[string]time.Time)}
}

func (s *fakeScheduler) Schedule(jobID string, runAt time.Time, fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[jobID] = runAt
}

func (s *fakeScheduler) Cancel(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[jobID]; !ok {
		return false
	}
	delete(s.jobs, jobID)
	return true
}

func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// fakeChannelClient запоминает публикации в канал
type fakeChannelClient struct {
	mu sync.Mutex

	sendErr error

	photos   []string // caption-ы постов с фото
	messages []string // caption-ы текстовых постов
}

func (c *fakeChannelClient) SendMessage(ctx context.Context, chatID int64, text string) (int64, error) {
	return 1, nil
}

func (c *fakeChannelClient) DeleteMessage(ctx context.Context, chatID int64, messageID int64) error {
	return nil
}

func (c *fakeChannelClient) SendInvoice(ctx context.Context, in telegramPort.SendInvoiceInput) (int64, error) {
	return 1, nil
}

func (c *fakeChannelClient) AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage *string) error {
	return nil
}

func (c *fakeChannelClient) SendChannelMessage(ctx context.Context, channel string, text string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return 0, c.sendErr
	}
	c.messages = append(c.messages, text)
	return 1, nil
}

func (c *fakeChannelClient) SendChannelPhoto(ctx context.Context, channel string, photoURL string, caption string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return 0, c.sendErr
	}
	c.photos = append(c.photos, caption)
	return 1, nil
}

// fakeAlerter считает эскалации
type fakeAlerter struct {
	mu     sync.Mutex
	alerts []string
}

func (a *fakeAlerter) SendAlert(ctx context.Context, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, message)
	return nil
}

func (a *fakeAlerter) alertCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.alerts)
}
