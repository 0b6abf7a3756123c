package checkout

import (
	"context"
	"sync"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	telegramPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/telegram"
	"github.com/google/uuid"
)

// fakeTelegram запоминает вызовы транспорта и умеет ломаться по требованию
type fakeTelegram struct {
	mu sync.Mutex

	sendInvoiceErr error
	nextMessageID  int64

	sentInvoices    []telegramPort.SendInvoiceInput
	deletedMessages []int64
	sentMessages    []string
	answers         []fakeAnswer
}

type fakeAnswer struct {
	queryID string
	ok      bool
	reason  string
}

func newFakeTelegram() *fakeTelegram {
	return &fakeTelegram{nextMessageID: 100}
}

func (f *fakeTelegram) SendMessage(_ context.Context, _ int64, text string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentMessages = append(f.sentMessages, text)
	f.nextMessageID++
	return f.nextMessageID, nil
}

func (f *fakeTelegram) DeleteMessage(_ context.Context, _ int64, messageID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedMessages = append(f.deletedMessages, messageID)
	return nil
}

func (f *fakeTelegram) SendInvoice(_ context.Context, in telegramPort.SendInvoiceInput) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendInvoiceErr != nil {
		return 0, f.sendInvoiceErr
	}
	f.sentInvoices = append(f.sentInvoices, in)
	f.nextMessageID++
	return f.nextMessageID, nil
}

func (f *fakeTelegram) AnswerPreCheckoutQuery(_ context.Context, queryID string, ok bool, errorMessage *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	answer := fakeAnswer{queryID: queryID, ok: ok}
	if errorMessage != nil {
		answer.reason = *errorMessage
	}
	f.answers = append(f.answers, answer)
	return nil
}

func (f *fakeTelegram) SendChannelMessage(_ context.Context, _ string, text string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentMessages = append(f.sentMessages, text)
	f.nextMessageID++
	return f.nextMessageID, nil
}

func (f *fakeTelegram) SendChannelPhoto(_ context.Context, _ string, _ string, caption string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentMessages = append(f.sentMessages, caption)
	f.nextMessageID++
	return f.nextMessageID, nil
}

func (f *fakeTelegram) lastAnswer() fakeAnswer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answers[len(f.answers)-1]
}

// fakeVerifier отдаёт заранее заготовленные платежи и считает отмены
type fakeVerifier struct {
	mu       sync.Mutex
	payments map[string]*domain.RemotePayment
	cancels  []string
}

func newFakeVerifier() *fakeVerifier {
	return &fakeVerifier{payments: make(map[string]*domain.RemotePayment)}
}

func (f *fakeVerifier) Fetch(_ context.Context, paymentID string) (*domain.RemotePayment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[paymentID]
	return payment, ok
}

func (f *fakeVerifier) Cancel(_ context.Context, paymentID string) (int, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels = append(f.cancels, paymentID)
	if payment, ok := f.payments[paymentID]; ok {
		payment.Status = domain.RemotePaymentStatusCanceled
	}
	return 200, "canceled"
}

func (f *fakeVerifier) cancelCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cancels)
}

// fakePlanner запоминает переданные в выкладку заказы
type fakePlanner struct {
	mu        sync.Mutex
	err       error
	scheduled []domain.OrderMeta
}

func (f *fakePlanner) ScheduleProduct(_ context.Context, meta *domain.OrderMeta) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.scheduled = append(f.scheduled, *meta)
	return uuid.New(), nil
}

func (f *fakePlanner) scheduledCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scheduled)
}

// fakeAlerter копит алерты поддержки
type fakeAlerter struct {
	mu     sync.Mutex
	alerts []string
}

func (f *fakeAlerter) SendAlert(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, message)
	return nil
}

func (f *fakeAlerter) alertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}
