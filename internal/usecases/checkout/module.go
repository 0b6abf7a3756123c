package checkout

import (
	"sync"
	"time"

	"log/slog"

	checkoutPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/checkout"
	eventsPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/events"
	paymentPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/payment"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/service"
	telegramPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/telegram"
)

const (
	// DefaultInvoiceTTL срок жизни invoice: pre_checkout по более старому
	// invoice отклоняется, пользователь начинает оплату заново
	DefaultInvoiceTTL = 15 * time.Minute

	// DefaultPaymentFreshness порог свежести клиентского payment id:
	// незавершённый платёж старше порога отменяется у провайдера
	DefaultPaymentFreshness = 60 * time.Second

	// DefaultStaleCheckDelay задержка проверки зависшего платежа
	// после pre_checkout
	DefaultStaleCheckDelay = 9 * time.Second
)

// Config настройки пайплайна оплаты
type Config struct {
	ProviderToken    string        // токен платёжного провайдера для sendInvoice
	Currency         string        // "RUB"
	InvoiceTTL       time.Duration
	PaymentFreshness time.Duration
	StaleCheckDelay  time.Duration
}

// Service пайплайн оплаты и сверки: выставление invoice, pre_checkout,
// подтверждение оплаты и передача заказа в выкладку.
// Реализует интерфейс service.ICheckoutService
type Service struct {
	Tracker        checkoutPort.IInvoiceTracker
	Orders         checkoutPort.IOrderStore
	Verifier       paymentPort.IVerifier
	TelegramClient telegramPort.IClient
	Planner        service.IPublishPlanner
	AlerterService service.IAlerterService
	Events         eventsPort.IProducer
	Log            *slog.Logger

	cfg Config

	// Последовательность retract-then-register внутри CreateInvoice не должна
	// перемежаться со второй попыткой из того же чата
	chatLocksMu sync.Mutex
	chatLocks   map[int64]*sync.Mutex

	// Отложенные проверки зависших платежей, по payment id.
	// Успешное подтверждение снимает таймер до срабатывания
	staleMu     sync.Mutex
	staleTimers map[string]*time.Timer
}

// New создаёт сервис пайплайна оплаты
func New(
	tracker checkoutPort.IInvoiceTracker,
	orders checkoutPort.IOrderStore,
	verifier paymentPort.IVerifier,
	telegramClient telegramPort.IClient,
	planner service.IPublishPlanner,
	alerterService service.IAlerterService,
	events eventsPort.IProducer,
	cfg Config,
	log *slog.Logger,
) *Service {
	if cfg.InvoiceTTL <= 0 {
		cfg.InvoiceTTL = DefaultInvoiceTTL
	}
	if cfg.PaymentFreshness <= 0 {
		cfg.PaymentFreshness = DefaultPaymentFreshness
	}
	if cfg.StaleCheckDelay <= 0 {
		cfg.StaleCheckDelay = DefaultStaleCheckDelay
	}
	if cfg.Currency == "" {
		cfg.Currency = "RUB"
	}

	return &Service{
		Tracker:        tracker,
		Orders:         orders,
		Verifier:       verifier,
		TelegramClient: telegramClient,
		Planner:        planner,
		AlerterService: alerterService,
		Events:         events,
		Log:            log,
		cfg:            cfg,
		chatLocks:      make(map[int64]*sync.Mutex),
		staleTimers:    make(map[string]*time.Timer),
	}
}

// chatLock возвращает мьютекс чата, создавая его при первом обращении
func (s *Service) chatLock(chatID int64) *sync.Mutex {
	s.chatLocksMu.Lock()
	defer s.chatLocksMu.Unlock()

	lock, ok := s.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		s.chatLocks[chatID] = lock
	}
	return lock
}
