package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	server "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/primary/http"
	alerterController "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/primary/http/controllers/alerter"
	healthcheckController "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/primary/http/controllers/healthcheck"
	ordersController "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/primary/http/controllers/orders"
	productsController "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/primary/http/controllers/products"
	tgController "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/primary/http/controllers/telegram"
	usersController "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/primary/http/controllers/users"
	alerterAdapter "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/kafka"
	"github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/payment/yookassa"
	"github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/storage/inmemory"
	"github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/storage/s3"
	tgAdapter "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/telegram"
	"github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/wildberries"
	checkoutPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/checkout"
	eventsPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/events"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/repository"
	scraperPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/scraper"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/service"
	storagePort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/storage"
	productRepo "github.com/Hikinamuri/wb-sellers-backend/internal/repository/product"
	userRepo "github.com/Hikinamuri/wb-sellers-backend/internal/repository/user"
	alerterService "github.com/Hikinamuri/wb-sellers-backend/internal/services/alerter"
	publisherService "github.com/Hikinamuri/wb-sellers-backend/internal/services/publisher"
	schedulerService "github.com/Hikinamuri/wb-sellers-backend/internal/services/scheduler"
	telegramService "github.com/Hikinamuri/wb-sellers-backend/internal/services/telegram"
	checkoutUsecase "github.com/Hikinamuri/wb-sellers-backend/internal/usecases/checkout"

	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB              *sqlx.DB
	HTTPServer      *http.Server
	TelegramService *telegramService.Service
	TelegramClient  *tgAdapter.Client
	TelegramPoller  *tgAdapter.Poller
	Checkout        *checkoutUsecase.Service
	Publisher       *publisherService.Service
	Scheduler       *schedulerService.DateScheduler
	Sweeper         *schedulerService.Sweeper
	EventsProducer  eventsPort.IProducer
	OrderStore      checkoutPort.IOrderStore
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	if a.Cfg.Telegram == nil || a.Cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if a.Cfg.YooKassa == nil {
		return nil, fmt.Errorf("yookassa configuration is required")
	}

	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	repos := a.initRepositories(db)
	tgClient := tgAdapter.NewClient(a.Cfg.Telegram.BotToken, a.Log)

	alerterSvc := a.initAlerter()
	events := a.initEvents()
	orderStore := a.initOrderStore()
	imageStorage := a.initImageStorage()

	scraper := wildberries.NewClient(a.Cfg.Wildberries, a.Log)
	verifier := yookassa.NewClient(a.Cfg.YooKassa, a.Log)

	jobScheduler := schedulerService.NewDateScheduler(a.Log)

	publisher := publisherService.New(
		repos.Product,
		jobScheduler,
		tgClient,
		imageStorage, // может быть nil
		alerterSvc,   // может быть nil
		events,
		a.Cfg.Publisher,
		a.Log,
	)

	checkout := checkoutUsecase.New(
		inmemory.NewInvoiceTracker(),
		orderStore,
		verifier,
		tgClient,
		publisher,
		alerterSvc, // может быть nil
		events,
		checkoutUsecase.Config{
			ProviderToken:    a.Cfg.Payments.ProviderToken,
			Currency:         a.Cfg.Payments.Currency,
			InvoiceTTL:       time.Duration(a.Cfg.Payments.InvoiceTTL) * time.Minute,
			PaymentFreshness: time.Duration(a.Cfg.Payments.PaymentFreshness) * time.Second,
			StaleCheckDelay:  time.Duration(a.Cfg.Payments.StaleCheckDelay) * time.Second,
		},
		a.Log,
	)

	tgSvc := telegramService.New(
		checkout,
		repos.User,
		scraper,
		tgClient,
		a.Cfg.Bot,
		a.Log,
	)

	sweeper := schedulerService.NewSweeper(checkout, a.Log)

	httpServer := a.initHTTP(db, orderStore, tgSvc, checkout, publisher, scraper, repos, alerterSvc)

	poller, err := a.initTelegramMode(ctx, tgClient, tgSvc)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram mode: %w", err)
	}

	return &Dependencies{
		DB:              db,
		HTTPServer:      httpServer,
		TelegramService: tgSvc,
		TelegramClient:  tgClient,
		TelegramPoller:  poller,
		Checkout:        checkout,
		Publisher:       publisher,
		Scheduler:       jobScheduler,
		Sweeper:         sweeper,
		EventsProducer:  events,
		OrderStore:      orderStore,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	User    repository.IUserRepo
	Product repository.IProductRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqlx.DB) *repositories {
	persistenceLayer := pg.NewDB(db)
	return &repositories{
		User:    userRepo.New(persistenceLayer, a.Log),
		Product: productRepo.New(persistenceLayer, a.Log),
	}
}

// initAlerter инициализирует алертер (опциональный)
func (a *App) initAlerter() service.IAlerterService {
	if a.Cfg.Alerter == nil || a.Cfg.Alerter.BotToken == "" {
		a.Log.Info("alerter is not configured, escalations go to logs only")
		return nil
	}
	return alerterService.New(alerterAdapter.NewClient(a.Cfg.Alerter, a.Log))
}

// initEvents инициализирует Kafka producer событий заказов (опциональный)
func (a *App) initEvents() eventsPort.IProducer {
	if a.Cfg.Kafka == nil || !a.Cfg.Kafka.IsEnabled() {
		a.Log.Info("kafka is disabled, order events will not be published")
		return kafkaAdapter.NewNoopProducer(a.Log)
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka producer, continuing without events", "error", err)
		return kafkaAdapter.NewNoopProducer(a.Log)
	}
	return producer
}

// initOrderStore инициализирует хранилище метаданных заказов.
// Redis опционален: без него метаданные живут в памяти процесса
func (a *App) initOrderStore() checkoutPort.IOrderStore {
	if a.Cfg.Redis == nil {
		a.Log.Warn("redis is not configured, order metadata will be stored in memory")
		return inmemory.NewOrderStore()
	}

	client, err := a.Cfg.Redis.NewConnection()
	if err != nil {
		a.Log.Warn("failed to connect to redis, falling back to in-memory order store", "error", err)
		return inmemory.NewOrderStore()
	}

	a.Log.Info("redis connected successfully")
	ttl := time.Duration(a.Cfg.Redis.OrderTTL) * time.Hour
	return redisAdapter.NewOrderStore(client, ttl, a.Log)
}

// initImageStorage инициализирует S3 хранилище картинок (опциональное)
func (a *App) initImageStorage() storagePort.IImageStorage {
	if a.Cfg.S3 == nil {
		a.Log.Info("s3 is not configured, posts will use original image urls")
		return nil
	}

	minioClient, err := a.Cfg.S3.NewClient()
	if err != nil {
		a.Log.Warn("failed to init s3 client, continuing without image mirroring", "error", err)
		return nil
	}

	return s3Adapter.NewClient(minioClient, a.Cfg.S3, a.Log)
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db *sqlx.DB,
	orderStore checkoutPort.IOrderStore,
	tgSvc *telegramService.Service,
	checkout service.ICheckoutService,
	planner service.IPublishPlanner,
	scraper scraperPort.IScraper,
	repos *repositories,
	alerterSvc service.IAlerterService,
) *http.Server {
	var redisPinger healthcheckController.Pinger
	if p, ok := orderStore.(healthcheckController.Pinger); ok {
		redisPinger = p
	}

	controllers := []server.Controller{
		healthcheckController.New(db, redisPinger, a.Log),
		tgController.New(tgSvc, a.Cfg.Telegram.WebhookSecret, a.Log),
		ordersController.New(checkout, a.Log),
		productsController.New(scraper, repos.Product, planner, a.Log),
		usersController.New(repos.User, a.Log),
	}

	if alerterSvc != nil {
		controllers = append(controllers, alerterController.New(alerterSvc, a.Log))
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initTelegramMode инициализирует режим работы Telegram (webhook или polling)
func (a *App) initTelegramMode(
	ctx context.Context,
	tgClient *tgAdapter.Client,
	tgSvc *telegramService.Service,
) (*tgAdapter.Poller, error) {
	a.Log.Info("telegram configuration",
		"use_webhook", a.Cfg.Telegram.IsWebhookEnabled(),
		"webhook_url", a.Cfg.Telegram.WebhookURL,
	)

	poller := tgAdapter.NewPoller(tgClient, a.Cfg.Telegram, tgSvc.HandleUpdate, a.Log)

	if a.Cfg.Telegram.IsWebhookEnabled() {
		if a.Cfg.Telegram.WebhookURL == "" {
			return nil, fmt.Errorf("webhook_url is required when use_webhook is true")
		}

		webhookURL := fmt.Sprintf("%s/webhook", a.Cfg.Telegram.WebhookURL)
		if err := poller.SetWebhook(ctx, webhookURL, a.Cfg.Telegram.WebhookSecret); err != nil {
			return nil, fmt.Errorf("failed to set webhook: %w", err)
		}

		a.Log.Info("webhook set successfully", "webhook_url", webhookURL)
		return nil, nil // webhook режим, poller не нужен
	}

	a.Log.Warn("polling mode enabled - this should only be used for local development")
	return poller, nil
}
