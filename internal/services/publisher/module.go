package publisher

import (
	"net/http"
	"time"

	"log/slog"

	eventsPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/events"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/repository"
	schedulerPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/scheduler"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/service"
	storagePort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/storage"
	telegramPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/telegram"
)

// Config настройки выкладки
type Config struct {
	Channel string `envconfig:"CHANNEL" required:"true"` // "@wb_sellers_channel"
}

// Service выкладка оплаченных товаров: создаёт товар, регистрирует job
// публикации на запланированное время и публикует пост в канал.
// Реализует интерфейс service.IPublishPlanner
type Service struct {
	ProductRepo    repository.IProductRepo
	Scheduler      schedulerPort.IJobScheduler
	TelegramClient telegramPort.IClient
	ImageStorage   storagePort.IImageStorage
	AlerterService service.IAlerterService
	Events         eventsPort.IProducer
	Log            *slog.Logger

	cfg        Config
	httpClient *http.Client // для скачивания картинок с CDN маркетплейса
}

// New создаёт сервис выкладки
func New(
	productRepo repository.IProductRepo,
	jobScheduler schedulerPort.IJobScheduler,
	telegramClient telegramPort.IClient,
	imageStorage storagePort.IImageStorage,
	alerterService service.IAlerterService,
	events eventsPort.IProducer,
	cfg Config,
	log *slog.Logger,
) *Service {
	return &Service{
		ProductRepo:    productRepo,
		Scheduler:      jobScheduler,
		TelegramClient: telegramClient,
		ImageStorage:   imageStorage,
		AlerterService: alerterService,
		Events:         events,
		Log:            log,
		cfg:            cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}
