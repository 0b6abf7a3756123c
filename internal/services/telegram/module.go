package telegram

import (
	"log/slog"

	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/repository"
	scraperPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/scraper"
	"github.com/Hikinamuri/wb-sellers-backend/internal/ports/service"
	telegramPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/telegram"
)

// Config настройки роутинга бота
type Config struct {
	WebAppURL      string `envconfig:"WEB_APP_URL"`
	SupportContact string `envconfig:"SUPPORT_CONTACT" default:"@wb_sellers_support"`
}

// Service роутинг входящих обновлений Telegram: команды, контакты,
// данные мини-приложения и события платёжного пайплайна
type Service struct {
	Checkout       service.ICheckoutService
	UserRepo       repository.IUserRepo
	Scraper        scraperPort.IScraper
	TelegramClient telegramPort.IClient
	Log            *slog.Logger

	cfg Config
}

// New создаёт сервис роутинга обновлений
func New(
	checkout service.ICheckoutService,
	userRepo repository.IUserRepo,
	scraper scraperPort.IScraper,
	telegramClient telegramPort.IClient,
	cfg Config,
	log *slog.Logger,
) *Service {
	return &Service{
		Checkout:       checkout,
		UserRepo:       userRepo,
		Scraper:        scraper,
		TelegramClient: telegramClient,
		Log:            log,
		cfg:            cfg,
	}
}
