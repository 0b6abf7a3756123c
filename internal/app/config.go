package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	server "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/primary/http"
	alerterAdapter "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/kafka"
	"github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/payment/yookassa"
	"github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/storage/redis"
	"github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/storage/s3"
	"github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/telegram"
	"github.com/Hikinamuri/wb-sellers-backend/internal/adapters/secondary/wildberries"
	"github.com/Hikinamuri/wb-sellers-backend/internal/pkg/logger"
	publisherService "github.com/Hikinamuri/wb-sellers-backend/internal/services/publisher"
	telegramService "github.com/Hikinamuri/wb-sellers-backend/internal/services/telegram"
)

type Config struct {
	Postgres    *pg.Config              `envconfig:"POSTGRES"`
	Log         *logger.Config          `envconfig:"LOG"`
	Server      *server.Config          `envconfig:"APISERVER"`
	Telegram    *telegram.Config        `envconfig:"TELEGRAM"`
	Bot         telegramService.Config  `envconfig:"BOT"`
	Redis       *redisAdapter.Config    `envconfig:"REDIS"`
	S3          *s3.Config              `envconfig:"S3"`
	Kafka       *kafkaAdapter.Config    `envconfig:"KAFKA"`
	Alerter     *alerterAdapter.Config  `envconfig:"ALERTER"`
	YooKassa    *yookassa.Config        `envconfig:"YOOKASSA"`
	Wildberries *wildberries.Config     `envconfig:"WB"`
	Publisher   publisherService.Config `envconfig:"PUBLISHER"`
	Payments    PaymentsConfig          `envconfig:"PAYMENTS"`
}

// PaymentsConfig настройки платёжного пайплайна
type PaymentsConfig struct {
	ProviderToken    string `envconfig:"PROVIDER_TOKEN" required:"true"` // токен провайдера из BotFather
	Currency         string `envconfig:"CURRENCY" default:"RUB"`
	InvoiceTTL       int    `envconfig:"INVOICE_TTL" default:"15"`       // в минутах
	PaymentFreshness int    `envconfig:"PAYMENT_FRESHNESS" default:"60"` // в секундах
	StaleCheckDelay  int    `envconfig:"STALE_CHECK_DELAY" default:"9"`  // в секундах
	SweepSpec        string `envconfig:"SWEEP_SPEC" default:"@every 5m"` // расписание уборки истёкших счетов
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
