package yookassa

type Config struct {
	BaseURL   string `envconfig:"BASE_URL" default:"https://api.yookassa.ru/v3"`
	ShopID    string `envconfig:"SHOP_ID" required:"true"`
	SecretKey string `envconfig:"SECRET_KEY" required:"true"`
	Timeout   int    `envconfig:"TIMEOUT" default:"10"` // в секундах
}
