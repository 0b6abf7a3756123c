package wildberries

type Config struct {
	CardCDNURL   string `envconfig:"CARD_CDN_URL" default:"https://sam-basket-cdn-01mt.geobasket.ru"`
	DetailAPIURL string `envconfig:"DETAIL_API_URL" default:"https://u-card.wb.ru/cards/v4/detail"`
	Timeout      int    `envconfig:"TIMEOUT" default:"10"` // в секундах
}
