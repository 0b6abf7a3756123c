package wildberries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
	scraperPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/scraper"
)

var (
	catalogArticulRe = regexp.MustCompile(`/catalog/(\d+)/detail`)
	nmArticulRe      = regexp.MustCompile(`nm=(\d+)`)
)

// ExtractArticul достаёт артикул из ссылки на карточку Wildberries.
// Поддерживаются ссылки вида /catalog/{articul}/detail и с параметром nm=
func ExtractArticul(url string) (string, bool) {
	if m := catalogArticulRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if m := nmArticulRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}

// Client парсер карточек Wildberries.
// Реализует интерфейс scraper.IScraper: объединяет данные basket CDN
// (название, бренд, описание, характеристики) и detail API (цены, рейтинг)
type Client struct {
	cfg        *Config
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient создаёт парсер карточек Wildberries
func NewClient(cfg *Config, log *slog.Logger) scraperPort.IScraper {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Parse парсит карточку товара по ссылке.
// Неуспех (битая ссылка, карточка недоступна) возвращается как Success=false,
// ошибка наверх уходит только при отменённом контексте
func (c *Client) Parse(ctx context.Context, url string) (*domain.ParsedProduct, error) {
	articul, ok := ExtractArticul(url)
	if !ok {
		return &domain.ParsedProduct{
			Success: false,
			Error:   "не удалось извлечь артикул из ссылки",
			URL:     url,
		}, nil
	}

	card, cardOK := c.fetchCard(ctx, articul)
	detail, detailOK := c.fetchDetail(ctx, articul)

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if !cardOK && !detailOK {
		return &domain.ParsedProduct{
			Success: false,
			Error:   "не удалось получить данные о товаре",
			Articul: articul,
			URL:     url,
		}, nil
	}

	result := &domain.ParsedProduct{
		Success:  true,
		Articul:  articul,
		URL:      url,
		ImageURL: c.imageURL(articul),
	}

	if cardOK {
		result.Name = card.ImtName
		result.Brand = card.Selling.BrandName
		result.Description = card.Description
		if len(card.Options) > 0 {
			result.Characteristics = make(map[string]string, len(card.Options))
			for _, opt := range card.Options {
				result.Characteristics[opt.Name] = opt.Value
			}
		}
	}

	if detailOK {
		// detail API авторитетнее CDN по бренду и поставщику
		if detail.Brand != "" {
			result.Brand = detail.Brand
		}
		result.Supplier = detail.Supplier
		result.Rating = detail.ReviewRating
		if result.Rating == 0 {
			result.Rating = detail.Rating
		}
		result.Feedbacks = detail.Feedbacks
		result.Price, result.BasicPrice, result.Discount = pickPrice(detail)
	}

	return result, nil
}

// fetchCard получает card.json с basket CDN
func (c *Client) fetchCard(ctx context.Context, articul string) (*cardResponse, bool) {
	vol := articul[:min(4, len(articul))]
	part := articul[:min(6, len(articul))]
	url := fmt.Sprintf("%s/vol%s/part%s/%s/info/ru/card.json",
		strings.TrimSuffix(c.cfg.CardCDNURL, "/"), vol, part, articul)

	body, ok := c.get(ctx, url, articul)
	if !ok {
		return nil, false
	}

	var card cardResponse
	if err := json.Unmarshal(body, &card); err != nil {
		c.log.Error("wb: failed to unmarshal card.json", "error", err, "articul", articul)
		return nil, false
	}
	return &card, true
}

// fetchDetail получает цены, рейтинг и поставщика через detail API
func (c *Client) fetchDetail(ctx context.Context, articul string) (*detailProduct, bool) {
	url := fmt.Sprintf("%s?appType=1&curr=rub&dest=-2133462&lang=ru&nm=%s", c.cfg.DetailAPIURL, articul)

	body, ok := c.get(ctx, url, articul)
	if !ok {
		return nil, false
	}

	var detail detailResponse
	if err := json.Unmarshal(body, &detail); err != nil {
		c.log.Error("wb: failed to unmarshal detail response", "error", err, "articul", articul)
		return nil, false
	}

	products := detail.Data.Products
	if len(products) == 0 {
		products = detail.Products
	}
	if len(products) == 0 {
		return nil, false
	}
	return &products[0], true
}

func (c *Client) get(ctx context.Context, url string, articul string) ([]byte, bool) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Error("wb: failed to create request", "error", err, "articul", articul)
		return nil, false
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug("wb: request failed", "error", err, "articul", articul, "url", url)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("wb: non-200 status", "status_code", resp.StatusCode, "articul", articul, "url", url)
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("wb: failed to read response body", "error", err, "articul", articul)
		return nil, false
	}
	return body, true
}

// imageURL собирает ссылку на первое фото карточки на basket CDN
func (c *Client) imageURL(articul string) string {
	vol := articul[:min(4, len(articul))]
	part := articul[:min(6, len(articul))]
	return fmt.Sprintf("%s/vol%s/part%s/%s/images/big/1.webp",
		strings.TrimSuffix(c.cfg.CardCDNURL, "/"), vol, part, articul)
}

// pickPrice выбирает минимальную цену product среди размерных позиций
// и считает скидку относительно basic. Цены API приходят в копейках
func pickPrice(p *detailProduct) (price float64, basicPrice float64, discount int) {
	var bestBasic, bestProduct int64
	for _, size := range p.Sizes {
		if size.Price == nil || size.Price.Product <= 0 {
			continue
		}
		if bestProduct == 0 || size.Price.Product < bestProduct {
			bestProduct = size.Price.Product
			bestBasic = size.Price.Basic
		}
	}
	if bestProduct == 0 {
		return 0, 0, 0
	}

	price = float64(bestProduct) / 100
	basicPrice = float64(bestBasic) / 100
	if basicPrice > 0 {
		discount = int(100 - price/basicPrice*100)
	}
	return price, basicPrice, discount
}
