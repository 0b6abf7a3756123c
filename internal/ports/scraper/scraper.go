package scraper

import (
	"context"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

// IScraper интерфейс парсера карточек товаров маркетплейса.
// Неуспех парсинга — это ParsedProduct{Success:false}, ошибка возвращается
// только при невозможности выполнить запрос вообще.
type IScraper interface {
	Parse(ctx context.Context, url string) (*domain.ParsedProduct, error)
}
