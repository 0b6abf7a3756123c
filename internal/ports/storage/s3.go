package storage

import (
	"context"
	"io"
)

// IImageStorage интерфейс S3-совместимого хранилища для зеркалирования
// картинок товаров (CDN маркетплейса не гарантирует время жизни ссылок)
type IImageStorage interface {
	// StoreImage сохраняет объект и возвращает публичную ссылку на него
	StoreImage(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}
