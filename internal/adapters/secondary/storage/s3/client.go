package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"log/slog"

	"github.com/minio/minio-go/v7"

	storagePort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/storage"
)

// Client обёртка над minio.Client для зеркалирования картинок товаров.
// Реализует интерфейс storage.IImageStorage
type Client struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       *slog.Logger
}

// NewClient создаёт новый S3 клиент
func NewClient(client *minio.Client, cfg *Config, log *slog.Logger) storagePort.IImageStorage {
	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Host, cfg.Bucket)
	}

	return &Client{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		log:       log,
	}
}

// StoreImage сохраняет картинку и возвращает публичную ссылку на неё
func (c *Client) StoreImage(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	info, err := c.client.PutObject(ctx, c.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	c.log.Debug("image stored",
		"bucket", c.bucket,
		"key", key,
		"size", info.Size,
	)

	return c.publicURL + "/" + key, nil
}
