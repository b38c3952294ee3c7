package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage - объектное хранилище для резюме, логотипов и аватаров
type Storage interface {
	// Save сохраняет объект под ключом и возвращает его публичный URL
	Save(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// Delete удаляет объект; отсутствие объекта не ошибка
	Delete(ctx context.Context, key string) error

	// SignedURL - временная ссылка на приватный объект
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // для local
	BaseURL    string // публичный префикс URL
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string // R2 или совместимый S3
	PublicRead bool
}

// NewStorage выбирает реализацию по cfg.Type
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
