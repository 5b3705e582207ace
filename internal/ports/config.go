package ports

import (
	"context"

	"deeploc/internal/domain"
)

type ConfigRepository interface {
	LoadBackend(ctx context.Context, backendType string) (domain.BackendConfig, error)
	SaveBackend(ctx context.Context, cfg domain.BackendConfig) error
	LoadActive(ctx context.Context) (domain.ActiveConfig, error)
	SaveActive(ctx context.Context, cfg domain.ActiveConfig) error
}

type CacheRepository interface {
	Get(ctx context.Context, src, srcLang, tgtLang, backend, model string) (*domain.CacheEntry, error)
	Put(ctx context.Context, entry *domain.CacheEntry) error
}
