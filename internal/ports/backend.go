package ports

import (
	"context"

	"deeploc/internal/domain"
)

// Backend is a single chat-completion translation provider. Configuration
// setters mutate memory only; persistence goes through ConfigRepository.
type Backend interface {
	Type() string
	Translate(ctx context.Context, text string) (string, error)
	TestConnection(ctx context.Context) error
	Config() domain.BackendConfig
	SetAPIKey(key string)
	SetModel(model string)
	SetBaseURL(url string)
}
