package app

import (
	"context"
	"strings"

	"deeploc/internal/adapters/llm/factory"
	llmreg "deeploc/internal/adapters/llm/registry"
	"deeploc/internal/domain"
	"deeploc/internal/ports"
	"deeploc/internal/usecase/translator"
)

type BackendAPI struct {
	repo       ports.ConfigRepository
	translator *translator.Service
	registry   *llmreg.Registry
}

func NewBackendAPI(repo ports.ConfigRepository, trans *translator.Service, reg *llmreg.Registry) *BackendAPI {
	return &BackendAPI{repo: repo, translator: trans, registry: reg}
}

func (a *BackendAPI) Types() []string { return factory.Types() }

// GetConfig returns the stored per-backend record with the variant defaults
// filled in, API key masked for display.
func (a *BackendAPI) GetConfig(backendType string) (domain.BackendConfig, error) {
	cfg, err := a.repo.LoadBackend(context.Background(), strings.ToLower(backendType))
	if err != nil {
		return domain.BackendConfig{}, err
	}
	cfg = factory.New(backendType, cfg).Config()
	cfg.APIKey = mask(cfg.APIKey)
	return cfg, nil
}

// SetConfig persists one backend's record and refreshes the registry entry
// used by the background health poll.
func (a *BackendAPI) SetConfig(cfg domain.BackendConfig) error {
	ctx := context.Background()
	cfg.Type = strings.ToLower(cfg.Type)
	if strings.HasPrefix(cfg.APIKey, "****") || cfg.APIKey == "" {
		existing, err := a.repo.LoadBackend(ctx, cfg.Type)
		if err != nil {
			return err
		}
		cfg.APIKey = existing.APIKey
	}
	if err := a.repo.SaveBackend(ctx, cfg); err != nil {
		return err
	}
	a.registry.Register(factory.New(cfg.Type, cfg))
	return nil
}

// SetActive switches the current backend and persists the selection.
func (a *BackendAPI) SetActive(apiType, apiKey, endpoint string, customParams map[string]string) error {
	return a.translator.SetAPI(context.Background(), apiType, apiKey, endpoint, customParams)
}

func (a *BackendAPI) Active() domain.ActiveConfig {
	cfg := a.translator.Active()
	cfg.APIKey = mask(cfg.APIKey)
	return cfg
}

type TestResult struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message"`
}

// Test runs a live connection test against the active backend. This is the
// user-initiated path and feeds a modal in the frontend.
func (a *BackendAPI) Test() TestResult {
	ok, msg := a.translator.TestConnection(context.Background())
	return TestResult{Ok: ok, Message: msg}
}

// HealthCheck probes all configured backends for the periodic status
// indicator; unlike Test it never drives a modal.
func (a *BackendAPI) HealthCheck() map[string]string {
	out := map[string]string{}
	for name, err := range a.registry.HealthCheck(context.Background()) {
		if err != nil {
			out[name] = err.Error()
		} else {
			out[name] = "ok"
		}
	}
	return out
}

func mask(key string) string {
	if len(key) <= 4 {
		if key == "" {
			return ""
		}
		return "****"
	}
	return "****" + key[len(key)-4:]
}
