package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"deeploc/internal/domain"
)

// ConfigRepo persists backend configuration in the settings table as
// "namespace/field" key-value pairs, one namespace per backend type plus
// the "active" selection record.
type ConfigRepo struct{ *Repo }

func NewConfigRepo(db *sql.DB) *ConfigRepo { return &ConfigRepo{NewRepo(db)} }

func (r *ConfigRepo) get(ctx context.Context, key string) (string, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

func (r *ConfigRepo) set(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO settings(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (r *ConfigRepo) LoadBackend(ctx context.Context, backendType string) (domain.BackendConfig, error) {
	cfg := domain.BackendConfig{Type: backendType}
	var err error
	if cfg.APIKey, err = r.get(ctx, backendType+"/api_key"); err != nil {
		return cfg, fmt.Errorf("load %s config: %w", backendType, err)
	}
	if cfg.Model, err = r.get(ctx, backendType+"/model"); err != nil {
		return cfg, fmt.Errorf("load %s config: %w", backendType, err)
	}
	if cfg.BaseURL, err = r.get(ctx, backendType+"/base_url"); err != nil {
		return cfg, fmt.Errorf("load %s config: %w", backendType, err)
	}
	return cfg, nil
}

func (r *ConfigRepo) SaveBackend(ctx context.Context, cfg domain.BackendConfig) error {
	pairs := map[string]string{
		cfg.Type + "/api_key":  cfg.APIKey,
		cfg.Type + "/model":    cfg.Model,
		cfg.Type + "/base_url": cfg.BaseURL,
	}
	for k, v := range pairs {
		if err := r.set(ctx, k, v); err != nil {
			return fmt.Errorf("save %s config: %w", cfg.Type, err)
		}
	}
	return nil
}

func (r *ConfigRepo) LoadActive(ctx context.Context) (domain.ActiveConfig, error) {
	cfg := domain.ActiveConfig{APIType: domain.APITypeNone}
	var err error
	var typ string
	if typ, err = r.get(ctx, "active/api_type"); err != nil {
		return cfg, fmt.Errorf("load active config: %w", err)
	}
	if typ != "" {
		cfg.APIType = typ
	}
	if cfg.APIKey, err = r.get(ctx, "active/api_key"); err != nil {
		return cfg, fmt.Errorf("load active config: %w", err)
	}
	if cfg.APIEndpoint, err = r.get(ctx, "active/api_endpoint"); err != nil {
		return cfg, fmt.Errorf("load active config: %w", err)
	}
	raw, err := r.get(ctx, "active/custom_params")
	if err != nil {
		return cfg, fmt.Errorf("load active config: %w", err)
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.CustomParams); err != nil {
			return cfg, fmt.Errorf("load active config: %w", err)
		}
	}
	return cfg, nil
}

func (r *ConfigRepo) SaveActive(ctx context.Context, cfg domain.ActiveConfig) error {
	raw, err := json.Marshal(cfg.CustomParams)
	if err != nil {
		return fmt.Errorf("save active config: %w", err)
	}
	pairs := map[string]string{
		"active/api_type":      cfg.APIType,
		"active/api_key":       cfg.APIKey,
		"active/api_endpoint":  cfg.APIEndpoint,
		"active/custom_params": string(raw),
	}
	for k, v := range pairs {
		if err := r.set(ctx, k, v); err != nil {
			return fmt.Errorf("save active config: %w", err)
		}
	}
	return nil
}
