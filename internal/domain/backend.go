package domain

// BackendConfig is the per-variant configuration record. Zero values are
// filled in with the variant's defaults by the factory; callers may always
// override.
type BackendConfig struct {
	Type    string `json:"type"` // openai, claude, deepseek, openrouter
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`
	BaseURL string `json:"base_url"`
}

// ActiveConfig is the single "currently selected backend" record persisted
// alongside the per-variant ones.
type ActiveConfig struct {
	APIType      string            `json:"api_type"` // "none" when unset
	APIKey       string            `json:"api_key"`
	APIEndpoint  string            `json:"api_endpoint"`
	CustomParams map[string]string `json:"custom_params"`
}

// APITypeNone is the sentinel for "no backend selected". Connection tests
// against it must fail, not silently succeed.
const APITypeNone = "none"

type CacheEntry struct {
	ID          int64  `json:"id"`
	SourceText  string `json:"source_text"`
	SrcLang     string `json:"src_lang"`
	TgtLang     string `json:"tgt_lang"`
	Backend     string `json:"backend"`
	Model       string `json:"model"`
	Translation string `json:"translation"`
}
