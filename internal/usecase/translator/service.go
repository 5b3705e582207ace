// Package translator orchestrates the placeholder codec and the active
// translation backend, and owns the persisted backend selection.
package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"deeploc/internal/domain"
	"deeploc/internal/placeholder"
	"deeploc/internal/ports"
)

const testSentence = "Hello world, this is a test."

type Deps struct {
	Config   ports.ConfigRepository
	Cache    ports.CacheRepository // optional
	Reporter ports.ErrorReporter
	Logger   *logrus.Logger
	// BuildBackend returns a concrete backend for a type name and config.
	BuildBackend func(typeName string, cfg domain.BackendConfig) ports.Backend
}

type Service struct {
	d Deps

	// mu guards the active selection and built backend; the settings dialog
	// can swap them while the queue goroutine is translating.
	mu      sync.RWMutex
	active  domain.ActiveConfig
	backend ports.Backend
}

func New(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	return &Service{d: d, active: domain.ActiveConfig{APIType: domain.APITypeNone}}
}

// LoadConfig restores the persisted active backend selection. Called once at
// startup; a missing or empty record leaves the service unconfigured.
func (s *Service) LoadConfig(ctx context.Context) error {
	cfg, err := s.d.Config.LoadActive(ctx)
	if err != nil {
		return fmt.Errorf("load active config: %w", err)
	}
	s.mu.Lock()
	s.active = cfg
	s.rebuildBackend(ctx)
	s.mu.Unlock()
	return nil
}

// SetAPI replaces the active backend configuration and persists it
// immediately.
func (s *Service) SetAPI(ctx context.Context, apiType, apiKey, endpoint string, customParams map[string]string) error {
	cfg := domain.ActiveConfig{
		APIType:      apiType,
		APIKey:       apiKey,
		APIEndpoint:  endpoint,
		CustomParams: customParams,
	}
	s.mu.Lock()
	s.active = cfg
	s.rebuildBackend(ctx)
	s.mu.Unlock()
	if err := s.d.Config.SaveActive(ctx, cfg); err != nil {
		return fmt.Errorf("persist active config: %w", err)
	}
	return nil
}

func (s *Service) Active() domain.ActiveConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// rebuildBackend is called with mu held.
func (s *Service) rebuildBackend(ctx context.Context) {
	typ := strings.ToLower(s.active.APIType)
	if typ == "" || typ == domain.APITypeNone {
		s.backend = nil
		return
	}
	cfg, err := s.d.Config.LoadBackend(ctx, typ)
	if err != nil {
		s.report(fmt.Sprintf("load %s config: %v", typ, err))
		cfg = domain.BackendConfig{Type: typ}
	}
	if s.active.APIKey != "" {
		cfg.APIKey = s.active.APIKey
	}
	if s.active.APIEndpoint != "" {
		cfg.BaseURL = s.active.APIEndpoint
	}
	if m := s.active.CustomParams["model"]; m != "" {
		cfg.Model = m
	}
	s.backend = s.d.BuildBackend(typ, cfg)
}

// Translate splits the text into literal and placeholder runs, translates
// only the literal runs, and splices the result back together. It never
// fails the caller: any backend error is reported out of band and the
// original text comes back so the table never shows a blank cell.
func (s *Service) Translate(ctx context.Context, text, targetLang, sourceLang string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	// Snapshot once so a mid-flight SetAPI cannot tear a single call.
	s.mu.RLock()
	backend := s.backend
	model := s.active.CustomParams["model"]
	s.mu.RUnlock()
	if backend == nil {
		return text
	}
	var b strings.Builder
	for _, seg := range placeholder.Split(text) {
		if seg.Kind == placeholder.SegmentPlaceholder {
			b.WriteString(seg.Content)
			continue
		}
		b.WriteString(s.translateRun(ctx, backend, model, seg.Content, targetLang, sourceLang))
	}
	return placeholder.Correct(b.String())
}

func (s *Service) translateRun(ctx context.Context, backend ports.Backend, model, text, targetLang, sourceLang string) string {
	if s.d.Cache != nil {
		if ce, err := s.d.Cache.Get(ctx, text, sourceLang, targetLang, backend.Type(), model); err == nil && ce != nil {
			return ce.Translation
		}
	}
	out, err := backend.Translate(ctx, text)
	if err != nil {
		s.report(fmt.Sprintf("translate failed: %v", err))
		s.d.Logger.Warnf("translate failed, keeping original text: %v", err)
		return text
	}
	if s.d.Cache != nil {
		_ = s.d.Cache.Put(ctx, &domain.CacheEntry{
			SourceText:  text,
			SrcLang:     sourceLang,
			TgtLang:     targetLang,
			Backend:     backend.Type(),
			Model:       model,
			Translation: out,
		})
	}
	return out
}

// TestConnection translates a canned sentence against the active backend and
// reports success plus a status line. An unset backend is a failure, never a
// silent pass.
func (s *Service) TestConnection(ctx context.Context) (bool, string) {
	s.mu.RLock()
	typ := strings.ToLower(s.active.APIType)
	backend := s.backend
	s.mu.RUnlock()
	if typ == "" || typ == domain.APITypeNone {
		return false, "no API configured"
	}
	if backend == nil {
		return false, "backend not built for " + typ
	}
	out, err := backend.Translate(ctx, testSentence)
	if err != nil {
		return false, fmt.Sprintf("connection test failed: %v", err)
	}
	if strings.TrimSpace(out) == "" || out == testSentence {
		return false, "API reachable but translation failed"
	}
	return true, "connection ok, test translation: " + out
}

func (s *Service) report(msg string) {
	if s.d.Reporter != nil {
		s.d.Reporter.ReportError(msg)
	}
}
