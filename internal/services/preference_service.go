package services

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"

	"joule/internal/logger"
)

// PreferenceService stores small string-valued preferences that live
// outside the validated settings record: API keys, model selection, UI
// flags, voice tuning. Missing keys read as "".
type PreferenceService struct {
	mu    sync.RWMutex
	store *viper.Viper
	path  string
}

// NewPreferenceService creates a preference store persisting to path. An
// empty path keeps preferences in memory only.
func NewPreferenceService(path string) *PreferenceService {
	return &PreferenceService{store: viper.New(), path: path}
}

// Name returns the service name "preferences" for registration.
func (p *PreferenceService) Name() string {
	return "preferences"
}

// Initialize loads persisted preferences. Read failures degrade to an
// empty store.
func (p *PreferenceService) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.path != "" {
		p.store.SetConfigFile(p.path)
		p.store.SetConfigType("json")
		if err := p.store.ReadInConfig(); err != nil {
			logger.Warn("failed to read preference store", "path", p.path, "error", err)
		}
	}
	return nil
}

// GetPref returns the stored value for key, or "" when unset.
func (p *PreferenceService) GetPref(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.store.GetString(key)
}

// SetPref stores one preference and persists the store.
func (p *PreferenceService) SetPref(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.store.Set(key, value)
	if p.path != "" {
		if err := p.store.WriteConfigAs(p.path); err != nil {
			return fmt.Errorf("failed to save preference: %w", err)
		}
	}
	return nil
}
