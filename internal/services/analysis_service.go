package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"joule/internal/logger"
	"joule/pkg/jouletypes"
)

// analysisDocument is the persisted output of the annual-cost pipeline
// plus the configured location.
type analysisDocument struct {
	Estimate *jouletypes.AnnualEstimate  `json:"estimate,omitempty"`
	Location *jouletypes.Location        `json:"location,omitempty"`
	Extra    []jouletypes.Recommendation `json:"recommendations,omitempty"`
}

// AnalysisService exposes the derived annual estimate, savings
// recommendations, and configured location. The estimate and location
// are written by the forecasting pipeline and cached on disk; threshold
// recommendations are derived live from the thermostat document.
type AnalysisService struct {
	mu         sync.RWMutex
	path       string
	doc        analysisDocument
	thermostat ThermostatLoader
}

// NewAnalysisService creates an analysis service persisting to path.
// An empty path keeps data in memory only; thermostat may be nil.
func NewAnalysisService(path string, thermostat ThermostatLoader) *AnalysisService {
	return &AnalysisService{path: path, thermostat: thermostat}
}

// Name returns the service name "analysis" for registration.
func (a *AnalysisService) Name() string {
	return "analysis"
}

// Initialize loads the cached analysis document. Missing or corrupt
// files leave the service empty, never fail startup.
func (a *AnalysisService) Initialize() error {
	if a.path == "" {
		return nil
	}
	data, err := os.ReadFile(a.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read analysis cache", "path", a.path, "error", err)
		}
		return nil
	}
	var doc analysisDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("analysis cache is corrupt, ignoring", "path", a.path, "error", err)
		return nil
	}
	a.mu.Lock()
	a.doc = doc
	a.mu.Unlock()
	return nil
}

// Estimate returns the derived annual estimate, or nil when the
// pipeline has not produced one.
func (a *AnalysisService) Estimate() *jouletypes.AnnualEstimate {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.doc.Estimate == nil {
		return nil
	}
	estimate := *a.doc.Estimate
	return &estimate
}

// SetEstimate stores and persists a new annual estimate.
func (a *AnalysisService) SetEstimate(estimate *jouletypes.AnnualEstimate) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc.Estimate = estimate
	return a.writeLocked()
}

// Location returns the configured location, or nil when unset.
func (a *AnalysisService) Location() *jouletypes.Location {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.doc.Location == nil {
		return nil
	}
	location := *a.doc.Location
	return &location
}

// SetLocation stores and persists the configured location.
func (a *AnalysisService) SetLocation(location *jouletypes.Location) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc.Location = location
	return a.writeLocked()
}

// Recommendations returns savings suggestions: pipeline-provided
// entries first, then threshold tune-ups derived from the current
// thermostat document. Factory-default differentials are the usual
// finding; already-optimized systems get an empty list.
func (a *AnalysisService) Recommendations() []jouletypes.Recommendation {
	a.mu.RLock()
	recs := make([]jouletypes.Recommendation, len(a.doc.Extra))
	copy(recs, a.doc.Extra)
	a.mu.RUnlock()

	if a.thermostat == nil {
		return recs
	}
	doc, err := a.thermostat.Load()
	if err != nil {
		return recs
	}
	t := doc.Thresholds
	if t.HeatDifferential == 0.5 {
		recs = append(recs, jouletypes.Recommendation{
			Title:           "Raise Heat Differential",
			Message:         "Raising your heat differential from 0.5°F to 1.0°F reduces cycling, improves efficiency, maintains comfort",
			SavingsEstimate: 42,
		})
	}
	if t.CoolDifferential == 0.5 {
		recs = append(recs, jouletypes.Recommendation{
			Title:           "Raise Cool Differential",
			Message:         "Raising your cool differential from 0.5°F to 1.0°F reduces cycling, improves efficiency, maintains comfort",
			SavingsEstimate: 28,
		})
	}
	return recs
}

// SetRecommendations stores pipeline-provided recommendations.
func (a *AnalysisService) SetRecommendations(recs []jouletypes.Recommendation) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc.Extra = recs
	return a.writeLocked()
}

func (a *AnalysisService) writeLocked() error {
	if a.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(a.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis cache: %w", err)
	}
	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to save analysis cache: %w", err)
	}
	if err := os.Rename(tmp, a.path); err != nil {
		return fmt.Errorf("failed to save analysis cache: %w", err)
	}
	return nil
}
