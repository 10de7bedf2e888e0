package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"joule/internal/logger"
	"joule/pkg/jouletypes"
)

// diagnosticsDocument is the persisted analyzer output: the issue
// snapshot plus the CSV upload it was derived from.
type diagnosticsDocument struct {
	Snapshot *jouletypes.DiagnosticsSnapshot `json:"snapshot,omitempty"`
	CSVInfo  *jouletypes.CSVInfo             `json:"csvInfo,omitempty"`
}

// DiagnosticsService caches the performance-analyzer output on disk.
// Snapshot and CSVInfo return an error only when no data has ever been
// stored; a stored snapshot with zero issues means a clean system.
type DiagnosticsService struct {
	mu   sync.RWMutex
	path string
	doc  *diagnosticsDocument
}

// NewDiagnosticsService creates a diagnostics service persisting to
// path. An empty path keeps data in memory only.
func NewDiagnosticsService(path string) *DiagnosticsService {
	return &DiagnosticsService{path: path}
}

// Name returns the service name "diagnostics" for registration.
func (d *DiagnosticsService) Name() string {
	return "diagnostics"
}

// Initialize loads the cached analyzer output. A missing file is not an
// error; it means nothing has been uploaded yet.
func (d *DiagnosticsService) Initialize() error {
	if d.path == "" {
		return nil
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read diagnostics cache", "path", d.path, "error", err)
		}
		return nil
	}
	var doc diagnosticsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("diagnostics cache is corrupt, ignoring", "path", d.path, "error", err)
		return nil
	}
	d.mu.Lock()
	d.doc = &doc
	d.mu.Unlock()
	return nil
}

// Snapshot returns the cached issue snapshot. The error return means no
// usable data has been uploaded.
func (d *DiagnosticsService) Snapshot() (*jouletypes.DiagnosticsSnapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.doc == nil {
		return nil, fmt.Errorf("no thermostat data uploaded")
	}
	return d.doc.Snapshot, nil
}

// CSVInfo returns the upload metadata behind the snapshot.
func (d *DiagnosticsService) CSVInfo() (*jouletypes.CSVInfo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.doc == nil || d.doc.CSVInfo == nil {
		return nil, fmt.Errorf("no thermostat data uploaded")
	}
	return d.doc.CSVInfo, nil
}

// Store replaces the cached analyzer output and persists it.
func (d *DiagnosticsService) Store(snapshot *jouletypes.DiagnosticsSnapshot, info *jouletypes.CSVInfo) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doc = &diagnosticsDocument{Snapshot: snapshot, CSVInfo: info}
	return d.writeLocked()
}

func (d *DiagnosticsService) writeLocked() error {
	if d.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(d.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics cache: %w", err)
	}
	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to save diagnostics cache: %w", err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("failed to save diagnostics cache: %w", err)
	}
	return nil
}
