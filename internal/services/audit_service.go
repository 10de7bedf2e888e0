package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"joule/pkg/jouletypes"
)

// RevertFunc writes a settings key back to a previous value during undo.
type RevertFunc func(key string, value interface{}) error

// AuditService records one immutable entry per successful settings
// mutation. Entries leave the log only through Clear or a per-entry undo,
// which reverts the settings key without appending a new entry.
type AuditService struct {
	mu      sync.Mutex
	entries []jouletypes.AuditLogEntry
	revert  RevertFunc

	now   func() time.Time
	newID func() string
}

// NewAuditService creates an audit log that reverts settings through fn.
func NewAuditService(fn RevertFunc) *AuditService {
	return &AuditService{
		revert: fn,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Name returns the service name "audit" for registration.
func (a *AuditService) Name() string {
	return "audit"
}

// Initialize is a no-op; the log starts empty every session.
func (a *AuditService) Initialize() error {
	return nil
}

// Record appends one entry for a completed mutation and returns it.
func (a *AuditService) Record(key string, oldValue, newValue interface{}, source, comment string) jouletypes.AuditLogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry := jouletypes.AuditLogEntry{
		ID:        a.newID(),
		Timestamp: a.now().Format(time.RFC3339),
		Key:       key,
		OldValue:  oldValue,
		NewValue:  newValue,
		Source:    source,
		Comment:   comment,
	}
	a.entries = append(a.entries, entry)
	return entry
}

// Entries returns a copy of the log in append order.
func (a *AuditService) Entries() []jouletypes.AuditLogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]jouletypes.AuditLogEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Undo reverts the settings key of the identified entry to its old value
// and removes the entry. The revert itself must not be audited, so the
// revert function is called outside the normal mutation path.
func (a *AuditService) Undo(id string) error {
	a.mu.Lock()
	idx := -1
	for i, entry := range a.entries {
		if entry.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.mu.Unlock()
		return fmt.Errorf("audit entry %s not found", id)
	}
	entry := a.entries[idx]
	a.entries = append(a.entries[:idx], a.entries[idx+1:]...)
	a.mu.Unlock()

	if a.revert == nil {
		return fmt.Errorf("undo is not available: no revert sink")
	}
	return a.revert(entry.Key, entry.OldValue)
}

// UndoLast reverts the most recent entry. It reports false when the log is
// empty.
func (a *AuditService) UndoLast() bool {
	a.mu.Lock()
	if len(a.entries) == 0 {
		a.mu.Unlock()
		return false
	}
	id := a.entries[len(a.entries)-1].ID
	a.mu.Unlock()

	return a.Undo(id) == nil
}

// Clear empties the log.
func (a *AuditService) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = nil
}

// ExportJSON renders the log as a JSON array.
func (a *AuditService) ExportJSON() ([]byte, error) {
	entries := a.Entries()
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export audit log: %w", err)
	}
	return data, nil
}

// ExportCSV renders the log as CSV with a fixed header. Every value is
// quoted and internal quotes are doubled.
func (a *AuditService) ExportCSV() string {
	entries := a.Entries()

	var b strings.Builder
	b.WriteString("timestamp,key,oldValue,newValue,source,comment\n")
	for _, entry := range entries {
		fields := []string{
			entry.Timestamp,
			entry.Key,
			formatAuditValue(entry.OldValue),
			formatAuditValue(entry.NewValue),
			entry.Source,
			entry.Comment,
		}
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatAuditValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
