package services

import "sync"

// historyCap bounds the command history; the oldest entry is evicted once
// the cap is reached.
const historyCap = 50

// HistoryService keeps the raw utterance history, most recent first.
type HistoryService struct {
	mu      sync.RWMutex
	entries []string
}

// NewHistoryService creates an empty command history.
func NewHistoryService() *HistoryService {
	return &HistoryService{}
}

// Name returns the service name "history" for registration.
func (h *HistoryService) Name() string {
	return "history"
}

// Initialize is a no-op; the history starts empty every session.
func (h *HistoryService) Initialize() error {
	return nil
}

// Append records a submitted utterance at the front of the history,
// evicting the oldest entry beyond the cap.
func (h *HistoryService) Append(raw string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]string{raw}, h.entries...)
	if len(h.entries) > historyCap {
		h.entries = h.entries[:historyCap]
	}
}

// Entries returns a copy of the history, most recent first.
func (h *HistoryService) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Recent returns up to n entries in chronological order, oldest first,
// shaped for conversational context assembly.
func (h *HistoryService) Recent(n int) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

// Len returns the number of stored entries.
func (h *HistoryService) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
