// Package parser turns natural-language thermostat queries into tagged
// commands. Parsing is pure string work with no service access: sales
// lookups are delegated through SalesResolver and device state is filled
// in later by the dispatcher.
package parser

import (
	"strings"

	"joule/pkg/jouletypes"
)

// SalesResolver answers presales questions from the FAQ corpus. A nil
// resolver disables the sales path.
type SalesResolver interface {
	HasSalesIntent(query string) bool
	Answer(query string) (string, bool)
	FallbackAnswer() string
}

// Parse runs the full pipeline: sales intent, offline answers, the local
// command grammar, then freeform fact extraction for LLM context. The
// result always has exactly one variant populated.
func Parse(query string, sales SalesResolver) jouletypes.ParsedCommand {
	q := strings.TrimSpace(query)
	if q == "" {
		return jouletypes.ParsedCommand{}
	}

	if sales != nil && sales.HasSalesIntent(q) {
		answer, ok := sales.Answer(q)
		if !ok {
			answer = sales.FallbackAnswer()
		}
		return jouletypes.ParsedCommand{IsSalesQuery: true, SalesAnswer: answer}
	}

	// Offline answers outrank commands so they keep working with no API
	// key configured.
	if offline := parseOfflineAnswer(q); offline != nil {
		offline.IsCommand = true
		return *offline
	}

	if cmd := ParseLocalCommand(q); cmd != nil {
		cmd.IsCommand = true
		return *cmd
	}

	return jouletypes.ParsedCommand{Facts: extractFacts(q)}
}
