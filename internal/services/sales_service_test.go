package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesService_HasSalesIntent(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"how much does it cost", true},
		{"does it work with nest", true},
		{"what's included in the box", true},
		{"is there a monthly subscription", true},
		{"do you offer bulk discounts", true},
		{"what is my balance point", false},
		{"set temperature to 72", false},
		{"what is hspf", false},
	}

	s := NewSalesService()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, s.HasSalesIntent(tt.query))
		})
	}
}

func TestSalesService_AnswerMatchesNest(t *testing.T) {
	s := NewSalesService()

	answer, ok := s.Answer("does this work with nest thermostats")
	require.True(t, ok)
	assert.Contains(t, answer, "Ecobee")
	assert.Contains(t, answer, "Waitlist")
}

func TestSalesService_AnswerMatchesEcobee(t *testing.T) {
	s := NewSalesService()

	answer, ok := s.Answer("is ecobee supported")
	require.True(t, ok)
	assert.Contains(t, answer, "Yes! Joule fully supports Ecobee")
}

func TestSalesService_AnswerPrefersMoreKeywordHits(t *testing.T) {
	s := NewSalesService()

	// "honeywell t6" hits three keywords on the Honeywell entry but only
	// overlaps the Nest entry on none.
	answer, ok := s.Answer("will this work with my honeywell t6")
	require.True(t, ok)
	assert.Contains(t, answer, "Honeywell")
}

func TestSalesService_AnswerNoMatch(t *testing.T) {
	s := NewSalesService()

	_, ok := s.Answer("what is the airspeed velocity of an unladen swallow")
	assert.False(t, ok)
}

func TestSalesService_FallbackAnswer(t *testing.T) {
	s := NewSalesService()

	fallback := s.FallbackAnswer()
	assert.Contains(t, fallback, "message the lead engineer directly on eBay")
	assert.Contains(t, fallback, StoreURL)
}
