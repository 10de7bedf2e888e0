package parser

import (
	"regexp"
	"strconv"
	"strings"

	"joule/pkg/jouletypes"
)

// Freeform fact extraction for questions that are not commands. These feed
// the LLM context block and the what-if resolvers.

var insulationWords = map[string]float64{
	"poor":    1.4,
	"average": 1.0,
	"typical": 1.0,
	"good":    0.65,
}

var (
	reFactSqFt  = regexp.MustCompile(`(?i)((?:\d{1,3}(?:,\d{3})+)|\d{3,6}|\d+(?:\.\d+)?\s*k)\s*(?:sq\s*?ft|square\s*feet|sf)\b`)
	reFactTemp  = regexp.MustCompile(`(?i)(?:at|to|set(?:\s*it)?\s*to)\s*(\d{2})(?:\s*°?\s*F|\s*F)?\b|(\d{2})\s*(?:degrees|°)`)
	reFactInsul = regexp.MustCompile(`(?i)(poor|average|typical|good)\s+insulation|\b(poor|average|typical|good)\b`)

	reFactHeatPump = regexp.MustCompile(`(?i)heat\s*pump|hp\b`)
	reFactFurnace  = regexp.MustCompile(`(?i)gas\s*(?:furnace)?|furnace`)
	reFactHeating  = regexp.MustCompile(`(?i)\bheating\b|keep\s*it\s*w?arm`)
	reFactCooling  = regexp.MustCompile(`(?i)\bcooling\b|keep\s*it\s*cool`)

	reCityInComma = regexp.MustCompile(`(?i)\bin\s+([A-Za-z.\-\s]+?,\s*[A-Z]{2})\b`)
	reCityBare    = regexp.MustCompile(`(^|\s)([A-Z][A-Za-z.\s-]+?,\s*[A-Z]{2})\b`)
	reCityIn      = regexp.MustCompile(`(?i)\bin\s+([A-Za-z.\s-]+?)(?:,|\s+(?:at|to|set|with|for|on|keep|good|poor|excellent|bad|\d|$))`)
	reCityStart   = regexp.MustCompile(`^([A-Z][A-Za-z.-]*(?:\s+[A-Z][A-Za-z.-]*)*)\s+(?:keep|set|at|to|with|for|on|\d)`)
)

func extractFacts(q string) *jouletypes.QueryFacts {
	return &jouletypes.QueryFacts{
		CityName:        extractCity(q),
		SquareFeet:      extractSquareFeet(q),
		InsulationLevel: extractInsulation(q),
		IndoorTemp:      extractIndoorTemp(q),
		PrimarySystem:   extractSystem(q),
		EnergyMode:      extractMode(q),
	}
}

// extractSquareFeet reads "2,000 sq ft", "1800 square feet", or "1.8k sf".
func extractSquareFeet(q string) *int {
	m := reFactSqFt.FindStringSubmatch(q)
	if m == nil {
		return nil
	}
	raw := strings.TrimSpace(strings.ToLower(m[1]))
	if n, ok := parseKNumber(raw); ok {
		return &n
	}
	return nil
}

// extractIndoorTemp reads "at 72", "to 72", or "72 degrees". Values outside
// the 45-85 thermostat range are ignored to avoid year numbers.
func extractIndoorTemp(q string) *int {
	m := reFactTemp.FindStringSubmatch(q)
	if m == nil {
		return nil
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 45 || n > 85 {
		return nil
	}
	return &n
}

func extractInsulation(q string) *float64 {
	m := reFactInsul.FindStringSubmatch(q)
	if m == nil {
		return nil
	}
	word := m[1]
	if word == "" {
		word = m[2]
	}
	if coeff, ok := insulationWords[strings.ToLower(word)]; ok {
		return &coeff
	}
	return nil
}

func extractSystem(q string) string {
	if reFactHeatPump.MatchString(q) {
		return "heatPump"
	}
	if reFactFurnace.MatchString(q) {
		return "gasFurnace"
	}
	return ""
}

func extractMode(q string) string {
	if reFactHeating.MatchString(q) {
		return "heating"
	}
	if reFactCooling.MatchString(q) {
		return "cooling"
	}
	return ""
}

// extractCity tries, in order: "in City, ST", a bare "City, ST", "in City"
// stopped at a keyword, then a leading capitalized run before a stop word.
func extractCity(q string) string {
	if m := reCityInComma.FindStringSubmatch(q); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reCityBare.FindStringSubmatch(q); m != nil {
		return strings.TrimSpace(m[2])
	}
	if m := reCityIn.FindStringSubmatch(q); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reCityStart.FindStringSubmatch(q); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
