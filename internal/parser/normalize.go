package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var rateRe = regexp.MustCompile(`(?i)\$?(\d+(?:\.\d+)?)(?:\s*(cents?|¢|/kwh|kwh))?`)

// to24Hour converts a parsed clock reading to "HH:MM". The meridiem is
// "am", "pm", or empty for 24-hour input. Returns false when the reading
// is out of range.
func to24Hour(hourStr, minuteStr, meridiem string) (string, bool) {
	hours, err := strconv.Atoi(hourStr)
	if err != nil {
		return "", false
	}
	minutes := 0
	if minuteStr != "" {
		minutes, err = strconv.Atoi(minuteStr)
		if err != nil {
			return "", false
		}
	}

	switch strings.ToLower(meridiem) {
	case "pm":
		if hours != 12 {
			hours += 12
		}
	case "am":
		if hours == 12 {
			hours = 0
		}
	}

	if hours < 0 || hours >= 24 || minutes < 0 || minutes >= 60 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes), true
}

// parseRate reads a utility rate and normalizes cents to dollars per kWh.
// Bare numbers above 2 are assumed to be cents (12 means $0.12).
func parseRate(s string) (float64, bool) {
	m := rateRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	unit := strings.ToLower(m[2])
	if strings.Contains(unit, "cent") || strings.Contains(unit, "¢") || (unit == "" && v > 2) {
		v /= 100
	}
	return v, true
}

// parseKNumber reads "1,800", "1800", or "1.8k" as an integer.
func parseKNumber(raw string) (int, bool) {
	raw = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, ",", "")))
	if strings.HasSuffix(raw, "k") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(raw, "k"), 64)
		if err != nil {
			return 0, false
		}
		return int(n*1000 + 0.5), true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// formatWithCommas renders an integer with thousands separators.
func formatWithCommas(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// formatFloat renders a float the way a chat answer reads it, with no
// trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
