package parser

import (
	"fmt"
	"regexp"
	"strconv"

	"joule/pkg/jouletypes"
)

// Answers Joule can give without any network access. Device-state lookups
// return NeedsContext so the caller fills in live readings; the rest carry
// a finished answer.

const (
	knowledgeShortCycling = "Short cycling occurs when your HVAC system turns on and off too frequently (typically less than 5 minutes). This wastes energy, increases wear, and reduces efficiency. Common causes: oversized equipment, incorrect differential settings, or thermostat placement issues."
	knowledgeSetback      = "A setback is lowering your thermostat temperature during unoccupied hours (typically 1-2°F for 8 hours). Lowering the temp by 1°F for 8 hours saves approximately 1% on heating costs. Nighttime setbacks are especially effective."
	knowledgeDifferential = "A differential (dead band) is the temperature range where your HVAC doesn't run. Standard is 0.5°F. ProStat recommends 1.0°F for efficiency - it reduces short cycling and saves energy while maintaining comfort."
)

var (
	reOfflineTemp        = regexp.MustCompile(`(?i)what'?s?\s+(?:the\s+)?(?:current\s+)?(?:temp|temperature)`)
	reOfflineHvacStatus  = regexp.MustCompile(`(?i)is\s+(?:the\s+)?(?:heat|hvac)\s+(?:on|running)`)
	reOfflineHumidity    = regexp.MustCompile(`(?i)what'?s?\s+(?:the\s+)?(?:current\s+)?humidity`)
	reOfflineBalance     = regexp.MustCompile(`(?i)what'?s?\s+(?:my\s+)?balance\s+point`)
	reOfflineYesterday   = regexp.MustCompile(`(?i)how\s+much\s+did\s+i\s+spend\s+yesterday`)
	reOfflineShortCycle  = regexp.MustCompile(`(?i)what\s+is\s+short\s+cycl`)
	reOfflineSetbackWhy  = regexp.MustCompile(`(?i)why\s+should\s+i\s+use\s+(?:a\s+)?setback`)
	reOfflineDiff        = regexp.MustCompile(`(?i)what\s+is\s+(?:a\s+)?(?:good\s+)?differential`)
	reConvertCToF        = regexp.MustCompile(`(?i)convert\s+(\d+(?:\.\d+)?)\s+celsius\s+to\s+fahrenheit`)
	reConvertFToC        = regexp.MustCompile(`(?i)convert\s+(\d+(?:\.\d+)?)\s+fahrenheit\s+to\s+celsius`)
	reTonsToBtu          = regexp.MustCompile(`(?i)how\s+many\s+btus?\s+is\s+(\d+(?:\.\d+)?)\s+tons?`)
	reKwhCost            = regexp.MustCompile(`(?i)if\s+i\s+pay\s+(\d+(?:\.\d+)?)\s+cents?\s+per\s+kwh,?\s+how\s+much\s+is\s+(\d+(?:\.\d+)?)\s+kwh`)
	reCheckFirmware      = regexp.MustCompile(`(?i)is\s+(?:my\s+)?firmware\s+up\s+to\s+date`)
	reCheckBridge        = regexp.MustCompile(`(?i)is\s+(?:the\s+)?bridge\s+connected`)
	reCheckLastUpdate    = regexp.MustCompile(`(?i)when\s+was\s+(?:your|the|my|a)?\s*last\s+data\s+update|when\s+was\s+the\s+last\s+update|when\s+was\s+your\s+last\s+update`)
	rePodBayDoors        = regexp.MustCompile(`(?i)open\s+(?:the\s+)?pod\s+bay\s+doors`)
)

// parseOfflineAnswer matches queries Joule answers without an LLM round
// trip. Returns nil when nothing matches.
func parseOfflineAnswer(q string) *jouletypes.ParsedCommand {
	contextual := func(typ string) *jouletypes.ParsedCommand {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionOfflineAnswer, Type: typ, NeedsContext: true}
	}
	knowledge := func(answer string) *jouletypes.ParsedCommand {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionOfflineAnswer, Type: "knowledge", Answer: answer}
	}
	calculator := func(answer string) *jouletypes.ParsedCommand {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionOfflineAnswer, Type: "calculator", Answer: answer}
	}
	statusCheck := func(check string) *jouletypes.ParsedCommand {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionOfflineAnswer, Type: "systemStatus", Check: check}
	}

	// Live device state.
	switch {
	case reOfflineTemp.MatchString(q):
		return contextual("temperature")
	case reOfflineHvacStatus.MatchString(q):
		return contextual("hvacStatus")
	case reOfflineHumidity.MatchString(q):
		return contextual("humidity")
	case reOfflineBalance.MatchString(q):
		return contextual("balancePoint")
	case reOfflineYesterday.MatchString(q):
		return contextual("yesterdayCost")
	}

	// Canned engineering knowledge.
	switch {
	case reOfflineShortCycle.MatchString(q):
		return knowledge(knowledgeShortCycling)
	case reOfflineSetbackWhy.MatchString(q):
		return knowledge(knowledgeSetback)
	case reOfflineDiff.MatchString(q):
		return knowledge(knowledgeDifferential)
	}

	// Unit conversions and quick math.
	if m := reConvertCToF.FindStringSubmatch(q); m != nil {
		c, _ := strconv.ParseFloat(m[1], 64)
		f := c*9/5 + 32
		return calculator(fmt.Sprintf("%s°C = %.1f°F", formatFloat(c), f))
	}
	if m := reConvertFToC.FindStringSubmatch(q); m != nil {
		f, _ := strconv.ParseFloat(m[1], 64)
		c := (f - 32) * 5 / 9
		return calculator(fmt.Sprintf("%s°F = %.1f°C", formatFloat(f), c))
	}
	if m := reTonsToBtu.FindStringSubmatch(q); m != nil {
		tons, _ := strconv.ParseFloat(m[1], 64)
		btus := int(tons * 12000)
		plural := "s"
		if tons == 1 {
			plural = ""
		}
		return calculator(fmt.Sprintf("%s ton%s = %s BTU/hr", formatFloat(tons), plural, formatWithCommas(btus)))
	}
	if m := reKwhCost.FindStringSubmatch(q); m != nil {
		rateCents, _ := strconv.ParseFloat(m[1], 64)
		kwh, _ := strconv.ParseFloat(m[2], 64)
		cost := rateCents / 100 * kwh
		return calculator(fmt.Sprintf("%s kWh at %s¢/kWh = $%.2f", formatFloat(kwh), formatFloat(rateCents), cost))
	}

	// Device health checks.
	switch {
	case reCheckFirmware.MatchString(q):
		return statusCheck("firmware")
	case reCheckBridge.MatchString(q):
		return statusCheck("bridge")
	case reCheckLastUpdate.MatchString(q):
		return statusCheck("lastUpdate")
	}

	if rePodBayDoors.MatchString(q) {
		return &jouletypes.ParsedCommand{
			Action: jouletypes.ActionOfflineAnswer,
			Type:   "easterEgg",
			Answer: "I'm sorry, Dave. I can't do that. But I can turn on the fan.",
		}
	}

	return nil
}
