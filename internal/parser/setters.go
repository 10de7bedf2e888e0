package parser

import (
	"regexp"
	"strconv"
	"strings"

	"joule/pkg/jouletypes"
)

// Direct setting mutations. Each block mirrors one spoken form; ordering
// resolves overlaps (generic temp before winter/summer, what-if before the
// plain HSPF setter).

var (
	reSetGenericTemp = regexp.MustCompile(`(?i)set\s+(?:my\s+)?(?:temp|temperature|thermostat)(?:\s+to)?\s+(\d{2})\b`)
	reSeasonWord     = regexp.MustCompile(`(?i)(?:winter|summer|nighttime|daytime|night|day|sleep|home)`)
	reSetWinter      = regexp.MustCompile(`(?i)(?:set\s+winter(?:\s+(?:thermostat|temp|thermo))?|set\s+thermostat\s+winter)\s*(?:to\s+)?(\d{2})`)
	reSetSummer      = regexp.MustCompile(`(?i)(?:set\s+summer(?:\s+(?:thermostat|temp|thermo))?|set\s+thermostat\s+summer)\s*(?:to\s+)?(\d{2})`)

	reWhatIfHSPF = regexp.MustCompile(`(?i)what\s+if.*?(\d+\.?\d*)\s*hspf`)
	reSetHSPF    = regexp.MustCompile(`(?i)set\s+(?:hspf|hspf2?)\s+(?:to\s+)?(\d+\.?\d*)`)
	reSetSEER    = regexp.MustCompile(`(?i)set\s+(?:seer|efficiency)\s+(?:to\s+)?(\d+\.?\d*)`)

	reSetElectric = regexp.MustCompile(`(?i)set\s+(?:electric|electricity|power|kwh)\s*(?:rate|price|cost)?\s*(?:to\s+)?\$?(\d+(?:\.\d+)?)(?:\s*(cents?|¢))?`)
	reSetUtility  = regexp.MustCompile(`(?i)set\s+(?:utility\s*cost|utility)\s+(?:to\s+)?\$?(\d+(?:\.\d+)?)(?:\s*(cents?))?`)
	reSetLocation = regexp.MustCompile(`(?i)set\s+(?:location|city)\s+(?:to\s+)?([A-Za-z.\-\s,]+?)$`)
	reSetSqFt     = regexp.MustCompile(`(?i)set\s+(?:square\s*feet|sq\s*ft|sqft|square\s*footage|sf)\s+(?:to\s+)?(\d{1,3}(?:,\d{3})?|\d+(?:\.\d+)?k?)\b`)
	reSetInsul    = regexp.MustCompile(`(?i)set\s+insulation\s+to\s+(poor|average|typical|good)`)
	reSetCapacity = regexp.MustCompile(`(?i)set\s+(?:cooling\s+)?capacity\s+(?:to\s+)?(\d{1,2})k?`)
	reSetAFUE     = regexp.MustCompile(`(?i)set\s+(?:afue|furnace\s*efficiency)\s+(?:to\s+)?(\d+(?:\.\d+)?)`)
	reSetShape    = regexp.MustCompile(`(?i)set\s+home\s+shape\s+(?:to\s+)?(\d+(?:\.\d+)?)`)
	reSetSolar    = regexp.MustCompile(`(?i)set\s+solar\s+exposure\s+(?:to\s+)?(\d+(?:\.\d+)?)`)
	reSetMode     = regexp.MustCompile(`(?i)set\s+energy\s+mode\s+(?:to\s+)?(heating|cooling)`)
	reSetPrimary  = regexp.MustCompile(`(?i)set\s+primary\s+system\s+(?:to\s+)?(heat\s*pump|gas\s*furnace)`)
	reSetGasCost  = regexp.MustCompile(`(?i)set\s+gas\s+cost\s+(?:to\s+)?\$?(\d+(?:\.\d+)?)`)
	reSetGasRate  = regexp.MustCompile(`(?i)set\s+(?:gas)\s*(?:rate|price|cost)\s*(?:to\s+)?\$?(\d+(?:\.\d+)?)`)
	reSetRates    = regexp.MustCompile(`(?i)set\s+rates?\s+(?:to\s+)?([^,]+?)(?:\s*(?:and|,|&)\s*([^,]+))$`)
	reSetCooling  = regexp.MustCompile(`(?i)set\s+cooling\s+system\s+(?:to\s+)?(centralAC|central\s*A/C|dual\s*fuel|none|other|dual-fuel)`)
	reSetCeiling  = regexp.MustCompile(`(?i)set\s+ceiling\s+(?:height\s+)?(?:to\s+)?(\d+(?:\.\d+)?)\s*(?:ft|feet)?\b`)
	reSetElev     = regexp.MustCompile(`(?i)set\s+(?:home\s+)?elevation\s+(?:to\s+)?(\d+(?:,\d{3})?)`)

	reAuxTurn     = regexp.MustCompile(`(?i)\bturn\s+(?:on|off)\s+aux(?:iliary)?\s*heat\b`)
	reAuxElectric = regexp.MustCompile(`(?i)\b(use|enable|disable)\s+electric\s+aux\s*heat\b`)
	reAuxOn       = regexp.MustCompile(`\b(turn|use|enable)\b\s+on?`)
	reAuxEnable   = regexp.MustCompile(`(?i)\b(use|enable)\b`)
	reAuxDisable  = regexp.MustCompile(`(?i)\b(turn\s+off|disable)\b`)

	reSetCoolCap = regexp.MustCompile(`(?i)set\s+cooling\s+capacity\s+(?:to\s+)?(\d{1,2})k?`)

	reUseManualLoss = regexp.MustCompile(`(?i)(?:use|set\s+heat\s+loss\s+source\s+to|enable)\s+(?:manual|manually\s+entered)\s+heat\s+loss`)
	reUseCalcLoss   = regexp.MustCompile(`(?i)(?:use|set\s+heat\s+loss\s+source\s+to|enable)\s+(?:calculated|doe|department\s+of\s+energy)\s+heat\s+loss`)
	reUseCSVLoss    = regexp.MustCompile(`(?i)(?:use|set\s+heat\s+loss\s+source\s+to|enable)\s+(?:analyzer|analyzer\s+data|csv|uploaded)\s+heat\s+loss`)
	reManualLoss    = regexp.MustCompile(`(?i)set\s+manual\s+heat\s+loss\s+(?:to\s+)?(\d+(?:\.\d+)?)\s*(?:btu/hr/°f|btu/hr/deg|btu/hr/f)`)
	reAnalyzerLoss  = regexp.MustCompile(`(?i)set\s+analyzer\s+heat\s+loss\s+(?:to\s+)?(\d+(?:\.\d+)?)\s*(?:btu/hr/°f|btu/hr/deg|btu/hr/f)`)

	reAnnualEstOn  = regexp.MustCompile(`(?i)(?:use|enable|turn\s+on)\s+(?:detailed\s+)?annual\s+estimate`)
	reAnnualEstOff = regexp.MustCompile(`(?i)(?:don'?t\s+use|disable|turn\s+off)\s+(?:detailed\s+)?annual\s+estimate`)

	reSetDuration = regexp.MustCompile(`(?i)set\s+(?:voice\s+)?(?:listening\s+)?duration\s+(?:to\s+)?(\d+)\s*(?:seconds?|secs?)`)
	reSetGroqKey  = regexp.MustCompile(`(?i)set\s+groq\s+(?:api\s+)?key\s+(?:to\s+)?(gsk_[a-zA-Z0-9]+)`)
	reSetGroqMdl  = regexp.MustCompile(`(?i)set\s+groq\s+model\s+(?:to\s+)?(llama-3\.\d+-\d+b-[a-z-]+|mixtral-\d+-\d+b-[a-z-]+)`)
	reSetProvider = regexp.MustCompile(`(?i)set\s+(?:ai|llm)\s+provider\s+(?:to\s+)?(groq|openai|anthropic|gemini)`)

	reDarkOn   = regexp.MustCompile(`(?i)(?:switch\s+to|enable|turn\s+on|use)\s+dark\s+mode|dark\s+mode\s+on`)
	reDarkOff  = regexp.MustCompile(`(?i)(?:switch\s+to|enable|turn\s+on|use)\s+light\s+mode|dark\s+mode\s+off`)
	reDarkFlip = regexp.MustCompile(`(?i)toggle\s+dark\s+mode`)

	reCompressorMin = regexp.MustCompile(`(?i)set\s+compressor\s+(?:min\s+)?(?:runtime|cycle\s+off|min\s+cycle)\s+(?:to\s+)?(\d+)\s*(?:minutes?|mins?|min)`)
	reCompressorSec = regexp.MustCompile(`(?i)set\s+compressor\s+(?:min\s+)?(?:runtime|cycle\s+off|min\s+cycle)\s+(?:to\s+)?(\d+)\s*(?:seconds?|secs?)`)
	reHeatDiff      = regexp.MustCompile(`(?i)set\s+heat\s+differential\s+(?:to\s+)?(\d+(?:\.\d+)?)\s*°?f?`)
	reCoolDiff      = regexp.MustCompile(`(?i)set\s+cool\s+differential\s+(?:to\s+)?(\d+(?:\.\d+)?)\s*°?f?`)

	reSleepStart12 = regexp.MustCompile(`(?i)set\s+sleep\s+mode\s+(?:to\s+)?(?:start\s+at|begins?\s+at|starts?\s+at)\s+(\d{1,2})(?::(\d{2}))?\s*(pm|am)`)
	reSleepStart24 = regexp.MustCompile(`(?i)set\s+sleep\s+mode\s+(?:to\s+)?(?:start\s+at|begins?\s+at|starts?\s+at)\s+(\d{1,2}):(\d{2})`)
	reMeridiem     = regexp.MustCompile(`(?i)(am|pm)`)
	reSleepTime12  = regexp.MustCompile(`(?i)set\s+(?:sleep\s+time|bedtime|sleep\s+start)\s+(?:to\s+)?(\d{1,2})(?::(\d{2}))?\s*(pm|am)`)
	reSleepTime24  = regexp.MustCompile(`(?i)set\s+(?:sleep\s+time|bedtime|sleep\s+start)\s+(?:to\s+)?(\d{1,2}):(\d{2})`)
	reWakeTime12   = regexp.MustCompile(`(?i)set\s+(?:wake\s+time|wake\s+up\s+time)\s+(?:to\s+)?(\d{1,2})(?::(\d{2}))?\s*(pm|am)`)
	reWakeTime24   = regexp.MustCompile(`(?i)set\s+(?:wake\s+time|wake\s+up\s+time)\s+(?:to\s+)?(\d{1,2}):(\d{2})`)
	reNightTemp    = regexp.MustCompile(`(?i)set\s+(?:nighttime|night|sleep)\s+temp(?:erature)?\s+(?:to\s+)?(\d{2})`)
	reDayTemp      = regexp.MustCompile(`(?i)set\s+(?:daytime|day|home)\s+temp(?:erature)?\s+(?:to\s+)?(\d{2})`)
	reDayStart     = regexp.MustCompile(`(?i)set\s+(?:daytime|day|wake|home)\s+(?:start\s+)?time\s+(?:to\s+)?(\d{1,2}):?(\d{2})?\s*(am|pm)?`)
)

func parseSetters(q string) *jouletypes.ParsedCommand {
	intCmd := func(action, raw string) *jouletypes.ParsedCommand {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil
		}
		return &jouletypes.ParsedCommand{Action: action, Value: n}
	}
	floatCmd := func(action, raw string) *jouletypes.ParsedCommand {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil
		}
		return &jouletypes.ParsedCommand{Action: action, Value: v}
	}

	// Generic "set my temp to X" defaults to the winter thermostat unless
	// a season or schedule word narrows it.
	if m := reSetGenericTemp.FindStringSubmatch(q); m != nil && !reSeasonWord.MatchString(q) {
		return intCmd(jouletypes.ActionSetWinterTemp, m[1])
	}
	if m := reSetWinter.FindStringSubmatch(q); m != nil {
		return intCmd(jouletypes.ActionSetWinterTemp, m[1])
	}
	if m := reSetSummer.FindStringSubmatch(q); m != nil {
		return intCmd(jouletypes.ActionSetSummerTemp, m[1])
	}

	if m := reWhatIfHSPF.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionWhatIfHSPF, m[1])
	}
	if m := reSetHSPF.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetHSPF, m[1])
	}
	if m := reSetSEER.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetSEER, m[1])
	}

	if m := reSetElectric.FindStringSubmatch(q); m != nil {
		return rateCmd(jouletypes.ActionSetUtilityCost, m[1], m[2])
	}
	if m := reSetUtility.FindStringSubmatch(q); m != nil {
		return rateCmd(jouletypes.ActionSetUtilityCost, m[1], m[2])
	}
	if m := reSetLocation.FindStringSubmatch(q); m != nil {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetLocation, CityName: strings.TrimSpace(m[1])}
	}
	if m := reSetSqFt.FindStringSubmatch(q); m != nil {
		if n, ok := parseKNumber(m[1]); ok {
			return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetSquareFeet, Value: n}
		}
	}
	if m := reSetInsul.FindStringSubmatch(q); m != nil {
		word := strings.ToLower(m[1])
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetInsulationLevel, Value: insulationWords[word], Raw: m[1]}
	}
	if m := reSetCapacity.FindStringSubmatch(q); m != nil {
		return intCmd(jouletypes.ActionSetCapacity, m[1])
	}
	if m := reSetAFUE.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetAFUE, m[1])
	}
	if m := reSetShape.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetHomeShape, m[1])
	}
	if m := reSetSolar.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetSolarExposure, m[1])
	}
	if m := reSetMode.FindStringSubmatch(q); m != nil {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetEnergyMode, Value: strings.ToLower(m[1])}
	}
	if m := reSetPrimary.FindStringSubmatch(q); m != nil {
		system := "gasFurnace"
		if strings.Contains(strings.ToLower(m[1]), "heat") {
			system = "heatPump"
		}
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetPrimarySystem, Value: system}
	}
	if m := reSetGasCost.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetGasCost, m[1])
	}
	if m := reSetGasRate.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetGasCost, m[1])
	}
	if m := reSetRates.FindStringSubmatch(q); m != nil {
		electric, okE := parseRate(m[1])
		gas, okG := parseRate(m[2])
		if okE && okG {
			return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetRates, ElectricRate: electric, GasRate: gas}
		}
	}
	if m := reSetCooling.FindStringSubmatch(q); m != nil {
		val := m[1]
		switch {
		case strings.Contains(strings.ToLower(val), "central"):
			val = "centralAC"
		case strings.Contains(strings.ToLower(val), "dual"):
			val = "dualFuel"
		case strings.Contains(strings.ToLower(val), "none"), strings.Contains(strings.ToLower(val), "other"):
			val = "none"
		}
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetCoolingSystem, Value: val}
	}
	if m := reSetCeiling.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetCeilingHeight, m[1])
	}
	if m := reSetElev.FindStringSubmatch(q); m != nil {
		return intCmd(jouletypes.ActionSetHomeElevation, strings.ReplaceAll(m[1], ",", ""))
	}

	if reAuxTurn.MatchString(q) || reAuxElectric.MatchString(q) {
		if reAuxDisable.MatchString(q) {
			return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetUseElectricAuxHeat, Value: false}
		}
		if reAuxOn.MatchString(q) || reAuxEnable.MatchString(q) {
			return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetUseElectricAuxHeat, Value: true}
		}
	}

	if m := reSetCoolCap.FindStringSubmatch(q); m != nil {
		return intCmd(jouletypes.ActionSetCoolingCapacity, m[1])
	}

	if reUseManualLoss.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionUseManualHeatLoss, Value: true}
	}
	if reUseCalcLoss.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionUseCalculatedHeatLoss, Value: true}
	}
	if reUseCSVLoss.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionUseAnalyzerHeatLoss, Value: true}
	}
	if m := reManualLoss.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetManualHeatLoss, m[1])
	}
	if m := reAnalyzerLoss.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetAnalyzerHeatLoss, m[1])
	}

	if reAnnualEstOn.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetDetailedAnnualEst, Value: true}
	}
	if reAnnualEstOff.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetDetailedAnnualEst, Value: false}
	}

	if m := reSetDuration.FindStringSubmatch(q); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			if n < 2 {
				n = 2
			}
			if n > 30 {
				n = 30
			}
			return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetVoiceListen, Value: n}
		}
	}
	if m := reSetGroqKey.FindStringSubmatch(q); m != nil {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetGroqAPIKey, Value: m[1]}
	}
	if m := reSetGroqMdl.FindStringSubmatch(q); m != nil {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetGroqModel, Value: m[1]}
	}
	if m := reSetProvider.FindStringSubmatch(q); m != nil {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetLLMProvider, Value: strings.ToLower(m[1])}
	}

	if reDarkOn.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetDarkMode, Value: true}
	}
	if reDarkOff.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetDarkMode, Value: false}
	}
	if reDarkFlip.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionToggleDarkMode}
	}

	if m := reCompressorMin.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			// Stored in seconds.
			return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetCompressorMinRuntime, Value: n * 60}
		}
	}
	if m := reCompressorSec.FindStringSubmatch(q); m != nil {
		return intCmd(jouletypes.ActionSetCompressorMinRuntime, m[1])
	}
	if m := reHeatDiff.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetHeatDifferential, m[1])
	}
	if m := reCoolDiff.FindStringSubmatch(q); m != nil {
		return floatCmd(jouletypes.ActionSetCoolDifferential, m[1])
	}

	if cmd := parseScheduleTimes(q); cmd != nil {
		return cmd
	}
	return nil
}

func rateCmd(action, raw, unit string) *jouletypes.ParsedCommand {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	if unit != "" || v > 2 {
		// Bare numbers above 2 read as cents: 12 means $0.12.
		v /= 100
	}
	return &jouletypes.ParsedCommand{Action: action, Value: v}
}

func parseScheduleTimes(q string) *jouletypes.ParsedCommand {
	timeCmd := func(action string, m []string, meridiem string) *jouletypes.ParsedCommand {
		if t, ok := to24Hour(m[1], m[2], meridiem); ok {
			return &jouletypes.ParsedCommand{Action: action, Value: t}
		}
		return nil
	}

	if m := reSleepStart12.FindStringSubmatch(q); m != nil {
		return timeCmd(jouletypes.ActionSetSleepModeStartTime, m, m[3])
	}
	if m := reSleepStart24.FindStringSubmatch(q); m != nil && !reMeridiem.MatchString(q) {
		return timeCmd(jouletypes.ActionSetSleepModeStartTime, m, "")
	}
	if m := reSleepTime12.FindStringSubmatch(q); m != nil {
		return timeCmd(jouletypes.ActionSetSleepTime, m, m[3])
	}
	if m := reSleepTime24.FindStringSubmatch(q); m != nil {
		return timeCmd(jouletypes.ActionSetSleepTime, m, "")
	}
	if m := reWakeTime12.FindStringSubmatch(q); m != nil {
		return timeCmd(jouletypes.ActionSetWakeTime, m, m[3])
	}
	if m := reWakeTime24.FindStringSubmatch(q); m != nil {
		return timeCmd(jouletypes.ActionSetWakeTime, m, "")
	}

	if m := reNightTemp.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 45 && n <= 85 {
			return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetNighttimeTemp, Value: n}
		}
	}
	if m := reDayTemp.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 45 && n <= 85 {
			return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetDaytimeTemp, Value: n}
		}
	}
	if m := reDayStart.FindStringSubmatch(q); m != nil {
		return timeCmd(jouletypes.ActionSetDaytimeStartTime, m, m[3])
	}
	return nil
}
