package parser

import (
	"regexp"
	"strconv"
	"strings"

	"joule/pkg/jouletypes"
)

// Navigation, analytics, and diagnostics queries. Diagnostics patterns run
// before the broader navigation fallbacks so "what problems do I have"
// never reads as a page jump.

var (
	reUndo       = regexp.MustCompile(`(?i)^undo\b|undo\s+last\s+change|revert\s+last\s+change`)
	reWhatIfSEER = regexp.MustCompile(`(?i)what\s+if.*?(\d+\.?\d*)\s*seer`)
	reBreakEven  = regexp.MustCompile(`(?i)break\s?[-\s]?even|payback`)
	reDollars    = regexp.MustCompile(`\$?(\d+[,\d]*)`)

	reNavForecast    = regexp.MustCompile(`(?i)(?:forecast|7\s*day|weekly|week|predict|estimate\s+cost)`)
	reNavComparison  = regexp.MustCompile(`(?i)(?:compar|vs|versus|heat\s*pump\s+vs|gas\s+vs|compare\s+systems)`)
	reNavBalance     = regexp.MustCompile(`(?i)(?:balance\s*point|energy\s+flow|performance\s+graph|visualiz)`)
	reNavCharging    = regexp.MustCompile(`(?i)(?:charging|subcool|refrigerant|charge\s+calculator|a/?c\s+charg)`)
	reNavAnalyzer    = regexp.MustCompile(`(?i)(?:performance\s+analyz|thermal\s+factor|building\s+factor|upload\s+thermostat|analyze\s+data)`)
	reNavMethodology = regexp.MustCompile(`(?i)(?:methodology|how\s+(?:does|do)\s+(?:the\s+)?(?:math|calculation)|explain\s+(?:the\s+)?(?:math|formula)|formula)`)
	reNavSettings    = regexp.MustCompile(`(?i)(?:settings|preferences|configuration|adjust\s+settings|change\s+settings)`)
	reNavSettingsNot = regexp.MustCompile(`winter|summer|temp`)
	reNavThermostat  = regexp.MustCompile(`(?i)(?:thermostat\s+(?:strategy|analyz)|setback|constant\s+temp|nightly\s+setback|thermostat\s+compar)`)
	reNavBudget      = regexp.MustCompile(`(?i)(?:monthly\s+budget|budget\s+plan|track\s+costs|budget\s+tool|plan\s+budget)`)
	reNavContactors  = regexp.MustCompile(`(?i)(?:show|open|display)\s+(?:the\s+)?(?:contactor|hardware|relay)(?:\s+demo)?|(?:show|open)\s+hardware\s+demo`)
	reNavROI         = regexp.MustCompile(`(?i)(?:upgrade|roi|return\s+on\s+investment|payback|should\s+i\s+upgrade)`)

	reEnergyUsage  = regexp.MustCompile(`(?i)(?:how\s+much\s+energy|energy\s+used|electricity\s+used|kwh\s+used).*(?:last|past)\s+(\d+)\s+days?`)
	reUsageDays    = regexp.MustCompile(`(?i)(?:last|past)\s+(\d+)\s+days?`)
	reAverageDaily = regexp.MustCompile(`(?i)(?:average\s+(?:daily\s+)?(?:energy|electricity|kwh)|daily\s+average|how\s+much.*per\s+day)`)
	reMonthlySpend = regexp.MustCompile(`(?i)(?:monthly\s+(?:cost|spend|bill)|how\s+much.*month|cost.*month)`)

	reFullAnalysis   = regexp.MustCompile(`(?i)(?:run|do|give|show)\s+(?:a\s+)?(?:comprehensive|complete|full)\s+(?:analysis|report|assessment|review)`)
	reSystemAnalysis = regexp.MustCompile(`(?i)(?:analyze|check|inspect|review)\s+(?:my\s+)?(?:system|performance|efficiency)`)
	reCostForecast   = regexp.MustCompile(`(?i)(?:show|tell)\s+(?:me\s+)?(?:the\s+)?(?:cost\s+)?forecast|(?:cost|expense|bill)\s+(?:forecast|prediction|estimate|next\s+week|this\s+week)`)
	reSavingsQuery   = regexp.MustCompile(`(?i)(?:all\s+my\s+savings|total\s+savings|how\s+much.*save|savings\s+potential|calculate.*savings)`)

	reCalcCharging = regexp.MustCompile(`(?i)(?:calculate|check|what'?s?)\s+(?:my\s+)?(?:charging|subcool|superheat|target\s+subcool)`)
	reRefrigerant  = regexp.MustCompile(`(?i)r[-\s]?(\d{3}[a-z]?)`)
	reAmbientTemp  = regexp.MustCompile(`(?i)(\d{2,3})\s*°?f?\s*(?:outdoor|outside|ambient)`)
	reCalcPerf     = regexp.MustCompile(`(?i)(?:what'?s?\s+(?:my\s+)?(?:heat\s+loss|thermal)\s+factor|calculate.*performance|system\s+performance)`)
	reHeatLossAt   = regexp.MustCompile(`(?i)(?:what'?s?|what\s+is|calculate|show\s+me)\s+(?:my\s+)?(?:heat\s+loss|heat\s+loss\s+rate)\s+(?:at|when|when\s+it'?s?|when\s+outside\s+is)\s+(\d+)\s*°?\s*f?`)
	reCalcSetback  = regexp.MustCompile(`(?i)(?:setback\s+savings|thermostat\s+(?:strategy|schedule)|how\s+much.*setback|savings.*setback)`)
	reCompareQuery = regexp.MustCompile(`(?i)(?:compare.*(?:heat\s+pump|gas)|heat\s+pump\s+vs|gas\s+vs|which\s+is\s+cheaper)`)

	reDiagnostics   = regexp.MustCompile(`(?i)(?:what\s+(?:problems?|issues?)|diagnostics?|check\s+(?:my\s+)?system|system\s+(?:problems?|issues?)|any\s+(?:problems?|issues?))`)
	reShortCycling  = regexp.MustCompile(`(?i)(?:short\s+cycl|rapid\s+cycl|turning\s+on\s+and\s+off|cycl.*problem)`)
	reCsvInfo       = regexp.MustCompile(`(?i)(?:thermostat\s+data|csv\s+data|uploaded\s+data|my\s+data|data\s+file)`)
	reAuxHeatIssue  = regexp.MustCompile(`(?i)(?:aux(?:iliary)?\s+heat|emergency\s+heat|backup\s+heat).*(?:problem|issue|high|excessive)`)
	reTempStability = regexp.MustCompile(`(?i)(?:temperature\s+swing|temp.*unstable|temperature.*fluctuat)`)

	reShowMe = regexp.MustCompile(`(?i)show\s+(?:me\s+)?(.+)`)
)

func parseAnalytics(q string) *jouletypes.ParsedCommand {
	qLower := strings.ToLower(q)

	if reUndo.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionUndo}
	}
	if m := reWhatIfSEER.FindStringSubmatch(q); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionWhatIfSEER, Value: v}
	}
	if reBreakEven.MatchString(q) {
		cost := 8000
		if m := reDollars.FindStringSubmatch(q); m != nil {
			if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
				cost = n
			}
		}
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionBreakEven, Cost: float64(cost)}
	}

	navigate := func(target string) *jouletypes.ParsedCommand {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionNavigate, Target: target}
	}

	if reNavForecast.MatchString(q) && !strings.Contains(qLower, "thermostat") {
		return navigate("forecast")
	}
	if reNavComparison.MatchString(q) {
		return navigate("comparison")
	}
	if reNavBalance.MatchString(q) {
		return navigate("balance")
	}
	if reNavCharging.MatchString(q) {
		return navigate("charging")
	}
	if reNavAnalyzer.MatchString(q) {
		return navigate("analyzer")
	}
	if reNavMethodology.MatchString(q) {
		return navigate("methodology")
	}
	if reNavSettings.MatchString(q) && !reNavSettingsNot.MatchString(qLower) {
		return navigate("settings")
	}
	if reNavThermostat.MatchString(q) {
		return navigate("thermostat")
	}
	if reNavBudget.MatchString(q) {
		return navigate("budget")
	}
	if reNavContactors.MatchString(q) {
		return navigate("contactors")
	}

	if reEnergyUsage.MatchString(q) {
		if m := reUsageDays.FindStringSubmatch(q); m != nil {
			days, _ := strconv.Atoi(m[1])
			return &jouletypes.ParsedCommand{Action: jouletypes.ActionEnergyUsage, Days: days}
		}
	}
	if reAverageDaily.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionAverageDaily}
	}
	if reMonthlySpend.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionMonthlySpend}
	}

	if reFullAnalysis.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionFullAnalysis}
	}
	if reSystemAnalysis.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSystemAnalysis}
	}
	if reCostForecast.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionCostForecast}
	}
	if reSavingsQuery.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSavingsAnalysis}
	}

	if reCalcCharging.MatchString(q) {
		cmd := &jouletypes.ParsedCommand{Action: jouletypes.ActionCalcCharging, Refrigerant: "R-410A"}
		if m := reRefrigerant.FindStringSubmatch(q); m != nil {
			cmd.Refrigerant = "R-" + strings.ToUpper(m[1])
		}
		if m := reAmbientTemp.FindStringSubmatch(q); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				cmd.OutdoorTemp = float64(n)
				cmd.HasOutdoor = true
			}
		}
		return cmd
	}
	if reCalcPerf.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionCalcPerformance}
	}
	if m := reHeatLossAt.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= -20 && n <= 100 {
			return &jouletypes.ParsedCommand{Action: jouletypes.ActionCalcHeatLoss, OutdoorTemp: float64(n), HasOutdoor: true}
		}
	}
	if reCalcSetback.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionCalcSetback}
	}
	if reCompareQuery.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionCompareSystem}
	}

	if reDiagnostics.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionShowDiagnostics}
	}
	if reShortCycling.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionCheckShortCycling}
	}
	if reCsvInfo.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionShowCsvInfo}
	}
	if reAuxHeatIssue.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionCheckAuxHeat}
	}
	if reTempStability.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionCheckTempStability}
	}

	if reNavROI.MatchString(q) && !strings.Contains(qLower, "break") {
		return navigate("roi")
	}

	// Loose "show me X" falls through to the page whose name it contains,
	// else reads X as a city for the forecast.
	if m := reShowMe.FindStringSubmatch(q); m != nil {
		target := strings.ToLower(m[1])
		switch {
		case strings.Contains(target, "forecast"):
			return navigate("forecast")
		case strings.Contains(target, "compar"):
			return navigate("comparison")
		case strings.Contains(target, "balanc"), strings.Contains(target, "flow"):
			return navigate("balance")
		case strings.Contains(target, "charg"):
			return navigate("charging")
		case strings.Contains(target, "analyz"), strings.Contains(target, "performance"):
			return navigate("analyzer")
		case strings.Contains(target, "method"), strings.Contains(target, "math"):
			return navigate("methodology")
		case strings.Contains(target, "setting"):
			return navigate("settings")
		case strings.Contains(target, "thermostat"), strings.Contains(target, "setback"):
			return navigate("thermostat")
		case strings.Contains(target, "budget"):
			return navigate("budget")
		case strings.Contains(target, "upgrade"), strings.Contains(target, "roi"):
			return navigate("roi")
		}
		return &jouletypes.ParsedCommand{
			Action:   jouletypes.ActionNavigate,
			Target:   "forecast",
			CityName: strings.TrimSpace(m[1]),
		}
	}
	return nil
}

var (
	reEducate       = regexp.MustCompile(`(?i)(?:what\s+is|explain|tell\s+me\s+about|how\s+is.*calculated)\s+(hspf|seer|cop|hdd|cdd|insulation|aux\s*heat|energy\s+factor|thermal\s+factor|building\s+factor)`)
	reThermalFactor = regexp.MustCompile(`(?i)(?:how\s+is|how\s+do\s+you\s+calculate|what\s+is)\s+(?:my\s+)?(?:home'?s?\s+)?(?:energy\s+factor|thermal\s+factor|building\s+factor)`)
	reHighBill      = regexp.MustCompile(`(?i)why.*?bill\s+(?:so\s+)?high|high\s+bill`)
	reNormalFor     = regexp.MustCompile(`(?i)what'?s?\s+normal\s+(?:for|in)\s+([A-Za-z\s,]+)`)
)

func parseEducation(q string) *jouletypes.ParsedCommand {
	if m := reEducate.FindStringSubmatch(q); m != nil {
		topic := strings.ReplaceAll(strings.ToLower(m[1]), " ", "")
		if strings.Contains(topic, "energyfactor") || strings.Contains(topic, "thermalfactor") || strings.Contains(topic, "buildingfactor") {
			topic = "thermalFactor"
		}
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionEducate, Topic: topic}
	}
	if reThermalFactor.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionEducate, Topic: "thermalFactor"}
	}
	if reHighBill.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionExplainBill}
	}
	if m := reNormalFor.FindStringSubmatch(q); m != nil {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionNormalForCity, CityName: strings.TrimSpace(m[1])}
	}
	return nil
}
