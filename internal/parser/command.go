package parser

import (
	"regexp"
	"strconv"
	"strings"

	"joule/pkg/jouletypes"
)

// The local command grammar. Matching order is significant: exact-answer
// queries run first so they win even when phrased as questions, then
// general questions are rejected toward the LLM, then mutations,
// navigation, analytics, and education.

var (
	reShowScore    = regexp.MustCompile(`(?i)(?:what(?:'s|\s+is)?\s+)?my\s+score|joule\s+score|show\s+(?:me\s+)?(?:my\s+)?score`)
	reShowSavings  = regexp.MustCompile(`(?i)what\s+can\s+i\s+save|how\s+(?:much\s+)?(?:can\s+i|to)\s+save|show\s+(?:me\s+)?(?:my\s+)?savings`)
	reSystemWhy    = regexp.MustCompile(`(?i)^(?:why|what|is|are)\s+(?:my\s+)?system`)
	reSystemStatus = regexp.MustCompile(`(?i)^(?:how(?:'s|\s+is)?\s+)?my\s+system(?:\s+doing)?\s*$|^system\s+status\s*$|^(?:show|what'?s?)\s+(?:my\s+)?system\s+status$`)
	reSystemBare   = regexp.MustCompile(`(?i)^my\s+system$`)
	reHelp         = regexp.MustCompile(`(?i)^(?:help|what\s+can\s+you\s+do|what\s+do\s+you\s+do|how\s+do\s+(?:i|you)\s+(?:use|work)|capabilities|commands?)$`)

	reByzantineOn     = regexp.MustCompile(`(?i)(?:enable|activate|turn\s+on)\s+(?:byzantine|liturgical|orthodox|chant)\s*mode`)
	reByzantineOff    = regexp.MustCompile(`(?i)(?:disable|deactivate|turn\s+off)\s+(?:byzantine|liturgical|orthodox|chant)\s*mode`)
	reByzantineSecret = regexp.MustCompile(`(?i)rejoice,?\s*o(?:h)?\s+coil\s+unfrosted`)

	reQueryAPIKey   = regexp.MustCompile(`(?i)(?:what|show|tell\s+me)\s+(?:is\s+)?(?:my\s+)?(?:groq\s+)?(?:api\s+)?key`)
	reQueryModel    = regexp.MustCompile(`(?i)(?:what|show|tell\s+me)\s+(?:is\s+)?(?:my\s+)?groq\s+model`)
	reQueryProvider = regexp.MustCompile(`(?i)(?:what|show|tell\s+me)\s+(?:is\s+)?(?:my\s+)?(?:ai|llm)\s+provider`)
	reQueryDuration = regexp.MustCompile(`(?i)(?:what|show|tell\s+me)\s+(?:is\s+)?(?:my\s+)?(?:voice\s+)?(?:listening\s+)?duration`)

	reQuestionWord = regexp.MustCompile(`(?i)^(how|what|why|when|where|who|which|can\s+i|should\s+i|do\s+i|does|is|are|will|would|could)\b`)
)

// ParseLocalCommand matches a query against the command grammar. Returns
// nil when the query is not a recognized command and should be treated as
// a freeform question.
func ParseLocalCommand(query string) *jouletypes.ParsedCommand {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}

	if cmd := parseHighPriority(q); cmd != nil {
		return cmd
	}

	// Remaining question-word queries belong to the LLM, not the grammar.
	if reQuestionWord.MatchString(q) {
		return nil
	}

	if cmd := parseAdjustments(q); cmd != nil {
		return cmd
	}
	if cmd := parseSetters(q); cmd != nil {
		return cmd
	}
	if cmd := parseAnalytics(q); cmd != nil {
		return cmd
	}
	if cmd := parseEducation(q); cmd != nil {
		return cmd
	}
	return nil
}

// parseHighPriority handles commands with exact local answers. These run
// before question rejection so "what's my score" still works.
func parseHighPriority(q string) *jouletypes.ParsedCommand {
	if reShowScore.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionShowScore}
	}
	if reShowSavings.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionShowSavings}
	}
	// "why is my system short cycling" is a problem question, not a
	// status query.
	if !reSystemWhy.MatchString(q) && (reSystemStatus.MatchString(q) || reSystemBare.MatchString(q)) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSystemStatus}
	}
	if reHelp.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionHelp}
	}

	if reByzantineOn.MatchString(q) || reByzantineSecret.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetByzantine, Value: true}
	}
	if reByzantineOff.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionSetByzantine, Value: false}
	}

	if reQueryAPIKey.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionQueryGroqAPIKey}
	}
	if reQueryModel.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionQueryGroqModel}
	}
	if reQueryProvider.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionQueryLLMProvider}
	}
	if reQueryDuration.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionQueryVoiceListen}
	}
	return nil
}

var (
	reWarmer   = regexp.MustCompile(`(?i)(?:warmer|hotter|heat\s+up)(?:\s+by\s+(\d+))?`)
	reCooler   = regexp.MustCompile(`(?i)(?:cooler|colder|cool\s+down)(?:\s+by\s+(\d+))?`)
	reIncrease = regexp.MustCompile(`(?i)(?:increase|raise|turn\s+up|up)\s+(?:the\s+)?(?:temp|temperature|heat)(?:\s+by\s+(\d+))?`)
	reDecrease = regexp.MustCompile(`(?i)(?:decrease|lower|turn\s+down|down)\s+(?:the\s+)?(?:temp|temperature|heat)(?:\s+by\s+(\d+))?`)
	reAnyDelta = regexp.MustCompile(`(?i)(?:by\s+)?(\d+)`)

	rePresetSleep = regexp.MustCompile(`(?i)(?:i'm|im|i\s+am)\s+(?:going\s+to\s+)?(?:sleep|bed)|sleep\s+mode|bedtime`)
	rePresetAway  = regexp.MustCompile(`(?i)(?:i'm|im|i\s+am)\s+(?:leaving|going\s+out|gone)|away\s+mode|vacation\s+mode`)
	rePresetHome  = regexp.MustCompile(`(?i)(?:i'm|im|i\s+am)\s+(?:home|back)\b|^home\s+mode\b|^normal\s+mode\b`)

	reQueryTemp = regexp.MustCompile(`(?i)what'?s?\s+(?:the\s+)?(?:current\s+)?(?:temp|temperature)|how\s+(?:hot|cold|warm)\s+is\s+it`)
)

func parseAdjustments(q string) *jouletypes.ParsedCommand {
	delta := func(m []string) int {
		if len(m) > 1 && m[1] != "" {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
		return 2
	}

	if m := reWarmer.FindStringSubmatch(q); m != nil {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionIncreaseTemp, Value: delta(m)}
	}
	if m := reCooler.FindStringSubmatch(q); m != nil {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionDecreaseTemp, Value: delta(m)}
	}
	if reIncrease.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionIncreaseTemp, Value: delta(reAnyDelta.FindStringSubmatch(q))}
	}
	if reDecrease.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionDecreaseTemp, Value: delta(reAnyDelta.FindStringSubmatch(q))}
	}

	if rePresetSleep.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionPresetSleep}
	}
	if rePresetAway.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionPresetAway}
	}
	if rePresetHome.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionPresetHome}
	}

	if reQueryTemp.MatchString(q) {
		return &jouletypes.ParsedCommand{Action: jouletypes.ActionQueryTemp}
	}
	return nil
}
