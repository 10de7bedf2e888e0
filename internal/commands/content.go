package commands

import (
	"fmt"
	"math/rand"
	"time"
)

// educationTopics lists glossary keys in display order for the
// unknown-topic hint.
var educationTopics = []string{
	"hspf", "seer", "cop", "hdd", "cdd", "insulation", "thermalfactor",
	"auxheat", "balancepoint", "tonnage", "eer", "defrost",
}

// educationalContent is the HVAC glossary served by the "explain" family
// of commands. Keys are lowercase with spaces, dashes, and underscores
// stripped.
var educationalContent = map[string]string{
	"hspf": "HSPF (Heating Seasonal Performance Factor) measures heat pump heating efficiency. Higher is better. Modern systems: 8-11 HSPF2. Each point improvement saves ~10-12% on heating costs.",
	"seer": "SEER (Seasonal Energy Efficiency Ratio) measures cooling efficiency. Modern minimum: 14-15 SEER2. Premium systems: 18-22 SEER2. Each point saves ~5-7% on cooling.",
	"cop":  "COP (Coefficient of Performance) is instantaneous efficiency: BTU output ÷ BTU input. Heat pumps typically have COP of 2.5-4.0, meaning 250-400% efficient.",
	"hdd":  "HDD (Heating Degree Days) measures heating demand. Sum of daily (65°F - avg temp) when below 65°F. Higher HDD = colder climate, more heating needed.",
	"cdd":  "CDD (Cooling Degree Days) measures cooling demand. Sum of daily (avg temp - 65°F) when above 65°F. Higher CDD = hotter climate, more AC needed.",
	"insulation": "Insulation reduces heat transfer. R-value measures resistance. Attic: R-38 to R-60. Walls: R-13 to R-21. Better insulation = smaller system needed + lower bills.",
	"thermalfactor": "Energy Factor (also called Thermal Factor or Building Factor) measures your home's heat loss rate in BTU per hour per degree Fahrenheit difference. It's calculated from your home's square footage, insulation, windows, and other factors. Lower is better - it means less heat loss. Upload thermostat data in Performance Analyzer to calculate your actual energy factor.",
	"auxheat": "Aux/backup heat activates when outdoor temp drops below heat pump balance point (~25-35°F). Uses expensive resistance strips. Minimize by upgrading to cold-climate HP.",
	"balancepoint": "Balance Point is the outdoor temperature where your heat pump's capacity exactly matches your home's heat loss. Below this, auxiliary heat kicks in. Lower is better - cold-climate heat pumps can have balance points below 0°F.",
	"tonnage": "Tonnage measures cooling capacity. 1 ton = 12,000 BTU/hr. A 3-ton system removes 36,000 BTU/hr. Proper sizing is critical - oversized systems short-cycle and waste energy.",
	"eer": "EER (Energy Efficiency Ratio) measures cooling efficiency at a specific condition (95°F outdoor). Unlike SEER which averages the season, EER shows peak performance.",
	"defrost": "Heat pumps need defrost cycles when outdoor coils ice up (typically 25-40°F with high humidity). During defrost, the system briefly runs in cooling mode to melt ice.",
}

// helpContent is the full capability summary shown for the help command.
const helpContent = `🔍 **Ask Joule Capabilities**

**Questions I can answer:**
• "What can I save?" - Show recommendations
• "How's my system?" - System summary
• "Why is my bill high?" - Analyze factors
• "What is HSPF/SEER?" - Learn terms
• "Calculate balance point" - Find your balance point

**Navigate to tools:**
• "forecast" - 7-Day Cost Forecaster
• "compare" - Heat pump vs gas
• "balance" - Energy flow viz
• "charging" - A/C calculator
• "analyzer" - Performance tool
• "methodology" - Math formulas
• "settings" - Preferences
• "thermostat" - Setback analysis
• "budget" - Monthly planner
• "upgrade" - ROI calculator

**Change settings:**
• "Set winter to 68"
• "Set HSPF to 10"
• "Set cost to $0.12"
• "Set 2000 sq ft"

Try: "show forecast" or "compare"!`

const helpSpeech = "I can navigate to any tool, answer questions, or change settings."

// Personality produces friendly, time-of-day flavored confirmations for
// preset and temperature commands. Classification never depends on it;
// only generated response text varies.
type Personality struct {
	now  func() time.Time
	rand *rand.Rand
}

// NewPersonality builds a Personality on the wall clock.
func NewPersonality() *Personality {
	return &Personality{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewPersonalityAt builds a Personality with a fixed clock and seed,
// for deterministic tests.
func NewPersonalityAt(now func() time.Time, seed int64) *Personality {
	return &Personality{now: now, rand: rand.New(rand.NewSource(seed))}
}

// Respond picks a response variant for the action. Temperatures above
// 78°F or below 60°F override the normal variants with a warning.
func (p *Personality) Respond(action string, temp float64) string {
	hour := p.now().Hour()
	isNight := hour >= 22 || hour < 6
	isMorning := hour >= 6 && hour < 12
	isEvening := hour >= 18 && hour < 22

	t := formatSettingValue(temp)

	highTemp := []string{
		fmt.Sprintf("Whoa, %s°F is pretty toasty! Your energy bill might not like this, but you'll be warm!", t),
		fmt.Sprintf("That's hot! %s°F set, but keep an eye on your bill.", t),
		fmt.Sprintf("%s°F? That's a warm one! Comfort over cost, I get it.", t),
	}
	lowTemp := []string{
		fmt.Sprintf("Bundle up! %s°F is quite cool, but you'll save on energy.", t),
		fmt.Sprintf("Eco warrior! %s°F will definitely cut costs.", t),
		fmt.Sprintf("%s°F - that's some serious energy saving! Stay warm!", t),
	}

	if temp != 0 && temp > 78 {
		return highTemp[p.rand.Intn(len(highTemp))]
	}
	if temp != 0 && temp < 60 {
		return lowTemp[p.rand.Intn(len(lowTemp))]
	}

	var options []string
	switch action {
	case "tempUp":
		last := fmt.Sprintf("Sure thing! %s°F it is.", t)
		if isNight {
			last = fmt.Sprintf("Cozy! Setting to %s°F for the night.", t)
		} else if isMorning {
			last = fmt.Sprintf("Good morning! Setting to %s°F to start your day.", t)
		}
		options = []string{
			fmt.Sprintf("You got it! Setting temperature to %s°F.", t),
			fmt.Sprintf("Done! Warming things up to %s°F.", t),
			fmt.Sprintf("%s°F coming right up!", t),
			last,
		}
	case "tempDown":
		last := fmt.Sprintf("Got it, %s°F.", t)
		if temp < 62 {
			last = fmt.Sprintf("Brrr, that's chilly! %s°F set.", t)
		}
		options = []string{
			fmt.Sprintf("Cool! Setting temperature to %s°F.", t),
			fmt.Sprintf("Energy saver mode activated. %s°F.", t),
			fmt.Sprintf("%s°F - that'll save you some money!", t),
			last,
		}
	case "sleep":
		last := fmt.Sprintf("Sleep mode engaged at %s°F.", t)
		if isEvening {
			last = fmt.Sprintf("Getting ready for bed? %s°F is perfect for sleep.", t)
		}
		options = []string{
			fmt.Sprintf("Good night! Setting sleep temperature to %s°F. Sweet dreams!", t),
			fmt.Sprintf("Sleep mode activated. %s°F will save energy while you rest.", t),
			fmt.Sprintf("Perfect for sleeping! %s°F set. Rest well!", t),
			last,
		}
	case "away":
		options = []string{
			fmt.Sprintf("Away mode set to %s°F. Have a great trip!", t),
			fmt.Sprintf("Eco mode engaged at %s°F. I'll watch the house!", t),
			fmt.Sprintf("Got it! %s°F while you're away. See you soon!", t),
			fmt.Sprintf("Saving energy at %s°F until you return!", t),
		}
	case "home":
		first := fmt.Sprintf("Home sweet home! %s°F.", t)
		if isMorning {
			first = fmt.Sprintf("Welcome back! Setting to comfortable %s°F.", t)
		}
		last := fmt.Sprintf("Setting to %s°F. Make yourself comfortable!", t)
		if isEvening {
			last = fmt.Sprintf("Welcome home! Warming up to %s°F for the evening.", t)
		}
		options = []string{
			first,
			fmt.Sprintf("Home mode activated at %s°F. Good to have you back!", t),
			fmt.Sprintf("%s°F - the perfect homecoming temperature!", t),
			last,
		}
	case "queryTemp":
		options = []string{
			fmt.Sprintf("Current temperature setting is %s°F.", t),
			fmt.Sprintf("You're at %s°F right now.", t),
			fmt.Sprintf("%s°F is your current target.", t),
			fmt.Sprintf("Your thermostat is set to %s°F.", t),
		}
	case "greeting":
		switch {
		case isMorning:
			options = []string{"Good morning! How can I help with your home comfort today?"}
		case isEvening:
			options = []string{"Good evening! What can I do for you?"}
		case isNight:
			options = []string{"Burning the midnight oil? How can I help?"}
		default:
			options = []string{"Hey there! What would you like to know?"}
		}
	default:
		return fmt.Sprintf("%s complete.", action)
	}

	return options[p.rand.Intn(len(options))]
}
