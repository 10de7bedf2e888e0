package services

import "strings"

// StoreURL is the storefront buyers are escalated to when the FAQ has no
// answer.
const StoreURL = "https://www.ebay.com/usr/firehousescorpions"

// SalesFAQEntry is one presales question with its retrieval keywords.
type SalesFAQEntry struct {
	Keywords []string
	Question string
	Answer   string
	Category string
}

// SalesService answers presales questions from the structured FAQ. It
// satisfies the parser's SalesResolver so sales intent outranks both local
// dispatch and the LLM fallback.
type SalesService struct {
	faq []SalesFAQEntry
}

// NewSalesService creates a sales service over the embedded FAQ.
func NewSalesService() *SalesService {
	return &SalesService{faq: salesFAQ}
}

// Name returns the service name "sales" for registration.
func (s *SalesService) Name() string {
	return "sales"
}

// Initialize is a no-op; the FAQ is compiled in.
func (s *SalesService) Initialize() error {
	return nil
}

var salesIntentKeywords = []string{
	"buy", "purchase", "cost", "price", "pricing", "how much",
	"ship", "shipping", "delivery", "refund", "return", "warranty",
	"works with", "compatible", "compatibility", "support",
	"nest", "ecobee", "homekit", "siri",
	"monthly", "fee", "subscription", "free",
	"what's included", "in the box", "hardware",
	"install", "installation", "setup",
	"features", "what can it do", "capabilities",
	"mini-split", "minisplit", "discount", "bulk", "firewall", "port",
}

// HasSalesIntent reports whether the query looks like a presales question.
func (s *SalesService) HasSalesIntent(query string) bool {
	lowerQuery := strings.ToLower(query)
	for _, keyword := range salesIntentKeywords {
		if strings.Contains(lowerQuery, keyword) {
			return true
		}
	}
	return false
}

// Answer finds the best-scoring FAQ entry for the query. Keyword hits
// count one each; a full question-text match counts two. A zero score
// means no answer.
func (s *SalesService) Answer(query string) (string, bool) {
	lowerQuery := strings.ToLower(query)

	bestScore := 0
	bestAnswer := ""
	for _, entry := range s.faq {
		score := 0
		for _, keyword := range entry.Keywords {
			if strings.Contains(lowerQuery, strings.ToLower(keyword)) {
				score++
			}
		}
		if strings.Contains(lowerQuery, strings.ToLower(entry.Question)) {
			score += 2
		}
		if score > bestScore {
			bestScore = score
			bestAnswer = entry.Answer
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return bestAnswer, true
}

// FallbackAnswer directs the buyer to the storefront when nothing matched.
func (s *SalesService) FallbackAnswer() string {
	return "I don't have the specific answer for that. Please message the lead engineer directly on eBay for a custom response: " + StoreURL
}

var salesFAQ = []SalesFAQEntry{
	// Compatibility
	{
		Keywords: []string{"nest", "google nest", "nest thermostat", "works with nest", "nest learning"},
		Question: "Does this work with Nest thermostats?",
		Answer:   "Not yet. Joule is engineered exclusively for Ecobee. Why? Because Ecobee allows Local Control via HomeKit. This lets Joule react in milliseconds to protect your compressor, without relying on the cloud. Nest and others rely on slow cloud APIs that lag by seconds—too slow for our hardware protection logic. Have a Nest? Join the Waitlist. We are building a cloud-bridge version for 2026.",
		Category: "compatibility",
	},
	{
		Keywords: []string{"honeywell t6", "honeywell", "t6"},
		Question: "Does this work with Honeywell T6?",
		Answer:   "Not yet. Joule is engineered exclusively for Ecobee. Why? Because Ecobee allows Local Control via HomeKit. This lets Joule react in milliseconds to protect your compressor, without relying on the cloud. Honeywell and others rely on slow cloud APIs that lag by seconds—too slow for our hardware protection logic. Have a Honeywell? Join the Waitlist. We are building a cloud-bridge version for 2026.",
		Category: "compatibility",
	},
	{
		Keywords: []string{"ecobee", "works with ecobee", "ecobee compatible", "ecobee support"},
		Question: "Does this work with Ecobee?",
		Answer:   "Yes! Joule fully supports Ecobee thermostats. The Monitor tier automatically collects daily data from your Ecobee, and the Bridge tier provides full local control via HomeKit.",
		Category: "compatibility",
	},
	{
		Keywords: []string{"venstar", "works with venstar", "venstar compatible"},
		Question: "Does this work with Venstar thermostats?",
		Answer:   "Joule is purpose-built for Ecobee. We focus on Ecobee because it provides superior data fidelity. Have a Venstar? Join the waitlist - we'll add support if there's enough demand (500+ signups).",
		Category: "compatibility",
	},
	{
		Keywords: []string{"homekit", "siri", "apple homekit", "works with homekit"},
		Question: "Does this work with HomeKit and Siri?",
		Answer:   "Yes! The Joule Bridge tier includes full HomeKit support. You can control your thermostat with Siri voice commands and integrate with Apple Home automations. This works completely offline - no cloud required.",
		Category: "compatibility",
	},
	{
		Keywords: []string{"internet", "offline", "no internet", "works without internet", "no wifi"},
		Question: "Does this work without internet?",
		Answer:   "The Joule Bridge tier works completely offline - no internet or WiFi required. All control and scheduling happens locally. The Monitor tier requires internet for cloud data collection, but the Bridge tier is fully autonomous.",
		Category: "compatibility",
	},
	{
		Keywords: []string{"home assistant", "ha", "works with home assistant"},
		Question: "Does this work with Home Assistant?",
		Answer:   "The Joule Bridge exposes a local HomeKit interface, which can be integrated with Home Assistant using the HomeKit Controller integration. This allows full control from Home Assistant.",
		Category: "compatibility",
	},

	// Pricing
	{
		Keywords: []string{"monthly fee", "subscription", "monthly cost", "recurring", "monthly subscription"},
		Question: "Is there a monthly subscription fee?",
		Answer:   "No. The Joule Bridge ($129) is a one-time purchase. It processes data locally on your device, so there are no cloud server costs for us to pass on to you.",
		Category: "pricing",
	},
	{
		Keywords: []string{"annual fee", "yearly fee"},
		Question: "Is there an annual fee?",
		Answer:   "The Free tier has no fees. The Monitor tier is $20/year (not monthly). The Bridge tier is a one-time purchase of $129 with no recurring fees. Only the Monitor tier has an annual subscription.",
		Category: "pricing",
	},
	{
		Keywords: []string{"why", "why is it", "raspberry pi", "just a pi", "expensive"},
		Question: "Why is it $129 if it's just a Raspberry Pi?",
		Answer:   "You are paying for the specialized HVAC logic software, the pre-configured OS, the aluminum industrial case, and the plug-and-play convenience. It saves you ~100 hours of coding and setup.",
		Category: "pricing",
	},
	{
		Keywords: []string{"free", "free tier", "what's free", "free features"},
		Question: "What's included in the free tier?",
		Answer:   "The Free tier includes: Manual CSV upload & analysis, heat loss calculation (BTU/hr/°F), system balance point analysis, efficiency percentile ranking, and CSV export. No automatic monitoring is included in the free tier.",
		Category: "pricing",
	},
	{
		Keywords: []string{"cost", "price", "how much", "pricing", "what does it cost"},
		Question: "How much does it cost?",
		Answer:   "Free tier: $0 (CSV analyzer). Monitor tier: $20/year (automatic cloud monitoring). Bridge tier: $129 one-time (complete local control with hardware included).",
		Category: "pricing",
	},
	{
		Keywords: []string{"refund", "return", "money back", "warranty", "guarantee"},
		Question: "What's your refund policy?",
		Answer:   "All purchases are made through eBay, which provides eBay Money Back Guarantee protection. If the item doesn't match the description, you're eligible for a full refund. Please contact us through eBay messaging for any issues.",
		Category: "pricing",
	},

	// Hardware
	{
		Keywords: []string{"what's in the box", "included", "comes with", "hardware", "what do i get"},
		Question: "What's included in the box?",
		Answer:   "The Joule Bridge includes: The Raspberry Pi Zero 2 W unit in a premium aluminum case, a pre-flashed 32GB SD card with Joule OS, and a USB power cable. You just need a standard USB power brick.",
		Category: "hardware",
	},
	{
		Keywords: []string{"installation", "install", "setup", "how to install", "difficult"},
		Question: "How difficult is installation?",
		Answer:   "The Joule Bridge is designed for DIY installation. It connects to your existing thermostat wiring (standard 24VAC). Step-by-step instructions are included, and we provide support through eBay messaging. Basic electrical knowledge is helpful but not required.",
		Category: "hardware",
	},

	// Shipping
	{
		Keywords: []string{"ship", "shipping", "delivery", "how long", "when will it arrive"},
		Question: "How long does shipping take?",
		Answer:   "Shipping times vary by location. We ship from the United States. Domestic orders typically arrive in 3-7 business days. International shipping times vary. Check the eBay listing for specific shipping options and estimated delivery dates.",
		Category: "shipping",
	},
	{
		Keywords: []string{"canada", "ship to canada", "international", "outside us"},
		Question: "Do you ship to Canada?",
		Answer:   "Yes, we ship internationally including Canada. Shipping costs and delivery times will be calculated at checkout on eBay. International buyers are responsible for any customs duties or import fees.",
		Category: "shipping",
	},
	{
		Keywords: []string{"international shipping", "outside usa", "europe", "uk", "australia"},
		Question: "Do you ship internationally?",
		Answer:   "We currently ship to the US and Canada via eBay's Global Shipping Program. For other international orders, please check the eBay listing for availability.",
		Category: "shipping",
	},

	// Features
	{
		Keywords: []string{"features", "what can it do", "capabilities", "what does it do"},
		Question: "What features does Joule offer?",
		Answer:   "Joule provides: Automatic heat loss analysis, efficiency tracking, cost forecasting, thermostat control (Bridge tier), HomeKit integration, offline operation (Bridge tier), and CSV data analysis. Features vary by tier - see the product comparison on the upgrades page.",
		Category: "features",
	},
	{
		Keywords: []string{"monitoring", "automatic", "daily", "data collection"},
		Question: "How does automatic monitoring work?",
		Answer:   "The Monitor tier automatically collects daily data from your Ecobee thermostat via the cloud API. This data is analyzed to track heat loss trends, efficiency scores, and system performance over time. No manual CSV uploads needed.",
		Category: "features",
	},
	{
		Keywords: []string{"local control", "offline", "no cloud", "privacy"},
		Question: "What does 'local control' mean?",
		Answer:   "Local control means everything runs on your Joule Bridge hardware in your home. No data goes to the cloud, no internet required for operation, and you have complete privacy and sovereignty over your system. Schedules and automations run even if your internet goes down.",
		Category: "features",
	},
}
