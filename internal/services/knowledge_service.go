package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// KnowledgeFormula is one named formula attached to a topic.
type KnowledgeFormula struct {
	Name string
	Text string
}

// KnowledgeTopic is one retrievable unit of engineering knowledge.
type KnowledgeTopic struct {
	Key             string
	Summary         string
	KeyConcepts     []string
	Formulas        []KnowledgeFormula
	Recommendations []KnowledgeFormula
}

// KnowledgeSection groups topics under a cited source document.
type KnowledgeSection struct {
	Key    string
	Title  string
	Source string
	Topics []KnowledgeTopic
}

// KnowledgeResult is one scored search hit, formatted for LLM context.
type KnowledgeResult struct {
	Section         string
	Topic           string
	Title           string
	Source          string
	Summary         string
	KeyConcepts     []string
	Formulas        []KnowledgeFormula
	Recommendations []KnowledgeFormula
	Score           int
}

// KnowledgeService answers technical queries from the embedded HVAC
// engineering corpus: keyword retrieval, no network.
type KnowledgeService struct {
	sections []KnowledgeSection
}

// NewKnowledgeService creates a knowledge service over the embedded corpus.
func NewKnowledgeService() *KnowledgeService {
	return &KnowledgeService{sections: hvacKnowledgeBase}
}

// Name returns the service name "knowledge" for registration.
func (k *KnowledgeService) Name() string {
	return "knowledge"
}

// Initialize is a no-op; the corpus is compiled in.
func (k *KnowledgeService) Initialize() error {
	return nil
}

var nonWordRe = regexp.MustCompile(`[^\w]`)
var camelBoundaryRe = regexp.MustCompile(`([A-Z])`)

// Search scores every topic against the query and returns the top five
// hits. Scoring favors topic-name matches over loose keyword overlap.
func (k *KnowledgeService) Search(query string) []KnowledgeResult {
	lowerQuery := strings.ToLower(query)

	var keywords []string
	for _, word := range strings.Fields(lowerQuery) {
		word = nonWordRe.ReplaceAllString(word, "")
		if len(word) > 2 {
			keywords = append(keywords, word)
		}
	}

	var results []KnowledgeResult
	for _, section := range k.sections {
		sectionMatch := strings.Contains(strings.ToLower(section.Key), lowerQuery) ||
			strings.Contains(strings.ToLower(section.Title), lowerQuery)

		for _, topic := range section.Topics {
			topicKeyAsWords := strings.ToLower(strings.TrimSpace(
				camelBoundaryRe.ReplaceAllString(topic.Key, " $1")))
			topicKeyWords := longWords(topicKeyAsWords)

			topicMatch := strings.Contains(strings.ToLower(topic.Key), lowerQuery) ||
				strings.Contains(strings.ToLower(topic.Summary), lowerQuery) ||
				strings.Contains(lowerQuery, topicKeyAsWords) ||
				allWordsIn(topicKeyAsWords, lowerQuery)

			contentText := topicContentText(topic)
			keywordMatches := 0
			for _, kw := range keywords {
				if strings.Contains(contentText, kw) {
					keywordMatches++
				}
			}

			queryContainsTopicKeyWords := len(topicKeyWords) > 0
			for _, word := range topicKeyWords {
				if strings.Contains(lowerQuery, word) {
					continue
				}
				fuzzy := false
				for _, kw := range keywords {
					if strings.Contains(kw, word) || strings.Contains(word, kw) {
						fuzzy = true
						break
					}
				}
				if !fuzzy {
					queryContainsTopicKeyWords = false
					break
				}
			}

			if !sectionMatch && !topicMatch && keywordMatches == 0 && !queryContainsTopicKeyWords {
				continue
			}

			score := keywordMatches
			if sectionMatch {
				score += 3
			}
			if topicMatch {
				score += 2
			}
			if queryContainsTopicKeyWords {
				score += 3
			}

			results = append(results, KnowledgeResult{
				Section:         section.Key,
				Topic:           topic.Key,
				Title:           section.Title + " - " + topic.Key,
				Source:          section.Source,
				Summary:         topic.Summary,
				KeyConcepts:     topic.KeyConcepts,
				Formulas:        topic.Formulas,
				Recommendations: topic.Recommendations,
				Score:           score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > 5 {
		results = results[:5]
	}
	return results
}

// FormatForLLM renders search hits as a labeled context block.
func (k *KnowledgeService) FormatForLLM(results []KnowledgeResult) string {
	if len(results) == 0 {
		return "No relevant HVAC engineering knowledge found."
	}

	var b strings.Builder
	b.WriteString("RELEVANT HVAC ENGINEERING KNOWLEDGE:\n\n")
	for _, result := range results {
		fmt.Fprintf(&b, "[%s] %s\n", result.Source, result.Title)
		fmt.Fprintf(&b, "%s\n\n", result.Summary)

		if len(result.KeyConcepts) > 0 {
			b.WriteString("Key Concepts:\n")
			for i, concept := range result.KeyConcepts {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, concept)
			}
			b.WriteString("\n")
		}
		if len(result.Formulas) > 0 {
			b.WriteString("Formulas:\n")
			for _, formula := range result.Formulas {
				fmt.Fprintf(&b, "  %s: %s\n", formula.Name, formula.Text)
			}
			b.WriteString("\n")
		}
		if len(result.Recommendations) > 0 {
			b.WriteString("Recommendations:\n")
			for _, rec := range result.Recommendations {
				fmt.Fprintf(&b, "  %s: %s\n", rec.Name, rec.Text)
			}
			b.WriteString("\n")
		}
		b.WriteString("---\n\n")
	}
	return b.String()
}

// Query is the convenience path used by the agent orchestrator: search,
// then format, reporting whether anything relevant was found.
func (k *KnowledgeService) Query(query string) (string, bool) {
	if strings.TrimSpace(query) == "" {
		return "", false
	}
	results := k.Search(query)
	if len(results) == 0 {
		return "", false
	}
	return k.FormatForLLM(results), true
}

// DetectStandards names the engineering standards a query touches.
func (k *KnowledgeService) DetectStandards(query string) []string {
	lowerQuery := strings.ToLower(query)
	var standards []string

	containsAny := func(terms ...string) bool {
		for _, term := range terms {
			if strings.Contains(lowerQuery, term) {
				return true
			}
		}
		return false
	}

	if containsAny("manual j", "load calculation", "heat loss", "sizing") {
		standards = append(standards, "ACCA Manual J")
	}
	if containsAny("manual s", "equipment selection", "oversized", "undersized") {
		standards = append(standards, "ACCA Manual S")
	}
	if containsAny("manual d", "duct", "airflow", "cfm") {
		standards = append(standards, "ACCA Manual D")
	}
	if containsAny("ashrae 55", "thermal comfort", "comfort zone", "setpoint") {
		standards = append(standards, "ASHRAE Standard 55")
	}
	if containsAny("ashrae 62", "ventilation", "fresh air", "indoor air quality") {
		standards = append(standards, "ASHRAE Standard 62.2")
	}
	return standards
}

func topicContentText(topic KnowledgeTopic) string {
	var b strings.Builder
	b.WriteString(topic.Key)
	b.WriteString(" ")
	b.WriteString(topic.Summary)
	for _, concept := range topic.KeyConcepts {
		b.WriteString(" ")
		b.WriteString(concept)
	}
	for _, formula := range topic.Formulas {
		b.WriteString(" ")
		b.WriteString(formula.Name)
		b.WriteString(" ")
		b.WriteString(formula.Text)
	}
	for _, rec := range topic.Recommendations {
		b.WriteString(" ")
		b.WriteString(rec.Name)
		b.WriteString(" ")
		b.WriteString(rec.Text)
	}
	return strings.ToLower(b.String())
}

func longWords(s string) []string {
	var out []string
	for _, word := range strings.Fields(s) {
		if len(word) > 2 {
			out = append(out, word)
		}
	}
	return out
}

func allWordsIn(words, query string) bool {
	fields := strings.Fields(words)
	if len(fields) == 0 {
		return false
	}
	for _, word := range fields {
		if !strings.Contains(query, word) {
			return false
		}
	}
	return true
}
