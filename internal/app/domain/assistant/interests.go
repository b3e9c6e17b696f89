package assistant

import (
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// interestSynonyms maps surface phrases to the planner's canonical interest
// tags. The canonical tags themselves are included so "food" matches "food".
var interestSynonyms = map[string]string{
	"culture":     "culture",
	"museum":      "culture",
	"museums":     "culture",
	"art":         "culture",
	"history":     "culture",
	"historical":  "culture",
	"temple":      "culture",
	"temples":     "culture",
	"food":        "food",
	"foodie":      "food",
	"cuisine":     "food",
	"restaurant":  "food",
	"restaurants": "food",
	"dining":      "food",
	"street food": "food",
	"adventure":   "adventure",
	"hiking":      "adventure",
	"hike":        "adventure",
	"trekking":    "adventure",
	"surfing":     "adventure",
	"climbing":    "adventure",
	"diving":      "adventure",
	"relaxation":  "relaxation",
	"relax":       "relaxation",
	"relaxing":    "relaxation",
	"spa":         "relaxation",
	"beach":       "relaxation",
	"beaches":     "relaxation",
	"nightlife":   "nightlife",
	"bar":         "nightlife",
	"bars":        "nightlife",
	"club":        "nightlife",
	"clubs":       "nightlife",
	"concert":     "nightlife",
	"shopping":    "shopping",
	"market":      "shopping",
	"markets":     "shopping",
	"boutique":    "shopping",
	"boutiques":   "shopping",
	"mall":        "shopping",
	"souvenir":    "shopping",
	"souvenirs":   "shopping",
}

// InterestMatcher scans free text for interest mentions and reports the
// canonical tags, in first-mention order.
type InterestMatcher struct {
	automaton ahocorasick.AhoCorasick
	patterns  []string
}

// NewInterestMatcher compiles the synonym table into an Aho-Corasick
// automaton. Matching is case-insensitive and whole-word only, so "barista"
// does not count as "bar".
func NewInterestMatcher() *InterestMatcher {
	patterns := make([]string, 0, len(interestSynonyms))
	for phrase := range interestSynonyms {
		patterns = append(patterns, phrase)
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})

	return &InterestMatcher{
		automaton: builder.Build(patterns),
		patterns:  patterns,
	}
}

// Detect returns the canonical interest tags mentioned in text, deduplicated
// and ordered by first mention.
func (m *InterestMatcher) Detect(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	var tags []string
	for _, match := range m.automaton.FindAll(text) {
		tag := interestSynonyms[m.patterns[match.Pattern()]]
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
