package extraction

import "strings"

// regulatoryKeywords maps each supported language to the keyword list used
// for regulatory-content validation and language detection.
var regulatoryKeywords = map[string][]string{
	"en": {
		"regulation", "law", "policy", "compliance", "directive", "decree",
		"act", "statute", "ordinance", "legislation", "amendment",
		"requirement", "provision", "enactment", "bill",
	},
	"fr": {
		"règlement", "loi", "politique", "conformité", "décret", "ordonnance",
	},
	"zh": {
		"法", "法律", "法规", "规定", "条例", "政策", "能源法",
		"中华人民共和国", "规章", "办法", "实施", "管理",
	},
	"es": {
		"ley", "reglamento", "decreto",
	},
	"de": {
		"gesetz", "verordnung",
	},
}

// MatchKeywords returns the regulatory keywords present in text, across all
// supported languages. Matching is case-insensitive substring matching.
func MatchKeywords(text string) []string {
	lower := strings.ToLower(text)

	var matched []string
	for _, lang := range languageOrder {
		for _, kw := range regulatoryKeywords[lang] {
			if strings.Contains(lower, kw) {
				matched = append(matched, kw)
			}
		}
	}

	return matched
}

// languageOrder keeps keyword matching and language voting deterministic.
var languageOrder = []string{"en", "fr", "zh", "es", "de"}

// DetectLanguage picks the language whose keyword list matches text most
// often. Ties resolve in languageOrder; no match at all yields "unknown".
func DetectLanguage(text string) string {
	lower := strings.ToLower(text)

	best := "unknown"
	bestCount := 0
	for _, lang := range languageOrder {
		count := 0
		for _, kw := range regulatoryKeywords[lang] {
			if strings.Contains(lower, kw) {
				count++
			}
		}

		if count > bestCount {
			best = lang
			bestCount = count
		}
	}

	return best
}
