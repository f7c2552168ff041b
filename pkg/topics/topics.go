package topics

import (
	"regexp"
	"sort"
	"strings"
)

// Beat keywords matched against headline text. Values are the canonical
// beat names surfaced in reporter profiles.
var keywordBeats = map[string]string{
	"ai":                      "ai",
	"artificial intelligence": "ai",
	"machine learning":        "machine learning",
	"llm":                     "ai",
	"openai":                  "ai",
	"anthropic":               "ai",
	"google":                  "technology",
	"microsoft":               "technology",
	"apple":                   "technology",
	"startup":                 "startups",
	"startups":                "startups",
	"venture":                 "finance",
	"vc":                      "finance",
	"antitrust":               "antitrust",
	"doj":                     "politics",
	"sec":                     "finance",
	"congress":                "politics",
	"supreme court":           "politics",
	"election":                "elections",
	"tariff":                  "finance",
	"inflation":               "finance",
	"cyber":                   "cybersecurity",
	"ransomware":              "cybersecurity",
	"breach":                  "cybersecurity",
	"climate":                 "climate",
	"vaccine":                 "health",
	"health":                  "health",
	"music":                   "culture",
	"sports":                  "sports",
}

const DefaultMaxBeats = 6

var whitespaceRe = regexp.MustCompile(`\s+`)

// Sorted for deterministic beat ordering.
var beatNeedles = func() []string {
	ks := make([]string, 0, len(keywordBeats))
	for k := range keywordBeats {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}()

// Normalize lowercases, collapses whitespace and removes duplicates
// while preserving order.
func Normalize(topics []string) []string {
	out := make([]string, 0, len(topics))
	seen := make(map[string]bool)
	for _, t := range topics {
		n := whitespaceRe.ReplaceAllString(strings.TrimSpace(strings.ToLower(t)), " ")
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// InferFromText maps keyword hits in text to beats. Hints that appear in
// the text are added as beats too; when nothing matches, the hints alone
// are returned. At most max beats are returned (DefaultMaxBeats if max
// is not positive).
func InferFromText(text string, hints []string, max int) []string {
	if max <= 0 {
		max = DefaultMaxBeats
	}
	if text == "" {
		n := Normalize(hints)
		if len(n) > max {
			n = n[:max]
		}
		return n
	}

	lower := strings.ToLower(text)
	var hits []string
	for _, needle := range beatNeedles {
		if strings.Contains(lower, needle) {
			hits = append(hits, keywordBeats[needle])
		}
	}
	for _, h := range hints {
		if h != "" && strings.Contains(lower, strings.ToLower(h)) {
			hits = append(hits, h)
		}
	}

	hits = Normalize(hits)
	if len(hits) == 0 && len(hints) > 0 {
		hits = Normalize(hints)
	}
	if len(hits) > max {
		hits = hits[:max]
	}
	return hits
}

// ParseList splits a comma-separated value, trimming blanks.
func ParseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
