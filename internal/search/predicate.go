package search

import (
	"strings"

	"lexview/internal/filters"
	"lexview/internal/registry"
)

// Registry status vocabulary, matched case-sensitively as substrings.
// "objęty" covers acts folded into a consolidated text.
var (
	inForcePhrases  = []string{"obowiązujący", "objęty"}
	repealedPhrases = []string{"wygaśnięcie", "uchylony", "akt jednorazowy"}
)

// Filter applies the status and keyword predicates to acts, preserving
// input order. It never reorders and never fails: an act missing a
// status simply cannot match an active status filter.
func Filter(acts []registry.Act, f *filters.Filters) []registry.Act {
	status := f.Status()
	keywords := f.Keywords()

	results := make([]registry.Act, 0, len(acts))
	for _, act := range acts {
		if !matchesStatus(act.Status, status) {
			continue
		}
		if !matchesKeywords(act.Title, keywords) {
			continue
		}
		results = append(results, act)
	}
	return results
}

func matchesStatus(actStatus string, status filters.Status) bool {
	switch status {
	case filters.StatusInForce:
		return containsAny(actStatus, inForcePhrases)
	case filters.StatusRepealed:
		return containsAny(actStatus, repealedPhrases)
	default:
		return true
	}
}

// matchesKeywords is a conjunctive match: every keyword must appear in
// the lowercased title as a substring. An empty set passes everything.
func matchesKeywords(title string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}

	title = strings.ToLower(title)
	for _, kw := range keywords {
		if !strings.Contains(title, kw) {
			return false
		}
	}
	return true
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}
