package domain

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxResults caps the merged search result list.
const DefaultMaxResults = 8

// ResultType is the kind of a search hit. Declaration order is the ranking
// priority: lower values rank first.
type ResultType int

const (
	ResultProvider ResultType = iota
	ResultCategory
	ResultProfile
	ResultDashboard
	ResultAppointment
)

var resultTypeNames = map[ResultType]string{
	ResultProvider:    "provider",
	ResultCategory:    "category",
	ResultProfile:     "profile",
	ResultDashboard:   "dashboard",
	ResultAppointment: "appointment",
}

func (t ResultType) String() string {
	return resultTypeNames[t]
}

func (t ResultType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// SearchResult is one navigation shortcut offered by the global search.
type SearchResult struct {
	Type     ResultType `json:"type"`
	ID       string     `json:"id,omitempty"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle,omitempty"`
	// Keywords are matched like Title but never shown, e.g. a provider's
	// category name.
	Keywords []string `json:"-"`
}

// MatchedBy reports whether query occurs in the title or any keyword.
func (r SearchResult) MatchedBy(query string) bool {
	if Matches(query, r.Title) {
		return true
	}
	for _, k := range r.Keywords {
		if Matches(query, k) {
			return true
		}
	}
	return false
}

// Fold normalises text for matching: case-folded with diacritics removed, so
// "Plomería" and "plomeria" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// Matches reports whether query occurs in text after folding both.
func Matches(query, text string) bool {
	q := Fold(query)
	if q == "" {
		return false
	}
	return strings.Contains(Fold(text), q)
}

// Rank orders results matching query (title or keywords) first, then by type priority, and
// caps the list at limit. The input slice is not modified.
func Rank(query string, results []SearchResult, limit int) []SearchResult {
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	type scored struct {
		result SearchResult
		hit    bool
	}
	items := make([]scored, len(results))
	for i, r := range results {
		items[i] = scored{result: r, hit: r.MatchedBy(query)}
	}
	sort.SliceStable(items, func(a, b int) bool {
		if items[a].hit != items[b].hit {
			return items[a].hit
		}
		return items[a].result.Type < items[b].result.Type
	})
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]SearchResult, len(items))
	for i, it := range items {
		out[i] = it.result
	}
	return out
}
