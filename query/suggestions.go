package query

import (
	"fmt"
	"sort"
	"strings"
)

// Suggestion is one proposed follow-up query, ranked by its estimated
// usefulness relative to the query that produced zero or few results.
type Suggestion struct {
	Query    string
	Reason   string // typo_fix/broader_query/refinement/template
	Utility  float64
}

const maxSuggestions = 5

// GenerateSuggestions proposes typo fixes against vocabulary, a broadened
// form of pq dropping its most specific term, field-prefixed refinements,
// and common API-pattern templates, capped at 5 and sorted by utility.
func GenerateSuggestions(pq *ProcessedQuery, vocabulary []string) []Suggestion {
	var out []Suggestion

	out = append(out, typoFixes(pq, vocabulary)...)
	out = append(out, broaderQuery(pq)...)
	out = append(out, refinements(pq)...)
	out = append(out, templates(pq)...)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Utility > out[j].Utility })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// typoFixes finds vocabulary terms within edit distance 1-2 of any term in
// the query that has no exact vocabulary match.
func typoFixes(pq *ProcessedQuery, vocabulary []string) []Suggestion {
	var out []Suggestion
	vocabSet := make(map[string]bool, len(vocabulary))
	for _, v := range vocabulary {
		vocabSet[v] = true
	}
	for _, term := range pq.NormalizedTerms {
		if vocabSet[term] {
			continue
		}
		best := ""
		bestDist := 3
		for _, v := range vocabulary {
			d := levenshteinDistance(term, v)
			if d >= 1 && d <= 2 && d < bestDist {
				bestDist, best = d, v
			}
		}
		if best != "" {
			fixed := strings.Replace(strings.Join(pq.NormalizedTerms, " "), term, best, 1)
			out = append(out, Suggestion{
				Query:   fixed,
				Reason:  "typo_fix",
				Utility: 1.0 - float64(bestDist)*0.2,
			})
		}
	}
	return out
}

// broaderQuery drops the longest (most specific) term from the query, on
// the theory that a long technical term is the one most likely to be
// over-narrowing the result set.
func broaderQuery(pq *ProcessedQuery) []Suggestion {
	if len(pq.NormalizedTerms) < 2 {
		return nil
	}
	longest := pq.NormalizedTerms[0]
	for _, t := range pq.NormalizedTerms {
		if len(t) > len(longest) {
			longest = t
		}
	}
	var kept []string
	for _, t := range pq.NormalizedTerms {
		if t != longest {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return []Suggestion{{Query: strings.Join(kept, " "), Reason: "broader_query", Utility: 0.6}}
}

// refinements proposes field-prefixed narrowings of the current terms, only
// offered when the query has no field filter of its own yet.
func refinements(pq *ProcessedQuery) []Suggestion {
	if len(pq.FieldFilters) > 0 || len(pq.NormalizedTerms) == 0 {
		return nil
	}
	term := pq.NormalizedTerms[0]
	return []Suggestion{
		{Query: fmt.Sprintf("path:%s", term), Reason: "refinement", Utility: 0.5},
		{Query: fmt.Sprintf("method:GET %s", term), Reason: "refinement", Utility: 0.45},
	}
}

// templates proposes common API request-pattern queries built around the
// first query term as a resource name.
func templates(pq *ProcessedQuery) []Suggestion {
	if len(pq.NormalizedTerms) == 0 {
		return nil
	}
	resource := pq.NormalizedTerms[0]
	return []Suggestion{
		{Query: fmt.Sprintf("method:POST path:%s", resource), Reason: "template", Utility: 0.4},
		{Query: fmt.Sprintf("method:DELETE path:%s", resource), Reason: "template", Utility: 0.35},
	}
}

// levenshteinDistance calculates the minimum edit distance between two
// strings.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range len(b) + 1 {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}
	return matrix[len(a)][len(b)]
}
