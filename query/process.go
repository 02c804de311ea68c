package query

import (
	"regexp"
	"sort"
	"strings"
)

// ProcessedQuery is the structured result of running Process over a raw
// search string.
type ProcessedQuery struct {
	Original         string
	NormalizedTerms  []string
	FieldFilters     map[string]string
	BooleanOperators []string
	FuzzyTerms       []string
	ExcludedTerms    []string
	QueryType        string // simple/boolean/field_specific/natural_language
	EnhancedTerms    []string
	Suggestions      []string
}

const (
	QueryTypeSimple          = "simple"
	QueryTypeBoolean         = "boolean"
	QueryTypeFieldSpecific   = "field_specific"
	QueryTypeNaturalLanguage = "natural_language"
)

// validFields are the field prefixes Process recognizes in "field:value"
// clauses.
var validFields = map[string]bool{
	"path": true, "method": true, "param": true, "status": true,
	"response": true, "type": true, "auth": true,
}

// stopWords are dropped from the tokenized remainder; importantTerms
// override them even when a term would otherwise match, since generic
// English stop-word lists were never tuned for API vocabulary (get/post/
// delete read as HTTP verbs here, not auxiliary verbs).
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true,
	"will": true, "with": true, "this": true, "these": true, "they": true,
	"them": true, "their": true, "his": true, "her": true, "have": true,
	"had": true, "can": true, "could": true, "should": true, "would": true,
	"may": true, "might": true, "must": true, "shall": true,
	"do": true, "does": true, "did": true,
}

var importantTerms = map[string]bool{
	"api": true, "rest": true, "http": true, "https": true, "json": true,
	"xml": true, "oauth": true, "jwt": true, "auth": true, "token": true,
	"key": true, "secret": true, "bearer": true, "basic": true, "digest": true,
	"create": true, "read": true, "update": true, "delete": true, "list": true,
	"search": true, "filter": true, "sort": true, "page": true, "limit": true,
	"offset": true, "id": true, "uuid": true, "status": true, "error": true,
	"get": true, "post": true, "put": true, "patch": true,
}

// synonyms maps an API term to every alternative a matching document might
// use instead: a fixed synonym map for API vocabulary.
var synonyms = map[string][]string{
	"auth":           {"authentication", "authorization", "login"},
	"authentication": {"auth", "authorization", "login"},
	"authorization":  {"auth", "authentication", "login"},
	"login":          {"auth", "authentication", "authorization"},
	"user":           {"users", "user_id"},
	"users":          {"user", "user_id"},
	"delete":         {"remove", "destroy"},
	"remove":         {"delete", "destroy"},
	"update":         {"modify", "edit", "patch"},
	"create":         {"add", "new", "insert"},
	"list":           {"search", "find", "query"},
	"get":            {"fetch", "retrieve", "read"},
}

var fieldClauseRe = regexp.MustCompile(`(\w+):("[^"]*"|'[^']*'|\S+)`)

var boolOpRe = regexp.MustCompile(`(?i)\b(AND|OR|NOT)\b`)

const stemMinLength = 5

// Process runs the full query pipeline: lowercase/punctuation strip, field
// extraction, boolean-operator extraction, tokenize/stopword/stem, synonym
// expansion, and fuzzy-variant generation.
func Process(raw string) *ProcessedQuery {
	pq := &ProcessedQuery{Original: raw, FieldFilters: make(map[string]string)}

	lowered := strings.ToLower(raw)

	hasFieldClause := fieldClauseRe.MatchString(lowered)
	remainder := lowered
	for _, m := range fieldClauseRe.FindAllStringSubmatch(lowered, -1) {
		field, value := m[1], strings.Trim(m[2], `"'`)
		if validFields[field] {
			pq.FieldFilters[field] = value
			remainder = strings.Replace(remainder, m[0], "", 1)
		}
	}

	hasBoolOp := boolOpRe.MatchString(remainder)
	for _, op := range boolOpRe.FindAllString(remainder, -1) {
		pq.BooleanOperators = append(pq.BooleanOperators, strings.ToUpper(op))
	}

	remainder = stripPunctuationExceptPathAndHyphen(remainder)

	words := strings.Fields(remainder)
	var negateNext bool
	var kept []string
	for _, w := range words {
		switch strings.ToUpper(w) {
		case "AND", "OR":
			continue
		case "NOT":
			negateNext = true
			continue
		}
		if negateNext {
			pq.ExcludedTerms = append(pq.ExcludedTerms, w)
			negateNext = false
			continue
		}
		if stopWords[w] && !importantTerms[w] {
			continue
		}
		kept = append(kept, w)
	}

	for _, w := range kept {
		pq.NormalizedTerms = append(pq.NormalizedTerms, stem(w))
	}

	pq.EnhancedTerms = expandSynonyms(pq.NormalizedTerms)

	for _, t := range pq.NormalizedTerms {
		if len(t) > 3 {
			pq.FuzzyTerms = append(pq.FuzzyTerms, t)
		}
	}

	pq.QueryType = classifyQueryType(hasFieldClause, hasBoolOp, len(pq.NormalizedTerms))
	return pq
}

func stripPunctuationExceptPathAndHyphen(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '/' || r == '-' || r == ':':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// stem applies light trailing-suffix stemming: tokens
// below stemMinLength are left alone since stripping "s"/"ed" from a short
// word changes its meaning ("as" -> "a", "bed" -> "b").
func stem(w string) string {
	if len(w) < stemMinLength {
		return w
	}
	switch {
	case strings.HasSuffix(w, "ing") && len(w)-3 >= 3:
		return w[:len(w)-3]
	case strings.HasSuffix(w, "ed") && len(w)-2 >= 3:
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return w[:len(w)-1]
	default:
		return w
	}
}

func expandSynonyms(terms []string) []string {
	seen := make(map[string]bool, len(terms)*2)
	var out []string
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
		for _, syn := range synonyms[t] {
			if !seen[syn] {
				seen[syn] = true
				out = append(out, syn)
			}
		}
	}
	sort.Strings(out)
	return out
}

func classifyQueryType(hasFieldClause, hasBoolOp bool, termCount int) string {
	switch {
	case hasFieldClause:
		return QueryTypeFieldSpecific
	case hasBoolOp:
		return QueryTypeBoolean
	case termCount > 4:
		return QueryTypeNaturalLanguage
	default:
		return QueryTypeSimple
	}
}
