package query

import (
	"math"
	"strings"

	"github.com/erraggy/oaskb/searchindex"
)

// bm25K1 and bm25B are the standard Okapi BM25 tuning constants; this
// ranker has no corpus-specific tuning data yet, so it uses the textbook
// defaults.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// fieldNames are scored in this weighting order: path >
// operationId > summary > tags > description > parameters > content.
var fieldNames = []string{"path", "operationId", "summary", "tags", "description", "parameters", "content"}

// DefaultFieldWeights mirrors that ordering without claiming any exact
// ratio between adjacent fields, since none is specified.
var DefaultFieldWeights = map[string]float64{
	"path":        5.0,
	"operationId": 4.0,
	"summary":     3.0,
	"tags":        2.5,
	"description": 2.0,
	"parameters":  1.5,
	"content":     1.0,
}

type fieldStats struct {
	docFreq   map[string]int // term -> number of docs containing it
	docLength map[int64]int  // endpoint id -> token count for this field
	totalLen  int
	docCount  int
}

// Ranker scores searchindex.Document values against a ProcessedQuery using
// per-field BM25 plus boost/penalty rules.
type Ranker struct {
	Weights map[string]float64
	stats   map[string]*fieldStats
	docs    map[int64]searchindex.Document
}

// NewRanker builds per-field corpus statistics (document frequency, average
// document length) from docs, training the ranker on the indexed corpus.
func NewRanker(docs []searchindex.Document) *Ranker {
	r := &Ranker{
		Weights: DefaultFieldWeights,
		stats:   make(map[string]*fieldStats, len(fieldNames)),
		docs:    make(map[int64]searchindex.Document, len(docs)),
	}
	for _, f := range fieldNames {
		r.stats[f] = &fieldStats{docFreq: make(map[string]int), docLength: make(map[int64]int)}
	}
	for _, d := range docs {
		r.docs[d.EndpointID] = d
		for _, f := range fieldNames {
			tokens := tokenizeField(d, f)
			st := r.stats[f]
			st.docCount++
			st.docLength[d.EndpointID] = len(tokens)
			st.totalLen += len(tokens)
			seen := make(map[string]bool, len(tokens))
			for _, t := range tokens {
				if !seen[t] {
					seen[t] = true
					st.docFreq[t]++
				}
			}
		}
	}
	return r
}

func tokenizeField(d searchindex.Document, field string) []string {
	var text string
	switch field {
	case "path":
		text = d.Path
	case "operationId":
		text = d.OperationID
	case "summary":
		text = d.Summary
	case "tags":
		text = strings.Join(d.Tags, " ")
	case "description":
		text = d.Description
	case "parameters":
		text = strings.Join(append(append([]string{}, d.RequiredParamNames...), d.OptionalParamNames...), " ")
	case "content":
		text = strings.Join(append(append([]string{}, d.RequestBodyContentTypes...), d.ResponseContentTypes...), " ")
	}
	return strings.Fields(strings.ToLower(strings.NewReplacer("/", " ", "-", " ", "_", " ").Replace(text)))
}

func (st *fieldStats) avgLength() float64 {
	if st.docCount == 0 {
		return 0
	}
	return float64(st.totalLen) / float64(st.docCount)
}

func (st *fieldStats) idf(term string) float64 {
	df := st.docFreq[term]
	n := float64(st.docCount)
	return math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

// FieldContribution is one field's BM25 contribution to a document's score.
type FieldContribution struct {
	Field  string
	Score  float64
	Weight float64
}

// Explanation is the full scoring trace Ranker.Explain returns.
type Explanation struct {
	EndpointID   int64
	Fields       []FieldContribution
	RawScore     float64
	BoostFactor  float64
	Boosts       []string
	Penalties    []string
	FinalScore   float64
}

// Score ranks one document against a processed query, returning a value in
// (0, 1).
func (r *Ranker) Score(pq *ProcessedQuery, doc searchindex.Document) float64 {
	return r.Explain(pq, doc).FinalScore
}

// Explain returns the full per-field BM25 trace, boost/penalty factors, and
// final sigmoid-normalized score for one document.
func (r *Ranker) Explain(pq *ProcessedQuery, doc searchindex.Document) Explanation {
	terms := pq.EnhancedTerms
	if len(terms) == 0 {
		terms = pq.NormalizedTerms
	}

	exp := Explanation{EndpointID: doc.EndpointID, BoostFactor: 1.0}
	var raw float64
	for _, field := range fieldNames {
		st := r.stats[field]
		tokens := tokenizeField(doc, field)
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		docLen := float64(len(tokens))
		avgLen := st.avgLength()
		var fieldScore float64
		for _, term := range terms {
			f := float64(tf[term])
			if f == 0 {
				continue
			}
			idf := st.idf(term)
			denom := f + bm25K1*(1-bm25B+bm25B*safeDiv(docLen, avgLen))
			fieldScore += idf * (f * (bm25K1 + 1)) / denom
		}
		weight := r.Weights[field]
		weighted := fieldScore * weight
		raw += weighted
		if fieldScore > 0 {
			exp.Fields = append(exp.Fields, FieldContribution{Field: field, Score: fieldScore, Weight: weight})
		}
	}
	exp.RawScore = raw

	boost := 1.0
	segCount := len(doc.PathSegments)
	if segCount > 0 && segCount <= 2 {
		boost *= 1.1
		exp.Boosts = append(exp.Boosts, "short_path")
	}
	if doc.OperationID != "" && doc.Description != "" {
		boost *= 1.15
		exp.Boosts = append(exp.Boosts, "well_documented")
	}
	if len(doc.RequiredParamNames)+len(doc.OptionalParamNames) > 0 {
		boost *= 1.05
		exp.Boosts = append(exp.Boosts, "has_parameters")
	}
	method := strings.ToUpper(doc.Method)
	if method == "GET" || method == "POST" {
		boost *= 1.05
		exp.Boosts = append(exp.Boosts, "common_method")
	}

	if segCount > 4 {
		boost *= 0.9
		exp.Penalties = append(exp.Penalties, "long_path")
	}
	if doc.Deprecated {
		boost *= 0.5
		exp.Penalties = append(exp.Penalties, "deprecated")
	}
	if doc.Summary == "" && doc.Description == "" {
		boost *= 0.8
		exp.Penalties = append(exp.Penalties, "undocumented")
	}
	if method == "PATCH" || method == "HEAD" || method == "OPTIONS" {
		boost *= 0.9
		exp.Penalties = append(exp.Penalties, "uncommon_method")
	}
	exp.BoostFactor = boost

	exp.FinalScore = sigmoid(raw * boost)
	return exp
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// sigmoid maps an unbounded, non-negative BM25-derived score into (0, 1).
// The divisor scales the raw score before the logistic curve so that
// typical multi-field-weighted scores (roughly 1-20) spread across the
// curve's useful range instead of saturating near 1.
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x/4))
}
