package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessExtractsFieldFilters(t *testing.T) {
	pq := Process("path:/pets method:GET")
	assert.Equal(t, QueryTypeFieldSpecific, pq.QueryType)
	assert.Equal(t, "/pets", pq.FieldFilters["path"])
	assert.Equal(t, "get", pq.FieldFilters["method"])
}

func TestProcessExtractsBooleanOperatorsAndExclusions(t *testing.T) {
	pq := Process("pets AND NOT deprecated")
	assert.Equal(t, QueryTypeBoolean, pq.QueryType)
	assert.Contains(t, pq.BooleanOperators, "AND")
	assert.Contains(t, pq.ExcludedTerms, "deprecated")
	assert.NotContains(t, pq.NormalizedTerms, "deprecated")
}

func TestProcessStemsLongTokens(t *testing.T) {
	pq := Process("listing updates")
	assert.Contains(t, pq.NormalizedTerms, "list")
	assert.Contains(t, pq.NormalizedTerms, "update")
}

func TestProcessExpandsSynonyms(t *testing.T) {
	pq := Process("auth")
	assert.Contains(t, pq.EnhancedTerms, "authentication")
	assert.Contains(t, pq.EnhancedTerms, "login")
}

func TestProcessKeepsImportantShortStopWords(t *testing.T) {
	pq := Process("get user")
	assert.Contains(t, pq.NormalizedTerms, "get")
}

func TestProcessSimpleQueryType(t *testing.T) {
	pq := Process("widget")
	assert.Equal(t, QueryTypeSimple, pq.QueryType)
}
