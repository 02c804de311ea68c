package consistency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oaskb/store"
)

func TestCheckFlagsUndefinedSchemaReference(t *testing.T) {
	endpoints := []store.Endpoint{
		{PathTemplate: "/pets", Method: "GET", SchemaDependencies: []string{"Missing"}},
	}
	r := Check(endpoints, nil, nil)
	assert.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0].Message, "Missing")
}

func TestCheckFlagsPathParameterMismatch(t *testing.T) {
	endpoints := []store.Endpoint{
		{
			PathTemplate: "/pets/{petId}",
			Method:       "GET",
			Parameters:   []store.Parameter{{Name: "wrongName", In: "path", Required: true}},
		},
	}
	r := Check(endpoints, nil, nil)
	assert.NotEmpty(t, r.Errors)
}

func TestCheckFlagsUnusedSchema(t *testing.T) {
	schemas := []store.Schema{{Name: "Unused"}}
	r := Check(nil, schemas, nil)
	assert.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0].Message, "not referenced")
}

func TestCheckFlagsOverlyCoupledSchema(t *testing.T) {
	schemas := []store.Schema{
		{Name: "Big", SchemaDependencies: []string{"A", "B", "C", "D", "E", "F"}},
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"}, {Name: "F"},
	}
	r := Check(nil, schemas, nil)
	found := false
	for _, w := range r.Warnings {
		if w.Path == "components.schemas.Big" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckFlagsCollectionWithoutGet(t *testing.T) {
	endpoints := []store.Endpoint{
		{PathTemplate: "/pets", Method: "POST"},
	}
	r := Check(endpoints, nil, nil)
	found := false
	for _, w := range r.Warnings {
		if w.Message == "collection path has POST but no GET" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScoreWithNoIssuesIsPerfect(t *testing.T) {
	r := Report{}
	assert.Equal(t, 100.0, r.Score(10, 5))
}

func TestScoreZeroEntitiesReturnsPerfect(t *testing.T) {
	r := Report{}
	assert.Equal(t, 100.0, r.Score(0, 0))
}

func TestScoreNeverNegative(t *testing.T) {
	endpoints := make([]store.Endpoint, 0, 50)
	for i := 0; i < 50; i++ {
		endpoints = append(endpoints, store.Endpoint{
			PathTemplate:       "/thing",
			Method:             "GET",
			SchemaDependencies: []string{"Missing"},
		})
	}
	r := Check(endpoints, nil, nil)
	score := r.Score(1, 0)
	assert.GreaterOrEqual(t, score, 0.0)
}
