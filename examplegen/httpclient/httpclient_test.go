package httpclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaskb/examplegen"
	"github.com/erraggy/oaskb/store"
)

func TestGeneratePostRequest(t *testing.T) {
	req := examplegen.Request{
		Endpoint: store.Endpoint{
			PathTemplate: "/api/v1/users",
			Method:       "POST",
			OperationID:  "createUser",
		},
		Scheme:      &store.SecurityScheme{Type: "http", HTTPScheme: "bearer"},
		IncludeAuth: true,
	}

	code, err := Generate(req)
	require.NoError(t, err)
	assert.Contains(t, code, "async function")
	assert.Contains(t, code, "fetch(")
	assert.Contains(t, code, "method: 'POST'")
	assert.Contains(t, code, "'Authorization': `Bearer ${token}`")
	assert.Contains(t, code, "response.json()")
	assert.Contains(t, code, "catch (error)")
	assert.Contains(t, code, "response.ok")
}

func TestGenerateHandlesEmptyOperationID(t *testing.T) {
	req := examplegen.Request{Endpoint: store.Endpoint{PathTemplate: "/ping", Method: "GET"}}
	code, err := Generate(req)
	require.NoError(t, err)
	assert.Contains(t, code, "async function callEndpoint")
}
