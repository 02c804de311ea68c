package examplegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaskb/store"
)

func sampleGetUser() store.Endpoint {
	return store.Endpoint{
		ID:           1,
		PathTemplate: "/api/v1/users/{id}",
		Method:       "GET",
		OperationID:  "getUserById",
		Summary:      "Get user by ID",
		Parameters: []store.Parameter{
			{Name: "id", In: "path", Required: true, SchemaType: "string"},
		},
		Security: []store.SecurityRequirementAlternative{{SchemeID: "bearerAuth"}},
	}
}

func TestResolvedPathSubstitutesStringSentinel(t *testing.T) {
	req := Request{Endpoint: sampleGetUser()}
	assert.Equal(t, "/api/v1/users/example", req.ResolvedPath())
}

func TestResolvedPathSubstitutesIntegerSentinel(t *testing.T) {
	ep := sampleGetUser()
	ep.Parameters[0].SchemaType = "integer"
	req := Request{Endpoint: ep}
	assert.Equal(t, "/api/v1/users/12345", req.ResolvedPath())
}

func TestResolvedPathSubstitutesUUIDSentinel(t *testing.T) {
	ep := sampleGetUser()
	ep.Parameters[0].Format = "uuid"
	req := Request{Endpoint: ep}
	assert.Equal(t, "/api/v1/users/123e4567-e89b-12d3-a456-426614174000", req.ResolvedPath())
}

func TestURLUsesDefaultBaseWhenUnset(t *testing.T) {
	req := Request{Endpoint: sampleGetUser()}
	assert.Equal(t, "https://api.example.com/api/v1/users/example", req.URL())
}

func TestURLHonorsCustomBase(t *testing.T) {
	req := Request{Endpoint: sampleGetUser(), BaseURL: "https://custom.api.com/"}
	assert.Equal(t, "https://custom.api.com/api/v1/users/example", req.URL())
}

func TestAuthHeaderBearer(t *testing.T) {
	req := Request{
		Endpoint:    sampleGetUser(),
		Scheme:      &store.SecurityScheme{Type: "http", HTTPScheme: "bearer"},
		IncludeAuth: true,
	}
	name, value, ok := req.AuthHeader()
	require.True(t, ok)
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Bearer YOUR_TOKEN_HERE", value)
}

func TestAuthHeaderOmittedWhenIncludeAuthFalse(t *testing.T) {
	req := Request{
		Endpoint:    sampleGetUser(),
		Scheme:      &store.SecurityScheme{Type: "http", HTTPScheme: "bearer"},
		IncludeAuth: false,
	}
	_, _, ok := req.AuthHeader()
	assert.False(t, ok)
}

func TestAuthHeaderAPIKeyQueryGoesToAuthQueryParam(t *testing.T) {
	req := Request{
		Endpoint:    sampleGetUser(),
		Scheme:      &store.SecurityScheme{Type: "apiKey", APIKeyLocation: "query", APIKeyName: "api_key"},
		IncludeAuth: true,
	}
	_, _, ok := req.AuthHeader()
	assert.False(t, ok)
	name, value, ok := req.AuthQueryParam()
	require.True(t, ok)
	assert.Equal(t, "api_key", name)
	assert.Equal(t, "YOUR_API_KEY_HERE", value)
	assert.Contains(t, req.URL(), "?api_key=YOUR_API_KEY_HERE")
}

func TestAuthCommentForMutualTLS(t *testing.T) {
	req := Request{
		Endpoint:    sampleGetUser(),
		Scheme:      &store.SecurityScheme{Type: "mutualTLS"},
		IncludeAuth: true,
	}
	_, _, ok := req.AuthHeader()
	assert.False(t, ok)
	comment, ok := req.AuthComment()
	require.True(t, ok)
	assert.Contains(t, comment, "out-of-band")
}

func TestHasBodyOnlyForWriteMethodsWithSchema(t *testing.T) {
	get := Request{Endpoint: sampleGetUser(), BodySchema: &store.Schema{}}
	assert.False(t, get.HasBody())

	post := Request{
		Endpoint:   store.Endpoint{Method: "POST", PathTemplate: "/users"},
		BodySchema: &store.Schema{},
	}
	assert.True(t, post.HasBody())

	postNoSchema := Request{Endpoint: store.Endpoint{Method: "POST", PathTemplate: "/users"}}
	assert.False(t, postNoSchema.HasBody())
}

func TestBodySynthesizesNameConvention(t *testing.T) {
	req := Request{
		Endpoint: store.Endpoint{Method: "POST", PathTemplate: "/users"},
		BodySchema: &store.Schema{
			Properties: []store.SchemaProperty{{Name: "name", Type: "string"}, {Name: "age", Type: "integer"}},
		},
	}
	body, ok := req.Body()
	require.True(t, ok)
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, body, "12345")
}

func TestBodyPrefersSchemaExample(t *testing.T) {
	req := Request{
		Endpoint: store.Endpoint{Method: "POST", PathTemplate: "/users"},
		BodySchema: &store.Schema{
			Example: map[string]any{"name": "Ada Lovelace"},
		},
	}
	body, ok := req.Body()
	require.True(t, ok)
	assert.Contains(t, body, "Ada Lovelace")
}

func TestValidateRejectsEmptyPathTemplate(t *testing.T) {
	req := Request{Endpoint: store.Endpoint{}}
	err := req.Validate()
	require.Error(t, err)
}
