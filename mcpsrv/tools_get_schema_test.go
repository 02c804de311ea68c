package mcpsrv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oaskb/store"
)

func TestToSchemaViewOmitsExampleAndExtensionsWhenExcluded(t *testing.T) {
	s := store.Schema{
		Name:       "User",
		Properties: []store.SchemaProperty{{Name: "id", Type: "integer"}},
		Example:    map[string]any{"id": 1},
		Extensions: map[string]any{"x-internal": true},
	}

	full := toSchemaView(s, true, true)
	assert.NotNil(t, full.Example)
	assert.NotNil(t, full.Extensions)

	stripped := toSchemaView(s, false, false)
	assert.Nil(t, stripped.Example)
	assert.Nil(t, stripped.Extensions)
	assert.Equal(t, "User", stripped.Name)
	assert.Len(t, stripped.Properties, 1)
}
