package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oaskb/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalOAS3 = `{
  "openapi": "3.0.3",
  "info": {"title": "Test API", "version": "1.0.0"},
  "paths": {
    "/pets": {
      "get": {
        "operationId": "listPets",
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func writeTempSpec(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStreamFileParsesAndReportsMetrics(t *testing.T) {
	path := writeTempSpec(t, minimalOAS3)

	var events []ProgressEvent
	result, metrics, err := StreamFile(path, StreamOptions{
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, metrics)

	assert.Equal(t, 1, metrics.EndpointsFound)
	assert.Equal(t, int64(len(minimalOAS3)), metrics.FileSize)
	assert.NotEmpty(t, events)
	assert.Equal(t, ProgressPhaseComplete, events[len(events)-1].Phase)
}

func TestStreamFileRejectsMissingFile(t *testing.T) {
	_, _, err := StreamFile(filepath.Join(t.TempDir(), "missing.json"), StreamOptions{})
	require.Error(t, err)
	var fnf *oaserrors.FileNotFoundError
	assert.ErrorAs(t, err, &fnf)
}

func TestStreamFileRejectsOversizedFile(t *testing.T) {
	path := writeTempSpec(t, minimalOAS3)
	_, _, err := StreamFile(path, StreamOptions{MaxFileSize: 4})
	require.Error(t, err)
	var tooLarge *oaserrors.FileTooLargeError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestStreamFileEnforcesMemoryCeiling(t *testing.T) {
	path := writeTempSpec(t, minimalOAS3)
	_, _, err := StreamFile(path, StreamOptions{MemoryCeilingMB: 1})
	// A 1MB ceiling is implausible to trip in a unit test process that has
	// already allocated far more heap than that; assert the guard at least
	// evaluates without panicking and, if tripped, returns the typed error.
	if err != nil {
		var memErr *oaserrors.MemoryLimitExceededError
		assert.ErrorAs(t, err, &memErr)
	}
}

func TestCountExtensionKeysRecursive(t *testing.T) {
	doc := map[string]any{
		"x-top": "v",
		"nested": map[string]any{
			"x-nested": "v",
			"list": []any{
				map[string]any{"x-deep": "v"},
			},
		},
	}
	assert.Equal(t, 3, countExtensionKeys(doc))
}
