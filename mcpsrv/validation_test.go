package mcpsrv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaskb/oaserrors"
)

func TestValidateKeywordsRejectsEmptyAndOversized(t *testing.T) {
	require.Error(t, validateKeywords(""))
	require.NoError(t, validateKeywords("list pets"))
	require.Error(t, validateKeywords(strings.Repeat("a", 501)))
}

func TestValidateHTTPMethodsRejectsUnknownAndDuplicate(t *testing.T) {
	require.NoError(t, validateHTTPMethods([]string{"GET", "post"}))
	require.Error(t, validateHTTPMethods([]string{"FETCH"}))
	require.Error(t, validateHTTPMethods([]string{"GET", "get"}))
}

func TestValidatePageDefaultsAndRejectsNegative(t *testing.T) {
	page, err := validatePage(0)
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	_, err = validatePage(-1)
	require.Error(t, err)
}

func TestValidatePerPageDefaultsAndBounds(t *testing.T) {
	perPage, err := validatePerPage(0)
	require.NoError(t, err)
	assert.Equal(t, 20, perPage)

	_, err = validatePerPage(51)
	require.Error(t, err)
}

func TestValidateMaxDepthDefaultsAndBounds(t *testing.T) {
	depth, err := validateMaxDepth(0)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)

	_, err = validateMaxDepth(11)
	require.Error(t, err)
}

func TestNormalizeComponentNameStripsKnownPrefixes(t *testing.T) {
	assert.Equal(t, "User", normalizeComponentName("#/components/schemas/User"))
	assert.Equal(t, "User", normalizeComponentName("components/schemas/User"))
	assert.Equal(t, "User", normalizeComponentName("#/definitions/User"))
	assert.Equal(t, "User", normalizeComponentName("User"))
}

func TestValidateEndpointAndMethodRequiresMethodForPathLookup(t *testing.T) {
	require.Error(t, validateEndpointAndMethod("", ""))

	err := validateEndpointAndMethod("/api/v1/users/{id}", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method")

	require.NoError(t, validateEndpointAndMethod("/api/v1/users/{id}", "GET"))
	require.NoError(t, validateEndpointAndMethod("users-get", ""))
}

func TestValidateFormatRejectsUnsupported(t *testing.T) {
	require.NoError(t, validateFormat("curl"))
	require.NoError(t, validateFormat("http-client"))
	require.NoError(t, validateFormat("script"))
	require.Error(t, validateFormat("javascript"))
}

func TestValidateSortByDefaultsAndRejectsUnknown(t *testing.T) {
	sortBy, err := validateSortBy("")
	require.NoError(t, err)
	assert.Equal(t, "name", sortBy)

	_, err = validateSortBy("bogus")
	require.Error(t, err)
}

func TestValidationErrSatisfiesValidationInputErrorType(t *testing.T) {
	err := validateKeywords("")
	var ve *oaserrors.ValidationInputError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "keywords", ve.Parameter)
}
