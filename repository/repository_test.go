package repository

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaskb/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := store.DefaultConfig(path)
	d, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	_, err = store.MigrateToLatest(context.Background(), d, false)
	require.NoError(t, err)
	return d
}

func seedAPI(t *testing.T, db *store.DB) int64 {
	t.Helper()
	repo := NewAPIMetadataRepository(db)
	id, err := repo.Create(context.Background(), store.APIMetadata{
		FilePath: "petstore.yaml", ContentHash: "abc123", Title: "Petstore", Version: "1.0.0", OpenAPIVersion: "3.0.3",
	})
	require.NoError(t, err)
	return id
}

func TestAPIMetadataRepositoryCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	apiID := seedAPI(t, db)

	repo := NewAPIMetadataRepository(db)
	got, err := repo.GetByID(context.Background(), apiID)
	require.NoError(t, err)
	assert.Equal(t, "Petstore", got.Title)
	assert.Equal(t, "abc123", got.ContentHash)
}

func TestAPIMetadataRepositoryDuplicateContentHashConflicts(t *testing.T) {
	db := openTestDB(t)
	seedAPI(t, db)

	repo := NewAPIMetadataRepository(db)
	_, err := repo.Create(context.Background(), store.APIMetadata{
		FilePath: "other.yaml", ContentHash: "abc123", Title: "Other", Version: "1.0.0", OpenAPIVersion: "3.0.3",
	})
	require.Error(t, err)
}

func TestAPIMetadataRepositoryGetByContentHashNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewAPIMetadataRepository(db)
	_, err := repo.GetByContentHash(context.Background(), "missing")
	assert.Error(t, err)
}

func TestEndpointRepositoryCreateGetUpdateDelete(t *testing.T) {
	db := openTestDB(t)
	apiID := seedAPI(t, db)

	repo := NewEndpointRepository(db)
	id, err := repo.Create(context.Background(), store.Endpoint{
		APIID: apiID, PathTemplate: "/pets", Method: "GET", OperationID: "listPets",
		Tags: []string{"Pets"}, Category: "pets", SearchableText: "list pets",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "listPets", got.OperationID)
	assert.Equal(t, []string{"Pets"}, got.Tags)

	got.Summary = "List all pets"
	require.NoError(t, repo.Update(context.Background(), got))

	updated, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "List all pets", updated.Summary)

	require.NoError(t, repo.DeleteByID(context.Background(), id))
	_, err = repo.GetByID(context.Background(), id)
	assert.Error(t, err)
}

func TestEndpointRepositoryListAndGetPage(t *testing.T) {
	db := openTestDB(t)
	apiID := seedAPI(t, db)
	repo := NewEndpointRepository(db)

	for i, method := range []string{"GET", "POST", "PUT"} {
		_, err := repo.Create(context.Background(), store.Endpoint{
			APIID: apiID, PathTemplate: "/pets", Method: method, OperationID: "op" + string(rune('A'+i)),
		})
		require.NoError(t, err)
	}

	count, err := repo.Count(context.Background(), []Filter{{Field: "api_id", Value: apiID}})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	page, err := repo.GetPage(context.Background(), 1, 2, "method", []Filter{{Field: "api_id", Value: apiID}})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 2)
}

func TestEndpointRepositorySearchEndpointsFiltersByCategoryAndMethod(t *testing.T) {
	db := openTestDB(t)
	apiID := seedAPI(t, db)
	repo := NewEndpointRepository(db)

	_, err := repo.Create(context.Background(), store.Endpoint{
		APIID: apiID, PathTemplate: "/pets", Method: "GET", OperationID: "listPets",
		Category: "pets", SearchableText: "list all pets in the store",
	})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), store.Endpoint{
		APIID: apiID, PathTemplate: "/orders", Method: "POST", OperationID: "createOrder",
		Category: "orders", SearchableText: "create a new order",
	})
	require.NoError(t, err)

	results, err := repo.SearchEndpoints(context.Background(), apiID, "", []string{"GET"}, "pets", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "listPets", results[0].OperationID)

	results, err = repo.SearchEndpoints(context.Background(), apiID, "pets", nil, "", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "listPets", results[0].OperationID)
}

func TestSchemaRepositoryGetSchemaWithDependencies(t *testing.T) {
	db := openTestDB(t)
	apiID := seedAPI(t, db)
	repo := NewSchemaRepository(db)

	_, err := repo.Create(context.Background(), store.Schema{APIID: apiID, Name: "Owner", Type: "object"})
	require.NoError(t, err)
	petID, err := repo.Create(context.Background(), store.Schema{
		APIID: apiID, Name: "Pet", Type: "object", SchemaDependencies: []string{"Owner"},
	})
	require.NoError(t, err)

	result, err := repo.GetSchemaWithDependencies(context.Background(), petID, 2)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Pet", result[0].Name)
	assert.Equal(t, "Owner", result[1].Name)
}

func TestSchemaRepositoryGetSchemaWithDependenciesZeroDepth(t *testing.T) {
	db := openTestDB(t)
	apiID := seedAPI(t, db)
	repo := NewSchemaRepository(db)

	id, err := repo.Create(context.Background(), store.Schema{
		APIID: apiID, Name: "Pet", SchemaDependencies: []string{"Owner"},
	})
	require.NoError(t, err)

	result, err := repo.GetSchemaWithDependencies(context.Background(), id, 0)
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestEndpointRepositoryRebuildCategoryCatalog(t *testing.T) {
	db := openTestDB(t)
	apiID := seedAPI(t, db)
	repo := NewEndpointRepository(db)

	_, err := repo.Create(context.Background(), store.Endpoint{
		APIID: apiID, PathTemplate: "/pets", Method: "GET", Category: "pets", CategoryGroup: "core",
	})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), store.Endpoint{
		APIID: apiID, PathTemplate: "/pets", Method: "POST", Category: "pets", CategoryGroup: "core",
	})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), store.Endpoint{
		APIID: apiID, PathTemplate: "/orders", Method: "GET", Category: "orders", CategoryGroup: "commerce",
	})
	require.NoError(t, err)

	tx, err := db.SQL().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.RebuildCategoryCatalog(context.Background(), tx, apiID))
	require.NoError(t, tx.Commit())

	entries, err := repo.GetCategories(context.Background(), apiID, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "orders", entries[0].CategoryName)
	assert.Equal(t, "pets", entries[1].CategoryName)
	assert.Equal(t, 2, entries[1].EndpointCount)
	assert.Equal(t, []string{"GET", "POST"}, entries[1].HTTPMethods)

	groups, err := repo.GetCategoryGroups(context.Background(), apiID)
	require.NoError(t, err)
	assert.Equal(t, []string{"commerce", "core"}, groups)

	tx, err = db.SQL().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.RebuildCategoryCatalog(context.Background(), tx, apiID))
	require.NoError(t, tx.Commit())

	entries, err = repo.GetCategories(context.Background(), apiID, "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCategoryTransformRoundTrips(t *testing.T) {
	// Matching is case-insensitive end-to-end, so only the first character is
	// capitalized and the underscore becomes a hyphen: "search_promo" ->
	// "Search-promo", which compares equal to "Search-Promo" case-insensitively.
	assert.Equal(t, "search-promo", strings.ToLower(CategoryNameToDisplay("search_promo")))
	assert.Equal(t, "search_promo", DisplayToCategoryName("Search-Promo"))
	assert.Equal(t, "search_promo", NormalizeCategoryFilterValue("Search-Promo"))
	assert.Equal(t, "search_promo", NormalizeCategoryFilterValue("search_promo"))
}
