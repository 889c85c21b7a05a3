package feed_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdsfeed/internal/feed"
	"opdsfeed/internal/opds"
	"opdsfeed/internal/testutil"
)

func TestSearchCatalog_EndToEnd(t *testing.T) {
	provider := testutil.NewMemoryProvider()

	catalog, err := feed.CreateSearchCatalog(context.Background(), provider, "gatsby", 50, 0, "http://localhost/opds/search")
	require.NoError(t, err)
	require.NoError(t, catalog.Validate())

	require.NotNil(t, catalog.Metadata.NumberOfItems)
	assert.Equal(t, 1, *catalog.Metadata.NumberOfItems)
	require.Len(t, catalog.Publications, 1)

	pub := catalog.Publications[0]
	assert.Equal(t, "The Great Gatsby", pub.Metadata.Title)
	require.Len(t, pub.Metadata.Author, 1)
	assert.Equal(t, "F. Scott Fitzgerald", pub.Metadata.Author[0].Name)
	assert.Equal(t, opds.StringList{"en"}, pub.Metadata.Language)
	require.Len(t, pub.Links, 1)
	assert.Equal(t, "https://example.com/gatsby.epub", pub.Links[0].Href)
	assert.Equal(t, opds.TypeEPUB, pub.Links[0].Type)
}

func TestSearchCatalog_EndToEnd_Pagination(t *testing.T) {
	provider := testutil.NewMemoryProvider()

	// page 2 of 3 with one item per page
	catalog, err := feed.CreateSearchCatalog(context.Background(), provider, "", 1, 1, "http://localhost/opds/search")
	require.NoError(t, err)

	require.Len(t, catalog.Publications, 1)
	assert.Equal(t, "To Kill a Mockingbird", catalog.Publications[0].Metadata.Title)
	require.NotNil(t, catalog.Metadata.NumberOfItems)
	assert.Equal(t, 3, *catalog.Metadata.NumberOfItems)

	rels := make(map[string]bool)
	for _, l := range catalog.Links {
		for _, rel := range l.Rel {
			rels[rel] = true
		}
	}
	for _, rel := range []string{"self", "first", "previous", "next", "last"} {
		assert.True(t, rels[rel], rel)
	}
}

func TestSearchCatalog_EndToEnd_JSON(t *testing.T) {
	provider := testutil.NewMemoryProvider()

	catalog, err := feed.CreateSearchCatalog(context.Background(), provider, "orwell", 10, 0, "http://localhost/opds/search")
	require.NoError(t, err)

	b, err := json.Marshal(catalog)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))

	assert.Equal(t, opds.ContextURI, out["@context"])
	meta := out["metadata"].(map[string]any)
	assert.Equal(t, `Search results for "orwell"`, meta["title"])
	assert.Equal(t, float64(1), meta["numberOfItems"])

	pubs := out["publications"].([]any)
	require.Len(t, pubs, 1)
	pubMeta := pubs[0].(map[string]any)["metadata"].(map[string]any)
	assert.Equal(t, "1984", pubMeta["title"])
}
