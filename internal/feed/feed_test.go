package feed

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdsfeed/internal/mapping"
	"opdsfeed/internal/opds"
	"opdsfeed/internal/pagination"
)

func testMapping(t *testing.T) mapping.ItemMapping {
	t.Helper()
	m, err := mapping.New(map[string]mapping.Extractor{
		"title":            func(r mapping.Record) any { return r["title"] },
		"author":           func(r mapping.Record) any { return r["author"] },
		"acquisition_link": func(r mapping.Record) any { return r["url"] },
	})
	require.NoError(t, err)
	return m
}

func relSet(links []opds.Link) map[string]opds.Link {
	out := make(map[string]opds.Link, len(links))
	for _, l := range links {
		for _, rel := range l.Rel {
			out[rel] = l
		}
	}
	return out
}

func TestCreateCatalog_Basic(t *testing.T) {
	catalog, err := CreateCatalog(CatalogOptions{
		Title:    "My Library",
		SelfLink: "http://localhost/opds/catalog",
	})
	require.NoError(t, err)

	assert.Equal(t, "My Library", catalog.Metadata.Title)
	assert.True(t, strings.HasPrefix(catalog.Metadata.Identifier, "urn:uuid:"))

	self, ok := catalog.SelfLink()
	require.True(t, ok)
	assert.Equal(t, "http://localhost/opds/catalog", self.Href)
	assert.Equal(t, opds.TypeOPDS, self.Type)
}

func TestCreateCatalog_SearchLink(t *testing.T) {
	t.Run("templated href is flagged", func(t *testing.T) {
		catalog, err := CreateCatalog(CatalogOptions{
			Title:      "My Library",
			SelfLink:   "/opds/catalog",
			SearchLink: "/opds/search?query={searchTerms}",
		})
		require.NoError(t, err)

		links := relSet(catalog.Links)
		require.Contains(t, links, opds.RelSearch)
		assert.True(t, links[opds.RelSearch].Templated)
	})

	t.Run("plain href is not flagged", func(t *testing.T) {
		catalog, err := CreateCatalog(CatalogOptions{
			Title:      "My Library",
			SelfLink:   "/opds/catalog",
			SearchLink: "/opds/search",
		})
		require.NoError(t, err)

		assert.False(t, relSet(catalog.Links)[opds.RelSearch].Templated)
	})
}

func TestCreateCatalog_Invalid(t *testing.T) {
	_, err := CreateCatalog(CatalogOptions{Title: "", SelfLink: "/opds"})
	assert.Error(t, err)

	_, err = CreateCatalog(CatalogOptions{Title: "No Self"})
	assert.Error(t, err)
}

func TestCreateCatalog_KeepsIdentifierAndNavigation(t *testing.T) {
	catalog, err := CreateCatalog(CatalogOptions{
		Title:      "Root",
		SelfLink:   "/opds/catalog",
		Identifier: "urn:example:root",
		Navigation: []opds.Navigation{
			{Title: "All books", Href: "/opds/search", Type: opds.TypeOPDS, Rel: opds.RelSubsection},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "urn:example:root", catalog.Metadata.Identifier)
	require.Len(t, catalog.Navigation, 1)
	assert.Equal(t, "All books", catalog.Navigation[0].Title)
}

func TestCreateSearchCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	provider := NewMockDataProvider(ctrl)

	provider.EXPECT().Search(gomock.Any(), "herbert", 10, 10).Return(SearchResult{
		Items: []mapping.Record{
			{"title": "Dune", "author": []string{"Frank Herbert"}, "url": "https://example.com/dune.epub"},
			{"title": "Dune Messiah", "author": []string{"Frank Herbert"}},
		},
		Page:     2,
		Rows:     10,
		NumFound: 25,
	}, nil)
	provider.EXPECT().ItemMapping().Return(testMapping(t))

	catalog, err := CreateSearchCatalog(context.Background(), provider, "herbert", 10, 10, "http://localhost/opds/search")
	require.NoError(t, err)

	assert.Equal(t, `Search results for "herbert"`, catalog.Metadata.Title)
	require.NotNil(t, catalog.Metadata.NumberOfItems)
	assert.Equal(t, 25, *catalog.Metadata.NumberOfItems)
	require.NotNil(t, catalog.Metadata.Modified)

	require.Len(t, catalog.Publications, 2)
	assert.Equal(t, "Dune", catalog.Publications[0].Metadata.Title)
	require.Len(t, catalog.Publications[0].Links, 1)
	assert.Equal(t, opds.StringList{opds.RelAcquisition}, catalog.Publications[0].Links[0].Rel)

	links := relSet(catalog.Links)
	for _, rel := range []string{"self", "first", "previous", "next", "last"} {
		require.Contains(t, links, rel)
		u, err := url.Parse(links[rel].Href)
		require.NoError(t, err)
		assert.Equal(t, "herbert", u.Query().Get("query"), rel)
	}
}

func TestCreateSearchCatalog_NoResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	provider := NewMockDataProvider(ctrl)

	provider.EXPECT().Search(gomock.Any(), "xyz123", 50, 0).Return(SearchResult{Page: 1, Rows: 50}, nil)
	provider.EXPECT().ItemMapping().Return(testMapping(t))

	catalog, err := CreateSearchCatalog(context.Background(), provider, "xyz123", 50, 0, "http://localhost/opds/search")
	require.NoError(t, err)

	assert.Equal(t, `No results found for "xyz123"`, catalog.Metadata.Title)
	assert.Empty(t, catalog.Publications)
	require.NotNil(t, catalog.Metadata.NumberOfItems)
	assert.Zero(t, *catalog.Metadata.NumberOfItems)

	// total == 0: only the self link
	require.Len(t, catalog.Links, 1)
	assert.Equal(t, opds.StringList{opds.RelSelf}, catalog.Links[0].Rel)
}

func TestCreateSearchCatalog_ProviderErrorPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	provider := NewMockDataProvider(ctrl)

	backendDown := errors.New("search backend unavailable")
	provider.EXPECT().Search(gomock.Any(), "q", 50, 0).Return(SearchResult{}, backendDown)

	_, err := CreateSearchCatalog(context.Background(), provider, "q", 50, 0, "/opds/search")
	assert.ErrorIs(t, err, backendDown)
}

func TestCreateSearchCatalog_InvalidLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	provider := NewMockDataProvider(ctrl)
	// the provider must not be called with a bad limit

	_, err := CreateSearchCatalog(context.Background(), provider, "q", 0, 0, "/opds/search")
	assert.ErrorIs(t, err, pagination.ErrInvalidLimit)
}

func TestAddPagination(t *testing.T) {
	base := opds.Catalog{
		Metadata: opds.Metadata{Title: "Feed"},
		Links: []opds.Link{
			{Href: "/opds/search?offset=0", Rel: opds.StringList{opds.RelSelf}},
			{Href: "/opds/search?query={searchTerms}", Rel: opds.StringList{opds.RelSearch}, Templated: true},
		},
	}

	out, err := AddPagination(base, 25, 10, 10, "/opds/search", url.Values{"query": {"x"}})
	require.NoError(t, err)

	links := relSet(out.Links)
	assert.Contains(t, links, opds.RelSearch) // non-pagination rels survive
	assert.Contains(t, links, opds.RelNext)
	require.NotNil(t, out.Metadata.NumberOfItems)
	assert.Equal(t, 25, *out.Metadata.NumberOfItems)

	// the stale self link was replaced, not duplicated
	selfCount := 0
	for _, l := range out.Links {
		if l.HasRel(opds.RelSelf) {
			selfCount++
		}
	}
	assert.Equal(t, 1, selfCount)
	assert.NoError(t, out.Validate())
}

func TestAddPagination_Idempotent(t *testing.T) {
	base := opds.Catalog{
		Metadata: opds.Metadata{Title: "Feed"},
		Links:    []opds.Link{{Href: "/opds/search", Rel: opds.StringList{opds.RelSelf}}},
	}

	once, err := AddPagination(base, 25, 10, 20, "/opds/search", nil)
	require.NoError(t, err)

	intermediate, err := AddPagination(base, 100, 5, 0, "/opds/search", nil)
	require.NoError(t, err)
	twice, err := AddPagination(intermediate, 25, 10, 20, "/opds/search", nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, once.Links, twice.Links)
	assert.Equal(t, *once.Metadata.NumberOfItems, *twice.Metadata.NumberOfItems)
}

func TestAddPagination_DoesNotMutateInput(t *testing.T) {
	base := opds.Catalog{
		Metadata: opds.Metadata{Title: "Feed"},
		Links:    []opds.Link{{Href: "/opds/search", Rel: opds.StringList{opds.RelSelf}}},
	}

	_, err := AddPagination(base, 25, 10, 0, "/opds/search", nil)
	require.NoError(t, err)

	assert.Len(t, base.Links, 1)
	assert.Nil(t, base.Metadata.NumberOfItems)
}

func TestAddPagination_InvalidArguments(t *testing.T) {
	_, err := AddPagination(opds.Catalog{}, 10, 0, 0, "/s", nil)
	assert.ErrorIs(t, err, pagination.ErrInvalidLimit)
}
