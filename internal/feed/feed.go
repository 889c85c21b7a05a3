// Package feed assembles complete OPDS 2.0 catalogs: it obtains raw
// records from a DataProvider, projects them into publications, and
// attaches metadata and pagination links.
package feed

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"opdsfeed/internal/mapping"
	"opdsfeed/internal/opds"
	"opdsfeed/internal/pagination"
	"opdsfeed/internal/projector"
)

// SearchResult is the standardized page of raw records a DataProvider
// returns. Page is 1-based; Rows is the page size; NumFound is the total
// match count, of which Items holds at most Rows entries.
type SearchResult struct {
	Items    []mapping.Record
	Page     int
	Rows     int
	NumFound int
}

// DataProvider is the external search backend the assembler consumes.
// Implementations own all I/O, cancellation and timeout semantics of
// Search; errors from it are propagated to the caller unchanged.
type DataProvider interface {
	Search(ctx context.Context, query string, limit, offset int) (SearchResult, error)
	ItemMapping() mapping.ItemMapping
	Title() string
}

// CatalogOptions configures CreateCatalog. Title and SelfLink are
// required; everything else is optional.
type CatalogOptions struct {
	Title        string
	SelfLink     string
	SearchLink   string
	Identifier   string
	Modified     *time.Time
	Publications []opds.Publication
	Navigation   []opds.Navigation
}

// CreateCatalog builds a minimal valid catalog: metadata, the mandatory
// self link, and an optional OpenSearch-style search link whose templated
// flag is auto-detected from a "{" in the href. When no identifier is
// given a urn:uuid one is generated.
func CreateCatalog(opts CatalogOptions) (opds.Catalog, error) {
	identifier := opts.Identifier
	if identifier == "" {
		identifier = "urn:uuid:" + uuid.New().String()
	}

	links := []opds.Link{
		{Href: opts.SelfLink, Type: opds.TypeOPDS, Rel: opds.StringList{opds.RelSelf}},
	}
	if opts.SearchLink != "" {
		links = append(links, opds.Link{
			Href:      opts.SearchLink,
			Type:      opds.TypeOPDS,
			Rel:       opds.StringList{opds.RelSearch},
			Templated: strings.Contains(opts.SearchLink, "{"),
		})
	}

	catalog := opds.Catalog{
		Metadata: opds.Metadata{
			Title:      opts.Title,
			Identifier: identifier,
			Modified:   opts.Modified,
		},
		Links:        links,
		Publications: opts.Publications,
		Navigation:   opts.Navigation,
	}
	if err := catalog.Validate(); err != nil {
		return opds.Catalog{}, err
	}
	return catalog, nil
}

// CreateSearchCatalog runs the provider's search and assembles the result
// page into a catalog: projected publications, a descriptive title,
// numberOfItems set to the total match count, and the full pagination link
// set. selfLink is the paginated base URL; the query parameter is carried
// through every generated link.
func CreateSearchCatalog(ctx context.Context, provider DataProvider, query string, limit, offset int, selfLink string) (opds.Catalog, error) {
	if _, err := pagination.New(0, limit, offset); err != nil {
		return opds.Catalog{}, err
	}

	result, err := provider.Search(ctx, query, limit, offset)
	if err != nil {
		return opds.Catalog{}, err
	}

	paginator, err := pagination.New(result.NumFound, limit, offset)
	if err != nil {
		return opds.Catalog{}, err
	}

	publications, skipped := projector.ProjectAll(result.Items, provider.ItemMapping())
	if skipped > 0 {
		log.Printf("feed: skipped %d of %d records without a title (query=%q)", skipped, len(result.Items), query)
	}

	title := fmt.Sprintf("Search results for %q", query)
	if len(publications) == 0 {
		title = fmt.Sprintf("No results found for %q", query)
	}

	total := paginator.NumberOfItems()
	now := time.Now().UTC()

	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}

	catalog := opds.Catalog{
		Metadata: opds.Metadata{
			Title:         title,
			NumberOfItems: &total,
			Modified:      &now,
		},
		Links:        paginator.Links(selfLink, params),
		Publications: publications,
	}
	if err := catalog.Validate(); err != nil {
		return opds.Catalog{}, err
	}
	return catalog, nil
}

// paginationRels are the link relations AddPagination owns.
var paginationRels = map[string]bool{
	opds.RelSelf:     true,
	opds.RelFirst:    true,
	opds.RelLast:     true,
	opds.RelNext:     true,
	opds.RelPrevious: true,
}

// AddPagination returns a copy of the catalog with its pagination links
// replaced by the set computed from (total, limit, offset) and with
// numberOfItems updated. Links carrying non-pagination rels are kept, so
// repeated calls never duplicate a rel: the latest arguments win.
func AddPagination(catalog opds.Catalog, total, limit, offset int, baseURL string, params url.Values) (opds.Catalog, error) {
	paginator, err := pagination.New(total, limit, offset)
	if err != nil {
		return opds.Catalog{}, err
	}

	kept := make([]opds.Link, 0, len(catalog.Links))
	for _, l := range catalog.Links {
		owned := false
		for _, rel := range l.Rel {
			if paginationRels[rel] {
				owned = true
				break
			}
		}
		if !owned {
			kept = append(kept, l)
		}
	}

	items := paginator.NumberOfItems()
	out := catalog
	out.Links = append(kept, paginator.Links(baseURL, params)...)
	out.Metadata.NumberOfItems = &items
	return out, nil
}
