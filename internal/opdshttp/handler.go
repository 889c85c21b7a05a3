// Package opdshttp serves assembled OPDS 2.0 catalogs over HTTP. The
// catalog JSON is the response body itself, written with the OPDS media
// type rather than an API envelope.
package opdshttp

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"opdsfeed/internal/feed"
	"opdsfeed/internal/httpx"
	"opdsfeed/internal/opds"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

type HTTPHandler struct {
	provider feed.DataProvider
	baseURL  string
}

// NewHTTPHandler builds the handler. baseURL is the externally visible
// origin the feed's absolute links are rooted at, without a trailing slash.
func NewHTTPHandler(provider feed.DataProvider, baseURL string) *HTTPHandler {
	return &HTTPHandler{provider: provider, baseURL: baseURL}
}

// Catalog handles GET /opds/catalog
func (h *HTTPHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := feed.CreateCatalog(feed.CatalogOptions{
		Title:      h.provider.Title(),
		SelfLink:   h.baseURL + "/opds/catalog",
		SearchLink: h.baseURL + "/opds/search?query={searchTerms}",
		Navigation: []opds.Navigation{
			{
				Title: "All publications",
				Href:  h.baseURL + "/opds/search",
				Type:  opds.TypeOPDS,
				Rel:   opds.RelSubsection,
			},
		},
	})
	if err != nil {
		log.Printf("catalog build failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to build catalog")
		return
	}

	writeCatalog(w, r, catalog)
}

// Search handles GET /opds/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset, _ := strconv.Atoi(query.Get("offset"))
	if offset < 0 {
		offset = 0
	}

	catalog, err := feed.CreateSearchCatalog(
		r.Context(),
		h.provider,
		query.Get("query"),
		limit,
		offset,
		h.baseURL+"/opds/search",
	)
	if err != nil {
		log.Printf("search failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, http.StatusBadGateway, "provider_error", "Search backend failed")
		return
	}

	writeCatalog(w, r, catalog)
}

func writeCatalog(w http.ResponseWriter, r *http.Request, catalog opds.Catalog) {
	w.Header().Set("Content-Type", opds.TypeOPDS)
	if err := json.NewEncoder(w).Encode(catalog); err != nil {
		log.Printf("catalog encode failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
	}
}
