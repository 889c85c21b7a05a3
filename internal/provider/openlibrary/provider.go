// Package openlibrary implements a feed.DataProvider backed by the
// OpenLibrary search API.
package openlibrary

import (
	"context"
	"fmt"
	"time"

	"opdsfeed/internal/feed"
	"opdsfeed/internal/mapping"
)

type Provider struct {
	client  *Client
	mapping mapping.ItemMapping
}

func NewProvider(client *Client) *Provider {
	return &Provider{
		client:  client,
		mapping: itemMapping(),
	}
}

func (p *Provider) Title() string {
	return "OpenLibrary"
}

func (p *Provider) ItemMapping() mapping.ItemMapping {
	return p.mapping
}

func (p *Provider) Search(ctx context.Context, query string, limit, offset int) (feed.SearchResult, error) {
	res, err := p.client.Search(ctx, query, limit, offset)
	if err != nil {
		return feed.SearchResult{}, err
	}

	items := make([]mapping.Record, len(res.Docs))
	for i, doc := range res.Docs {
		items[i] = mapping.Record(doc)
	}

	return feed.SearchResult{
		Items:    items,
		Page:     offset/limit + 1,
		Rows:     limit,
		NumFound: res.NumFound,
	}, nil
}

// itemMapping translates OpenLibrary search docs onto canonical fields.
// cover_i is a numeric cover ID resolved against covers.openlibrary.org;
// key is a work path like /works/OL45883W.
func itemMapping() mapping.ItemMapping {
	return mapping.MustNew(map[string]mapping.Extractor{
		"title":  func(r mapping.Record) any { return r["title"] },
		"author": func(r mapping.Record) any { return r["author_name"] },
		"identifier": func(r mapping.Record) any {
			if key, ok := r["key"].(string); ok && key != "" {
				return "https://openlibrary.org" + key
			}
			return nil
		},
		"language": func(r mapping.Record) any { return r["language"] },
		"description": func(r mapping.Record) any {
			// first_sentence is a list of variant sentences; take the first
			if sentences, ok := r["first_sentence"].([]any); ok && len(sentences) > 0 {
				return sentences[0]
			}
			return nil
		},
		"published": func(r mapping.Record) any {
			if year, ok := r["first_publish_year"].(float64); ok && year > 0 {
				return time.Date(int(year), time.January, 1, 0, 0, 0, 0, time.UTC)
			}
			return nil
		},
		"cover_url": func(r mapping.Record) any {
			if id, ok := r["cover_i"].(float64); ok && id > 0 {
				return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", int64(id))
			}
			return nil
		},
		"thumbnail_url": func(r mapping.Record) any {
			if id, ok := r["cover_i"].(float64); ok && id > 0 {
				return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-S.jpg", int64(id))
			}
			return nil
		},
	})
}
