// Package testutil provides shared test fixtures: a deterministic
// in-memory DataProvider over a small fixed book set.
package testutil

import (
	"context"
	"strings"

	"opdsfeed/internal/feed"
	"opdsfeed/internal/mapping"
)

// Books is the fixed record set served by the in-memory provider.
var Books = []mapping.Record{
	{
		"title":    "The Great Gatsby",
		"author":   "F. Scott Fitzgerald",
		"language": "en",
		"url":      "https://example.com/gatsby.epub",
	},
	{
		"title":    "To Kill a Mockingbird",
		"author":   "Harper Lee",
		"language": "en",
		"url":      "https://example.com/mockingbird.epub",
	},
	{
		"title":    "1984",
		"author":   "George Orwell",
		"language": "en",
		"url":      "https://example.com/1984.epub",
	},
}

// MemoryProvider is an in-memory feed.DataProvider with case-insensitive
// title/author substring search.
type MemoryProvider struct {
	Records []mapping.Record
}

// NewMemoryProvider returns a provider over Books.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{Records: Books}
}

func (p *MemoryProvider) Title() string {
	return "Test Library"
}

func (p *MemoryProvider) Search(_ context.Context, query string, limit, offset int) (feed.SearchResult, error) {
	q := strings.ToLower(query)

	var matched []mapping.Record
	for _, record := range p.Records {
		title, _ := record["title"].(string)
		author, _ := record["author"].(string)
		if q == "" || strings.Contains(strings.ToLower(title), q) || strings.Contains(strings.ToLower(author), q) {
			matched = append(matched, record)
		}
	}

	page := matched
	if offset >= len(page) {
		page = nil
	} else {
		page = page[offset:]
	}
	if len(page) > limit {
		page = page[:limit]
	}

	return feed.SearchResult{
		Items:    page,
		Page:     offset/limit + 1,
		Rows:     limit,
		NumFound: len(matched),
	}, nil
}

func (p *MemoryProvider) ItemMapping() mapping.ItemMapping {
	return mapping.MustNew(map[string]mapping.Extractor{
		"title": func(r mapping.Record) any { return r["title"] },
		"author": func(r mapping.Record) any {
			if a, ok := r["author"].(string); ok && a != "" {
				return []string{a}
			}
			return nil
		},
		"language": func(r mapping.Record) any {
			if l, ok := r["language"].(string); ok && l != "" {
				return []string{l}
			}
			return nil
		},
		"acquisition_link": func(r mapping.Record) any { return r["url"] },
		"acquisition_type": func(r mapping.Record) any { return "application/epub+zip" },
	})
}
