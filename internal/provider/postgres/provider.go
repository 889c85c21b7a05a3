// Package postgres implements a feed.DataProvider over a pgx-backed
// books table with Postgres full-text search.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"opdsfeed/internal/feed"
	"opdsfeed/internal/mapping"
)

type Provider struct {
	db      *pgxpool.Pool
	title   string
	timeout time.Duration
	mapping mapping.ItemMapping
}

func New(db *pgxpool.Pool, title string, timeout time.Duration) *Provider {
	return &Provider{
		db:      db,
		title:   title,
		timeout: timeout,
		mapping: itemMapping(),
	}
}

func (p *Provider) Title() string {
	return p.title
}

func (p *Provider) ItemMapping() mapping.ItemMapping {
	return p.mapping
}

func (p *Provider) Search(ctx context.Context, query string, limit, offset int) (feed.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	countSQL, listSQL, args := searchSQL(query, limit, offset)

	var total int
	if err := p.db.QueryRow(ctx, countSQL, args[:len(args)-2]...).Scan(&total); err != nil {
		return feed.SearchResult{}, fmt.Errorf("count books: %w", err)
	}

	rows, err := p.db.Query(ctx, listSQL, args...)
	if err != nil {
		return feed.SearchResult{}, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var items []mapping.Record
	for rows.Next() {
		var (
			isbn, title, author, publisher *string
			description, language          *string
			coverURL, thumbnailURL         *string
			downloadURL, format            *string
			publishedDate                  *time.Time
		)
		if err := rows.Scan(&isbn, &title, &author, &publisher, &description,
			&language, &publishedDate, &coverURL, &thumbnailURL, &downloadURL, &format); err != nil {
			return feed.SearchResult{}, fmt.Errorf("scan book: %w", err)
		}

		record := mapping.Record{}
		putString(record, "isbn", isbn)
		putString(record, "title", title)
		putString(record, "author", author)
		putString(record, "publisher", publisher)
		putString(record, "description", description)
		putString(record, "language", language)
		putString(record, "cover_url", coverURL)
		putString(record, "thumbnail_url", thumbnailURL)
		putString(record, "download_url", downloadURL)
		putString(record, "format", format)
		if publishedDate != nil {
			record["published_date"] = *publishedDate
		}
		items = append(items, record)
	}
	if err := rows.Err(); err != nil {
		return feed.SearchResult{}, fmt.Errorf("iterate books: %w", err)
	}

	return feed.SearchResult{
		Items:    items,
		Page:     offset/limit + 1,
		Rows:     limit,
		NumFound: total,
	}, nil
}

func putString(record mapping.Record, key string, value *string) {
	if value != nil && *value != "" {
		record[key] = *value
	}
}

const bookColumns = `isbn, title, author, publisher, description, language,
	published_date, cover_url, thumbnail_url, download_url, format`

// searchSQL builds the count and list statements for a query. The last two
// args are limit and offset; the count statement takes the rest.
func searchSQL(query string, limit, offset int) (countSQL, listSQL string, args []any) {
	where := ""
	if query != "" {
		where = "WHERE search_vector @@ websearch_to_tsquery('english', $1)"
		args = append(args, query)
	}

	countSQL = fmt.Sprintf("SELECT COUNT(*) FROM books %s", where)
	listSQL = fmt.Sprintf("SELECT %s FROM books %s ORDER BY title LIMIT $%d OFFSET $%d",
		bookColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return countSQL, listSQL, args
}

// itemMapping maps the books table's column shapes onto canonical fields.
func itemMapping() mapping.ItemMapping {
	return mapping.MustNew(map[string]mapping.Extractor{
		"title": func(r mapping.Record) any { return r["title"] },
		"identifier": func(r mapping.Record) any {
			if isbn, ok := r["isbn"].(string); ok && isbn != "" {
				return "urn:isbn:" + isbn
			}
			return nil
		},
		"description": func(r mapping.Record) any { return r["description"] },
		"language": func(r mapping.Record) any {
			if lang, ok := r["language"].(string); ok && lang != "" {
				return []string{lang}
			}
			return nil
		},
		"author": func(r mapping.Record) any {
			if author, ok := r["author"].(string); ok && author != "" {
				return []string{author}
			}
			return nil
		},
		"publisher": func(r mapping.Record) any {
			if pub, ok := r["publisher"].(string); ok && pub != "" {
				return []string{pub}
			}
			return nil
		},
		"published":        func(r mapping.Record) any { return r["published_date"] },
		"cover_url":        func(r mapping.Record) any { return r["cover_url"] },
		"thumbnail_url":    func(r mapping.Record) any { return r["thumbnail_url"] },
		"acquisition_link": func(r mapping.Record) any { return r["download_url"] },
		"acquisition_type": func(r mapping.Record) any { return r["format"] },
	})
}
