// Package pagination computes the navigational links of a paginated feed
// from the (total, limit, offset) triple. Link synthesis preserves every
// caller-supplied query parameter verbatim and only overrides limit and
// offset.
package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"opdsfeed/internal/opds"
)

var (
	// ErrInvalidLimit is returned for a non-positive page size.
	ErrInvalidLimit = errors.New("pagination limit must be positive")
	// ErrInvalidOffset is returned for a negative offset.
	ErrInvalidOffset = errors.New("pagination offset must not be negative")
	// ErrInvalidTotal is returned for a negative total.
	ErrInvalidTotal = errors.New("pagination total must not be negative")
)

// Paginator is the validated (limit, offset, total) triple driving link
// computation. Construct it with New; the zero value is not valid.
type Paginator struct {
	Limit  int
	Offset int
	Total  int
}

// New validates the triple. A non-positive limit is a caller contract
// violation and is rejected rather than producing degenerate pagination.
func New(total, limit, offset int) (Paginator, error) {
	if limit <= 0 {
		return Paginator{}, fmt.Errorf("%w, got %d", ErrInvalidLimit, limit)
	}
	if offset < 0 {
		return Paginator{}, fmt.Errorf("%w, got %d", ErrInvalidOffset, offset)
	}
	if total < 0 {
		return Paginator{}, fmt.Errorf("%w, got %d", ErrInvalidTotal, total)
	}
	return Paginator{Limit: limit, Offset: offset, Total: total}, nil
}

// NumberOfItems is the value for the feed's numberOfItems metadata field.
func (p Paginator) NumberOfItems() int {
	return p.Total
}

// Page is the current 1-based page number.
func (p Paginator) Page() int {
	return p.Offset/p.Limit + 1
}

// LastPage is the 1-based number of the final page. An empty result set
// still has one (empty) page.
func (p Paginator) LastPage() int {
	if p.Total == 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// HasMore reports whether results exist beyond the current page.
func (p Paginator) HasMore() bool {
	return p.Offset+p.Limit < p.Total
}

// lastOffset is the start of the final full or partial page.
func (p Paginator) lastOffset() int {
	return (p.Total - 1) / p.Limit * p.Limit
}

// Links synthesizes the navigational links for the current page. The self
// link is always present; first and last appear whenever the result set is
// non-empty; previous only when the current page has a predecessor; next
// only when results remain past the current page.
func (p Paginator) Links(baseURL string, params url.Values) []opds.Link {
	links := []opds.Link{p.link(opds.RelSelf, p.Offset, baseURL, params)}
	if p.Total == 0 {
		return links
	}

	links = append(links, p.link(opds.RelFirst, 0, baseURL, params))
	if p.Offset > 0 {
		prev := p.Offset - p.Limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, p.link(opds.RelPrevious, prev, baseURL, params))
	}
	if p.HasMore() {
		links = append(links, p.link(opds.RelNext, p.Offset+p.Limit, baseURL, params))
	}
	links = append(links, p.link(opds.RelLast, p.lastOffset(), baseURL, params))
	return links
}

func (p Paginator) link(rel string, offset int, baseURL string, params url.Values) opds.Link {
	q := url.Values{}
	for key, values := range params {
		if key == "limit" || key == "offset" {
			continue
		}
		q[key] = append([]string(nil), values...)
	}
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("offset", strconv.Itoa(offset))

	return opds.Link{
		Href: baseURL + "?" + q.Encode(),
		Type: opds.TypeOPDS,
		Rel:  opds.StringList{rel},
	}
}
