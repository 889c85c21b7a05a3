// Package projector applies an ItemMapping to raw provider records,
// producing OPDS publications. Field misses are absorbed per record; a
// record without a title is skipped rather than projected with an empty
// title.
package projector

import (
	"errors"
	"strings"
	"time"

	"opdsfeed/internal/mapping"
	"opdsfeed/internal/opds"
	"opdsfeed/internal/vocab"
)

// ErrNoTitle is returned when a record resolves to no usable title.
var ErrNoTitle = errors.New("record has no title")

// Project maps one raw record into a Publication. The title is required;
// every other field is optional and absorbed when missing.
func Project(record mapping.Record, m mapping.ItemMapping) (opds.Publication, error) {
	title := asString(m.Resolve(vocab.FieldName, record))
	if title == "" {
		return opds.Publication{}, ErrNoTitle
	}

	md := opds.Metadata{
		Title:       title,
		Identifier:  asString(m.Resolve(vocab.FieldIdentifier, record)),
		Description: asString(m.Resolve(vocab.FieldDescription, record)),
		Language:    opds.StringList(asStrings(m.Resolve(vocab.FieldInLanguage, record))),
		Subject:     asStrings(m.Resolve(vocab.FieldAbout, record)),
		Published:   asTime(m.Resolve(vocab.FieldDatePublished, record)),
		Modified:    asTime(m.Resolve(vocab.FieldDateModified, record)),
	}
	for _, name := range asStrings(m.Resolve(vocab.FieldAuthor, record)) {
		md.Author = append(md.Author, opds.Contributor{Name: name, Role: "author"})
	}
	for _, name := range asStrings(m.Resolve(vocab.FieldPublisher, record)) {
		md.Publisher = append(md.Publisher, opds.Contributor{Name: name})
	}

	var links []opds.Link
	if href := asString(m.Resolve(vocab.FieldURL, record)); href != "" {
		typ := asString(m.Resolve(vocab.FieldEncodingFormat, record))
		if typ == "" {
			typ = opds.TypeEPUB
		}
		links = append(links, opds.Link{
			Href: href,
			Type: typ,
			Rel:  opds.StringList{opds.RelAcquisition},
		})
	}

	var images []opds.Link
	if href := asString(m.Resolve(vocab.FieldImage, record)); href != "" {
		images = append(images, opds.Link{
			Href: href,
			Type: imageType(href),
			Rel:  opds.StringList{opds.RelImage},
		})
	}
	if href := asString(m.Resolve(vocab.FieldThumbnailURL, record)); href != "" {
		images = append(images, opds.Link{
			Href: href,
			Type: imageType(href),
			Rel:  opds.StringList{opds.RelImageThumbnail},
		})
	}

	return opds.Publication{Metadata: md, Links: links, Images: images}, nil
}

// ProjectAll maps a batch of records in input order and returns the
// publications plus the count of records skipped for a missing title.
func ProjectAll(records []mapping.Record, m mapping.ItemMapping) ([]opds.Publication, int) {
	pubs := make([]opds.Publication, 0, len(records))
	skipped := 0
	for _, record := range records {
		pub, err := Project(record, m)
		if err != nil {
			skipped++
			continue
		}
		pubs = append(pubs, pub)
	}
	return pubs, skipped
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asStrings(v any) []string {
	switch vs := v.(type) {
	case nil:
		return nil
	case string:
		if s := strings.TrimSpace(vs); s != "" {
			return []string{s}
		}
		return nil
	case []string:
		return compact(vs)
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return compact(out)
	default:
		return nil
	}
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func asTime(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02", "2006"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return &parsed
			}
		}
		return nil
	default:
		return nil
	}
}

func imageType(href string) string {
	switch {
	case strings.HasSuffix(href, ".jpg"), strings.HasSuffix(href, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(href, ".png"):
		return "image/png"
	case strings.HasSuffix(href, ".gif"):
		return "image/gif"
	default:
		return ""
	}
}
