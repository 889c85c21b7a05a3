// Package opds defines the OPDS 2.0 document model: the typed entities a
// feed is assembled from and the constants of the format. Every entity is
// an immutable value object built once by the assembler and handed to the
// JSON encoder; nothing here holds a back-reference to its container.
package opds

import (
	"encoding/json"
	"time"
)

// ContextURI is the fixed JSON-LD context carried by every catalog.
const ContextURI = "https://readium.org/webpub-manifest/context.jsonld"

// Media types.
const (
	TypeOPDS = "application/opds+json"
	TypeEPUB = "application/epub+zip"
)

// Link relations. The pagination rels are literal strings; the opds-spec
// rels identify acquisition and image links on publications.
const (
	RelSelf       = "self"
	RelSearch     = "search"
	RelFirst      = "first"
	RelLast       = "last"
	RelNext       = "next"
	RelPrevious   = "previous"
	RelSubsection = "subsection"

	RelAcquisition    = "http://opds-spec.org/acquisition"
	RelImage          = "http://opds-spec.org/image"
	RelImageThumbnail = "http://opds-spec.org/image/thumbnail"
)

// StringList is a list that marshals as a bare string when it holds a
// single value, matching the string-or-list fields of OPDS (link rel,
// metadata language).
type StringList []string

func (s StringList) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}

// Link associates a resource with a publication or catalog.
type Link struct {
	Href       string         `json:"href" validate:"required"`
	Type       string         `json:"type,omitempty"`
	Rel        StringList     `json:"rel,omitempty"`
	Title      string         `json:"title,omitempty"`
	Templated  bool           `json:"templated,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// HasRel reports whether the link carries the given relation.
func (l Link) HasRel(rel string) bool {
	for _, r := range l.Rel {
		if r == rel {
			return true
		}
	}
	return false
}

// Contributor is an author, publisher or other agent credited on a
// publication.
type Contributor struct {
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role,omitempty"`
	Links []Link `json:"links,omitempty"`
}

// Metadata carries the descriptive information of a catalog or publication.
type Metadata struct {
	Title         string        `json:"title" validate:"required"`
	Subtitle      string        `json:"subtitle,omitempty"`
	Identifier    string        `json:"identifier,omitempty"`
	Language      StringList    `json:"language,omitempty"`
	Modified      *time.Time    `json:"modified,omitempty"`
	Published     *time.Time    `json:"published,omitempty"`
	NumberOfItems *int          `json:"numberOfItems,omitempty"`
	Description   string        `json:"description,omitempty"`
	Author        []Contributor `json:"author,omitempty"`
	Publisher     []Contributor `json:"publisher,omitempty"`
	Subject       []string      `json:"subject,omitempty"`
}

// Publication is a single work in a feed: metadata plus the links to
// acquire it and its cover images.
type Publication struct {
	Metadata Metadata `json:"metadata"`
	Links    []Link   `json:"links"`
	Images   []Link   `json:"images,omitempty"`
}

// Navigation is a structural browsing entry, as opposed to a search-result
// publication.
type Navigation struct {
	Title string `json:"title" validate:"required"`
	Href  string `json:"href" validate:"required"`
	Type  string `json:"type,omitempty"`
	Rel   string `json:"rel,omitempty"`
}

// Catalog is a complete OPDS 2.0 feed. Its JSON form always opens with the
// fixed @context and it always carries exactly one self link.
type Catalog struct {
	Metadata     Metadata      `json:"metadata"`
	Links        []Link        `json:"links"`
	Publications []Publication `json:"publications,omitempty"`
	Navigation   []Navigation  `json:"navigation,omitempty"`
}

func (c Catalog) MarshalJSON() ([]byte, error) {
	type plain Catalog
	return json.Marshal(struct {
		Context string `json:"@context"`
		plain
	}{
		Context: ContextURI,
		plain:   plain(c),
	})
}

// SelfLink returns the catalog's self link, if present.
func (c Catalog) SelfLink() (Link, bool) {
	for _, l := range c.Links {
		if l.HasRel(RelSelf) {
			return l, true
		}
	}
	return Link{}, false
}
