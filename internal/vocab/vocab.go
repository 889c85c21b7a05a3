// Package vocab holds the OPDS field vocabulary: the fixed alias table
// between the short legacy field names and the schema.org names used in
// feed output. Both tables are read-only after package init.
package vocab

// Canonical (schema.org) field names.
const (
	FieldName           = "name"
	FieldIdentifier     = "identifier"
	FieldDescription    = "description"
	FieldInLanguage     = "inLanguage"
	FieldAuthor         = "author"
	FieldPublisher      = "publisher"
	FieldDatePublished  = "datePublished"
	FieldDateModified   = "dateModified"
	FieldImage          = "image"
	FieldThumbnailURL   = "thumbnailUrl"
	FieldURL            = "url"
	FieldEncodingFormat = "encodingFormat"
	FieldAbout          = "about"
)

// legacyToCanonical maps the legacy OPDS field names to their schema.org
// equivalents. Names absent here are already canonical (or custom).
var legacyToCanonical = map[string]string{
	"title":            FieldName,
	"identifier":       FieldIdentifier,
	"description":      FieldDescription,
	"language":         FieldInLanguage,
	"author":           FieldAuthor,
	"publisher":        FieldPublisher,
	"published":        FieldDatePublished,
	"modified":         FieldDateModified,
	"cover_url":        FieldImage,
	"thumbnail_url":    FieldThumbnailURL,
	"acquisition_link": FieldURL,
	"acquisition_type": FieldEncodingFormat,
	"subject":          FieldAbout,
}

// ReservedFields describes every mappable publication field by its legacy name.
var ReservedFields = map[string]string{
	"title":            "Title of the publication",
	"identifier":       "Unique identifier (URI or URL)",
	"description":      "Description or summary",
	"language":         "Language code(s) as a list",
	"author":           "Author name(s) as a list",
	"publisher":        "Publisher name(s) as a list",
	"published":        "Publication date",
	"modified":         "Last modification date",
	"cover_url":        "URL to cover image",
	"thumbnail_url":    "URL to thumbnail image",
	"acquisition_link": "URL to acquire/download the resource",
	"acquisition_type": "MIME type of the acquisition resource",
	"subject":          "Subject tags as a list",
}

// CanonicalFields lists every canonical field name the projector understands.
var CanonicalFields = []string{
	FieldName,
	FieldIdentifier,
	FieldDescription,
	FieldInLanguage,
	FieldAuthor,
	FieldPublisher,
	FieldDatePublished,
	FieldDateModified,
	FieldImage,
	FieldThumbnailURL,
	FieldURL,
	FieldEncodingFormat,
	FieldAbout,
}

// Canonicalize returns the schema.org name for a legacy field name. Names
// that are already canonical, or unknown, pass through unchanged so custom
// fields keep working.
func Canonicalize(name string) string {
	if canonical, ok := legacyToCanonical[name]; ok {
		return canonical
	}
	return name
}
