package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"legacy title", "title", "name"},
		{"legacy cover_url", "cover_url", "image"},
		{"legacy thumbnail_url", "thumbnail_url", "thumbnailUrl"},
		{"legacy acquisition_link", "acquisition_link", "url"},
		{"legacy acquisition_type", "acquisition_type", "encodingFormat"},
		{"legacy language", "language", "inLanguage"},
		{"legacy published", "published", "datePublished"},
		{"legacy modified", "modified", "dateModified"},
		{"legacy subject", "subject", "about"},
		{"same in both vocabularies", "author", "author"},
		{"already canonical", "name", "name"},
		{"already canonical image", "image", "image"},
		{"unknown passes through", "custom_field", "custom_field"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.in))
		})
	}
}

func TestReservedFields(t *testing.T) {
	expected := []string{
		"title", "identifier", "description", "language",
		"author", "publisher", "published", "modified",
		"cover_url", "thumbnail_url", "acquisition_link",
		"acquisition_type", "subject",
	}

	assert.Len(t, ReservedFields, len(expected))
	for _, f := range expected {
		assert.Contains(t, ReservedFields, f)
	}
}

func TestCanonicalFields_CoverReserved(t *testing.T) {
	canonical := make(map[string]bool, len(CanonicalFields))
	for _, f := range CanonicalFields {
		canonical[f] = true
	}

	for legacy := range ReservedFields {
		assert.True(t, canonical[Canonicalize(legacy)], "reserved field %q has no canonical entry", legacy)
	}
}
