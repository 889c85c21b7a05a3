package opds

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ErrSelfLink is returned when a catalog does not carry exactly one self link.
var ErrSelfLink = errors.New("catalog must carry exactly one self link")

// Validate checks the link's invariants: a non-empty href.
func (l Link) Validate() error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("invalid link: %w", err)
	}
	return nil
}

// Validate checks the metadata's invariants: a non-empty title.
func (m Metadata) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid metadata: %w", err)
	}
	return nil
}

// Validate checks the publication's metadata and links.
func (p Publication) Validate() error {
	if err := p.Metadata.Validate(); err != nil {
		return err
	}
	for _, l := range p.Links {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	for _, l := range p.Images {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the catalog's invariants: valid metadata and links, every
// publication valid, and exactly one self link.
func (c Catalog) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return err
	}

	selfCount := 0
	for _, l := range c.Links {
		if err := l.Validate(); err != nil {
			return err
		}
		if l.HasRel(RelSelf) {
			selfCount++
		}
	}
	if selfCount != 1 {
		return fmt.Errorf("%w, got %d", ErrSelfLink, selfCount)
	}

	for _, p := range c.Publications {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, n := range c.Navigation {
		if err := validate.Struct(n); err != nil {
			return fmt.Errorf("invalid navigation entry: %w", err)
		}
	}
	return nil
}
