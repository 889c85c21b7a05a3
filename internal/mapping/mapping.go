// Package mapping translates arbitrary provider records into canonical
// OPDS fields. An ItemMapping is a named set of per-field extractor
// functions keyed by canonical field name; construction accepts legacy or
// schema.org field names and normalizes them through the vocabulary.
package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"opdsfeed/internal/vocab"
)

// Record is a raw item as returned by a data provider.
type Record = map[string]any

// Extractor pulls one field's value out of a raw record. A nil result
// means the field is absent for that record.
type Extractor func(record Record) any

// ErrConflictingField is returned when two differently-named fields
// normalize to the same canonical field with distinct extractors.
var ErrConflictingField = errors.New("conflicting extractors for field")

// ItemMapping is an immutable set of extractors keyed by canonical field
// name. The zero value resolves every field to nil.
type ItemMapping struct {
	extractors map[string]Extractor
}

// New builds an ItemMapping from field names (legacy or canonical) to
// extractors. Names are normalized at construction time; registering e.g.
// both "title" and "name" with different extractors is rejected rather
// than silently picking one.
func New(fields map[string]Extractor) (ItemMapping, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	extractors := make(map[string]Extractor, len(fields))
	suppliedAs := make(map[string]string, len(fields))
	for _, name := range names {
		fn := fields[name]
		if fn == nil {
			continue
		}
		canonical := vocab.Canonicalize(name)
		if prev, ok := extractors[canonical]; ok {
			if reflect.ValueOf(prev).Pointer() != reflect.ValueOf(fn).Pointer() {
				return ItemMapping{}, fmt.Errorf("%w %q: supplied as both %q and %q",
					ErrConflictingField, canonical, suppliedAs[canonical], name)
			}
			continue
		}
		extractors[canonical] = fn
		suppliedAs[canonical] = name
	}

	return ItemMapping{extractors: extractors}, nil
}

// MustNew is like New but panics on error. Intended for mappings built
// from static field tables at provider construction time.
func MustNew(fields map[string]Extractor) ItemMapping {
	m, err := New(fields)
	if err != nil {
		panic(err)
	}
	return m
}

// Resolve invokes the extractor registered for the field (legacy or
// canonical name) against the record. A missing extractor, a panicking
// extractor, or a nil result all yield nil: one bad field never fails the
// record's projection.
func (m ItemMapping) Resolve(field string, record Record) (value any) {
	fn, ok := m.extractors[vocab.Canonicalize(field)]
	if !ok {
		return nil
	}
	defer func() {
		if recover() != nil {
			value = nil
		}
	}()
	return fn(record)
}

// MapRecord resolves every registered field against the record, skipping
// absent values. Keys of the result are canonical field names.
func (m ItemMapping) MapRecord(record Record) map[string]any {
	out := make(map[string]any, len(m.extractors))
	for field := range m.extractors {
		if v := m.Resolve(field, record); v != nil {
			out[field] = v
		}
	}
	return out
}

// Fields returns the canonical field names with a registered extractor,
// sorted.
func (m ItemMapping) Fields() []string {
	fields := make([]string, 0, len(m.extractors))
	for f := range m.extractors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Len returns the number of registered extractors.
func (m ItemMapping) Len() int {
	return len(m.extractors)
}
