package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pccui/commerce-sdk/pkg/model"
)

// ErrMalformedGrouping is returned when a grouping document cannot be decoded
var ErrMalformedGrouping = errors.New("malformed grouping document")

// GroupingDocument maps family keys to their member descriptors.
// Keys keep the order in which they were first added.
type GroupingDocument struct {
	keys    []string
	members map[string][]model.Descriptor
}

// NewGroupingDocument creates an empty grouping document
func NewGroupingDocument() *GroupingDocument {
	return &GroupingDocument{
		members: make(map[string][]model.Descriptor),
	}
}

// Add appends a descriptor to the family, registering the family on first use
func (d *GroupingDocument) Add(family string, descriptor model.Descriptor) {
	d.ensure(family)
	d.members[family] = append(d.members[family], descriptor)
}

// ensure registers an empty family if it is not known yet
func (d *GroupingDocument) ensure(family string) {
	if d.members == nil {
		d.members = make(map[string][]model.Descriptor)
	}
	if _, ok := d.members[family]; ok {
		return
	}
	d.keys = append(d.keys, family)
	d.members[family] = []model.Descriptor{}
}

// Families returns the family keys in first-seen order
func (d *GroupingDocument) Families() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Members returns the descriptors of a family in insertion order.
// The returned slice must not be modified.
func (d *GroupingDocument) Members(family string) ([]model.Descriptor, bool) {
	members, ok := d.members[family]
	return members, ok
}

// Len returns the total number of descriptors across all families
func (d *GroupingDocument) Len() int {
	n := 0
	for _, members := range d.members {
		n += len(members)
	}
	return n
}

// MarshalJSON writes the families as a JSON object in first-seen order
func (d *GroupingDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, family := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(family)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d.members[family])
		if err != nil {
			return nil, fmt.Errorf("failed to encode family %q: %w", family, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object token by token so that key order survives
func (d *GroupingDocument) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedGrouping, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: expected an object", ErrMalformedGrouping)
	}

	doc := NewGroupingDocument()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedGrouping, err)
		}
		family, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: expected a family key", ErrMalformedGrouping)
		}
		if _, dup := doc.members[family]; dup {
			return fmt.Errorf("%w: duplicate family %q", ErrMalformedGrouping, family)
		}

		var members []model.Descriptor
		if err := dec.Decode(&members); err != nil {
			return fmt.Errorf("%w: family %q: %w", ErrMalformedGrouping, family, err)
		}

		doc.ensure(family)
		doc.members[family] = append(doc.members[family], members...)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedGrouping, err)
	}

	*d = *doc
	return nil
}

// FamilyAPIs holds the parsed models of one family
type FamilyAPIs struct {
	Family string
	APIs   []*model.API
}

// OperationManifest is the ordered set of parsed models grouped by family
type OperationManifest struct {
	Families []FamilyAPIs
}
