// Package format holds the catalog of known bank-export layouts. Each
// profile declares how to recognize its header row and how its columns
// map onto canonical transaction fields. The catalog is built once at
// process start and never mutated.
package format

import (
	"strings"

	"github.com/finbooks/statement-ingest/internal/money"
)

// Field names the canonical transaction fields a column can map to
type Field string

const (
	FieldDate            Field = "date"
	FieldDescription     Field = "description"
	FieldAmount          Field = "amount"
	FieldDebit           Field = "debit"
	FieldCredit          Field = "credit"
	FieldCheckNumber     Field = "checkNumber"
	FieldReferenceNumber Field = "referenceNumber"
	FieldCategory        Field = "category"
	FieldType            Field = "type"
)

// FieldMap maps a canonical field to an ordered list of acceptable source
// column names; the first one present in the header row wins.
type FieldMap map[Field][]string

// HeaderSet is a case-insensitive view of a header row
type HeaderSet map[string]bool

// NewHeaderSet builds a HeaderSet from raw header cells
func NewHeaderSet(headers []string) HeaderSet {
	set := make(HeaderSet, len(headers))
	for _, h := range headers {
		set[normalizeHeader(h)] = true
	}
	return set
}

// Has reports whether the header row contains the named column
func (s HeaderSet) Has(name string) bool {
	return s[normalizeHeader(name)]
}

// HasAll reports whether every named column is present
func (s HeaderSet) HasAll(names ...string) bool {
	for _, n := range names {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Profile is a declarative description of one known export layout
type Profile struct {
	// Key uniquely identifies the profile
	Key string
	// DisplayName is the human label shown in mapping UIs
	DisplayName string
	// Detect is a pure predicate over the header set
	Detect func(HeaderSet) bool
	// FieldMap maps canonical fields to candidate column names
	FieldMap FieldMap
	// DateLayouts is the ordered list of layouts to attempt
	DateLayouts []string
	// Convention is signed (one column) or split (debit/credit columns)
	Convention money.Convention
}

// Column resolves a canonical field to the first mapped column name
// present in the header set. Returns ("", false) when none is present.
func (p *Profile) Column(field Field, headers HeaderSet) (string, bool) {
	for _, name := range p.FieldMap[field] {
		if headers.Has(name) {
			return name, true
		}
	}
	return "", false
}

// Detect evaluates every profile's predicate in catalog order and commits
// to the first match. Catalog order encodes precedence: profiles with more
// required headers come before looser ones.
func Detect(headers []string) (*Profile, bool) {
	set := NewHeaderSet(headers)
	for i := range catalog {
		if catalog[i].Detect(set) {
			return &catalog[i], true
		}
	}
	return nil, false
}

// Get returns a profile by key
func Get(key string) (*Profile, bool) {
	for i := range catalog {
		if catalog[i].Key == key {
			return &catalog[i], true
		}
	}
	return nil, false
}

// List returns the keys of all registered profiles in precedence order
func List() []string {
	keys := make([]string, 0, len(catalog))
	for i := range catalog {
		keys = append(keys, catalog[i].Key)
	}
	return keys
}

// Custom builds an ad-hoc profile from a caller-supplied field map, for
// inputs no shipped profile recognizes. The amount convention is inferred:
// split when both debit and credit are mapped, signed otherwise.
func Custom(fieldMap FieldMap, dateLayouts []string) *Profile {
	convention := money.Signed
	if len(fieldMap[FieldDebit]) > 0 && len(fieldMap[FieldCredit]) > 0 {
		convention = money.Split
	}
	return &Profile{
		Key:         "custom",
		DisplayName: "Custom Mapping",
		Detect:      func(HeaderSet) bool { return false },
		FieldMap:    fieldMap,
		DateLayouts: dateLayouts,
		Convention:  convention,
	}
}
