package compactor

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// FidelityMode selects the field abbreviation policy and the default code width.
type FidelityMode string

const (
	// Structural abbreviates static-table keys and keeps every other key verbatim.
	Structural FidelityMode = "structural"
	// Columnar shortens every key and records each non-identity mapping.
	Columnar FidelityMode = "columnar"
	// AggressiveColumnar shortens unseen keys without recording them.
	// Reconstruction may return short keys for those fields.
	AggressiveColumnar FidelityMode = "aggressive"
)

// ParseFidelityMode accepts the mode names used in configuration and flags.
func ParseFidelityMode(s string) (FidelityMode, error) {
	switch FidelityMode(strings.ToLower(strings.TrimSpace(s))) {
	case Structural:
		return Structural, nil
	case Columnar, "":
		return Columnar, nil
	case AggressiveColumnar, "aggressive_columnar", "aggressive-columnar":
		return AggressiveColumnar, nil
	}
	return "", fmt.Errorf("%w: unknown fidelity mode %q", ErrInvalidOptions, s)
}

// Valid reports whether m is a known mode.
func (m FidelityMode) Valid() bool {
	return m == Structural || m == Columnar || m == AggressiveColumnar
}

// Reversible reports whether every key can be expanded from the artifact alone.
func (m FidelityMode) Reversible() bool { return m != AggressiveColumnar }

// DefaultCodeWidth is the code width used when none is configured.
func (m FidelityMode) DefaultCodeWidth() CodeWidth {
	switch m {
	case Structural:
		return CodeWidth32
	case AggressiveColumnar:
		return CodeWidth8
	default:
		return CodeWidth16
	}
}

// Abbreviation is one static canonical to short mapping.
type Abbreviation struct {
	Canonical string `json:"canonical" yaml:"canonical"`
	Short     string `json:"short" yaml:"short"`
}

// AbbreviationTable is a caller-owned, ordered set of well-known abbreviations.
type AbbreviationTable struct {
	entries []Abbreviation
	short   map[string]string
}

// NewAbbreviationTable validates entries: canonical keys and short keys must
// both be unique and short keys non-empty.
func NewAbbreviationTable(entries []Abbreviation) (*AbbreviationTable, error) {
	t := &AbbreviationTable{short: make(map[string]string, len(entries))}
	claimed := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Short == "" {
			return nil, fmt.Errorf("abbreviation for %q has an empty short key", e.Canonical)
		}
		if _, dup := t.short[e.Canonical]; dup {
			return nil, fmt.Errorf("duplicate abbreviation for %q", e.Canonical)
		}
		if other, dup := claimed[e.Short]; dup {
			return nil, fmt.Errorf("short key %q used by both %q and %q", e.Short, other, e.Canonical)
		}
		claimed[e.Short] = e.Canonical
		t.short[e.Canonical] = e.Short
		t.entries = append(t.entries, e)
	}
	return t, nil
}

const (
	atomicProperty    = "https://atomicdata.dev/properties/"
	terraphimProperty = "https://common.terraphim.io/01jxw2jx8qze6yakh4fz24mnhy/property/"
)

// DefaultAbbreviationTable returns a fresh copy of the well-known Atomic Data
// and Terraphim properties plus the reserved export keys.
func DefaultAbbreviationTable() *AbbreviationTable {
	t, _ := NewAbbreviationTable([]Abbreviation{
		{atomicProperty + "isA", "t"},
		{atomicProperty + "parent", "p"},
		{atomicProperty + "lastCommit", "lc"},
		{terraphimProperty + "company-name", "cn"},
		{terraphimProperty + "company-description", "cd"},
		{terraphimProperty + "business-website", "bw"},
		{terraphimProperty + "year-of-incorporation", "yi"},
		{terraphimProperty + "company-registration-number", "rn"},
		{terraphimProperty + "country-of-registration", "cr"},
		{terraphimProperty + "trading-name", "tn"},
		{terraphimProperty + "business-type", "bt"},
		{terraphimProperty + "annual-revenue", "ar"},
		{terraphimProperty + "number-of-employees", "ne"},
		{terraphimProperty + "years-in-business", "yb"},
		{terraphimProperty + "is-business-female-lead", "fl"},
		{terraphimProperty + "board-of-directors", "bd"},
		{terraphimProperty + "key-management-personnel", "km"},
		{atomicProperty + "subresources", "sr"},
		{"url", "u"},
		{"resource_type", "rt"},
		{"json_format", "jf"},
		{"json_ad_format", "jaf"},
		{"turtle_format", "tf"},
		{"fetch_errors", "fe"},
	})
	return t
}

// ParseAbbreviationTable reads a YAML (or JSON) mapping of canonical key to
// short key. Entry order in the document is kept.
func ParseAbbreviationTable(data []byte) (*AbbreviationTable, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse abbreviation table: %w", err)
	}
	if len(doc.Content) == 0 {
		return NewAbbreviationTable(nil)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("abbreviation table must be a mapping, got line %d", root.Line)
	}
	entries := make([]Abbreviation, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("abbreviation for %q must be a string (line %d)", key.Value, value.Line)
		}
		entries = append(entries, Abbreviation{Canonical: key.Value, Short: value.Value})
	}
	return NewAbbreviationTable(entries)
}

// Lookup returns the static short key for canonical.
func (t *AbbreviationTable) Lookup(canonical string) (string, bool) {
	if t == nil {
		return "", false
	}
	s, ok := t.short[canonical]
	return s, ok
}

// Entries returns a copy of the table in declaration order.
func (t *AbbreviationTable) Entries() []Abbreviation {
	if t == nil {
		return nil
	}
	out := make([]Abbreviation, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len is the number of entries.
func (t *AbbreviationTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// FieldName is one recorded short to canonical mapping.
type FieldName struct {
	Short     string `cbor:"s"`
	Canonical string `cbor:"c"`
}

// FieldNameTable is the artifact's reverse table, in assignment order.
type FieldNameTable []FieldName

// Expand returns the canonical key for short. Keys without an entry were
// stored verbatim or abbreviated without a record, and expand to themselves.
func (t FieldNameTable) Expand(short string) (string, bool) {
	for _, f := range t {
		if f.Short == short {
			return f.Canonical, true
		}
	}
	return short, false
}

func (t FieldNameTable) index() map[string]string {
	m := make(map[string]string, len(t))
	for _, f := range t {
		m[f.Short] = f.Canonical
	}
	return m
}

// Abbreviator assigns short keys for one compaction run. It is not safe for
// concurrent use.
type Abbreviator struct {
	mode   FidelityMode
	static *AbbreviationTable
	pinned string

	assigned map[string]string // canonical -> short
	claimed  map[string]string // short -> first canonical
	reserved map[string]string // shorts that are or may become recorded
	table    FieldNameTable
	order    []string // canonical keys in first-seen order
}

// NewAbbreviator starts an empty run. The pinned key (the type field) is
// always given a reversible mapping, whatever the mode. Static short keys and
// the pinned key's short key are reserved up front, so an unrecorded key can
// never be expanded to one of those canonical keys.
func NewAbbreviator(mode FidelityMode, static *AbbreviationTable, pinned string) *Abbreviator {
	a := &Abbreviator{
		mode:     mode,
		static:   static,
		pinned:   pinned,
		assigned: make(map[string]string),
		claimed:  make(map[string]string),
		reserved: make(map[string]string),
	}
	for _, e := range static.Entries() {
		a.reserved[e.Short] = e.Canonical
	}
	if pinned != "" {
		short := a.candidate(pinned)
		if _, taken := a.reserved[short]; !taken {
			a.reserved[short] = pinned
		}
	}
	return a
}

func (a *Abbreviator) candidate(canonical string) string {
	if short, ok := a.static.Lookup(canonical); ok {
		return short
	}
	if a.mode == Structural {
		return canonical
	}
	return heuristicShort(canonical)
}

// Abbreviate returns the short key for canonical, assigning one on first use.
func (a *Abbreviator) Abbreviate(canonical string) string {
	if short, ok := a.assigned[canonical]; ok {
		return short
	}
	a.order = append(a.order, canonical)

	candidate := a.candidate(canonical)
	_, static := a.static.Lookup(canonical)

	if a.mode == AggressiveColumnar && !static && canonical != a.pinned {
		// Unrecorded keys may share a short key with each other, never with a
		// recorded one.
		short := candidate
		for n := 2; ; n++ {
			if _, taken := a.reserved[short]; !taken {
				break
			}
			short = candidate + strconv.Itoa(n)
		}
		if _, taken := a.claimed[short]; !taken {
			a.claimed[short] = canonical
		}
		a.assigned[canonical] = short
		return short
	}

	short := candidate
	for n := 2; ; n++ {
		if _, taken := a.claimed[short]; !taken {
			break
		}
		short = candidate + strconv.Itoa(n)
	}
	a.claimed[short] = canonical
	a.assigned[canonical] = short
	if short != canonical {
		a.table = append(a.table, FieldName{Short: short, Canonical: canonical})
		a.reserved[short] = canonical
	}
	return short
}

// Expand resolves a short key against the mappings recorded so far.
func (a *Abbreviator) Expand(short string) (string, bool) {
	return a.table.Expand(short)
}

// Table returns a copy of the recorded mappings.
func (a *Abbreviator) Table() FieldNameTable {
	out := make(FieldNameTable, len(a.table))
	copy(out, a.table)
	return out
}

// Abbreviated counts canonical keys whose short key differs from them.
func (a *Abbreviator) Abbreviated() int {
	n := 0
	for _, canonical := range a.order {
		if a.assigned[canonical] != canonical {
			n++
		}
	}
	return n
}

// Unreversible counts canonical keys that do not expand back to themselves.
func (a *Abbreviator) Unreversible() int {
	index := a.table.index()
	n := 0
	for _, canonical := range a.order {
		short := a.assigned[canonical]
		expanded, ok := index[short]
		if !ok {
			expanded = short
		}
		if expanded != canonical {
			n++
		}
	}
	return n
}

// heuristicShort takes the initials of the hyphenated words after
// "/property/", or the first four characters of anything else.
func heuristicShort(canonical string) string {
	const marker = "/property/"
	if i := strings.LastIndex(canonical, marker); i >= 0 {
		var b strings.Builder
		for _, word := range strings.Split(canonical[i+len(marker):], "-") {
			r, _ := utf8.DecodeRuneInString(word)
			if word == "" {
				r = 'x'
			}
			b.WriteRune(r)
		}
		return truncateRunes(b.String(), 4)
	}
	return truncateRunes(canonical, 4)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
