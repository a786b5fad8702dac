package compactor

// FormatVersion is the artifact layout version written by this package.
const FormatVersion = 1

// Artifact is the self-contained output of one compaction run.
type Artifact struct {
	Version      int            `json:"v" cbor:"v"`
	Fidelity     FidelityMode   `json:"fidelity" cbor:"fidelity"`
	CodeWidth    CodeWidth      `json:"code_width" cbor:"code_width"`
	Schema       Schema         `json:"schema" cbor:"schema"`
	Groups       Groups         `json:"groups" cbor:"groups"`
	Dictionaries Dictionaries   `json:"dictionaries" cbor:"dictionaries"`
	FieldNames   FieldNameTable `json:"field_name_table,omitempty" cbor:"field_name_table,omitempty"`
	Stats        Stats          `json:"stats" cbor:"stats"`
}

// Schema describes the artifact's columns. Empty TypeField and TypeTemplate
// stand for DefaultTypeField and DefaultTypeTemplate.
type Schema struct {
	TypeField    string      `json:"type_field,omitempty" cbor:"type_field,omitempty"`
	TypeTemplate string      `json:"type_template,omitempty" cbor:"type_template,omitempty"`
	Order        []string    `json:"order" cbor:"order"`
	Types        TypeSchemas `json:"types" cbor:"types"`
}

// ResolvedTypeField returns the type field with the default applied.
func (s Schema) ResolvedTypeField() string {
	if s.TypeField == "" {
		return DefaultTypeField
	}
	return s.TypeField
}

// ResolvedTypeTemplate returns the type template with the default applied.
func (s Schema) ResolvedTypeTemplate() string {
	if s.TypeTemplate == "" {
		return DefaultTypeTemplate
	}
	return s.TypeTemplate
}

// Group returns the schema of tag.
func (s Schema) Group(tag string) (GroupSchema, bool) {
	for _, g := range s.Types {
		if g.Tag == tag {
			return g, true
		}
	}
	return GroupSchema{}, false
}

// TypeSchemas is the per-group schema list, in group order.
type TypeSchemas []GroupSchema

// Groups is the ordered list of resource groups.
type Groups []Group

// Group is the columnar storage of one ResourceGroup.
type Group struct {
	Tag     string   `cbor:"tag"`
	Count   int      `cbor:"count"`
	Columns []Column `cbor:"columns"`
}

// Lookup returns the group with tag.
func (gs Groups) Lookup(tag string) (*Group, bool) {
	for i := range gs {
		if gs[i].Tag == tag {
			return &gs[i], true
		}
	}
	return nil, false
}

// Column returns the column stored under key.
func (g *Group) Column(key string) (*Column, bool) {
	for i := range g.Columns {
		if g.Columns[i].Key == key {
			return &g.Columns[i], true
		}
	}
	return nil, false
}

// Column holds one field's cells. Exactly one cell slice is used, picked by
// Type: Codes for String, Url and Json, then Ints, Floats or Bools.
type Column struct {
	Key    string     `cbor:"key"`
	Type   ColumnType `cbor:"type"`
	Codes  []*uint32  `cbor:"codes,omitempty"`
	Ints   []*int64   `cbor:"ints,omitempty"`
	Floats []*float64 `cbor:"floats,omitempty"`
	Bools  []bool     `cbor:"bools,omitempty"`
}

func newColumn(key string, typ ColumnType, rows int) Column {
	c := Column{Key: key, Type: typ}
	switch {
	case typ.Coded():
		c.Codes = make([]*uint32, rows)
	case typ == ColumnInt:
		c.Ints = make([]*int64, rows)
	case typ == ColumnFloat:
		c.Floats = make([]*float64, rows)
	case typ == ColumnBool:
		c.Bools = make([]bool, rows)
	}
	return c
}

// Len is the number of cells in the column.
func (c *Column) Len() int {
	switch {
	case c.Type.Coded():
		return len(c.Codes)
	case c.Type == ColumnInt:
		return len(c.Ints)
	case c.Type == ColumnFloat:
		return len(c.Floats)
	case c.Type == ColumnBool:
		return len(c.Bools)
	}
	return 0
}

// Dictionaries holds the frozen dictionary entries; entry i has code i+1.
type Dictionaries struct {
	URLs    []string `json:"urls,omitempty" cbor:"urls,omitempty"`
	Strings []string `json:"strings,omitempty" cbor:"strings,omitempty"`
}

// Stats describes one compaction run. Sizes are bytes of compact JSON; the
// compacted size covers the artifact without its stats.
type Stats struct {
	OriginalSize          int     `json:"original_size" cbor:"original_size"`
	CompactedSize         int     `json:"compacted_size" cbor:"compacted_size"`
	CompressionRatio      float64 `json:"compression_ratio" cbor:"compression_ratio"`
	URLsDeduplicated      int     `json:"urls_deduplicated" cbor:"urls_deduplicated"`
	StringsDeduplicated   int     `json:"strings_deduplicated" cbor:"strings_deduplicated"`
	DictionaryHits        int     `json:"dictionary_hits" cbor:"dictionary_hits"`
	PropertiesAbbreviated int     `json:"properties_abbreviated" cbor:"properties_abbreviated"`
	ResourcesProcessed    int     `json:"resources_processed" cbor:"resources_processed"`
	ResourcesDropped      int     `json:"resources_dropped" cbor:"resources_dropped"`
	UnreversibleKeys      int     `json:"unreversible_keys" cbor:"unreversible_keys"`
	CoercionNulls         int     `json:"coercion_nulls" cbor:"coercion_nulls"`
	TopLevelKeysDropped   int     `json:"top_level_keys_dropped" cbor:"top_level_keys_dropped"`
}

// Ratio returns (original-compacted)/original, zero for an empty input and
// negative when the artifact is larger.
func Ratio(original, compacted int) float64 {
	if original <= 0 {
		return 0
	}
	return float64(original-compacted) / float64(original)
}

// Records returns the total row count over all groups.
func (a *Artifact) Records() int {
	n := 0
	for _, g := range a.Groups {
		n += g.Count
	}
	return n
}

// measuredArtifact shadows Stats so size accounting leaves it out.
type measuredArtifact struct {
	*Artifact
	Stats *Stats `json:"stats,omitempty"`
}

// Size returns the compact JSON size of the artifact without its stats.
func (a *Artifact) Size() (int, error) {
	b, err := compactJSON(measuredArtifact{Artifact: a})
	if err != nil {
		return 0, err
	}
	return len(b), nil
}
