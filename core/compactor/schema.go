package compactor

// ColumnType is the storage type of a column, serialized as one letter.
type ColumnType string

const (
	ColumnString ColumnType = "s"
	ColumnInt    ColumnType = "i"
	ColumnFloat  ColumnType = "f"
	ColumnBool   ColumnType = "b"
	ColumnURL    ColumnType = "u"
	ColumnJSON   ColumnType = "j"
)

// Valid reports whether t is a known column type.
func (t ColumnType) Valid() bool {
	switch t {
	case ColumnString, ColumnInt, ColumnFloat, ColumnBool, ColumnURL, ColumnJSON:
		return true
	}
	return false
}

// Coded reports whether cells of this type are dictionary codes.
func (t ColumnType) Coded() bool {
	return t == ColumnString || t == ColumnURL || t == ColumnJSON
}

func (t ColumnType) String() string {
	switch t {
	case ColumnString:
		return "string"
	case ColumnInt:
		return "int"
	case ColumnFloat:
		return "float"
	case ColumnBool:
		return "bool"
	case ColumnURL:
		return "url"
	case ColumnJSON:
		return "json"
	}
	return "unknown(" + string(t) + ")"
}

// InferColumnType maps a value's shape to a column type. Null infers String.
func InferColumnType(v Value) ColumnType {
	switch v.Kind() {
	case KindBool:
		return ColumnBool
	case KindInt:
		return ColumnInt
	case KindFloat:
		return ColumnFloat
	case KindString:
		if isURL(v.s) {
			return ColumnURL
		}
		return ColumnString
	case KindArray, KindObject:
		return ColumnJSON
	}
	return ColumnString
}

// FieldSchema describes one column of a group.
type FieldSchema struct {
	Key      string     `cbor:"k"`
	Type     ColumnType `cbor:"t"`
	Optional bool       `cbor:"o,omitempty"`
}

// GroupSchema lists a group's fields in first-seen order.
type GroupSchema struct {
	Tag    string        `cbor:"tag"`
	Fields []FieldSchema `cbor:"fields"`
}

// Required returns the keys present in every record of the group.
func (g GroupSchema) Required() []string {
	var out []string
	for _, f := range g.Fields {
		if !f.Optional {
			out = append(out, f.Key)
		}
	}
	return out
}

// Optional returns the keys missing from at least one record.
func (g GroupSchema) Optional() []string {
	var out []string
	for _, f := range g.Fields {
		if f.Optional {
			out = append(out, f.Key)
		}
	}
	return out
}

// Field returns the schema of key.
func (g GroupSchema) Field(key string) (FieldSchema, bool) {
	for _, f := range g.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSchema{}, false
}

// fieldLayout is the inference result for one short key. Sources holds every
// canonical key that abbreviated to it, in first-seen order; only aggressive
// mode produces more than one.
type fieldLayout struct {
	short   string
	sources []string
	typ     ColumnType
	present int
}

// valueOf returns the row value for the field: the first source present.
func (f *fieldLayout) valueOf(rec *Record) (Value, bool) {
	for _, src := range f.sources {
		if v, ok := rec.Get(src); ok {
			return v, true
		}
	}
	return Value{}, false
}

// InferSchema computes the column layout of a group. Each field's type comes
// from the first record holding a non-null value for it, so a later record
// with a different shape is coerced or nulled at assembly. Keys for which
// skip returns true are left out.
func InferSchema(g *ResourceGroup, abbr *Abbreviator, skip func(canonical string) bool) (GroupSchema, []*fieldLayout) {
	var layouts []*fieldLayout
	byShort := make(map[string]*fieldLayout)
	seen := make(map[string]bool)

	for _, rec := range g.Records {
		for _, key := range rec.Keys() {
			if seen[key] || (skip != nil && skip(key)) {
				continue
			}
			seen[key] = true
			short := abbr.Abbreviate(key)
			f, ok := byShort[short]
			if !ok {
				f = &fieldLayout{short: short}
				byShort[short] = f
				layouts = append(layouts, f)
			}
			f.sources = append(f.sources, key)
		}
	}

	schema := GroupSchema{Tag: g.Tag, Fields: make([]FieldSchema, 0, len(layouts))}
	for _, f := range layouts {
		for _, rec := range g.Records {
			v, ok := f.valueOf(rec)
			if !ok {
				continue
			}
			f.present++
			if f.typ == "" && !v.IsNull() {
				f.typ = InferColumnType(v)
			}
		}
		if f.typ == "" {
			f.typ = ColumnString
		}
		schema.Fields = append(schema.Fields, FieldSchema{
			Key:      f.short,
			Type:     f.typ,
			Optional: f.present < len(g.Records),
		})
	}
	return schema, layouts
}
