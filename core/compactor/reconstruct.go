package compactor

import (
	"fmt"
)

// Reconstruct rebuilds the records of an artifact, group by group. Row order
// within and across groups is not guaranteed to match the input; compare the
// result as a multiset. Explicit nulls come back as absent fields and Bool
// fields are always present.
func Reconstruct(a *Artifact) ([]*Record, error) {
	if err := Validate(a); err != nil {
		return nil, err
	}
	urls, err := NewDictionaryFrom(urlDictionary, a.CodeWidth, a.Dictionaries.URLs)
	if err != nil {
		return nil, err
	}
	strs, err := NewDictionaryFrom(stringDictionary, a.CodeWidth, a.Dictionaries.Strings)
	if err != nil {
		return nil, err
	}

	names := a.FieldNames.index()
	expand := func(short string) string {
		if canonical, ok := names[short]; ok {
			return canonical
		}
		return short
	}
	typeField := a.Schema.ResolvedTypeField()
	template := a.Schema.ResolvedTypeTemplate()

	out := make([]*Record, 0, a.Records())
	for gi := range a.Groups {
		g := &a.Groups[gi]
		typeID := String(ExpandTypeTag(template, g.Tag))
		rows := make([]*Record, g.Count)
		for i := range rows {
			rows[i] = NewRecord()
			rows[i].Set(typeField, typeID)
		}
		for ci := range g.Columns {
			col := &g.Columns[ci]
			key := expand(col.Key)
			for i, rec := range rows {
				v, ok, err := cellValue(col, i, urls, strs)
				if err != nil {
					return nil, fmt.Errorf("group %q column %q row %d: %w", g.Tag, col.Key, i, err)
				}
				if ok {
					rec.Set(key, v)
				}
			}
		}
		out = append(out, rows...)
	}
	return out, nil
}

// ReconstructDocument wraps the reconstructed records as {"subresources": [...]}.
func ReconstructDocument(a *Artifact) (Value, error) {
	records, err := Reconstruct(a)
	if err != nil {
		return Value{}, err
	}
	items := make([]Value, len(records))
	for i, rec := range records {
		items[i] = Object(rec)
	}
	doc := NewRecord()
	doc.Set(SubresourcesKey, Array(items...))
	return Object(doc), nil
}

func cellValue(col *Column, row int, urls, strs *Dictionary) (Value, bool, error) {
	switch col.Type {
	case ColumnInt:
		if p := col.Ints[row]; p != nil {
			return Int(*p), true, nil
		}
	case ColumnFloat:
		if p := col.Floats[row]; p != nil {
			return Float(*p), true, nil
		}
	case ColumnBool:
		return Bool(col.Bools[row]), true, nil
	case ColumnURL, ColumnString, ColumnJSON:
		p := col.Codes[row]
		if p == nil {
			return Value{}, false, nil
		}
		dict := strs
		if col.Type == ColumnURL {
			dict = urls
		}
		s, err := dict.Resolve(*p)
		if err != nil {
			return Value{}, false, err
		}
		if col.Type != ColumnJSON {
			return String(s), true, nil
		}
		if v, err := ParseValue([]byte(s)); err == nil {
			return v, true, nil
		}
		return String(s), true, nil
	}
	return Value{}, false, nil
}

// Validate checks the structural invariants of an artifact: known version,
// mode and width, unique group tags and column keys, every column as long as
// its group, and every code present in its dictionary.
func Validate(a *Artifact) error {
	if a == nil {
		return malformedf("nil artifact")
	}
	if a.Version != FormatVersion {
		return malformedf("unsupported format version %d", a.Version)
	}
	if !a.Fidelity.Valid() {
		return malformedf("unknown fidelity mode %q", a.Fidelity)
	}
	if !a.CodeWidth.Valid() {
		return malformedf("invalid code width %d", a.CodeWidth)
	}
	dictLen := map[ColumnType]int{
		ColumnURL:    len(a.Dictionaries.URLs),
		ColumnString: len(a.Dictionaries.Strings),
		ColumnJSON:   len(a.Dictionaries.Strings),
	}

	tags := make(map[string]bool, len(a.Groups))
	for gi := range a.Groups {
		g := &a.Groups[gi]
		if tags[g.Tag] {
			return malformedf("duplicate group %q", g.Tag)
		}
		tags[g.Tag] = true
		if g.Count < 0 {
			return malformedf("group %q has negative count %d", g.Tag, g.Count)
		}
		keys := make(map[string]bool, len(g.Columns))
		for ci := range g.Columns {
			col := &g.Columns[ci]
			if keys[col.Key] {
				return malformedf("group %q repeats column %q", g.Tag, col.Key)
			}
			keys[col.Key] = true
			if !col.Type.Valid() {
				return malformedf("column %q of %q has unknown type %q", col.Key, g.Tag, col.Type)
			}
			if n := col.Len(); n != g.Count {
				return malformedf("column %q of %q has %d cells, group count is %d", col.Key, g.Tag, n, g.Count)
			}
			if !col.Type.Coded() {
				continue
			}
			for row, p := range col.Codes {
				if p != nil && (*p == 0 || uint64(*p) > uint64(dictLen[col.Type])) {
					return fmt.Errorf("%w: column %q of %q row %d references code %d",
						ErrUnknownCode, col.Key, g.Tag, row, *p)
				}
			}
		}
	}
	return nil
}
