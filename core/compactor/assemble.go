package compactor

import (
	"go.uber.org/zap"
)

const (
	urlDictionary    = "urls"
	stringDictionary = "strings"
)

// run holds the mutable state of a single compaction. Nothing in it outlives
// the Compact call that created it.
type run struct {
	opts  Options
	log   *zap.Logger
	abbr  *Abbreviator
	urls  *Dictionary
	strs  *Dictionary
	stats Stats

	order     []string
	seenOrder map[string]bool
}

func newRun(opts Options, log *zap.Logger) *run {
	return &run{
		opts:      opts,
		log:       log,
		abbr:      NewAbbreviator(opts.Fidelity, opts.Abbreviations, opts.TypeField),
		urls:      NewDictionary(urlDictionary, opts.CodeWidth),
		strs:      NewDictionary(stringDictionary, opts.CodeWidth),
		seenOrder: make(map[string]bool),
	}
}

// assembleGroup infers the group's schema and fills one column per field.
func (r *run) assembleGroup(g *ResourceGroup) (GroupSchema, Group, error) {
	var skip func(string) bool
	if g.Templated {
		typeField := r.opts.TypeField
		skip = func(key string) bool { return key == typeField }
	}
	schema, layouts := InferSchema(g, r.abbr, skip)

	out := Group{Tag: g.Tag, Count: len(g.Records), Columns: make([]Column, 0, len(layouts))}
	for _, f := range layouts {
		col := newColumn(f.short, f.typ, len(g.Records))
		for row, rec := range g.Records {
			v, ok := f.valueOf(rec)
			if !ok {
				continue
			}
			if err := r.setCell(&col, row, v); err != nil {
				return GroupSchema{}, Group{}, err
			}
		}
		if !r.seenOrder[f.short] {
			r.seenOrder[f.short] = true
			r.order = append(r.order, f.short)
		}
		out.Columns = append(out.Columns, col)
	}

	r.log.Debug("assembled resource group",
		zap.String("tag", g.Tag),
		zap.Int("rows", out.Count),
		zap.Int("columns", len(out.Columns)),
		zap.Bool("templated", g.Templated))
	return schema, out, nil
}

// setCell converts v to the column type. Values that do not fit leave a null
// cell (false for Bool) and are counted as coercion nulls.
func (r *run) setCell(col *Column, row int, v Value) error {
	if v.IsNull() {
		return nil
	}
	switch col.Type {
	case ColumnInt:
		if i, ok := v.AsInt(); ok {
			col.Ints[row] = &i
			return nil
		}
	case ColumnFloat:
		if f, ok := v.AsFloat(); ok {
			col.Floats[row] = &f
			return nil
		}
	case ColumnBool:
		if b, ok := v.AsBool(); ok {
			col.Bools[row] = b
			return nil
		}
	case ColumnURL:
		if s, ok := v.AsString(); ok {
			return r.intern(r.urls, col, row, s)
		}
	case ColumnString:
		if s, ok := v.AsString(); ok {
			return r.intern(r.strs, col, row, s)
		}
	case ColumnJSON:
		text, err := EncodeValue(v)
		if err != nil {
			return err
		}
		return r.intern(r.strs, col, row, string(text))
	}
	r.stats.CoercionNulls++
	return nil
}

func (r *run) intern(d *Dictionary, col *Column, row int, s string) error {
	code, err := d.Intern(s)
	if err != nil {
		r.log.Warn("dictionary exhausted",
			zap.String("dictionary", d.name),
			zap.Uint8("code_width", uint8(d.width)),
			zap.Int("entries", d.Len()))
		return err
	}
	col.Codes[row] = &code
	return nil
}
