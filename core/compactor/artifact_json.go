package compactor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// The JSON form keys groups, fields and field names by tag or short key in
// ordered objects. The CBOR form uses the plain struct layout.

const optionalMark = "?"

// MarshalJSON writes {"tag": {"key": "u", "opt": "s?"}}.
func (ts TypeSchemas) MarshalJSON() ([]byte, error) {
	return encodeObject(len(ts), func(i int) (string, any) {
		g := ts[i]
		return g.Tag, fieldTypes(g.Fields)
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *TypeSchemas) UnmarshalJSON(data []byte) error {
	out := TypeSchemas{}
	err := decodeObject(data, func(tag string, raw json.RawMessage) error {
		g := GroupSchema{Tag: tag}
		err := decodeObject(raw, func(key string, raw json.RawMessage) error {
			var decl string
			if err := json.Unmarshal(raw, &decl); err != nil {
				return fmt.Errorf("field %q of %q: %w", key, tag, err)
			}
			optional := strings.HasSuffix(decl, optionalMark)
			g.Fields = append(g.Fields, FieldSchema{
				Key:      key,
				Type:     ColumnType(strings.TrimSuffix(decl, optionalMark)),
				Optional: optional,
			})
			return nil
		})
		out = append(out, g)
		return err
	})
	*ts = out
	return err
}

type fieldTypes []FieldSchema

func (fs fieldTypes) MarshalJSON() ([]byte, error) {
	return encodeObject(len(fs), func(i int) (string, any) {
		decl := string(fs[i].Type)
		if fs[i].Optional {
			decl += optionalMark
		}
		return fs[i].Key, decl
	})
}

type groupJSON struct {
	Count   int             `json:"count"`
	Columns json.RawMessage `json:"columns"`
}

// MarshalJSON writes {"tag": {"count": n, "columns": {"key": {...}}}}.
func (gs Groups) MarshalJSON() ([]byte, error) {
	var err error
	out, encErr := encodeObject(len(gs), func(i int) (string, any) {
		g := gs[i]
		cols, cerr := encodeObject(len(g.Columns), func(j int) (string, any) {
			return g.Columns[j].Key, &g.Columns[j]
		})
		if cerr != nil && err == nil {
			err = cerr
		}
		return g.Tag, groupJSON{Count: g.Count, Columns: cols}
	})
	if err != nil {
		return nil, err
	}
	return out, encErr
}

// UnmarshalJSON implements json.Unmarshaler.
func (gs *Groups) UnmarshalJSON(data []byte) error {
	out := Groups{}
	err := decodeObject(data, func(tag string, raw json.RawMessage) error {
		var gj groupJSON
		if err := json.Unmarshal(raw, &gj); err != nil {
			return fmt.Errorf("group %q: %w", tag, err)
		}
		g := Group{Tag: tag, Count: gj.Count}
		if len(gj.Columns) > 0 {
			err := decodeObject(gj.Columns, func(key string, raw json.RawMessage) error {
				var c Column
				if err := json.Unmarshal(raw, &c); err != nil {
					return fmt.Errorf("column %q of %q: %w", key, tag, err)
				}
				c.Key = key
				g.Columns = append(g.Columns, c)
				return nil
			})
			if err != nil {
				return err
			}
		}
		out = append(out, g)
		return nil
	})
	*gs = out
	return err
}

type columnJSON struct {
	Type  ColumnType      `json:"type"`
	Cells json.RawMessage `json:"cells"`
}

// MarshalJSON writes {"type": "u", "cells": [...]}; the key lives in the
// enclosing object.
func (c *Column) MarshalJSON() ([]byte, error) {
	var cells any
	switch {
	case c.Type.Coded():
		cells = nonNil(c.Codes)
	case c.Type == ColumnInt:
		cells = nonNil(c.Ints)
	case c.Type == ColumnFloat:
		cells = nonNil(c.Floats)
	case c.Type == ColumnBool:
		cells = nonNil(c.Bools)
	default:
		return nil, malformedf("column %q has unknown type %q", c.Key, c.Type)
	}
	raw, err := json.Marshal(cells)
	if err != nil {
		return nil, err
	}
	return json.Marshal(columnJSON{Type: c.Type, Cells: raw})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Column) UnmarshalJSON(data []byte) error {
	var cj columnJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	c.Type = cj.Type
	if len(cj.Cells) == 0 {
		cj.Cells = []byte("[]")
	}
	switch {
	case cj.Type.Coded():
		c.Codes = []*uint32{}
		return json.Unmarshal(cj.Cells, &c.Codes)
	case cj.Type == ColumnInt:
		c.Ints = []*int64{}
		return json.Unmarshal(cj.Cells, &c.Ints)
	case cj.Type == ColumnFloat:
		c.Floats = []*float64{}
		return json.Unmarshal(cj.Cells, &c.Floats)
	case cj.Type == ColumnBool:
		c.Bools = []bool{}
		return json.Unmarshal(cj.Cells, &c.Bools)
	}
	return malformedf("unknown column type %q", cj.Type)
}

// MarshalJSON writes {"short": "canonical"}.
func (t FieldNameTable) MarshalJSON() ([]byte, error) {
	return encodeObject(len(t), func(i int) (string, any) {
		return t[i].Short, t[i].Canonical
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *FieldNameTable) UnmarshalJSON(data []byte) error {
	out := FieldNameTable{}
	err := decodeObject(data, func(short string, raw json.RawMessage) error {
		var canonical string
		if err := json.Unmarshal(raw, &canonical); err != nil {
			return fmt.Errorf("field name %q: %w", short, err)
		}
		out = append(out, FieldName{Short: short, Canonical: canonical})
		return nil
	})
	*t = out
	return err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// encodeObject writes n key/value pairs as a JSON object in the given order.
func encodeObject(n int, pair func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, value := pair(i)
		k, err := compactJSON(key)
		if err != nil {
			return nil, err
		}
		v, err := compactJSON(value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeObject calls fn for every member of a JSON object, in document order.
// A JSON null is treated as an empty object.
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("invalid object key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
