package compactor

import (
	"fmt"
	"math"
)

// CodeWidth is the declared bit width of dictionary codes.
type CodeWidth uint8

const (
	CodeWidth8  CodeWidth = 8
	CodeWidth16 CodeWidth = 16
	CodeWidth32 CodeWidth = 32
)

// Valid reports whether w is one of the supported widths.
func (w CodeWidth) Valid() bool {
	return w == CodeWidth8 || w == CodeWidth16 || w == CodeWidth32
}

// Capacity is the highest code a dictionary of this width may assign.
// Code 0 is never assigned.
func (w CodeWidth) Capacity() uint32 {
	if w >= CodeWidth32 {
		return math.MaxUint32
	}
	return uint32(1)<<w - 1
}

// Dictionary interns strings into codes 1..Capacity in first-seen order.
// It is not safe for concurrent use.
type Dictionary struct {
	name   string
	width  CodeWidth
	index  map[string]uint32
	items  []string
	hits   int
	frozen bool
}

// NewDictionary returns an empty, growable dictionary.
func NewDictionary(name string, width CodeWidth) *Dictionary {
	return &Dictionary{
		name:  name,
		width: width,
		index: make(map[string]uint32),
	}
}

// NewDictionaryFrom rebuilds a frozen dictionary where items[i] has code i+1.
func NewDictionaryFrom(name string, width CodeWidth, items []string) (*Dictionary, error) {
	if uint64(len(items)) > uint64(width.Capacity()) {
		return nil, malformedf("%s dictionary has %d entries, %d-bit width allows %d",
			name, len(items), width, width.Capacity())
	}
	d := NewDictionary(name, width)
	for _, item := range items {
		if _, dup := d.index[item]; dup {
			return nil, malformedf("%s dictionary repeats entry %q", name, item)
		}
		d.items = append(d.items, item)
		d.index[item] = uint32(len(d.items))
	}
	d.frozen = true
	return d, nil
}

// Intern returns the code for s, assigning the next free code on first use.
func (d *Dictionary) Intern(s string) (uint32, error) {
	if code, ok := d.index[s]; ok {
		d.hits++
		return code, nil
	}
	if d.frozen {
		return 0, fmt.Errorf("%s dictionary is frozen, cannot intern %q", d.name, s)
	}
	if uint64(len(d.items)) >= uint64(d.width.Capacity()) {
		return 0, &ExhaustionError{Dictionary: d.name, Width: d.width, Value: s}
	}
	d.items = append(d.items, s)
	code := uint32(len(d.items))
	d.index[s] = code
	return code, nil
}

// Resolve returns the string behind code.
func (d *Dictionary) Resolve(code uint32) (string, error) {
	if code == 0 || uint64(code) > uint64(len(d.items)) {
		return "", fmt.Errorf("%w: %s dictionary has no code %d", ErrUnknownCode, d.name, code)
	}
	return d.items[code-1], nil
}

// Lookup returns the code already assigned to s.
func (d *Dictionary) Lookup(s string) (uint32, bool) {
	code, ok := d.index[s]
	return code, ok
}

// Freeze makes the dictionary read-only.
func (d *Dictionary) Freeze() { d.frozen = true }

// Len is the number of distinct entries.
func (d *Dictionary) Len() int { return len(d.items) }

// Hits counts Intern calls that returned an existing code.
func (d *Dictionary) Hits() int { return d.hits }

// Entries returns a copy of the entries in code order.
func (d *Dictionary) Entries() []string {
	out := make([]string, len(d.items))
	copy(out, d.items)
	return out
}
