package compactor

// Record is an insertion-ordered mapping from field identifier to Value.
// It models both top-level resource records and nested JSON objects.
// Keys are unique; setting an existing key replaces its value in place.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// Set inserts or replaces key.
func (r *Record) Set(key string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Delete removes key, preserving the order of the remaining keys.
func (r *Record) Delete(key string) {
	if r == nil {
		return
	}
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The caller must not modify the slice.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return r.keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Equal reports whether both records hold the same set of (key, value) pairs.
func (r *Record) Equal(other *Record) bool {
	if r.Len() != other.Len() {
		return false
	}
	for _, k := range r.Keys() {
		ov, ok := other.Get(k)
		if !ok {
			return false
		}
		v, _ := r.Get(k)
		if !Equal(v, ov) {
			return false
		}
	}
	return true
}
