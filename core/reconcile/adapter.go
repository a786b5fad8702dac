package reconcile

import (
	"encoding/hex"
	"fmt"
	"sort"

	"record-compactor/core/compactor"

	"github.com/zeebo/blake3"
)

// Record is the reconciled record type.
type Record = compactor.Record

// Adapter defines how records are keyed and compared.
type Adapter interface {
	// Name returns the adapter name, used in logs.
	Name() string

	// ExtractKey returns the key matching a record across both sides.
	ExtractKey(rec *Record) string

	// CompareFields lists the differences between two records sharing a key.
	// Each string names the field and both values.
	CompareFields(original, reconstructed *Record) []string

	// GetMetadata returns adapter-specific data for the result. Either record
	// may be nil.
	GetMetadata(original, reconstructed *Record) map[string]string
}

// RecordAdapter keys records by an identity field, falling back to a
// content fingerprint when the field is missing or not a string.
type RecordAdapter struct {
	// IdentityField is the field whose string value keys a record.
	IdentityField string
	// TypeField is reported as the type tag in result metadata.
	TypeField string
}

// NewRecordAdapter returns an adapter keyed by "url" that reports the
// default type field.
func NewRecordAdapter() *RecordAdapter {
	return &RecordAdapter{IdentityField: "url", TypeField: compactor.DefaultTypeField}
}

// Name implements Adapter.
func (a *RecordAdapter) Name() string { return "records" }

// ExtractKey implements Adapter.
func (a *RecordAdapter) ExtractKey(rec *Record) string {
	if a.IdentityField != "" {
		if v, ok := rec.Get(a.IdentityField); ok {
			if s, ok := v.AsString(); ok {
				return s
			}
		}
	}
	return Fingerprint(rec)
}

// CompareFields implements Adapter. Differences are ordered by field name.
func (a *RecordAdapter) CompareFields(original, reconstructed *Record) []string {
	keys := make(map[string]struct{}, original.Len())
	for _, k := range original.Keys() {
		keys[k] = struct{}{}
	}
	for _, k := range reconstructed.Keys() {
		keys[k] = struct{}{}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	mismatch := []string{}
	for _, k := range sorted {
		ov, inOriginal := original.Get(k)
		rv, inReconstructed := reconstructed.Get(k)
		switch {
		case !inReconstructed:
			mismatch = append(mismatch, fmt.Sprintf("%s: missing in reconstructed (original=%s)", k, render(ov)))
		case !inOriginal:
			mismatch = append(mismatch, fmt.Sprintf("%s: not in original (reconstructed=%s)", k, render(rv)))
		case !compactor.Equal(ov, rv):
			mismatch = append(mismatch, fmt.Sprintf("%s: original=%s reconstructed=%s", k, render(ov), render(rv)))
		}
	}
	return mismatch
}

// GetMetadata implements Adapter.
func (a *RecordAdapter) GetMetadata(original, reconstructed *Record) map[string]string {
	rec := original
	if rec == nil {
		rec = reconstructed
	}
	if rec == nil || a.TypeField == "" {
		return nil
	}
	v, ok := rec.Get(a.TypeField)
	if !ok {
		return nil
	}
	s, ok := v.AsString()
	if !ok {
		return nil
	}
	return map[string]string{"type_tag": compactor.TypeTag(s)}
}

// Fingerprint hashes the record's canonical form (keys sorted at every
// level) with BLAKE3, so records with equal field sets share a fingerprint.
func Fingerprint(rec *Record) string {
	b, err := compactor.EncodeValue(canonical(compactor.Object(rec)))
	if err != nil {
		b = []byte(err.Error())
	}
	h := blake3.New()
	_, _ = h.Write(b)
	return "b3:" + hex.EncodeToString(h.Sum(nil)[:16])
}

func canonical(v compactor.Value) compactor.Value {
	switch v.Kind() {
	case compactor.KindArray:
		items, _ := v.AsArray()
		out := make([]compactor.Value, len(items))
		for i, item := range items {
			out[i] = canonical(item)
		}
		return compactor.Array(out...)
	case compactor.KindObject:
		rec, _ := v.AsObject()
		keys := append([]string(nil), rec.Keys()...)
		sort.Strings(keys)
		out := compactor.NewRecord()
		for _, k := range keys {
			item, _ := rec.Get(k)
			out.Set(k, canonical(item))
		}
		return compactor.Object(out)
	}
	return v
}

func render(v compactor.Value) string {
	b, err := compactor.EncodeValue(v)
	if err != nil {
		return fmt.Sprintf("<%s>", v.Kind())
	}
	const max = 80
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
