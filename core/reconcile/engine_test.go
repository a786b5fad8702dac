package reconcile

import (
	"context"
	"strings"
	"testing"

	"record-compactor/core/compactor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAdapter keys records by their "id" field and reports fixed mismatches.
type mockAdapter struct {
	mismatches map[string][]string
}

func (m *mockAdapter) Name() string {
	return "mock"
}

func (m *mockAdapter) ExtractKey(rec *Record) string {
	v, _ := rec.Get("id")
	s, _ := v.AsString()
	return s
}

func (m *mockAdapter) CompareFields(original, reconstructed *Record) []string {
	return m.mismatches[m.ExtractKey(original)]
}

func (m *mockAdapter) GetMetadata(original, reconstructed *Record) map[string]string {
	return nil
}

func record(t *testing.T, src string) *Record {
	t.Helper()
	v, err := compactor.ParseValue([]byte(src))
	require.NoError(t, err)
	rec, ok := v.AsObject()
	require.True(t, ok)
	return rec
}

// TestReconcileAll_PresenceFlags tests union building and presence detection.
func TestReconcileAll_PresenceFlags(t *testing.T) {
	spec := &Spec{
		Adapter: &mockAdapter{mismatches: map[string][]string{"b": {"x: original=1 reconstructed=2"}}},
		Original: []*Record{
			record(t, `{"id":"a"}`),
			record(t, `{"id":"b"}`),
			record(t, `{"id":"c"}`),
		},
		Reconstructed: []*Record{
			record(t, `{"id":"b"}`),
			record(t, `{"id":"a"}`),
			record(t, `{"id":"d"}`),
		},
	}

	report, err := ReconcileAll(context.Background(), spec)
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	ids := []string{}
	for _, r := range report.Results {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids, "results are sorted by ID")

	assert.True(t, report.Results[0].Matched())
	assert.Equal(t, []string{"x: original=1 reconstructed=2"}, report.Results[1].Mismatch)
	assert.True(t, report.Results[2].OriginalPresent)
	assert.False(t, report.Results[2].ReconstructedPresent)
	assert.False(t, report.Results[3].OriginalPresent)
	assert.True(t, report.Results[3].ReconstructedPresent)

	assert.Equal(t, Summary{TotalItems: 4, Matched: 1, Missing: 1, Extra: 1, Mismatches: 1}, report.Summary)
	assert.False(t, report.Lossless())
	assert.Len(t, report.Problems(), 3)
}

// TestReconcileAll_DuplicateKeys tests multiset matching of repeated keys.
func TestReconcileAll_DuplicateKeys(t *testing.T) {
	spec := &Spec{
		Adapter:       &mockAdapter{},
		Original:      []*Record{record(t, `{"id":"a"}`), record(t, `{"id":"a"}`)},
		Reconstructed: []*Record{record(t, `{"id":"a"}`)},
	}

	report, err := ReconcileAll(context.Background(), spec)
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "a", report.Results[0].ID)
	assert.Equal(t, "a#2", report.Results[1].ID)
	assert.Equal(t, 1, report.Summary.Missing)
}

// TestReconcileAll_Errors tests the nil adapter and cancelled context paths.
func TestReconcileAll_Errors(t *testing.T) {
	_, err := ReconcileAll(context.Background(), &Spec{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReconcileAll(ctx, &Spec{Adapter: &mockAdapter{}, Original: []*Record{record(t, `{"id":"a"}`)}})
	assert.ErrorIs(t, err, context.Canceled)
}

// TestRecordAdapter_CompareFields tests field-level mismatch descriptions.
func TestRecordAdapter_CompareFields(t *testing.T) {
	a := NewRecordAdapter()
	original := record(t, `{"url":"https://r/1","year":2020,"name":"Eco","note":"gone"}`)
	rebuilt := record(t, `{"name":"Eco","url":"https://r/1","year":2020.0,"fy":1}`)

	assert.Equal(t, []string{
		"fy: not in original (reconstructed=1)",
		"note: missing in reconstructed (original=\"gone\")",
		"year: original=2020 reconstructed=2020.0",
	}, a.CompareFields(original, rebuilt))

	assert.Empty(t, a.CompareFields(original, original))
}

// TestRecordAdapter_ExtractKey tests identity and fingerprint keys.
func TestRecordAdapter_ExtractKey(t *testing.T) {
	a := NewRecordAdapter()

	assert.Equal(t, "https://r/1", a.ExtractKey(record(t, `{"url":"https://r/1"}`)))

	first := a.ExtractKey(record(t, `{"b":{"y":1,"x":[2]},"a":1}`))
	second := a.ExtractKey(record(t, `{"a":1,"b":{"x":[2],"y":1}}`))
	other := a.ExtractKey(record(t, `{"a":2,"b":{"x":[2],"y":1}}`))
	assert.True(t, strings.HasPrefix(first, "b3:"))
	assert.Len(t, first, 3+32)
	assert.Equal(t, first, second, "fingerprints ignore key order")
	assert.NotEqual(t, first, other)
}

// TestRecordAdapter_GetMetadata tests type tag reporting.
func TestRecordAdapter_GetMetadata(t *testing.T) {
	a := NewRecordAdapter()
	rec := record(t, `{"resource_type":"https://x/class/company-info-step"}`)

	assert.Equal(t, map[string]string{"type_tag": "company_info"}, a.GetMetadata(nil, rec))
	assert.Nil(t, a.GetMetadata(record(t, `{}`), nil))
}

// TestReconcileAll_CompactionRoundTrip reconciles a real compaction run.
func TestReconcileAll_CompactionRoundTrip(t *testing.T) {
	doc, err := compactor.ParseValue([]byte(`{"subresources":[
		{"url":"https://r/1","resource_type":"https://common.terraphim.io/01jxw2jx8qze6yakh4fz24mnhy/class/a-step","n":1},
		{"url":"https://r/2","resource_type":"https://common.terraphim.io/01jxw2jx8qze6yakh4fz24mnhy/class/b-step","n":2},
		{"resource_type":"https://common.terraphim.io/01jxw2jx8qze6yakh4fz24mnhy/class/a-step","n":3}]}`))
	require.NoError(t, err)

	c, err := compactor.New(compactor.DefaultOptions(), nil)
	require.NoError(t, err)
	artifact, err := c.Compact(doc)
	require.NoError(t, err)
	rebuilt, err := compactor.Reconstruct(artifact)
	require.NoError(t, err)

	root, _ := doc.AsObject()
	items, _ := root.Get("subresources")
	list, _ := items.AsArray()
	original := make([]*Record, len(list))
	for i, item := range list {
		original[i], _ = item.AsObject()
	}

	report, err := ReconcileAll(context.Background(), &Spec{
		Adapter:       NewRecordAdapter(),
		Original:      original,
		Reconstructed: rebuilt,
	})
	require.NoError(t, err)
	assert.True(t, report.Lossless(), "problems: %+v", report.Problems())
	assert.Equal(t, 3, report.Summary.Matched)
}
