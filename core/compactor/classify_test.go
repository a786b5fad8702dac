package compactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const classBase = "https://common.terraphim.io/01jxw2jx8qze6yakh4fz24mnhy/class/"

func TestTypeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{classBase + "company-information-and-history-step", "company_information_and_history"},
		{classBase + "a-step", "a"},
		{classBase + "management-governance-and-ownership", "management_governance_and_ownership"},
		{"plain", "plain"},
		{"https://example.com/class/", ""},
		{"https://example.com/class/step-by-step", "step_by"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeTag(tt.in))
		})
	}
}

func TestExpandTypeTag_InvertsTemplatedIdentifiers(t *testing.T) {
	id := classBase + "company-information-and-history-step"
	assert.Equal(t, id, ExpandTypeTag(DefaultTypeTemplate, TypeTag(id)))

	other := classBase + "management-governance-and-ownership"
	assert.NotEqual(t, other, ExpandTypeTag(DefaultTypeTemplate, TypeTag(other)))
}

func TestClassify(t *testing.T) {
	rec := func(typeID Value) *Record {
		r := NewRecord()
		r.Set("url", String("https://common.terraphim.io/x"))
		if !typeID.IsNull() {
			r.Set(DefaultTypeField, typeID)
		}
		return r
	}

	records := []*Record{
		rec(String(classBase + "b-step")),
		rec(String(classBase + "a-step")),
		rec(Null()),
		rec(Int(7)),
		rec(String(classBase + "b-step")),
		rec(String("https://elsewhere.org/types/a")),
	}

	groups, dropped := Classify(records, DefaultTypeField, DefaultTypeTemplate)
	assert.Equal(t, 2, dropped)
	require.Len(t, groups, 2)

	assert.Equal(t, "b", groups[0].Tag)
	assert.Equal(t, []*Record{records[0], records[4]}, groups[0].Records)
	assert.True(t, groups[0].Templated)

	assert.Equal(t, "a", groups[1].Tag)
	assert.Equal(t, []*Record{records[1], records[5]}, groups[1].Records)
	assert.False(t, groups[1].Templated, "one identifier does not match the template")
}
