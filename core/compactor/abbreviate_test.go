package compactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companyName  = terraphimProperty + "company-name"
	foundingYear = terraphimProperty + "founding-year"
	fieldYield   = terraphimProperty + "field-yield"
)

func TestHeuristicShort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{terraphimProperty + "company-name", "cn"},
		{terraphimProperty + "number-of-full-time-employees", "noft"},
		{terraphimProperty + "revenue", "r"},
		{terraphimProperty + "a--b", "axb"},
		{"url", "url"},
		{"note", "note"},
		{"description", "desc"},
		{atomicProperty + "isA", "http"},
		{"ünïcode", "ünïc"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, heuristicShort(tt.in))
		})
	}
}

func TestParseFidelityMode(t *testing.T) {
	tests := []struct {
		in      string
		want    FidelityMode
		wantErr bool
	}{
		{"structural", Structural, false},
		{"Columnar", Columnar, false},
		{"", Columnar, false},
		{"aggressive", AggressiveColumnar, false},
		{"aggressive_columnar", AggressiveColumnar, false},
		{"lossy", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFidelityMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFidelityMode_DefaultCodeWidth(t *testing.T) {
	assert.Equal(t, CodeWidth32, Structural.DefaultCodeWidth())
	assert.Equal(t, CodeWidth16, Columnar.DefaultCodeWidth())
	assert.Equal(t, CodeWidth8, AggressiveColumnar.DefaultCodeWidth())
}

func TestAbbreviator_Structural(t *testing.T) {
	a := NewAbbreviator(Structural, DefaultAbbreviationTable(), DefaultTypeField)

	assert.Equal(t, "cn", a.Abbreviate(companyName))
	assert.Equal(t, foundingYear, a.Abbreviate(foundingYear))
	assert.Equal(t, "cn", a.Abbreviate(companyName))

	assert.Equal(t, FieldNameTable{{Short: "cn", Canonical: companyName}}, a.Table())
	assert.Equal(t, 1, a.Abbreviated())
	assert.Equal(t, 0, a.Unreversible())

	got, ok := a.Expand(foundingYear)
	assert.False(t, ok)
	assert.Equal(t, foundingYear, got)
}

func TestAbbreviator_ColumnarResolvesCollisions(t *testing.T) {
	a := NewAbbreviator(Columnar, DefaultAbbreviationTable(), DefaultTypeField)

	assert.Equal(t, "fy", a.Abbreviate(foundingYear))
	assert.Equal(t, "fy2", a.Abbreviate(fieldYield))
	assert.Equal(t, "note", a.Abbreviate("note"))

	for _, canonical := range []string{foundingYear, fieldYield, "note"} {
		got, _ := a.Expand(a.Abbreviate(canonical))
		assert.Equal(t, canonical, got)
	}
	assert.Len(t, a.Table(), 2, "identity mappings are not recorded")
	assert.Equal(t, 0, a.Unreversible())
}

func TestAbbreviator_VerbatimKeyTakesStaticShort(t *testing.T) {
	a := NewAbbreviator(Columnar, DefaultAbbreviationTable(), DefaultTypeField)

	assert.Equal(t, "p", a.Abbreviate("p"))
	assert.Equal(t, "p2", a.Abbreviate(atomicProperty+"parent"))

	got, _ := a.Expand("p")
	assert.Equal(t, "p", got)
	got, _ = a.Expand("p2")
	assert.Equal(t, atomicProperty+"parent", got)
}

func TestAbbreviator_AggressiveAvoidsReservedShortKeys(t *testing.T) {
	customerRating := terraphimProperty + "customer-rating"
	a := NewAbbreviator(AggressiveColumnar, DefaultAbbreviationTable(), DefaultTypeField)

	assert.Equal(t, "p2", a.Abbreviate("p"))
	assert.Equal(t, "cr2", a.Abbreviate(customerRating))
	assert.Equal(t, "p", a.Abbreviate(atomicProperty+"parent"))
	assert.Equal(t, "cr", a.Abbreviate(terraphimProperty+"country-of-registration"))

	for _, short := range []string{"p2", "cr2"} {
		got, ok := a.Expand(short)
		assert.False(t, ok, short)
		assert.Equal(t, short, got)
	}
	assert.Equal(t, 2, a.Unreversible())
}

func TestAbbreviator_PinnedShortKeyIsReserved(t *testing.T) {
	a := NewAbbreviator(AggressiveColumnar, DefaultAbbreviationTable(), "kind-of-resource")

	assert.Equal(t, "kind2", a.Abbreviate("kind"))
	assert.Equal(t, "kind", a.Abbreviate("kind-of-resource"))

	got, ok := a.Expand("kind")
	assert.True(t, ok)
	assert.Equal(t, "kind-of-resource", got)
}

func TestAbbreviator_AggressiveAvoidsRecordedSuffixes(t *testing.T) {
	static, err := NewAbbreviationTable([]Abbreviation{{"kind-a", "ka"}, {"kind-b", "ka2"}})
	require.NoError(t, err)
	a := NewAbbreviator(AggressiveColumnar, static, DefaultTypeField)

	assert.Equal(t, "reso", a.Abbreviate(DefaultTypeField))
	assert.Equal(t, "reso2", a.Abbreviate("reso"))
	assert.Equal(t, "ka3", a.Abbreviate("ka"))

	table := a.Table()
	assert.Equal(t, FieldNameTable{{Short: "reso", Canonical: DefaultTypeField}}, table)
	for _, short := range []string{"reso2", "ka3"} {
		got, ok := table.Expand(short)
		assert.False(t, ok)
		assert.Equal(t, short, got)
	}
}

func TestAbbreviator_Aggressive(t *testing.T) {
	a := NewAbbreviator(AggressiveColumnar, DefaultAbbreviationTable(), "kind-of-resource")

	assert.Equal(t, "cn", a.Abbreviate(companyName))
	assert.Equal(t, "fy", a.Abbreviate(foundingYear))
	assert.Equal(t, "fy", a.Abbreviate(fieldYield), "collisions share the short key")
	assert.Equal(t, "kind", a.Abbreviate("kind-of-resource"))

	table := a.Table()
	assert.Equal(t, FieldNameTable{
		{Short: "cn", Canonical: companyName},
		{Short: "kind", Canonical: "kind-of-resource"},
	}, table)

	got, ok := a.Expand("fy")
	assert.False(t, ok)
	assert.Equal(t, "fy", got)
	assert.Equal(t, 2, a.Unreversible())
}

func TestParseAbbreviationTable(t *testing.T) {
	t.Run("YAML keeps order", func(t *testing.T) {
		table, err := ParseAbbreviationTable([]byte(`
https://example.com/property/zeta: z
https://example.com/property/alpha: a
url: u
`))
		require.NoError(t, err)
		assert.Equal(t, []Abbreviation{
			{"https://example.com/property/zeta", "z"},
			{"https://example.com/property/alpha", "a"},
			{"url", "u"},
		}, table.Entries())
	})

	t.Run("JSON", func(t *testing.T) {
		table, err := ParseAbbreviationTable([]byte(`{"resource_type": "rt", "url": "u"}`))
		require.NoError(t, err)
		short, ok := table.Lookup("resource_type")
		assert.True(t, ok)
		assert.Equal(t, "rt", short)
		assert.Equal(t, 2, table.Len())
	})

	t.Run("Duplicate short key", func(t *testing.T) {
		_, err := ParseAbbreviationTable([]byte("a: x\nb: x\n"))
		assert.Error(t, err)
	})

	t.Run("Not a mapping", func(t *testing.T) {
		_, err := ParseAbbreviationTable([]byte("- a\n- b\n"))
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		table, err := ParseAbbreviationTable(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
	})
}

func TestDefaultAbbreviationTable_IsAFreshCopy(t *testing.T) {
	a := DefaultAbbreviationTable()
	b := DefaultAbbreviationTable()
	assert.NotSame(t, a, b)
	assert.Equal(t, a.Entries(), b.Entries())
	assert.Equal(t, 15, a.Len())
}

func TestDefaultAbbreviationTable_CompanyProperties(t *testing.T) {
	tests := []struct {
		canonical string
		short     string
	}{
		{terraphimProperty + "trading-name", "tn"},
		{terraphimProperty + "business-type", "bt"},
		{terraphimProperty + "annual-revenue", "ar"},
		{terraphimProperty + "number-of-employees", "ne"},
		{terraphimProperty + "years-in-business", "yb"},
		{terraphimProperty + "is-business-female-lead", "fl"},
		{terraphimProperty + "board-of-directors", "bd"},
		{terraphimProperty + "key-management-personnel", "km"},
		{atomicProperty + "subresources", "sr"},
	}
	for _, tt := range tests {
		t.Run(tt.short, func(t *testing.T) {
			a := NewAbbreviator(AggressiveColumnar, DefaultAbbreviationTable(), DefaultTypeField)
			assert.Equal(t, tt.short, a.Abbreviate(tt.canonical))

			got, ok := a.Expand(tt.short)
			assert.True(t, ok)
			assert.Equal(t, tt.canonical, got)
			assert.Equal(t, 0, a.Unreversible())
		})
	}
}
