package codec

import (
	"bytes"
	"testing"

	"record-compactor/core/compactor"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = `{"subresources":[
 {"url":"https://common.terraphim.io/r1","resource_type":"https://common.terraphim.io/01jxw2jx8qze6yakh4fz24mnhy/class/a-step","n":1,"f":2.5,"ok":true,"tags":["x"],"note":"hello"},
 {"url":"https://common.terraphim.io/r2","resource_type":"https://example.org/class/b","n":null,"ok":false}
]}`

func sampleArtifact(t *testing.T) *compactor.Artifact {
	t.Helper()
	c, err := compactor.New(compactor.DefaultOptions(), nil)
	require.NoError(t, err)
	doc, err := compactor.ParseValue([]byte(input))
	require.NoError(t, err)
	a, err := c.Compact(doc)
	require.NoError(t, err)
	return a
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"CBOR", FormatCBOR, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatCBOR, FormatFromPath("out/artifact.CBOR"))
	assert.Equal(t, FormatJSON, FormatFromPath("artifact.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("artifact"))
	assert.Equal(t, ".cbor", FormatCBOR.Extension())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatCBOR} {
		t.Run(string(format), func(t *testing.T) {
			a := sampleArtifact(t)

			data, err := Marshal(a, format)
			require.NoError(t, err)

			decoded, err := Unmarshal(data, format)
			require.NoError(t, err)
			if diff := cmp.Diff(a, decoded, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("artifact changed (-want +got):\n%s", diff)
			}

			want, err := compactor.Reconstruct(a)
			require.NoError(t, err)
			got, err := compactor.Reconstruct(decoded)
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, want[i].Equal(got[i]), "record %d", i)
			}
		})
	}
}

func TestCBOR_IsDeterministic(t *testing.T) {
	first, err := Marshal(sampleArtifact(t), FormatCBOR)
	require.NoError(t, err)
	second, err := Marshal(sampleArtifact(t), FormatCBOR)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestDecode_RejectsInvalid(t *testing.T) {
	_, err := Unmarshal([]byte(`{"v":1`), FormatJSON)
	assert.ErrorIs(t, err, compactor.ErrMalformedArtifact)

	_, err = Unmarshal([]byte(`{"v":2,"fidelity":"columnar","code_width":16,"schema":{"order":[],"types":{}},"groups":{},"dictionaries":{},"stats":{}}`), FormatJSON)
	assert.ErrorIs(t, err, compactor.ErrMalformedArtifact)

	_, err = Unmarshal([]byte{0xff, 0x00}, FormatCBOR)
	assert.ErrorIs(t, err, compactor.ErrMalformedArtifact)

	_, err = Unmarshal([]byte(`{}`), Format("xml"))
	assert.Error(t, err)
}
