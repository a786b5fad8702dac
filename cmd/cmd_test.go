package cmd

import (
	"path/filepath"
	"testing"

	"record-compactor/core/codec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name string
		flag string
		path string
		want codec.Format
	}{
		{"Flag Wins", "cbor", "out.json", codec.FormatCBOR},
		{"Extension", "", "out.cbor", codec.FormatCBOR},
		{"Stdout Fallback", "", "-", codec.FormatJSON},
		{"Empty Fallback", "", "", codec.FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputFormat(tt.flag, tt.path, codec.FormatJSON)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := outputFormat("xml", "", codec.FormatJSON)
	assert.Error(t, err)
}

func TestReadWriteFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeOutput(path, []byte(`{"v":1}`)))

	data, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(data))

	_, err = readInput(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Error(t, writeOutput(filepath.Join(t.TempDir(), "no", "dir", "x.json"), nil))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"compact", "reconstruct", "verify", "validate", "history", "start"} {
		assert.True(t, names[want], want)
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("12345678-aaaa"))
	assert.Equal(t, "abc", shortID("abc"))
}
