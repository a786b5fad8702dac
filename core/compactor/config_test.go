package compactor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Options(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantMode  FidelityMode
		wantWidth CodeWidth
		wantErr   bool
	}{
		{"Defaults", Config{}, Columnar, 16, false},
		{"Structural", Config{Fidelity: "structural"}, Structural, 32, false},
		{"Aggressive", Config{Fidelity: "Aggressive"}, AggressiveColumnar, 8, false},
		{"Explicit width", Config{Fidelity: "columnar", CodeWidth: 32}, Columnar, 32, false},
		{"Unknown mode", Config{Fidelity: "lossy"}, "", 0, true},
		{"Bad width", Config{CodeWidth: 12}, "", 0, true},
		{"Negative width", Config{CodeWidth: -8}, "", 0, true},
		{"Template without tag", Config{TypeTemplate: "https://x/class"}, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.cfg.Options()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, opts.Fidelity)
			assert.Equal(t, tt.wantWidth, opts.CodeWidth)
			assert.Equal(t, DefaultTypeField, opts.TypeField)
			assert.Equal(t, DefaultAbbreviationTable().Len(), opts.Abbreviations.Len())
		})
	}
}

func TestConfig_AbbreviationsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abbr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("company-name: cn\nurl: u\n"), 0o644))

	opts, err := Config{AbbreviationsFile: path}.Options()
	require.NoError(t, err)
	assert.Equal(t, []Abbreviation{{"company-name", "cn"}, {"url", "u"}}, opts.Abbreviations.Entries())

	_, err = Config{AbbreviationsFile: filepath.Join(t.TempDir(), "missing.yaml")}.Options()
	assert.ErrorContains(t, err, "failed to read abbreviation table")
}
