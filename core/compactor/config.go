package compactor

import (
	"fmt"
	"os"
)

// Config holds configuration for the compaction engine.
type Config struct {
	// Fidelity is the abbreviation policy (structural, columnar, aggressive).
	Fidelity string `mapstructure:"fidelity" default:"columnar"`
	// CodeWidth is the dictionary code width in bits; 0 uses the mode default.
	CodeWidth int `mapstructure:"code_width" default:"0"`
	// TypeField is the record field holding the type identifier.
	TypeField string `mapstructure:"type_field" default:"resource_type"`
	// TypeTemplate rebuilds type identifiers from tags; must contain {tag}.
	TypeTemplate string `mapstructure:"type_template" default:"https://common.terraphim.io/01jxw2jx8qze6yakh4fz24mnhy/class/{tag}-step"`
	// AbbreviationsFile is an optional YAML or JSON table replacing the defaults.
	AbbreviationsFile string `mapstructure:"abbreviations_file" default:""`
}

// Options converts the configuration into engine options.
func (c Config) Options() (Options, error) {
	mode, err := ParseFidelityMode(c.Fidelity)
	if err != nil {
		return Options{}, err
	}
	if c.CodeWidth < 0 || c.CodeWidth > 32 {
		return Options{}, fmt.Errorf("%w: code width %d out of range", ErrInvalidOptions, c.CodeWidth)
	}
	opts := Options{
		Fidelity:     mode,
		CodeWidth:    CodeWidth(c.CodeWidth),
		TypeField:    c.TypeField,
		TypeTemplate: c.TypeTemplate,
	}
	if c.AbbreviationsFile != "" {
		table, err := LoadAbbreviationTable(c.AbbreviationsFile)
		if err != nil {
			return Options{}, err
		}
		opts.Abbreviations = table
	}
	return opts.normalize()
}

// LoadAbbreviationTable reads and parses an abbreviation table file.
func LoadAbbreviationTable(path string) (*AbbreviationTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read abbreviation table: %w", err)
	}
	return ParseAbbreviationTable(data)
}
