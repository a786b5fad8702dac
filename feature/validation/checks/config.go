package checks

import (
	"fmt"
	"strconv"
	"time"

	"record-compactor/core/compactor"
)

// CheckConfig resolves the compactor configuration, including the
// abbreviation table file when one is set.
func CheckConfig(cfg compactor.Config) CheckResult {
	start := time.Now()
	res := newResult(Config)

	opts, err := cfg.Options()
	if err != nil {
		return res.fail(start, fmt.Sprintf("invalid compactor configuration: %v", err))
	}
	res.Metadata["fidelity"] = string(opts.Fidelity)
	res.Metadata["code_width"] = strconv.Itoa(int(opts.CodeWidth))
	res.Metadata["abbreviations"] = strconv.Itoa(opts.Abbreviations.Len())
	if cfg.AbbreviationsFile != "" {
		res.Metadata["abbreviations_file"] = cfg.AbbreviationsFile
		return res.pass(start, fmt.Sprintf("abbreviation table loaded with %d entries", opts.Abbreviations.Len()))
	}
	return res.pass(start, "using built-in abbreviation table")
}
