package reconcile

// Result is the reconciliation outcome for one record key.
type Result struct {
	// ID is the record key (identity field value or fingerprint).
	ID string `json:"id"`

	// OriginalPresent indicates whether the key exists in the original records.
	OriginalPresent bool `json:"original_present"`

	// ReconstructedPresent indicates whether the key exists in the reconstructed records.
	ReconstructedPresent bool `json:"reconstructed_present"`

	// Mismatch describes field differences when the key exists on both sides,
	// e.g. "year: original=2020 reconstructed=2020.0".
	Mismatch []string `json:"mismatch"`

	// Metadata holds adapter-specific data such as the record's type tag.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Matched reports whether the record survived unchanged.
func (r Result) Matched() bool {
	return r.OriginalPresent && r.ReconstructedPresent && len(r.Mismatch) == 0
}

// Summary provides aggregate counts over a report.
type Summary struct {
	// TotalItems is the number of distinct keys over both sides.
	TotalItems int `json:"total_items"`

	// Matched counts keys present on both sides with equal fields.
	Matched int `json:"matched"`

	// Missing counts keys present only in the original records.
	Missing int `json:"missing"`

	// Extra counts keys present only in the reconstructed records.
	Extra int `json:"extra"`

	// Mismatches counts keys present on both sides with differing fields.
	Mismatches int `json:"mismatches"`
}

// Report is the full outcome of a reconciliation.
type Report struct {
	Results []Result `json:"results"`
	Summary Summary  `json:"summary"`
}

// Lossless reports whether every original record came back unchanged and
// nothing else did.
func (r *Report) Lossless() bool {
	s := r.Summary
	return s.Missing == 0 && s.Extra == 0 && s.Mismatches == 0
}

// Problems returns the results that are not matches.
func (r *Report) Problems() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Matched() {
			out = append(out, res)
		}
	}
	return out
}

// Spec bundles the adapter and the two record sets to reconcile.
type Spec struct {
	// Adapter provides key extraction and field comparison.
	Adapter Adapter

	// Original is the input of the compaction run.
	Original []*Record

	// Reconstructed is the output of decoding the artifact.
	Reconstructed []*Record
}
