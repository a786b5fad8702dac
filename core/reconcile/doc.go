// Package reconcile verifies compaction fidelity by reconciling two sources:
// the records fed to a compaction run and the records rebuilt from its
// artifact.
//
// # Architecture
//
// 1. Engine: builds an index per source concurrently, takes the union of
//    keys, flags presence per source, and lists field mismatches for keys
//    present on both sides.
//
// 2. Adapter: decides how a record is keyed and how two records are
//    compared. RecordAdapter keys by the "url" field and falls back to a
//    BLAKE3 fingerprint of the record's canonical form.
//
// Reconstruction does not promise row order, so matching is by key, never by
// position. Duplicate keys are matched in order ("key", "key#2", ...).
//
// # Usage Example
//
//	report, err := reconcile.ReconcileAll(ctx, &reconcile.Spec{
//	    Adapter:       reconcile.NewRecordAdapter(),
//	    Original:      original,
//	    Reconstructed: rebuilt,
//	})
//	if !report.Lossless() {
//	    for _, r := range report.Problems() { ... }
//	}
package reconcile
