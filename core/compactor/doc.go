// Package compactor turns batches of flat resource records into a compact,
// self-describing columnar artifact and rebuilds the records from it.
//
// # Pipeline
//
// Compaction runs leaves first:
//
//  1. Classify groups records by the TypeTag of their type field. Records
//     without a string type are dropped and counted, never an error.
//  2. InferSchema walks a group's records in order, assigns every field a
//     short key through the run's Abbreviator, and fixes each column's type
//     from the first non-null value it sees.
//  3. The assembler fills one row-aligned column per field. String, Url and
//     Json cells are dictionary codes; Int and Float cells are nullable
//     literals; Bool cells default to false.
//  4. Reconstruct reverses the steps using only the artifact.
//
// # Fidelity
//
// FidelityMode picks the abbreviation policy over the same engine:
//
//   - Structural keeps unknown keys verbatim.
//   - Columnar shortens every key and records the mapping.
//   - AggressiveColumnar shortens unknown keys without recording them, so
//     those fields come back under their short keys. The artifact's fidelity
//     field and the unreversible_keys stat say so.
//
// # Dictionaries
//
// Codes start at 1 and are bounded by the declared CodeWidth. Running out of
// codes returns an *ExhaustionError; codes never wrap.
//
// # Concurrency
//
// A Compactor holds only immutable options, and every Compact call works on
// its own dictionaries and field table. Artifacts are read-only once built.
//
// # Usage
//
//	c, err := compactor.New(compactor.DefaultOptions(), logger)
//	doc, err := compactor.ParseValue(input)
//	artifact, err := c.Compact(doc)
//	records, err := compactor.Reconstruct(artifact)
package compactor
