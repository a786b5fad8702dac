// Package compaction exposes the record compactor as a service.
//
// The Service parses lenient JSON input (comments and trailing commas are
// stripped with tidwall/jsonc), runs the engine with per-request fidelity and
// code width overrides, publishes artifacts to the object store under the
// configured prefix and records each run in the history ledger when one is
// configured.
//
// Verify runs the whole loop: compact, encode, decode, reconstruct, then
// reconcile the reconstructed records against the input with core/reconcile.
//
// # HTTP Endpoints
//
//   - POST /compaction/compact          : body is the input document; returns the artifact.
//   - POST /compaction/reconstruct      : body is an artifact; returns the document.
//   - POST /compaction/verify           : body is the input document; returns the reconciliation.
//   - GET  /compaction/artifacts        : names of published artifacts.
//   - GET  /compaction/artifacts/:name  : a published artifact.
//
// # Errors
//
// Invalid input, options or artifacts answer 400, dictionary exhaustion 422,
// a missing artifact 404 and a missing object store 503.
package compaction
