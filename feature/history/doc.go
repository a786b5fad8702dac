// Package history keeps a ledger of compaction runs.
//
// Every compaction performed through the service or the CLI can be recorded
// as a CompactionRun row (sizes, ratio, dictionary sizes, fidelity) in MySQL
// or SQLite via GORM. The feature is disabled when no database is configured.
//
// # HTTP Endpoints
//
//   - GET /history?limit=20 : recent runs, newest first.
//   - GET /history/:id      : a single run.
package history
