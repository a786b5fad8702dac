// Package validation implements the pre-flight checks of the compactor.
//
// Four checks run concurrently through an errgroup:
//
//   - disk: the output directory exists and has enough free space.
//   - config: the compactor settings resolve and the abbreviation table parses.
//   - storage: the artifact bucket and prefix exist (fixable).
//   - database: compaction_runs matches the history model.
//
// Storage and database are skipped when not configured. Disk and config
// failures are critical and make the report invalid; the others are warnings.
// Every failure carries a recommendation.
//
// # HTTP Endpoints
//
//   - GET /validation         : all checks.
//   - GET /validation/:check  : one check; ?fix=true repairs storage.
package validation
