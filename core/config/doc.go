// Package config loads the application configuration.
//
// LoadConfig overlays a .env file onto the environment with godotenv, then
// lets Viper read every key declared by the mapstructure tags of the section
// structs. Defaults come from their default tags. Nested keys map to
// environment variables by replacing dots with underscores, so
// compactor.fidelity is COMPACTOR_FIDELITY.
//
// # Sections
//
//   - Server: HTTP port, API key, body limit, default artifact format.
//   - Storage: S3/MinIO endpoint, bucket and artifact prefix.
//   - Log: level and encoding.
//   - Database: optional history ledger (mysql or sqlite).
//   - Compactor: engine defaults and the abbreviation table file.
//   - Validation: pre-flight thresholds.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, err := cfg.Compactor.Options()
package config
