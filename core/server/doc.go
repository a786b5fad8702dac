// Package server holds the HTTP server configuration.
//
// The start command reads Port, ApiKey and BodyLimit from Config when it
// builds the fiber app. ArtifactFormat selects the default encoding for the
// compaction routes that return or publish artifacts.
package server
