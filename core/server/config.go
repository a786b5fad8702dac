package server

import "record-compactor/core/codec"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies (input documents and artifacts).
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
	// ArtifactFormat is the default encoding of served and published artifacts.
	ArtifactFormat string `mapstructure:"artifact_format" default:"json"`
}

// BodyLimit returns the body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 64 << 20
	}
	return c.BodyLimitMB << 20
}

// IsValidArtifactFormat checks if the configured artifact format is supported.
func (c Config) IsValidArtifactFormat() bool {
	_, err := codec.ParseFormat(c.ArtifactFormat)
	return err == nil
}
