package storage

import "strings"

// Config holds configuration for the artifact object store.
type Config struct {
	// Endpoint is the URL of the storage service. Empty disables publication.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket artifacts are published to.
	Bucket string `mapstructure:"bucket" default:"compactor"`
	// Prefix is the key prefix under which artifacts are stored.
	Prefix string `mapstructure:"prefix" default:"artifacts/"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Enabled reports whether an endpoint is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// ObjectPrefix returns Prefix with exactly one trailing slash, or "" when unset.
func (c Config) ObjectPrefix() string {
	p := strings.Trim(c.Prefix, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

// ObjectKey returns the object key of an artifact file name.
func (c Config) ObjectKey(name string) string {
	return c.ObjectPrefix() + strings.TrimLeft(name, "/")
}
