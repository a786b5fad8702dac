package config

import (
	"fmt"
	"reflect"
	"strings"

	"record-compactor/core/compactor"
	"record-compactor/core/database"
	"record-compactor/core/logger"
	"record-compactor/core/server"
	"record-compactor/core/storage"
	"record-compactor/feature/validation"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the artifact object store (S3, MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the history database.
	Database database.Config `mapstructure:"database"`
	// Compactor holds the engine defaults (fidelity, code width, type field).
	Compactor compactor.Config `mapstructure:"compactor"`
	// Validation holds thresholds for the pre-flight checks.
	Validation validation.Config `mapstructure:"validation"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is normal outside development.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}

// Validate rejects settings that would fail at first use.
func (c *Config) Validate() error {
	if !c.Server.IsValidArtifactFormat() {
		return fmt.Errorf("invalid server.artifact_format %q", c.Server.ArtifactFormat)
	}
	if _, err := compactor.ParseFidelityMode(c.Compactor.Fidelity); err != nil {
		return err
	}
	if c.Validation.MinDiskSpaceGB < 0 {
		return fmt.Errorf("validation.min_disk_space_gb must not be negative")
	}
	return nil
}
