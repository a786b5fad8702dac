package validation

// Config holds thresholds for the pre-flight checks.
type Config struct {
	// MinDiskSpaceGB is the free space required in OutputDirectory.
	MinDiskSpaceGB float64 `mapstructure:"min_disk_space_gb" default:"1"`
	// OutputDirectory is where the CLI writes artifacts.
	OutputDirectory string `mapstructure:"output_directory" default:"."`
}
