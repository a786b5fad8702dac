// Package utils provides small formatting helpers shared by the CLI commands
// and reports: byte sizes, counts, ratios and disk space.
package utils
