package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders a byte count for humans ("1.2 kB").
func FormatBytes(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatRatio renders a compression ratio as a percentage with one decimal.
func FormatRatio(r float64) string {
	return fmt.Sprintf("%.1f%%", r*100)
}

// FormatGB renders a size in gigabytes with two decimals.
func FormatGB(gb float64) string {
	return humanize.FtoaWithDigits(gb, 2) + " GB"
}
