package checks

import (
	"fmt"
	"os"
	"time"

	"record-compactor/core/utils"

	"golang.org/x/sys/unix"
)

const bytesPerGB = 1 << 30

// FreeSpaceGB returns the space available to unprivileged users on the
// filesystem holding dir.
func FreeSpaceGB(dir string) (float64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, fmt.Errorf("failed to stat filesystem of %s: %w", dir, err)
	}
	return float64(st.Bavail) * float64(st.Bsize) / bytesPerGB, nil
}

// CheckDisk verifies that dir exists and has at least minGB free.
func CheckDisk(dir string, minGB float64) CheckResult {
	start := time.Now()
	res := newResult(Disk)
	res.Metadata["path"] = dir
	res.Metadata["required_gb"] = utils.FormatGB(minGB)

	info, err := os.Stat(dir)
	if err != nil {
		return res.fail(start, fmt.Sprintf("output directory unavailable: %v", err))
	}
	if !info.IsDir() {
		return res.fail(start, fmt.Sprintf("%s is not a directory", dir))
	}

	free, err := FreeSpaceGB(dir)
	if err != nil {
		return res.fail(start, err.Error())
	}
	res.Metadata["available_gb"] = utils.FormatGB(free)
	if free < minGB {
		return res.fail(start, fmt.Sprintf("insufficient disk space: %s available, %s required",
			utils.FormatGB(free), utils.FormatGB(minGB)))
	}
	return res.pass(start, fmt.Sprintf("%s available", utils.FormatGB(free)))
}
