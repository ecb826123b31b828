//go:build !linux

package scan

import (
	"os"
	"time"
)

// earliestTimestamp falls back to the modification time on platforms without
// statx birth-time support.
func earliestTimestamp(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
