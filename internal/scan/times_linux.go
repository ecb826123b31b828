//go:build linux

package scan

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// earliestTimestamp returns the older of birth time and modification time.
// Birth time comes from statx; not every filesystem records it, in which
// case the modification time stands alone.
func earliestTimestamp(path string, info os.FileInfo) time.Time {
	earliest := info.ModTime()

	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME, &stx)
	if err != nil || stx.Mask&unix.STATX_BTIME == 0 {
		return earliest
	}
	birth := time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	if birth.After(time.Time{}) && birth.Before(earliest) {
		return birth
	}
	return earliest
}
