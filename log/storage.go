package log

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// diskFreeSpace returns the available bytes on the filesystem holding path.
func diskFreeSpace(path string) (int64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return int64(stat.Bavail) * int64(stat.Bsize), nil
}

// ladderSize sums the on-disk size of the rotation ladder rooted at path.
func (l *Logger) ladderSize(path string) int64 {
	total := fsize(path)
	for i := 1; i < l.cfg.MaxFileNum; i++ {
		total += fsize(fmt.Sprintf("%s.%d", path, i))
	}
	return total
}

// checkDiskSpace enforces the disk management limits before a file is
// opened. When the ladder exceeds MaxTotalSize or free space falls below
// MinDiskFree, rotated files are removed oldest-first (highest number
// first) until the budget is met or only the active file remains. Removed
// bytes count as dropped.
func (l *Logger) checkDiskSpace(path string) {
	if l.cfg.MaxTotalSize == 0 && l.cfg.MinDiskFree == 0 {
		return
	}

	var required int64
	if l.cfg.MaxTotalSize > 0 {
		if used := l.ladderSize(path); used > l.cfg.MaxTotalSize {
			required = used - l.cfg.MaxTotalSize
		}
	}
	if l.cfg.MinDiskFree > 0 {
		free, err := diskFreeSpace(l.cfg.Dir)
		if err == nil && free < l.cfg.MinDiskFree {
			if need := l.cfg.MinDiskFree - free; need > required {
				required = need
			}
		}
	}
	if required == 0 {
		return
	}

	var freed int64
	for i := l.cfg.MaxFileNum - 1; i >= 1 && freed < required; i-- {
		p := fmt.Sprintf("%s.%d", path, i)
		n := fsize(p)
		if n == 0 {
			continue
		}
		if err := os.Remove(p); err != nil {
			continue
		}
		freed += n
		l.dropped.Add(uint64(n))
	}

	if freed < required {
		stderrf("log: disk budget exceeded, freed %d of %d bytes\n", freed, required)
	}
}
