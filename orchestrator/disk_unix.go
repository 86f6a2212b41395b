//go:build unix

package orchestrator

import "golang.org/x/sys/unix"

// freeBytes estimates free space on the filesystem backing dir using
// statfs, the Unix-specific half of the disk guard (spec.md §4.9).
func freeBytes(dir string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
