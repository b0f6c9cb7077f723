//go:build linux

package memguard

import (
	"strings"

	semver "github.com/Masterminds/semver/v3"
	"golang.org/x/sys/unix"
)

// kernelRelease reports the running kernel version via uname(2).
func kernelRelease() (*semver.Version, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return nil, err
	}
	rel := unix.ByteSliceToString(u.Release[:])
	return parseKernelRelease(rel)
}

// parseKernelRelease trims distro suffixes like "-arch1-1" or
// "+deb12" off a release string before semver parsing.
func parseKernelRelease(rel string) (*semver.Version, error) {
	if i := strings.IndexAny(rel, "-+"); i >= 0 {
		rel = rel[:i]
	}
	return semver.NewVersion(rel)
}
