//go:build !linux

package memguard

import (
	"errors"

	semver "github.com/Masterminds/semver/v3"
)

func kernelRelease() (*semver.Version, error) {
	return nil, errors.New("memguard: kernel release unavailable on this target")
}
