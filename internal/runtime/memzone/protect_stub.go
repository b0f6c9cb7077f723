//go:build !unix && !windows

package memzone

import "errors"

const HaveProtection = false

var errNoProtection = errors.New("memzone: no page-protection facility on this target")

func ProtectRW(addr, n uintptr) error { return errNoProtection }

func ProtectNone(addr, n uintptr) error { return errNoProtection }
