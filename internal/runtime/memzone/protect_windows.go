//go:build windows

package memzone

import (
	"golang.org/x/sys/windows"
)

const HaveProtection = true

// ProtectRW makes [addr, addr+n) readable and writable.
func ProtectRW(addr, n uintptr) error {
	var old uint32
	return windows.VirtualProtect(addr, n, windows.PAGE_READWRITE, &old)
}

// ProtectNone revokes all access to [addr, addr+n).
func ProtectNone(addr, n uintptr) error {
	var old uint32
	return windows.VirtualProtect(addr, n, windows.PAGE_NOACCESS, &old)
}
