//go:build unix

package memzone

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// HaveProtection reports at build time whether the target exposes a
// page-protection facility. Without one, guard bands cannot trap and
// zones are created fully accessible.
const HaveProtection = true

func rangeBytes(addr, n uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(n))
}

// ProtectRW makes [addr, addr+n) readable and writable. Safe to call
// from signal-handler context on the supported targets; flagged for
// re-verification when porting.
func ProtectRW(addr, n uintptr) error {
	return unix.Mprotect(rangeBytes(addr, n), unix.PROT_READ|unix.PROT_WRITE)
}

// ProtectNone revokes all access to [addr, addr+n).
func ProtectNone(addr, n uintptr) error {
	return unix.Mprotect(rangeBytes(addr, n), unix.PROT_NONE)
}
