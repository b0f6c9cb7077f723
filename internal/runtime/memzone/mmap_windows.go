//go:build windows

package memzone

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// NewZone reserves and commits a fresh region of size bytes via
// VirtualAlloc and arms its guard band with VirtualProtect. See the
// unix variant for the layout contract.
func NewZone(name string, id int, size, accessible uintptr, h GrowthPolicy) (*Zone, error) {
	unit := Unit()
	size = RoundUp(size, unit)
	accessible = RoundUp(accessible, unit)
	if size == 0 {
		return nil, fmt.Errorf("memzone: zone %s#%d has zero size", name, id)
	}
	if accessible > size {
		return nil, fmt.Errorf("memzone: zone %s#%d accessible 0x%x exceeds size 0x%x", name, id, accessible, size)
	}

	base, err := windows.VirtualAlloc(0, size,
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("memzone: VirtualAlloc %s#%d (0x%x bytes): %w", name, id, size, err)
	}

	z := &Zone{
		Name:    name,
		ID:      id,
		Min:     base,
		Redzone: base + accessible,
		Top:     base + size,
		Hardmax: base + size,
		Handler: h,
	}
	z.backing = unsafe.Slice((*byte)(unsafe.Pointer(base)), int(size))

	if accessible < size {
		if err := ProtectNone(z.Redzone, z.Top-z.Redzone); err != nil {
			_ = windows.VirtualFree(base, 0, windows.MEM_RELEASE)
			return nil, fmt.Errorf("memzone: protect guard band of %s: %w", z.Label(), err)
		}
	}
	return z, nil
}

// Close releases the zone's backing memory.
func (z *Zone) Close() error {
	if z.backing == nil {
		return nil
	}
	base := uintptr(unsafe.Pointer(&z.backing[0]))
	z.backing = nil
	return windows.VirtualFree(base, 0, windows.MEM_RELEASE)
}
