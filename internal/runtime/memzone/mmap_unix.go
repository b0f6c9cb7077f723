//go:build unix

package memzone

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// NewZone maps a fresh anonymous region of size bytes and arms its
// guard band. The first accessible bytes are immediately usable;
// everything from there to the end of the mapping is protected and
// grows on demand. Both sizes are rounded up to the protection unit.
//
// The zone's ceiling is the end of the mapping: growth is purely a
// protection change, never a remap.
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

	b, err := unix.Mmap(-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("memzone: mmap %s#%d (0x%x bytes): %w", name, id, size, err)
	}

	base := uintptr(unsafe.Pointer(&b[0]))
	z := &Zone{
		Name:    name,
		ID:      id,
		Min:     base,
		Redzone: base + accessible,
		Top:     base + size,
		Hardmax: base + size,
		Handler: h,
		backing: b,
	}

	if accessible < size {
		if err := ProtectNone(z.Redzone, z.Top-z.Redzone); err != nil {
			_ = unix.Munmap(b)
			return nil, fmt.Errorf("memzone: protect guard band of %s: %w", z.Label(), err)
		}
	}
	return z, nil
}

// Close unmaps the zone's backing memory. Engine shutdown only; the
// fault core never frees zones, and a zone must not be closed while it
// is still registered.
func (z *Zone) Close() error {
	if z.backing == nil {
		return nil
	}
	b := z.backing
	z.backing = nil
	return unix.Munmap(b)
}
