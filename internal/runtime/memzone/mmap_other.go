//go:build !unix && !windows

package memzone

import (
	"fmt"
	"unsafe"
)

// NewZone on targets without a page-protection facility allocates
// plain aligned memory and leaves the whole region accessible. Guard
// bands cannot trap here, so the zone is created with redzone == top:
// the engine falls back to its minimal fault strategy and overflow
// detection is lost.
func NewZone(name string, id int, size, accessible uintptr, h GrowthPolicy) (*Zone, error) {
	unit := Unit()
	size = RoundUp(size, unit)
	if size == 0 {
		return nil, fmt.Errorf("memzone: zone %s#%d has zero size", name, id)
	}

	// Over-allocate so the usable range can be aligned to the unit.
	b := make([]byte, size+unit)
	raw := uintptr(unsafe.Pointer(&b[0]))
	base := RoundUp(raw, unit)

	z := &Zone{
		Name:    name,
		ID:      id,
		Min:     base,
		Redzone: base + size,
		Top:     base + size,
		Hardmax: base + size,
		Handler: h,
		backing: b,
	}
	return z, nil
}

// Close drops the backing allocation.
func (z *Zone) Close() error {
	z.backing = nil
	return nil
}
