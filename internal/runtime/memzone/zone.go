// Package memzone models the virtual-address regions that back the
// execution engine's logical stacks. Each zone keeps a write-protected
// guard band at its tail; the memguard package grows the accessible
// prefix in response to hardware faults on that band.
package memzone

import (
	"fmt"
	"sync"
	"unsafe"
)

// WordSize is the growth slack added to a faulting address before the
// new boundary is rounded up, so the access that faulted lands inside
// the newly accessible range.
const WordSize = uintptr(unsafe.Sizeof(uintptr(0)))

// FaultContext is the opaque platform context delivered with a trap.
// Either accessor may report false when the delivery strategy in use
// does not carry that piece of information.
type FaultContext interface {
	// FaultAddress returns the address the trapped access touched.
	FaultAddress() (uintptr, bool)

	// PC returns the program counter at the time of the trap.
	PC() (uintptr, bool)
}

// GrowthPolicy decides how a zone responds to a fault inside its guard
// band. Grow reports whether the fault was absorbed; a false return
// means the fault is escalated by the caller. Grow runs under
// signal-handler constraints: no heap allocation, no unbounded
// recursion, raw output only.
type GrowthPolicy interface {
	Grow(fault uintptr, z *Zone, ctx FaultContext) bool
}

// Zone is one contiguous region backing a logical stack.
//
// The accessible prefix is [Min, Redzone); the tail [Redzone, Top] is
// mapped but protected. Redzone only ever moves upward, and never past
// Hardmax. Zones are created and registered by the engine's allocator
// before any code that may fault against them runs; the fault core
// mutates Redzone (and Top, when growth passes it) but never creates,
// unregisters or frees a zone.
type Zone struct {
	Name    string       // diagnostic label, not unique
	ID      int          // discriminator among same-named zones
	Min     uintptr      // lowest valid address
	Redzone uintptr      // start of the protected guard band
	Top     uintptr      // highest address of the mapped region
	Hardmax uintptr      // absolute growth ceiling
	Handler GrowthPolicy // bound growth policy

	// GrowMu serializes growth when several threads fault on the same
	// zone at once. Distinct zones never contend.
	GrowMu sync.Mutex

	next    *Zone  // registry-owned intrusive link
	backing []byte // keeps an mmap'd zone alive; nil for synthetic zones
}

// Contains reports whether addr falls inside the zone's guard band.
// The range is inclusive of Top, matching the router's containment
// test.
func (z *Zone) Contains(addr uintptr) bool {
	return z.Redzone <= addr && addr <= z.Top
}

// Label renders the "name#id" form used in every diagnostic that names
// a zone.
func (z *Zone) Label() string {
	return fmt.Sprintf("%s#%d", z.Name, z.ID)
}

// Next returns the following zone in registration order, or nil.
func (z *Zone) Next() *Zone { return z.next }

// CheckInvariants verifies min <= redzone <= top <= hardmax. The
// registry calls this at registration; tests call it after growth.
func (z *Zone) CheckInvariants() error {
	if z.Min > z.Redzone {
		return fmt.Errorf("zone %s: min 0x%x above redzone 0x%x", z.Label(), z.Min, z.Redzone)
	}
	if z.Redzone > z.Top {
		return fmt.Errorf("zone %s: redzone 0x%x above top 0x%x", z.Label(), z.Redzone, z.Top)
	}
	if z.Top > z.Hardmax {
		return fmt.Errorf("zone %s: top 0x%x above hardmax 0x%x", z.Label(), z.Top, z.Hardmax)
	}
	return nil
}
