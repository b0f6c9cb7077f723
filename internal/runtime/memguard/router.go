package memguard

import (
	"sync/atomic"

	"github.com/meridian-lang/meridian/internal/runtime/memzone"
)

// verboseFaults gates routing diagnostics on the fault path. They go
// through the raw writer only; flipping the toggle is safe at any
// time.
var verboseFaults atomic.Bool

// SetVerbose enables or disables verbose fault diagnostics.
func SetVerbose(v bool) { verboseFaults.Store(v) }

// Verbose reports the current state of the verbose toggle.
func Verbose() bool { return verboseFaults.Load() }

// RouteFault finds the zone whose guard band contains addr and
// delegates to its growth policy. Zones are checked in registration
// order and the first containing zone wins; the registry guarantees
// guard bands do not overlap, so at most one zone matches (ties on a
// shared boundary address go to the earlier registration, see
// memzone.Registry). A false return means the fault is foreign: no
// engine-managed region owns it.
//
// Runs under signal-handler constraints: no allocation, fixed-depth
// iteration over the append-only registry, raw output only.
func RouteFault(reg *memzone.Registry, addr uintptr, ctx FaultContext) bool {
	verbose := verboseFaults.Load()
	var l lineBuf

	if verbose {
		l.str("caught fault at ").hex(addr).str("\n").flush()
	}

	for z := reg.First(); z != nil; z = z.Next() {
		if verbose {
			l.str("checking ").zone(z.Name, z.ID).str(": ").
				hex(z.Redzone).str(" - ").hex(z.Top).str("\n").flush()
		}
		if !z.Contains(addr) {
			continue
		}
		if verbose {
			l.str("address is in ").zone(z.Name, z.ID).str(" redzone\n").flush()
		}
		if z.Handler == nil {
			return false
		}
		return z.Handler.Grow(addr, z, ctx)
	}

	if verbose {
		l.str("address not in any redzone\n").flush()
	}
	return false
}
