package memguard

import (
	"github.com/meridian-lang/meridian/internal/runtime/memzone"
)

// ProtectFunc changes the protection of [addr, addr+n) to read-write.
type ProtectFunc func(addr, n uintptr) error

// DefaultPolicy is the canonical growth policy: a fault in the guard
// band extends the accessible region up to the zone's ceiling. The
// zero value uses the OS page size and real page protection; tests
// inject their own seams.
type DefaultPolicy struct {
	// Unit is the protection granularity growth targets are rounded
	// to. Zero means the OS page size.
	Unit uintptr

	// Protect performs the protection change. Nil means
	// memzone.ProtectRW.
	Protect ProtectFunc

	// fail receives abort requests instead of Abort. Test seam only.
	fail func(AbortRequest)
}

// Grow computes the new accessible boundary and unprotects up to it.
// A boundary exactly at the ceiling fills the zone and succeeds;
// strictly beyond it is an overflow and never returns. A refused
// protection change is an environment fault and never returns either.
func (p *DefaultPolicy) Grow(fault uintptr, z *memzone.Zone, ctx FaultContext) bool {
	unit := p.Unit
	if unit == 0 {
		unit = memzone.Unit()
	}
	protect := p.Protect
	if protect == nil {
		protect = memzone.ProtectRW
	}
	fail := p.fail
	if fail == nil {
		fail = Abort
	}
	verbose := verboseFaults.Load()
	var l lineBuf

	z.GrowMu.Lock()

	newBoundary := memzone.RoundUp(fault+memzone.WordSize, unit)
	if newBoundary <= z.Redzone {
		// Another thread grew past the faulting address while we
		// waited on the lock; the access can simply be retried.
		z.GrowMu.Unlock()
		return true
	}

	if newBoundary > z.Hardmax {
		z.GrowMu.Unlock()
		if verbose {
			l.str("can't unprotect last page of ").zone(z.Name, z.ID).str("\n").flush()
		}
		fail(AbortRequest{
			Class:    ClassZoneOverflow,
			Sig:      SigSegv,
			Zone:     z,
			Addr:     fault,
			HasAddr:  true,
			Ctx:      ctx,
			WantDump: true,
		})
		return false
	}

	if verbose {
		l.str("trying to unprotect ").zone(z.Name, z.ID).str(" from ").
			hex(z.Redzone).str(" to ").hex(newBoundary).str("\n").flush()
	}

	if err := protect(z.Redzone, newBoundary-z.Redzone); err != nil {
		z.GrowMu.Unlock()
		fail(AbortRequest{
			Class:   ClassProtectionChange,
			Sig:     SigSegv,
			Zone:    z,
			Addr:    fault,
			HasAddr: true,
			Ctx:     ctx,
			Message: err.Error(),
		})
		return false
	}

	z.Redzone = newBoundary
	if z.Redzone > z.Top {
		// Growth passed the active window; advance the window top so
		// min <= redzone <= top <= hardmax keeps holding.
		z.Top = z.Redzone
	}
	z.GrowMu.Unlock()

	if verbose {
		l.str("successful: ").zone(z.Name, z.ID).str(" redzone now ").
			hex(z.Redzone).str(" to ").hex(z.Top).str("\n").flush()
	}
	return true
}

// NullPolicy refuses every growth request. Bind it to zones that must
// never become accessible beyond their current boundary; the router
// escalates the refusal exactly like a foreign fault.
type NullPolicy struct{}

// Grow always reports the fault unhandled.
func (NullPolicy) Grow(fault uintptr, z *memzone.Zone, ctx FaultContext) bool {
	return false
}
