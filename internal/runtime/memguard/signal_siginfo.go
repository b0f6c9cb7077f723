package memguard

import (
	"runtime"
	"runtime/debug"
)

// The siginfo strategy rides on the Go runtime's extended fault
// delivery: with panic-on-fault armed, a fault on a mapped but
// protected page surfaces as a runtime.Error carrying the fault
// address. The captured call stack stands in for the opaque execution
// context and yields the program counter.

// faultAddresser is the structured fault descriptor the runtime
// attaches to such panics.
type faultAddresser interface {
	error
	Addr() uintptr
}

// installSiginfo has no process-wide handler to register: delivery is
// armed per goroutine by Guarded.
func installSiginfo() error {
	return nil
}

// Guarded runs fn with fault trapping armed on the calling goroutine.
// A fault on a registered guard band grows the zone and re-executes fn
// from the start: Go cannot resume a faulted instruction, so guarded
// regions must tolerate re-execution up to their first touch of fresh
// stack. Faults the router does not absorb are fatal. Panics that are
// not fault descriptors propagate unchanged.
//
// SetupSignal must have run first; otherwise every fault is foreign.
func Guarded(fn func()) {
	old := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(old)

	for !runGuarded(fn) {
	}
}

// runGuarded executes fn once, absorbing at most one guard-band fault.
// It reports whether fn ran to completion.
func runGuarded(fn func()) (done bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		fe, ok := r.(faultAddresser)
		if !ok {
			panic(r)
		}

		ctx := &callersContext{addr: fe.Addr()}
		ctx.npc = runtime.Callers(3, ctx.pcs[:])

		if installedReg != nil && RouteFault(installedReg, ctx.addr, ctx) {
			return // grown; caller retries fn
		}
		Abort(AbortRequest{
			Class:    ClassForeignFault,
			Sig:      SigSegv,
			Addr:     ctx.addr,
			HasAddr:  true,
			Ctx:      ctx,
			WantDump: true,
		})
	}()
	fn()
	return true
}
