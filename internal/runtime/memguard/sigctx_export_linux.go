//go:build meridian_sigctx && linux && cgo

package memguard

/*
#include <stdint.h>
*/
import "C"

import "syscall"

// meridianGuardFault is the C handler's callback into the fault
// router. Returning 1 resumes the faulting instruction; returning at
// all after an unabsorbed fault does not happen, since Abort exits.
//
//export meridianGuardFault
func meridianGuardFault(sig C.int, addr C.uintptr_t, pc C.uintptr_t) C.int {
	ctx := &sigctxContext{addr: uintptr(addr), pc: uintptr(pc)}

	if installedReg != nil && RouteFault(installedReg, ctx.addr, ctx) {
		return 1
	}

	s := SigSegv
	if sig == C.int(syscall.SIGBUS) {
		s = SigBus
	}
	Abort(AbortRequest{
		Class:    ClassForeignFault,
		Sig:      s,
		Addr:     ctx.addr,
		HasAddr:  true,
		Ctx:      ctx,
		WantDump: true,
	})
	return 0
}
