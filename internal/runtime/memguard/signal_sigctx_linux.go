//go:build meridian_sigctx && linux && cgo

package memguard

/*
#include <string.h>
#include <signal.h>
#include <errno.h>
#include <stdint.h>
#include <unistd.h>
#include <ucontext.h>

extern int meridianGuardFault(int sig, uintptr_t addr, uintptr_t pc);

// The handler consults the Go-side fault router inline; a nonzero
// return means the zone grew and the faulting instruction can be
// re-issued by returning from the handler. Anything else has already
// written its diagnostics, so the process just dies here.
static void meridian_guard_handler(int sig, siginfo_t *info, void *uctx) {
	uintptr_t pc = 0;
#if defined(__x86_64__)
	pc = (uintptr_t)((ucontext_t *)uctx)->uc_mcontext.gregs[REG_RIP];
#elif defined(__aarch64__)
	pc = (uintptr_t)((ucontext_t *)uctx)->uc_mcontext.pc;
#endif
	if (meridianGuardFault(sig, (uintptr_t)info->si_addr, pc)) {
		return;
	}
	_exit(1);
}

// SA_ONSTACK is mandatory: the Go runtime aborts when a foreign
// SIGSEGV handler is installed without it.
static int meridian_install_guard_handler(void) {
	struct sigaction act;
	memset(&act, 0, sizeof(act));
	act.sa_flags = SA_SIGINFO | SA_RESTART | SA_ONSTACK;
	if (sigemptyset(&act.sa_mask) != 0) {
		return errno;
	}
	act.sa_sigaction = meridian_guard_handler;
	if (sigaction(SIGBUS, &act, NULL) != 0) {
		return errno;
	}
	if (sigaction(SIGSEGV, &act, NULL) != 0) {
		return errno;
	}
	return 0;
}
*/
import "C"

import (
	"fmt"
	"syscall"
)

// sigctxBuilt reports whether the inline sigaction strategy was
// compiled in.
func sigctxBuilt() bool { return true }

// sigctxContext carries the fault address and program counter lifted
// straight out of the delivered ucontext.
type sigctxContext struct {
	addr uintptr
	pc   uintptr
}

func (c *sigctxContext) FaultAddress() (uintptr, bool) { return c.addr, true }

func (c *sigctxContext) PC() (uintptr, bool) { return c.pc, c.pc != 0 }

// installSigcontext replaces the SIGSEGV/SIGBUS handlers with the
// inline C handler above. The protection change performed during
// growth is assumed safe to issue from signal-handler context on this
// target; re-verify when porting.
func installSigcontext() error {
	if errno := C.meridian_install_guard_handler(); errno != 0 {
		return fmt.Errorf("memguard: sigaction: %w", syscall.Errno(errno))
	}
	return nil
}
