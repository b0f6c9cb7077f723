package memguard

import (
	"os"
	"os/signal"
	"syscall"
)

// installMinimal registers bare signal notification for SIGSEGV and
// SIGBUS. The delivery carries no fault address, so routing is
// impossible and every trap is fatal with a generic diagnostic.
func installMinimal() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGSEGV, syscall.SIGBUS)
	go func() {
		s := <-ch
		sig := SigUnknown
		switch s {
		case syscall.SIGSEGV:
			sig = SigSegv
		case syscall.SIGBUS:
			sig = SigBus
		}
		Abort(AbortRequest{
			Class:    ClassForeignFault,
			Sig:      sig,
			WantDump: true,
		})
	}()
	return nil
}
