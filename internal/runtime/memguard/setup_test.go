package memguard

import (
	"testing"

	"github.com/meridian-lang/meridian/internal/runtime/memzone"
)

// interceptExit routes Abort's termination into a recoverable panic so
// fatal setup paths can be observed.
func interceptExit(t *testing.T) *int {
	t.Helper()
	code := -1
	oldExit := osExit
	osExit = func(c int) {
		code = c
		panic("exit")
	}
	t.Cleanup(func() { osExit = oldExit })
	return &code
}

func resetInstall(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		setupMu.Lock()
		installedReg = nil
		installedStrategy = StrategyAuto
		setupMu.Unlock()
	})
}

func TestSetupSignalNilRegistryFatal(t *testing.T) {
	resetInstall(t)
	code := interceptExit(t)

	func() {
		defer func() { _ = recover() }()
		SetupSignal(nil, Options{})
	}()

	if *code != 1 {
		t.Errorf("nil registry exited with %d, want 1", *code)
	}
	if installedReg != nil {
		t.Error("nil registry left handlers installed")
	}
}

func TestSetupSignalTwiceFatal(t *testing.T) {
	resetInstall(t)
	reg := memzone.NewRegistry()

	SetupSignal(reg, Options{Strategy: StrategyMinimal})
	if got := InstalledStrategy(); got != StrategyMinimal {
		t.Fatalf("installed strategy = %v, want minimal", got)
	}

	code := interceptExit(t)
	func() {
		defer func() { _ = recover() }()
		SetupSignal(reg, Options{Strategy: StrategyMinimal})
	}()
	if *code != 1 {
		t.Errorf("second install exited with %d, want 1", *code)
	}
}

func TestSetupSignalUnbuiltSigcontextFatal(t *testing.T) {
	if sigctxBuilt() {
		t.Skip("sigcontext strategy compiled in")
	}
	resetInstall(t)
	reg := memzone.NewRegistry()

	code := interceptExit(t)
	func() {
		defer func() { _ = recover() }()
		SetupSignal(reg, Options{Strategy: StrategySigcontext})
	}()
	if *code != 1 {
		t.Errorf("unavailable strategy exited with %d, want 1", *code)
	}
	if installedReg != nil {
		t.Error("failed install left registry published")
	}
}
