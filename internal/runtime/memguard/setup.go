package memguard

import (
	"fmt"
	"sync"

	"github.com/meridian-lang/meridian/internal/runtime/memzone"
)

// Options tunes SetupSignal.
type Options struct {
	// Strategy selects the delivery convention; StrategyAuto picks
	// the best one the build and host support.
	Strategy Strategy

	// Verbose enables routing diagnostics on the fault path.
	Verbose bool

	// Reporter is the diagnostics collaborator used on aborts. Nil
	// keeps the current one.
	Reporter Reporter
}

var (
	setupMu           sync.Mutex
	installedReg      *memzone.Registry
	installedStrategy Strategy
)

// SetupSignal installs the process-wide fault-handling strategy over
// reg. Call exactly once at engine bootstrap, before any guarded
// stack is touched; it replaces any prior SIGSEGV/SIGBUS handling.
// Installation failure is fatal and never retried.
func SetupSignal(reg *memzone.Registry, opts Options) {
	setupMu.Lock()
	defer setupMu.Unlock()

	if installedReg != nil {
		Abort(AbortRequest{
			Class:   ClassSetupFailure,
			Message: "signal handling installed twice",
		})
		return
	}
	if reg == nil {
		Abort(AbortRequest{
			Class:   ClassSetupFailure,
			Message: "nil zone registry",
		})
		return
	}

	SetVerbose(opts.Verbose)
	if opts.Reporter != nil {
		SetReporter(opts.Reporter)
	}

	strat := opts.Strategy
	if strat == StrategyAuto {
		strat = Probe().Strategies[0]
	}

	// The strategy installers read installedReg on delivery; publish
	// it before handlers can fire.
	installedReg = reg

	var err error
	switch strat {
	case StrategySigcontext:
		err = installSigcontext()
	case StrategySiginfo:
		err = installSiginfo()
	case StrategyMinimal:
		err = installMinimal()
	default:
		err = fmt.Errorf("memguard: invalid strategy %d", int(strat))
	}
	if err != nil {
		installedReg = nil
		Abort(AbortRequest{
			Class:   ClassSetupFailure,
			Message: err.Error(),
		})
		return
	}
	installedStrategy = strat
}

// InstalledStrategy reports the active strategy, or StrategyAuto when
// SetupSignal has not run.
func InstalledStrategy() Strategy {
	setupMu.Lock()
	defer setupMu.Unlock()
	if installedReg == nil {
		return StrategyAuto
	}
	return installedStrategy
}
