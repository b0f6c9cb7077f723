package memguard

import (
	"os"

	"github.com/meridian-lang/meridian/internal/runtime/memzone"
)

// FaultClass classifies the unrecoverable conditions this subsystem
// can hit. Nothing is retried: a faulted thread cannot safely unwind
// through arbitrary caller frames, so every class is terminal.
type FaultClass int

const (
	// ClassSetupFailure means handler installation failed at startup.
	ClassSetupFailure FaultClass = iota

	// ClassForeignFault means the fault matched no registered zone.
	// Refusals by a zone's null policy render identically.
	ClassForeignFault

	// ClassZoneOverflow means growth would exceed the zone's ceiling.
	ClassZoneOverflow

	// ClassProtectionChange means the OS refused the protection change
	// during growth: an environment fault, not an overflow.
	ClassProtectionChange
)

func (c FaultClass) String() string {
	switch c {
	case ClassSetupFailure:
		return "setup failure"
	case ClassForeignFault:
		return "foreign fault"
	case ClassZoneOverflow:
		return "zone overflow"
	case ClassProtectionChange:
		return "protection change failure"
	default:
		return "unknown"
	}
}

// Reporter is the diagnostics collaborator consulted on the abort
// path. TraceReportRaw must restrict itself to raw writes on fd;
// RecentLocations feeds the debug location dump.
type Reporter interface {
	TraceReportRaw(fd int)
	RecentLocations() []string
}

type nopReporter struct{}

func (nopReporter) TraceReportRaw(fd int)     {}
func (nopReporter) RecentLocations() []string { return nil }

var (
	reporter Reporter = nopReporter{}

	// osExit is the sole process-termination seam; tests replace it to
	// observe abort requests without dying.
	osExit = os.Exit
)

// SetReporter installs the diagnostics collaborator. Call during
// bootstrap, before fault handling begins.
func SetReporter(r Reporter) {
	if r == nil {
		r = nopReporter{}
	}
	reporter = r
}

// AbortRequest carries everything the abort path renders.
type AbortRequest struct {
	Class    FaultClass
	Sig      Signal
	Zone     *memzone.Zone // named in overflow and protection diagnostics
	Addr     uintptr
	HasAddr  bool
	Ctx      FaultContext
	Message  string // extra detail, e.g. the OS error text
	WantDump bool
}

// Abort renders the diagnostic banner and terminates the process with
// status 1. It never returns outside tests. Output is a banner naming
// the condition, an optional program-counter line, the faulting
// address if known, the collaborator's trace report and, in
// guard-debug builds, a compressed location history.
func Abort(req AbortRequest) {
	var l lineBuf

	l.str("\n*** meridian runtime: ")
	switch req.Class {
	case ClassZoneOverflow:
		l.str("memory zone ")
		if req.Zone != nil {
			l.zone(req.Zone.Name, req.Zone.ID)
		}
		l.str(" overflowed")
	case ClassProtectionChange:
		l.str("cannot unprotect zone ")
		if req.Zone != nil {
			l.zone(req.Zone.Name, req.Zone.ID)
		}
	case ClassSetupFailure:
		l.str("signal setup failed")
	default:
		l.str("caught ").str(req.Sig.String())
	}
	l.str(" ***\n").flush()

	if req.Message != "" {
		l.str(req.Message).str("\n").flush()
	}
	if req.Ctx != nil {
		if pc, ok := req.Ctx.PC(); ok {
			l.str("PC at signal: ").hex(pc).str("\n").flush()
		}
	}
	if req.HasAddr {
		l.str("address involved: ").hex(req.Addr).str("\n").flush()
	}

	reporter.TraceReportRaw(stderrFD)

	if req.WantDump {
		dumpLocationHistory(reporter.RecentLocations())
	}

	l.str("exiting from fault handler\n").flush()
	osExit(1)
}
